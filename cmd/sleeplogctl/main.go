// Command sleeplogctl records and reports sleep logs from the terminal.
package main

func main() {
	Execute()
}
