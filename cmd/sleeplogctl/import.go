package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/claude/sleeplog/internal/importer"

	"github.com/spf13/cobra"
)

var (
	flagImportPath string
	flagStateDir   string
	flagDryRun     bool
	flagRemote     string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import JSON sleep diary exports from a directory",
	RunE:  runImport,
}

func init() {
	homeDir, _ := os.UserHomeDir()
	defaultStateDir := filepath.Join(homeDir, ".sleeplog")

	importCmd.Flags().StringVarP(&flagImportPath, "path", "p", "", "Directory containing *.json exports")
	importCmd.Flags().StringVar(&flagStateDir, "state-dir", defaultStateDir, "Directory for the import state database")
	importCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Report counts without writing")
	importCmd.Flags().StringVar(&flagRemote, "remote", "", "Send to a sleeplog server at this URL instead of the local database")
	_ = importCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, _ []string) error {
	info, err := os.Stat(flagImportPath)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%s does not exist or is not a directory", flagImportPath)
	}

	var rec importer.Recorder
	if flagRemote != "" {
		rec = importer.NewRemoteClient(flagRemote)
	} else {
		svc, closeFn, err := openService(cmd.Context())
		if err != nil {
			return err
		}
		defer closeFn()
		rec = svc
	}

	state, err := importer.OpenStateDB(flagStateDir)
	if err != nil {
		return err
	}
	defer state.Close()

	if flagDryRun {
		fmt.Fprintln(os.Stderr, "  DRY RUN: nothing will be written")
	}

	imp := importer.New(rec, state, newLogger(), flagDryRun)
	stats, err := imp.Import(cmd.Context(), flagImportPath, flagUser)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Files        %d imported, %d unchanged, %d unreadable\n",
		stats.FilesProcessed, stats.FilesSkipped, stats.FilesErrored)
	fmt.Printf("  Nights       %d new, %d already logged, %d rejected\n",
		stats.Inserted, stats.Duplicated, stats.Rejected)
	return nil
}
