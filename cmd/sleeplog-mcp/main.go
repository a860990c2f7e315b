// Command sleeplog-mcp serves the SleepLog MCP tools over stdio.
//
// With -remote it reads through a running sleeplog server's REST API;
// otherwise it opens the database from the config file directly.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/claude/sleeplog/internal/config"
	sleepmcp "github.com/claude/sleeplog/internal/mcp"
	"github.com/claude/sleeplog/internal/service"
	"github.com/claude/sleeplog/internal/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file (local mode)")
	remoteURL := flag.String("remote", "", "base URL of a sleeplog server (remote mode)")
	userID := flag.Int64("user", 1, "user id the tools act for")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds sleepmcp.DataSource
	if *remoteURL != "" {
		ds = sleepmcp.NewHTTPClient(*remoteURL)
		log.Info("using remote data source", "url", *remoteURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		repo, err := storage.Open(context.Background(), cfg.Database, "")
		if err != nil {
			log.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer repo.Close()
		ds = service.New(repo, log, service.WithWindowDays(cfg.Report.WindowDays))
	}

	s := sleepmcp.New(ds, Version, log)
	uid := *userID
	err := mcpserver.ServeStdio(s, mcpserver.WithStdioContextFunc(func(ctx context.Context) context.Context {
		return sleepmcp.WithUserID(ctx, uid)
	}))
	if err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
