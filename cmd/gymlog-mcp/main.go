package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/gymlog/internal/config"
	"github.com/claude/gymlog/internal/importer"
	"github.com/claude/gymlog/internal/ingest/markdown"
	gymmcp "github.com/claude/gymlog/internal/mcp"
	"github.com/claude/gymlog/internal/taxonomy"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	remoteURL := flag.String("remote", "", "gymlog-server base URL (overrides mcp.remote_url)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *remoteURL != "" {
		cfg.MCP.RemoteURL = *remoteURL
	}

	// stdout carries the MCP protocol.
	level, _ := cfg.Log.SlogLevel()
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var src gymmcp.Source
	if cfg.MCP.RemoteURL != "" {
		src = gymmcp.NewHTTPClient(cfg.MCP.RemoteURL, cfg.Auth.APIKey)
		log.Info("gymlog-mcp starting", "version", Version, "mode", "remote", "url", cfg.MCP.RemoteURL)
	} else {
		tax, err := taxonomy.FromFile(cfg.Taxonomy.File)
		if err != nil {
			log.Error("failed to load taxonomy", "error", err)
			os.Exit(1)
		}
		paths := flag.Args()
		if len(paths) == 0 {
			paths = cfg.Input.Paths
		}
		docs := importer.NewSource(paths, cfg.Input.Pattern, tax, log)
		src = gymmcp.NewLocalSource(docs, markdown.NewProvider(tax, log), tax)
		log.Info("gymlog-mcp starting", "version", Version, "mode", "local", "paths", paths)
	}

	s := gymmcp.New(src, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
