package main

import (
	"flag"
	"log/slog"
	"os"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/gpacalc/internal/config"
	gpamcp "github.com/meltforce/gpacalc/internal/mcp"
	"github.com/meltforce/gpacalc/internal/roster"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults are used when empty)")
	serverURL := flag.String("server", "", "base URL of a running gpacalc server; empty keeps the roster in this process")
	apiKey := flag.String("api-key", os.Getenv("GPACALC_AUTH_API_KEY"), "API key for the remote server")
	flag.Parse()

	// stdout carries the MCP protocol, so logs go to stderr.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds gpamcp.DataSource
	if *serverURL != "" {
		ds = gpamcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("gpacalc-mcp starting", "version", Version, "mode", "remote", "server", *serverURL)
	} else {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		defaults, _ := cfg.RosterDefaults()
		ds = gpamcp.NewLocal(roster.New(defaults))
		log.Info("gpacalc-mcp starting", "version", Version, "mode", "local")
	}

	if err := mcpserver.ServeStdio(gpamcp.New(ds, Version, log)); err != nil {
		log.Error("mcp server error", "error", err)
		os.Exit(1)
	}
}
