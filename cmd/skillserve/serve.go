package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/skillworks/skillserve/pkg/logger"
	"github.com/skillworks/skillserve/pkg/mcpserver"
	"github.com/skillworks/skillserve/pkg/presenter"
	"github.com/skillworks/skillserve/pkg/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP stdio server",
	Long: `Start the MCP (Model Context Protocol) server on stdin/stdout.

The server exposes a single get_skill tool whose description lists the
currently available skills; the list is rebuilt from the skill
directories on every tools/list request. The server runs until stdin
closes or it is interrupted.`,
	Run: func(cmd *cobra.Command, _ []string) {
		runServeCommand(cmd.Context())
	},
}

func runServeCommand(ctx context.Context) {
	// Stdout carries the protocol; everything else goes to stderr.
	logger.SetLogOutput(os.Stderr)

	discovery, err := newDiscovery()
	if err != nil {
		presenter.Error(err, "failed to initialize skill discovery")
		os.Exit(1)
	}

	srv := mcpserver.New(version.Get().Version, discovery)

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.G(ctx).WithField("dirs", discovery.Dirs()).Info("starting MCP stdio server")

	if err := srv.Serve(ctx); err != nil {
		presenter.Error(err, "MCP server failed")
		os.Exit(1)
	}

	logger.G(ctx).Info("MCP server stopped")
}
