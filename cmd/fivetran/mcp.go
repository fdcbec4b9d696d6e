package main

import (
	"os"

	// Packages
	mcp "github.com/mutablelogic/go-fivetran/pkg/mcp"
	version "github.com/mutablelogic/go-fivetran/pkg/version"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *MCPCmd) Run(ctx *Globals) error {
	r, err := ctx.Runner()
	if err != nil {
		return err
	}

	server, err := mcp.New(ctx.execName, version.Version(), mcp.WithRunner(r))
	if err != nil {
		return err
	}

	// Serve on stdin and stdout until the context is cancelled
	ctx.logger.Info("mcp server started", zap.String("name", ctx.execName), zap.String("version", version.Version()))
	defer ctx.logger.Info("mcp server stopped")
	return server.RunStdio(ctx.ctx, os.Stdin, os.Stdout)
}
