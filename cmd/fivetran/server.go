package main

import (
	"crypto/tls"
	"fmt"
	"os"

	// Packages
	httphandler "github.com/mutablelogic/go-fivetran/pkg/httphandler"
	version "github.com/mutablelogic/go-fivetran/pkg/version"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ServeCmd struct {
	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ServeCmd) Run(ctx *Globals) error {
	r, err := ctx.Runner()
	if err != nil {
		return err
	}

	// Create the TLS config if TLS options are provided
	var tlsConfig *tls.Config
	if cmd.TLS.CertFile != "" || cmd.TLS.KeyFile != "" {
		var pemData [][]byte
		if cmd.TLS.CertFile != "" {
			certData, err := os.ReadFile(cmd.TLS.CertFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS certificate: %w", err)
			}
			pemData = append(pemData, certData)
		}
		if cmd.TLS.KeyFile != "" {
			keyData, err := os.ReadFile(cmd.TLS.KeyFile)
			if err != nil {
				return fmt.Errorf("failed to read TLS key: %w", err)
			}
			pemData = append(pemData, keyData)
		}
		tlsConfig, err = httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	// Create the HTTP router and register the tool handlers
	router, err := httprouter.NewRouter(ctx.ctx, ctx.HTTP.Prefix, ctx.HTTP.Origin, "Fivetran Tool Server", version.Version())
	if err != nil {
		return err
	} else if err := httphandler.RegisterHandlers(r, router, true); err != nil {
		return err
	}

	// Create the server
	server, err := httpserver.New(ctx.HTTP.Addr, router, tlsConfig)
	if err != nil {
		return err
	}

	// Run the server until the context is cancelled
	ctx.logger.Info("server started", zap.String("addr", ctx.HTTP.Addr), zap.String("version", version.Version()))
	defer ctx.logger.Info("server stopped")
	return server.Run(ctx.ctx)
}
