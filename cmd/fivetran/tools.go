package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	version "github.com/mutablelogic/go-fivetran/pkg/version"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ListToolsCmd struct{}

type CallCmd struct {
	Tool string `arg:"" help:"Name of the tool to call"`
	Args string `arg:"" optional:"" help:"Tool arguments as JSON"`
}

type VersionCmd struct{}

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCmd) Run(ctx *Globals) error {
	r, err := ctx.Runner()
	if err != nil {
		return err
	}
	tools, err := r.ListTools(ctx.ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(tools, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (cmd *CallCmd) Run(ctx *Globals) error {
	r, err := ctx.Runner()
	if err != nil {
		return err
	}

	var args any
	if cmd.Args != "" {
		args = json.RawMessage(cmd.Args)
	}

	result, err := r.Execute(ctx.ctx, cmd.Tool, args)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func (cmd *VersionCmd) Run(ctx *Globals) error {
	_, err := os.Stdout.Write(version.JSON(ctx.execName))
	fmt.Println()
	return err
}
