package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	godotenv "github.com/joho/godotenv"
	client "github.com/mutablelogic/go-client"
	api "github.com/mutablelogic/go-fivetran/pkg/api"
	runner "github.com/mutablelogic/go-fivetran/pkg/runner"
	zap "go.uber.org/zap"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool   `name:"debug" help:"Enable debug output"`
	Verbose bool   `name:"verbose" help:"Enable verbose output"`
	Log     string `name:"log" enum:"console,json" default:"console" help:"Log format"`

	// Credentials
	Fivetran `embed:"" help:"Fivetran API configuration"`

	// HTTP server
	HTTP struct {
		Addr    string        `name:"addr" default:":8080" help:"Listen address"`
		Prefix  string        `name:"prefix" default:"/api/v1" help:"Path prefix"`
		Origin  string        `name:"origin" default:"*" help:"CORS origin"`
		Timeout time.Duration `name:"timeout" help:"Upstream request timeout"`
	} `embed:"" prefix:"http."`

	// Context
	ctx      context.Context
	logger   *zap.Logger
	execName string
}

type Fivetran struct {
	Key    string `env:"FIVETRAN_API_KEY" help:"Fivetran API key"`
	Secret string `env:"FIVETRAN_API_SECRET" help:"Fivetran API secret"`
}

type CLI struct {
	Globals

	// Commands
	Tools   ListToolsCmd `cmd:"" help:"Return a list of tools"`
	Call    CallCmd      `cmd:"" help:"Call a tool with JSON arguments"`
	Mcp     MCPCmd       `cmd:"" help:"Run as an MCP server on stdin and stdout"`
	Server  ServeCmd     `cmd:"" help:"Run as an HTTP server"`
	Version VersionCmd   `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Fivetran sync orchestration tool server"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Create a logger
	logger, err := newLogger(cli.Debug, cli.Log)
	if err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
	defer logger.Sync()
	cli.Globals.logger = logger

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Runner builds the tool dispatcher from the configured credentials.
// Missing credentials fail here, before any host starts serving.
func (g *Globals) Runner() (*runner.Runner, error) {
	tools, err := api.NewTools(g.Key, g.Secret, g.clientOpts()...)
	if err != nil {
		return nil, err
	}
	return runner.New(runner.WithTools(tools...))
}

func (g *Globals) clientOpts() []client.ClientOpt {
	result := []client.ClientOpt{}
	if g.Debug {
		result = append(result, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.HTTP.Timeout > 0 {
		result = append(result, client.OptTimeout(g.HTTP.Timeout))
	}
	return result
}

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
