package mcp

import (
	fivetran "github.com/mutablelogic/go-fivetran"
	"github.com/mutablelogic/go-fivetran/pkg/runner"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithRunner sets the tool dispatcher which backs tools/list and tools/call
func WithRunner(v *runner.Runner) Opt {
	return func(server *Server) error {
		if v == nil {
			return fivetran.ErrBadParameter.With("runner is required")
		}
		server.runner = v
		return nil
	}
}
