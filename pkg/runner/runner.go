/*
runner dispatches named tools on behalf of the hosts. Both the stdio and
HTTP hosts call through the same Runner, so dispatch, validation and
tracing behave identically regardless of transport.
*/
package runner

import (
	"context"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	uuid "github.com/google/uuid"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	fivetran "github.com/mutablelogic/go-fivetran"
	tool "github.com/mutablelogic/go-fivetran/pkg/tool"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runner owns the toolkit and dispatches tool calls. It holds no
// per-call state, so a single Runner serves concurrent dispatches.
type Runner struct {
	toolkit *tool.Toolkit
	tracer  trace.Tracer
}

// ToolMeta describes one registered tool to a host
type ToolMeta struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"input_schema,omitempty"`
}

// Opt is a functional option for configuring a runner
type Opt func(*Runner) error

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New(opts ...Opt) (*Runner, error) {
	r := new(Runner)

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	// Default to empty toolkit if none was provided
	if r.toolkit == nil {
		r.toolkit, _ = tool.NewToolkit()
	}

	// Return success
	return r, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit sets the toolkit for the runner
func WithToolkit(toolkit *tool.Toolkit) Opt {
	return func(r *Runner) error {
		if toolkit == nil {
			return fivetran.ErrBadParameter.With("toolkit is required")
		}
		r.toolkit = toolkit
		return nil
	}
}

// WithTools registers tools into the runner's toolkit
func WithTools(tools ...tool.Tool) Opt {
	return func(r *Runner) error {
		if r.toolkit == nil {
			toolkit, err := tool.NewToolkit()
			if err != nil {
				return err
			}
			r.toolkit = toolkit
		}
		return r.toolkit.Register(tools...)
	}
}

// WithTracer sets the tracer used to span tool dispatches
func WithTracer(tracer trace.Tracer) Opt {
	return func(r *Runner) error {
		r.tracer = tracer
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns the name, description and input schema of every
// registered tool
func (r *Runner) ListTools(ctx context.Context) ([]ToolMeta, error) {
	tools := r.toolkit.Tools()
	result := make([]ToolMeta, 0, len(tools))
	for _, t := range tools {
		schema, err := t.Schema()
		if err != nil {
			return nil, fivetran.ErrInternalServerError.Withf("schema for %q: %v", t.Name(), err)
		}
		result = append(result, ToolMeta{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: schema,
		})
	}
	return result, nil
}

// Lookup returns the metadata for a single tool, or an unknown tool error
func (r *Runner) Lookup(ctx context.Context, name string) (*ToolMeta, error) {
	t := r.toolkit.Lookup(name)
	if t == nil {
		return nil, fivetran.ErrUnknownTool.Withf("%q", name)
	}
	schema, err := t.Schema()
	if err != nil {
		return nil, fivetran.ErrInternalServerError.Withf("schema for %q: %v", name, err)
	}
	return &ToolMeta{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schema,
	}, nil
}

// Execute dispatches a tool by name. The arguments are validated against
// the tool's schema before any call is made upstream.
func (r *Runner) Execute(ctx context.Context, name string, args any) (result any, err error) {
	// Otel span
	ctx, endSpan := otel.StartSpan(r.tracer, ctx, "Execute",
		attribute.String("tool", name),
		attribute.String("call", uuid.New().String()),
	)
	defer func() { endSpan(err) }()

	result, err = r.toolkit.Run(ctx, name, args)
	return
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r *Runner) String() string {
	return types.Stringify(r.toolkit)
}
