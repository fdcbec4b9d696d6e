package tool_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	jsonschema "github.com/google/jsonschema-go/jsonschema"
	fivetran "github.com/mutablelogic/go-fivetran"
	tool "github.com/mutablelogic/go-fivetran/pkg/tool"
)

type stubTool struct {
	name   string
	schema *jsonschema.Schema
	ran    bool
	input  json.RawMessage
}

func (s *stubTool) Name() string                        { return s.name }
func (s *stubTool) Description() string                 { return "stub" }
func (s *stubTool) Schema() (*jsonschema.Schema, error) { return s.schema, nil }
func (s *stubTool) Run(_ context.Context, input json.RawMessage) (any, error) {
	s.ran = true
	s.input = input
	return "ok", nil
}

type stubRequest struct {
	ConnectionId string `json:"connection_id"`
	Limit        uint   `json:"limit,omitempty"`
}

func requestSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	schema, err := jsonschema.For[stubRequest](nil)
	if err != nil {
		t.Fatal(err)
	}
	return schema
}

func TestRegister_NormalToolOK(t *testing.T) {
	tk, err := tool.NewToolkit()
	if err != nil {
		t.Fatal(err)
	}
	if err := tk.Register(&stubTool{name: "my_tool"}); err != nil {
		t.Fatal("normal tool should register:", err)
	}
	if tk.Lookup("my_tool") == nil {
		t.Fatal("registered tool should be found")
	}
}

func TestRegister_InvalidName(t *testing.T) {
	tk, err := tool.NewToolkit()
	if err != nil {
		t.Fatal(err)
	}
	err = tk.Register(&stubTool{name: "not a name"})
	if !errors.Is(err, fivetran.ErrBadParameter) {
		t.Fatal("expected bad parameter error, got:", err)
	}
}

func TestRegister_DuplicateName(t *testing.T) {
	tk, err := tool.NewToolkit(&stubTool{name: "my_tool"})
	if err != nil {
		t.Fatal(err)
	}
	err = tk.Register(&stubTool{name: "my_tool"})
	if !errors.Is(err, fivetran.ErrConflict) {
		t.Fatal("expected conflict error, got:", err)
	}
}

func TestRun_UnknownTool(t *testing.T) {
	tk, err := tool.NewToolkit()
	if err != nil {
		t.Fatal(err)
	}
	_, err = tk.Run(context.Background(), "missing", nil)
	if !errors.Is(err, fivetran.ErrUnknownTool) {
		t.Fatal("expected unknown tool error, got:", err)
	}
}

func TestRun_MissingRequired(t *testing.T) {
	stub := &stubTool{name: "my_tool", schema: requestSchema(t)}
	tk, err := tool.NewToolkit(stub)
	if err != nil {
		t.Fatal(err)
	}

	// Empty input is validated as an empty object, so the missing
	// required parameter is reported before the tool runs
	_, err = tk.Run(context.Background(), "my_tool", nil)
	if !errors.Is(err, fivetran.ErrBadParameter) {
		t.Fatal("expected bad parameter error, got:", err)
	}
	if stub.ran {
		t.Fatal("tool should not run on validation failure")
	}
}

func TestRun_TypeMismatch(t *testing.T) {
	stub := &stubTool{name: "my_tool", schema: requestSchema(t)}
	tk, err := tool.NewToolkit(stub)
	if err != nil {
		t.Fatal(err)
	}
	_, err = tk.Run(context.Background(), "my_tool", json.RawMessage(`{"connection_id": 42}`))
	if !errors.Is(err, fivetran.ErrBadParameter) {
		t.Fatal("expected bad parameter error, got:", err)
	}
	if stub.ran {
		t.Fatal("tool should not run on validation failure")
	}
}

func TestRun_ValidInput(t *testing.T) {
	stub := &stubTool{name: "my_tool", schema: requestSchema(t)}
	tk, err := tool.NewToolkit(stub)
	if err != nil {
		t.Fatal(err)
	}
	result, err := tk.Run(context.Background(), "my_tool", json.RawMessage(`{"connection_id": "conn_1"}`))
	if err != nil {
		t.Fatal(err)
	}
	if result != "ok" || !stub.ran {
		t.Fatal("tool should have run")
	}
}

func TestRun_MapInput(t *testing.T) {
	stub := &stubTool{name: "my_tool", schema: requestSchema(t)}
	tk, err := tool.NewToolkit(stub)
	if err != nil {
		t.Fatal(err)
	}

	// Non-JSON input is marshalled before validation
	_, err = tk.Run(context.Background(), "my_tool", map[string]any{"connection_id": "conn_1", "limit": 10})
	if err != nil {
		t.Fatal(err)
	}
	var decoded stubRequest
	if err := json.Unmarshal(stub.input, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.ConnectionId != "conn_1" || decoded.Limit != 10 {
		t.Fatal("unexpected input:", string(stub.input))
	}
}
