package api

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	"github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
	"github.com/mutablelogic/go-fivetran/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type listConnections struct {
	client *Client
}

type getConnectionStatus struct {
	client *Client
}

type triggerSync struct {
	client *Client
}

type triggerResync struct {
	client *Client
}

type resyncTables struct {
	client *Client
}

type pauseConnection struct {
	client *Client
}

type resumeConnection struct {
	client *Client
}

type listGroups struct {
	client *Client
}

type testConnection struct {
	client *Client
}

type getSchema struct {
	client *Client
}

type listTables struct {
	client *Client
}

type reloadSchema struct {
	client *Client
}

var _ tool.Tool = (*listConnections)(nil)
var _ tool.Tool = (*getConnectionStatus)(nil)
var _ tool.Tool = (*triggerSync)(nil)
var _ tool.Tool = (*triggerResync)(nil)
var _ tool.Tool = (*resyncTables)(nil)
var _ tool.Tool = (*pauseConnection)(nil)
var _ tool.Tool = (*resumeConnection)(nil)
var _ tool.Tool = (*listGroups)(nil)
var _ tool.Tool = (*testConnection)(nil)
var _ tool.Tool = (*getSchema)(nil)
var _ tool.Tool = (*listTables)(nil)
var _ tool.Tool = (*reloadSchema)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func NewTools(key, secret string, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(key, secret, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&listConnections{client: client},
		&getConnectionStatus{client: client},
		&triggerSync{client: client},
		&triggerResync{client: client},
		&resyncTables{client: client},
		&pauseConnection{client: client},
		&resumeConnection{client: client},
		&listGroups{client: client},
		&testConnection{client: client},
		&getSchema{client: client},
		&listTables{client: client},
		&reloadSchema{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST CONNECTIONS

func (*listConnections) Name() string {
	return "list_connections"
}

func (*listConnections) Description() string {
	return "List data sync connections in the account, optionally filtered by group, with pagination."
}

// Return the JSON schema for the tool input
func (*listConnections) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ListConnectionsRequest](nil)
}

// Run the tool with the given input
func (t *listConnections) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ListConnectionsRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	var list *ConnectionList
	var err error
	if req.GroupId != "" {
		list, err = t.client.ListConnectionsInGroup(ctx, req.GroupId, req.limit(), req.Cursor)
	} else {
		list, err = t.client.ListConnections(ctx, req.limit(), req.Cursor)
	}
	if err != nil {
		return nil, err
	}

	result := ConnectionListResult{
		Connections: make([]ConnectionSummary, 0, len(list.Items)),
		NextCursor:  list.NextCursor,
	}
	for _, conn := range list.Items {
		result.Connections = append(result.Connections, summarizeConnection(conn))
	}
	result.Count = len(result.Connections)
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET CONNECTION STATUS

func (*getConnectionStatus) Name() string {
	return "get_connection_status"
}

func (*getConnectionStatus) Description() string {
	return "Get the detailed status of a connection, including sync state, tasks and warnings."
}

// Return the JSON schema for the tool input
func (*getConnectionStatus) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *getConnectionStatus) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	conn, err := t.client.GetConnection(ctx, req.ConnectionId)
	if err != nil {
		return nil, err
	}
	return detailConnection(*conn), nil
}

///////////////////////////////////////////////////////////////////////////////
// TRIGGER SYNC

func (*triggerSync) Name() string {
	return "trigger_sync"
}

func (*triggerSync) Description() string {
	return "Trigger a data sync for a connection, without waiting for the next scheduled sync."
}

// Return the JSON schema for the tool input
func (*triggerSync) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[TriggerSyncRequest](nil)
}

// Run the tool with the given input
func (t *triggerSync) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req TriggerSyncRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	message, err := t.client.TriggerSync(ctx, req.ConnectionId, req.Force)
	if err != nil {
		return nil, err
	}
	return Ack{
		Success:      true,
		Message:      message,
		ConnectionId: req.ConnectionId,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TRIGGER RESYNC

func (*triggerResync) Name() string {
	return "trigger_resync"
}

func (*triggerResync) Description() string {
	return "Trigger a full historical re-sync of a connection. This re-extracts all data from the source."
}

// Return the JSON schema for the tool input
func (*triggerResync) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *triggerResync) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	message, err := t.client.TriggerResync(ctx, req.ConnectionId, nil)
	if err != nil {
		return nil, err
	}
	return Ack{
		Success:      true,
		Message:      message,
		ConnectionId: req.ConnectionId,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// RESYNC TABLES

func (*resyncTables) Name() string {
	return "resync_tables"
}

func (*resyncTables) Description() string {
	return "Re-sync specific tables within a connection. Each table is named in schema.table format."
}

// Return the JSON schema for the tool input
func (*resyncTables) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ResyncTablesRequest](nil)
}

// Run the tool with the given input
func (t *resyncTables) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ResyncTablesRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	message, err := t.client.ResyncTables(ctx, req.ConnectionId, req.Tables)
	if err != nil {
		return nil, err
	}
	return TablesAck{
		Success:      true,
		Message:      message,
		ConnectionId: req.ConnectionId,
		Tables:       req.Tables,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PAUSE CONNECTION

func (*pauseConnection) Name() string {
	return "pause_connection"
}

func (*pauseConnection) Description() string {
	return "Pause a connection so it stops syncing until resumed."
}

// Return the JSON schema for the tool input
func (*pauseConnection) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *pauseConnection) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	if _, err := t.client.PauseConnection(ctx, req.ConnectionId); err != nil {
		return nil, err
	}
	return PauseAck{
		Success:      true,
		ConnectionId: req.ConnectionId,
		Paused:       true,
		Message:      "Connection paused",
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// RESUME CONNECTION

func (*resumeConnection) Name() string {
	return "resume_connection"
}

func (*resumeConnection) Description() string {
	return "Resume a paused connection so it syncs on its schedule again."
}

// Return the JSON schema for the tool input
func (*resumeConnection) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *resumeConnection) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	if _, err := t.client.ResumeConnection(ctx, req.ConnectionId); err != nil {
		return nil, err
	}
	return PauseAck{
		Success:      true,
		ConnectionId: req.ConnectionId,
		Paused:       false,
		Message:      "Connection resumed",
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST GROUPS

func (*listGroups) Name() string {
	return "list_groups"
}

func (*listGroups) Description() string {
	return "List destination groups in the account, with pagination."
}

// Return the JSON schema for the tool input
func (*listGroups) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ListGroupsRequest](nil)
}

// Run the tool with the given input
func (t *listGroups) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ListGroupsRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	list, err := t.client.ListGroups(ctx, req.limit(), req.Cursor)
	if err != nil {
		return nil, err
	}
	return summarizeGroups(list), nil
}

///////////////////////////////////////////////////////////////////////////////
// TEST CONNECTION

func (*testConnection) Name() string {
	return "test_connection"
}

func (*testConnection) Description() string {
	return "Run the connectivity and configuration tests for a connection and report pass/fail per test."
}

// Return the JSON schema for the tool input
func (*testConnection) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *testConnection) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	test, err := t.client.TestConnection(ctx, req.ConnectionId)
	if err != nil {
		return nil, err
	}
	return summarizeTest(req.ConnectionId, test), nil
}

///////////////////////////////////////////////////////////////////////////////
// GET SCHEMA

func (*getSchema) Name() string {
	return "get_schema"
}

func (*getSchema) Description() string {
	return "Get the schema configuration for a connection: schemas, tables and their sync settings."
}

// Return the JSON schema for the tool input
func (*getSchema) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *getSchema) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	config, err := t.client.GetSchema(ctx, req.ConnectionId)
	if err != nil {
		return nil, err
	}
	return SchemaResult{
		ConnectionId:         req.ConnectionId,
		SchemaChangeHandling: opt(config.SchemaChangeHandling),
		Schemas:              config.Schemas,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST TABLES

func (*listTables) Name() string {
	return "list_tables"
}

func (*listTables) Description() string {
	return "List the tables of a connection as flat rows, one per schema.table, with sync settings."
}

// Return the JSON schema for the tool input
func (*listTables) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *listTables) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	config, err := t.client.GetSchema(ctx, req.ConnectionId)
	if err != nil {
		return nil, err
	}
	return flattenTables(req.ConnectionId, config), nil
}

///////////////////////////////////////////////////////////////////////////////
// RELOAD SCHEMA

func (*reloadSchema) Name() string {
	return "reload_schema"
}

func (*reloadSchema) Description() string {
	return "Reload the schema configuration of a connection from the source."
}

// Return the JSON schema for the tool input
func (*reloadSchema) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ConnectionRequest](nil)
}

// Run the tool with the given input
func (t *reloadSchema) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ConnectionRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, fivetran.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	message, err := t.client.ReloadSchema(ctx, req.ConnectionId)
	if err != nil {
		return nil, err
	}
	return Ack{
		Success:      true,
		Message:      message,
		ConnectionId: req.ConnectionId,
	}, nil
}
