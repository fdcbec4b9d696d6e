package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Connection is a configured data source tracked by the upstream service
type Connection struct {
	Id            string            `json:"id"`
	GroupId       string            `json:"group_id,omitempty"`
	Service       string            `json:"service,omitempty"`
	Schema        string            `json:"schema,omitempty"`
	Paused        *bool             `json:"paused,omitempty"`
	SyncFrequency uint              `json:"sync_frequency,omitempty"`
	ScheduleType  string            `json:"schedule_type,omitempty"`
	Status        *ConnectionStatus `json:"status,omitempty"`
	SucceededAt   *string           `json:"succeeded_at,omitempty"`
	FailedAt      *string           `json:"failed_at,omitempty"`
}

// ConnectionStatus is the nested status object on a connection
type ConnectionStatus struct {
	SyncState        string  `json:"sync_state,omitempty"`
	SetupState       string  `json:"setup_state,omitempty"`
	UpdateState      string  `json:"update_state,omitempty"`
	IsHistoricalSync *bool   `json:"is_historical_sync,omitempty"`
	RescheduledFor   *string `json:"rescheduled_for,omitempty"`
	Tasks            []Alert `json:"tasks,omitempty"`
	Warnings         []Alert `json:"warnings,omitempty"`
}

// Alert is a task or warning raised against a connection. Fields the
// upstream adds beyond these are dropped on decode.
type Alert struct {
	Code    *string `json:"code"`
	Message *string `json:"message"`
	Details any     `json:"details"`
}

// ConnectionPatch is a partial update to a connection
type ConnectionPatch struct {
	Paused        *bool  `json:"paused,omitempty"`
	SyncFrequency *uint  `json:"sync_frequency,omitempty"`
	ScheduleType  string `json:"schedule_type,omitempty"`
}

// ConnectionList is one page of connections with an opaque cursor for the
// next page. The cursor is returned to the caller, never followed.
type ConnectionList struct {
	Items      []Connection `json:"items"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// SetupTest is a single diagnostic run by the connection test endpoint
type SetupTest struct {
	Title   *string `json:"title"`
	Status  string  `json:"status,omitempty"`
	Message *string `json:"message"`
}

// ConnectionTest is the result of testing a connection
type ConnectionTest struct {
	SetupTests []SetupTest `json:"setup_tests,omitempty"`
}

type respConnection struct {
	Code    string     `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
	Data    Connection `json:"data"`
}

type respConnectionList struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    ConnectionList `json:"data"`
}

type respConnectionTest struct {
	Code    string         `json:"code,omitempty"`
	Message string         `json:"message,omitempty"`
	Data    ConnectionTest `json:"data"`
}

type respAck struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListConnections returns one page of connections in the account
func (c *Client) ListConnections(ctx context.Context, limit uint, cursor string) (*ConnectionList, error) {
	var response respConnectionList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("connections"), client.OptQuery(pageValues(limit, cursor))); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

// GetConnection returns the details for a specific connection
func (c *Client) GetConnection(ctx context.Context, connectionId string) (*Connection, error) {
	if connectionId == "" {
		return nil, fivetran.ErrBadParameter.With("missing connection id")
	}
	var response respConnection
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("connections", connectionId)); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

// TriggerSync starts a data sync for a connection, without waiting for the
// next scheduled sync time
func (c *Client) TriggerSync(ctx context.Context, connectionId string, force bool) (string, error) {
	if connectionId == "" {
		return "", fivetran.ErrBadParameter.With("missing connection id")
	}
	req, err := client.NewJSONRequest(map[string]bool{"force": force})
	if err != nil {
		return "", err
	}
	var response respAck
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("connections", connectionId, "sync")); err != nil {
		return "", upstreamErr(err)
	}
	return response.Message, nil
}

// TriggerResync starts a full historical re-extraction for a connection.
// The scope optionally restricts the resync to specific schemas and tables.
func (c *Client) TriggerResync(ctx context.Context, connectionId string, scope map[string][]string) (string, error) {
	if connectionId == "" {
		return "", fivetran.ErrBadParameter.With("missing connection id")
	}

	// An empty scope resyncs the entire connection
	body := make(map[string]any)
	if len(scope) > 0 {
		body["scope"] = scope
	}
	req, err := client.NewJSONRequest(body)
	if err != nil {
		return "", err
	}

	var response respAck
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("connections", connectionId, "resync")); err != nil {
		return "", upstreamErr(err)
	}
	return response.Message, nil
}

// UpdateConnection applies a partial update to a connection and returns the
// updated connection
func (c *Client) UpdateConnection(ctx context.Context, connectionId string, patch ConnectionPatch) (*Connection, error) {
	if connectionId == "" {
		return nil, fivetran.ErrBadParameter.With("missing connection id")
	}
	req, err := client.NewJSONRequestEx(http.MethodPatch, patch, client.ContentTypeAny)
	if err != nil {
		return nil, err
	}
	var response respConnection
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("connections", connectionId)); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

// PauseConnection pauses a connection so it will not sync until resumed
func (c *Client) PauseConnection(ctx context.Context, connectionId string) (*Connection, error) {
	paused := true
	return c.UpdateConnection(ctx, connectionId, ConnectionPatch{Paused: &paused})
}

// ResumeConnection resumes a paused connection
func (c *Client) ResumeConnection(ctx context.Context, connectionId string) (*Connection, error) {
	paused := false
	return c.UpdateConnection(ctx, connectionId, ConnectionPatch{Paused: &paused})
}

// TestConnection runs the upstream connectivity and configuration
// diagnostics for a connection
func (c *Client) TestConnection(ctx context.Context, connectionId string) (*ConnectionTest, error) {
	if connectionId == "" {
		return nil, fivetran.ErrBadParameter.With("missing connection id")
	}
	var response respConnectionTest
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, ""), &response, client.OptPath("connections", connectionId, "test")); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func pageValues(limit uint, cursor string) url.Values {
	result := url.Values{}
	if limit > 0 {
		result.Set("limit", fmt.Sprint(limit))
	}
	if cursor != "" {
		result.Set("cursor", cursor)
	}
	return result
}
