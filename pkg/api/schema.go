package api

import (
	"context"
	"net/http"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SchemaConfig is the schema configuration for a connection: a two-level
// mapping from schema name to table name to table settings
type SchemaConfig struct {
	SchemaChangeHandling string                 `json:"schema_change_handling,omitempty"`
	Schemas              map[string]SchemaEntry `json:"schemas,omitempty"`
}

// SchemaEntry is the per-schema configuration
type SchemaEntry struct {
	Enabled *bool                 `json:"enabled,omitempty"`
	Tables  map[string]TableEntry `json:"tables,omitempty"`
}

// TableEntry is the per-table configuration
type TableEntry struct {
	Enabled  *bool  `json:"enabled,omitempty"`
	SyncMode string `json:"sync_mode,omitempty"`
}

// TableScope is the set of tables to resync within one schema
type TableScope struct {
	Tables map[string]struct{} `json:"tables"`
}

type respSchemaConfig struct {
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
	Data    SchemaConfig `json:"data"`
}

type respColumns struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Columns map[string]ColumnEntry `json:"columns,omitempty"`
	} `json:"data"`
}

// ColumnEntry is the per-column configuration
type ColumnEntry struct {
	Enabled *bool `json:"enabled,omitempty"`
	Hashed  *bool `json:"hashed,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// GetSchema returns the complete schema configuration for a connection
func (c *Client) GetSchema(ctx context.Context, connectionId string) (*SchemaConfig, error) {
	if connectionId == "" {
		return nil, fivetran.ErrBadParameter.With("missing connection id")
	}
	var response respSchemaConfig
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("connections", connectionId, "schemas")); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

// ResyncTables triggers a historical resync for specific tables within a
// connection. Each table is named "schema.table"; a name without a dot is
// a caller error, reported before any request is made.
func (c *Client) ResyncTables(ctx context.Context, connectionId string, tables []string) (string, error) {
	if connectionId == "" {
		return "", fivetran.ErrBadParameter.With("missing connection id")
	}
	if len(tables) == 0 {
		return "", fivetran.ErrBadParameter.With("no tables to resync")
	}
	scope, err := scopeForTables(tables)
	if err != nil {
		return "", err
	}
	req, err := client.NewJSONRequest(map[string]any{"schemas": scope})
	if err != nil {
		return "", err
	}
	var response respAck
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("connections", connectionId, "schemas", "tables", "resync")); err != nil {
		return "", upstreamErr(err)
	}
	return response.Message, nil
}

// ReloadSchema reloads the schema configuration from the source
func (c *Client) ReloadSchema(ctx context.Context, connectionId string) (string, error) {
	if connectionId == "" {
		return "", fivetran.ErrBadParameter.With("missing connection id")
	}
	var response respAck
	if err := c.DoWithContext(ctx, client.NewRequestEx(http.MethodPost, ""), &response, client.OptPath("connections", connectionId, "schemas", "reload")); err != nil {
		return "", upstreamErr(err)
	}
	return response.Message, nil
}

// GetTableColumns returns the column configuration for a table
func (c *Client) GetTableColumns(ctx context.Context, connectionId, schema, table string) (map[string]ColumnEntry, error) {
	if connectionId == "" {
		return nil, fivetran.ErrBadParameter.With("missing connection id")
	}
	if schema == "" || table == "" {
		return nil, fivetran.ErrBadParameter.With("missing schema or table name")
	}
	var response respColumns
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("connections", connectionId, "schemas", schema, "tables", table, "columns")); err != nil {
		return nil, upstreamErr(err)
	}
	return response.Data.Columns, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// scopeForTables groups "schema.table" names by schema. Each name is split
// on the first dot only, so "analytics.events.raw" scopes the table
// "events.raw" within the "analytics" schema.
func scopeForTables(tables []string) (map[string]TableScope, error) {
	result := make(map[string]TableScope, len(tables))
	for _, name := range tables {
		schema, table, ok := strings.Cut(name, ".")
		if !ok || schema == "" || table == "" {
			return nil, fivetran.ErrBadParameter.Withf("table name %q is not in schema.table format", name)
		}
		scope, exists := result[schema]
		if !exists {
			scope = TableScope{Tables: make(map[string]struct{})}
			result[schema] = scope
		}
		scope.Tables[table] = struct{}{}
	}
	return result, nil
}
