package api

///////////////////////////////////////////////////////////////////////////////
// TYPES

// The types in this file are the documented output contracts for the tools.
// Each carries a fixed key set: keys are always present, and upstream fields
// beyond the documented ones are never surfaced, so callers are insulated
// from upstream schema drift.

// ConnectionSummary is the stable subset of a connection used in lists
type ConnectionSummary struct {
	Id               string  `json:"id"`
	Schema           *string `json:"schema"`
	Service          *string `json:"service"`
	GroupId          *string `json:"group_id"`
	Paused           *bool   `json:"paused"`
	SyncState        *string `json:"sync_state"`
	SetupState       *string `json:"setup_state"`
	IsHistoricalSync *bool   `json:"is_historical_sync"`
	SucceededAt      *string `json:"succeeded_at"`
	FailedAt         *string `json:"failed_at"`
}

// ConnectionListResult is the output of the list_connections tool
type ConnectionListResult struct {
	Connections []ConnectionSummary `json:"connections"`
	Count       int                 `json:"count"`
	NextCursor  string              `json:"next_cursor,omitempty"`
}

// StatusDetail is the nested status block of a connection detail
type StatusDetail struct {
	SyncState        *string `json:"sync_state"`
	SetupState       *string `json:"setup_state"`
	UpdateState      *string `json:"update_state"`
	IsHistoricalSync *bool   `json:"is_historical_sync"`
}

// ConnectionDetail is the output of the get_connection_status tool
type ConnectionDetail struct {
	Id          string       `json:"id"`
	Schema      *string      `json:"schema"`
	Service     *string      `json:"service"`
	GroupId     *string      `json:"group_id"`
	Paused      *bool        `json:"paused"`
	Status      StatusDetail `json:"status"`
	Tasks       []Alert      `json:"tasks"`
	Warnings    []Alert      `json:"warnings"`
	SucceededAt *string      `json:"succeeded_at"`
	FailedAt    *string      `json:"failed_at"`
}

// Ack is the output of the trigger_sync, trigger_resync and reload_schema
// tools
type Ack struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ConnectionId string `json:"connection_id"`
}

// TablesAck is the output of the resync_tables tool
type TablesAck struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	ConnectionId string   `json:"connection_id"`
	Tables       []string `json:"tables"`
}

// PauseAck is the output of the pause_connection and resume_connection tools
type PauseAck struct {
	Success      bool   `json:"success"`
	ConnectionId string `json:"connection_id"`
	Paused       bool   `json:"paused"`
	Message      string `json:"message"`
}

// TestEntry is a single diagnostic in a test_connection result
type TestEntry struct {
	Title   *string `json:"title"`
	Status  string  `json:"status"`
	Message *string `json:"message"`
}

// TestResult is the output of the test_connection tool. OverallStatus is
// PASSED only when no test failed and at least one passed, so a connection
// reporting zero tests is not considered passed.
type TestResult struct {
	ConnectionId  string      `json:"connection_id"`
	OverallStatus string      `json:"overall_status"`
	PassedCount   int         `json:"passed_count"`
	FailedCount   int         `json:"failed_count"`
	Tests         []TestEntry `json:"tests"`
}

// SchemaResult is the output of the get_schema tool
type SchemaResult struct {
	ConnectionId         string                 `json:"connection_id"`
	SchemaChangeHandling *string                `json:"schema_change_handling"`
	Schemas              map[string]SchemaEntry `json:"schemas"`
}

// TableRow is one flattened row in a list_tables result
type TableRow struct {
	Schema   string  `json:"schema"`
	Table    string  `json:"table"`
	FullName string  `json:"full_name"`
	Enabled  bool    `json:"enabled"`
	SyncMode *string `json:"sync_mode"`
}

// TableListResult is the output of the list_tables tool. Row order follows
// the upstream mapping and is not guaranteed stable across calls.
type TableListResult struct {
	ConnectionId string     `json:"connection_id"`
	Tables       []TableRow `json:"tables"`
	Count        int        `json:"count"`
}

// GroupSummary is the stable subset of a group used in lists
type GroupSummary struct {
	Id        string  `json:"id"`
	Name      *string `json:"name"`
	CreatedAt *string `json:"created_at"`
}

// GroupListResult is the output of the list_groups tool
type GroupListResult struct {
	Groups     []GroupSummary `json:"groups"`
	Count      int            `json:"count"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// summarizeConnection extracts the documented summary fields. The three
// status fields come from the nested status object; when the upstream omits
// the status entirely they are all null rather than an error.
func summarizeConnection(conn Connection) ConnectionSummary {
	result := ConnectionSummary{
		Id:          conn.Id,
		Schema:      opt(conn.Schema),
		Service:     opt(conn.Service),
		GroupId:     opt(conn.GroupId),
		Paused:      conn.Paused,
		SucceededAt: conn.SucceededAt,
		FailedAt:    conn.FailedAt,
	}
	if status := conn.Status; status != nil {
		result.SyncState = opt(status.SyncState)
		result.SetupState = opt(status.SetupState)
		result.IsHistoricalSync = status.IsHistoricalSync
	}
	return result
}

// detailConnection extracts the documented detail fields, including tasks
// and warnings reshaped to their documented entry keys
func detailConnection(conn Connection) ConnectionDetail {
	result := ConnectionDetail{
		Id:          conn.Id,
		Schema:      opt(conn.Schema),
		Service:     opt(conn.Service),
		GroupId:     opt(conn.GroupId),
		Paused:      conn.Paused,
		Tasks:       []Alert{},
		Warnings:    []Alert{},
		SucceededAt: conn.SucceededAt,
		FailedAt:    conn.FailedAt,
	}
	if status := conn.Status; status != nil {
		result.Status = StatusDetail{
			SyncState:        opt(status.SyncState),
			SetupState:       opt(status.SetupState),
			UpdateState:      opt(status.UpdateState),
			IsHistoricalSync: status.IsHistoricalSync,
		}
		result.Tasks = append(result.Tasks, status.Tasks...)
		result.Warnings = append(result.Warnings, status.Warnings...)
	}
	return result
}

// summarizeTest reshapes the upstream diagnostics and computes the overall
// status from the pass and fail counts
func summarizeTest(connectionId string, test *ConnectionTest) TestResult {
	result := TestResult{
		ConnectionId: connectionId,
		Tests:        make([]TestEntry, 0, len(test.SetupTests)),
	}
	for _, t := range test.SetupTests {
		status := t.Status
		if status == "" {
			status = "UNKNOWN"
		}
		switch status {
		case "PASSED":
			result.PassedCount++
		case "FAILED":
			result.FailedCount++
		}
		result.Tests = append(result.Tests, TestEntry{
			Title:   t.Title,
			Status:  status,
			Message: t.Message,
		})
	}
	if result.FailedCount == 0 && result.PassedCount > 0 {
		result.OverallStatus = "PASSED"
	} else {
		result.OverallStatus = "FAILED"
	}
	return result
}

// flattenTables flattens the two-level schema configuration into rows
func flattenTables(connectionId string, config *SchemaConfig) TableListResult {
	result := TableListResult{
		ConnectionId: connectionId,
		Tables:       []TableRow{},
	}
	for schemaName, schema := range config.Schemas {
		for tableName, table := range schema.Tables {
			var enabled bool
			if table.Enabled != nil {
				enabled = *table.Enabled
			}
			result.Tables = append(result.Tables, TableRow{
				Schema:   schemaName,
				Table:    tableName,
				FullName: schemaName + "." + tableName,
				Enabled:  enabled,
				SyncMode: opt(table.SyncMode),
			})
		}
	}
	result.Count = len(result.Tables)
	return result
}

// summarizeGroups extracts the documented group fields
func summarizeGroups(list *GroupList) GroupListResult {
	result := GroupListResult{
		Groups:     make([]GroupSummary, 0, len(list.Items)),
		NextCursor: list.NextCursor,
	}
	for _, group := range list.Items {
		result.Groups = append(result.Groups, GroupSummary{
			Id:        group.Id,
			Name:      opt(group.Name),
			CreatedAt: group.CreatedAt,
		})
	}
	result.Count = len(result.Groups)
	return result
}

// opt returns a pointer to the value, or nil when the value is empty, so
// that absent upstream fields marshal as null rather than ""
func opt(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
