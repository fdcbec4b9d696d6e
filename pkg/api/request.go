package api

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ListConnectionsRequest struct {
	Limit   uint   `json:"limit,omitempty" jsonschema:"Maximum number of connections to return (1-1000, default 100)"`
	GroupId string `json:"group_id,omitempty" jsonschema:"Optional group ID to filter connections by group"`
	Cursor  string `json:"cursor,omitempty" jsonschema:"Opaque pagination cursor returned by a previous call"`
}

type ConnectionRequest struct {
	ConnectionId string `json:"connection_id" jsonschema:"The unique identifier of the connection"`
}

type TriggerSyncRequest struct {
	ConnectionId string `json:"connection_id" jsonschema:"The unique identifier of the connection"`
	Force        bool   `json:"force,omitempty" jsonschema:"Force the sync even if one is already in progress"`
}

type ResyncTablesRequest struct {
	ConnectionId string   `json:"connection_id" jsonschema:"The unique identifier of the connection"`
	Tables       []string `json:"tables" jsonschema:"Table names to resync, each in schema.table format (e.g. public.users)"`
}

type ListGroupsRequest struct {
	Limit  uint   `json:"limit,omitempty" jsonschema:"Maximum number of groups to return (1-1000, default 100)"`
	Cursor string `json:"cursor,omitempty" jsonschema:"Opaque pagination cursor returned by a previous call"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// defaultLimit is applied when a list request does not name one
const defaultLimit = 100

///////////////////////////////////////////////////////////////////////////////
// METHODS

func (r *ListConnectionsRequest) limit() uint {
	if r.Limit == 0 {
		return defaultLimit
	}
	return r.Limit
}

func (r *ListGroupsRequest) limit() uint {
	if r.Limit == 0 {
		return defaultLimit
	}
	return r.Limit
}
