package api

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Group is a destination grouping of connections
type Group struct {
	Id        string  `json:"id"`
	Name      string  `json:"name,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// GroupList is one page of groups with an opaque cursor for the next page
type GroupList struct {
	Items      []Group `json:"items"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

type respGroupList struct {
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message,omitempty"`
	Data    GroupList `json:"data"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListGroups returns one page of groups in the account
func (c *Client) ListGroups(ctx context.Context, limit uint, cursor string) (*GroupList, error) {
	var response respGroupList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("groups"), client.OptQuery(pageValues(limit, cursor))); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}

// ListConnectionsInGroup returns one page of the connections within a group
func (c *Client) ListConnectionsInGroup(ctx context.Context, groupId string, limit uint, cursor string) (*ConnectionList, error) {
	if groupId == "" {
		return nil, fivetran.ErrBadParameter.With("missing group id")
	}
	var response respConnectionList
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("groups", groupId, "connections"), client.OptQuery(pageValues(limit, cursor))); err != nil {
		return nil, upstreamErr(err)
	}
	return &response.Data, nil
}
