package api_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	// Packages
	opts "github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
	api "github.com/mutablelogic/go-fivetran/pkg/api"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// upstream is a fake endpoint recording the last request made against it
type upstream struct {
	*httptest.Server
	lastMethod string
	lastPath   string
	lastQuery  string
	lastAuth   string
	lastBody   []byte
}

// newUpstream serves the given JSON body for every route
func newUpstream(t *testing.T, status int, body string) *upstream {
	t.Helper()
	u := new(upstream)
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.lastMethod = r.Method
		u.lastPath = r.URL.Path
		u.lastQuery = r.URL.RawQuery
		u.lastAuth = r.Header.Get("Authorization")
		if r.Body != nil {
			u.lastBody, _ = json.Marshal(decodeBody(r))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(u.Server.Close)
	return u
}

func decodeBody(r *http.Request) any {
	var v any
	json.NewDecoder(r.Body).Decode(&v)
	return v
}

func newClient(t *testing.T, u *upstream) *api.Client {
	t.Helper()
	client, err := api.New("key", "secret", opts.OptEndpoint(u.URL))
	if err != nil {
		t.Fatal(err)
	}
	return client
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_client_001(t *testing.T) {
	assert := assert.New(t)

	client, err := api.New("", "")
	assert.Error(err)
	assert.Nil(client)
	assert.ErrorIs(err, fivetran.ErrConfiguration)
}

func Test_client_002(t *testing.T) {
	assert := assert.New(t)

	token, err := api.BasicToken("my-key", "my-secret")
	assert.NoError(err)
	assert.Equal("Basic", token.Scheme)
	assert.Equal(base64.StdEncoding.EncodeToString([]byte("my-key:my-secret")), token.Value)

	// Deterministic
	again, err := api.BasicToken("my-key", "my-secret")
	assert.NoError(err)
	assert.Equal(token, again)
}

func Test_client_003(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"items":[{"id":"conn_1","schema":"analytics","status":{"sync_state":"syncing"}}],"next_cursor":"abc"}}`)
	client := newClient(t, u)

	list, err := client.ListConnections(t.Context(), 50, "prev")
	assert.NoError(err)
	assert.Equal("GET", u.lastMethod)
	assert.Equal("/connections", u.lastPath)
	assert.Contains(u.lastQuery, "limit=50")
	assert.Contains(u.lastQuery, "cursor=prev")
	assert.Equal("Basic "+base64.StdEncoding.EncodeToString([]byte("key:secret")), u.lastAuth)
	assert.Len(list.Items, 1)
	assert.Equal("conn_1", list.Items[0].Id)
	assert.Equal("syncing", list.Items[0].Status.SyncState)
	assert.Equal("abc", list.NextCursor)
}

func Test_client_004(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"id":"conn_1","paused":false}}`)
	client := newClient(t, u)

	conn, err := client.GetConnection(t.Context(), "conn_1")
	assert.NoError(err)
	assert.Equal("/connections/conn_1", u.lastPath)
	assert.Equal("conn_1", conn.Id)
	assert.NotNil(conn.Paused)
	assert.False(*conn.Paused)

	// Missing id is rejected before any request
	_, err = client.GetConnection(t.Context(), "")
	assert.ErrorIs(err, fivetran.ErrBadParameter)
}

func Test_client_005(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","message":"Sync started"}`)
	client := newClient(t, u)

	message, err := client.TriggerSync(t.Context(), "conn_1", true)
	assert.NoError(err)
	assert.Equal("POST", u.lastMethod)
	assert.Equal("/connections/conn_1/sync", u.lastPath)
	assert.JSONEq(`{"force": true}`, string(u.lastBody))
	assert.Equal("Sync started", message)
}

func Test_client_006(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","message":"Resync started"}`)
	client := newClient(t, u)

	message, err := client.TriggerResync(t.Context(), "conn_1", nil)
	assert.NoError(err)
	assert.Equal("/connections/conn_1/resync", u.lastPath)
	assert.JSONEq(`{}`, string(u.lastBody))
	assert.Equal("Resync started", message)

	// A scope restricts the resync
	_, err = client.TriggerResync(t.Context(), "conn_1", map[string][]string{"public": {"users"}})
	assert.NoError(err)
	assert.JSONEq(`{"scope": {"public": ["users"]}}`, string(u.lastBody))
}

func Test_client_007(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"id":"conn_1","paused":true}}`)
	client := newClient(t, u)

	conn, err := client.PauseConnection(t.Context(), "conn_1")
	assert.NoError(err)
	assert.Equal("PATCH", u.lastMethod)
	assert.Equal("/connections/conn_1", u.lastPath)
	assert.JSONEq(`{"paused": true}`, string(u.lastBody))
	assert.True(*conn.Paused)

	_, err = client.ResumeConnection(t.Context(), "conn_1")
	assert.NoError(err)
	assert.JSONEq(`{"paused": false}`, string(u.lastBody))
}

func Test_client_008(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"setup_tests":[{"title":"Connecting to host","status":"PASSED"},{"title":"Validating credentials","status":"FAILED","message":"bad password"}]}}`)
	client := newClient(t, u)

	test, err := client.TestConnection(t.Context(), "conn_1")
	assert.NoError(err)
	assert.Equal("POST", u.lastMethod)
	assert.Equal("/connections/conn_1/test", u.lastPath)
	assert.Len(test.SetupTests, 2)
	assert.Equal("FAILED", test.SetupTests[1].Status)
}

func Test_client_009(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"schema_change_handling":"ALLOW_ALL","schemas":{"public":{"enabled":true,"tables":{"users":{"enabled":true,"sync_mode":"SOFT_DELETE"}}}}}}`)
	client := newClient(t, u)

	config, err := client.GetSchema(t.Context(), "conn_1")
	assert.NoError(err)
	assert.Equal("/connections/conn_1/schemas", u.lastPath)
	assert.Equal("ALLOW_ALL", config.SchemaChangeHandling)
	assert.Contains(config.Schemas, "public")
	assert.Contains(config.Schemas["public"].Tables, "users")
}

func Test_client_010(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","message":"Tables resync triggered"}`)
	client := newClient(t, u)

	message, err := client.ResyncTables(t.Context(), "conn_1", []string{"public.users", "audit.events"})
	assert.NoError(err)
	assert.Equal("/connections/conn_1/schemas/tables/resync", u.lastPath)
	assert.JSONEq(`{"schemas": {"public": {"tables": {"users": {}}}, "audit": {"tables": {"events": {}}}}}`, string(u.lastBody))
	assert.Equal("Tables resync triggered", message)

	// Bad table names never reach the upstream
	u.lastPath = ""
	_, err = client.ResyncTables(t.Context(), "conn_1", []string{"users"})
	assert.ErrorIs(err, fivetran.ErrBadParameter)
	assert.Empty(u.lastPath)

	_, err = client.ResyncTables(t.Context(), "conn_1", nil)
	assert.ErrorIs(err, fivetran.ErrBadParameter)
	assert.Empty(u.lastPath)
}

func Test_client_011(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"items":[{"id":"grp_1","name":"Production"}],"next_cursor":""}}`)
	client := newClient(t, u)

	groups, err := client.ListGroups(t.Context(), 0, "")
	assert.NoError(err)
	assert.Equal("/groups", u.lastPath)
	assert.Empty(u.lastQuery)
	assert.Len(groups.Items, 1)
	assert.Equal("Production", groups.Items[0].Name)
}

func Test_client_012(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"items":[],"next_cursor":""}}`)
	client := newClient(t, u)

	list, err := client.ListConnectionsInGroup(t.Context(), "grp_1", 10, "")
	assert.NoError(err)
	assert.Equal("/groups/grp_1/connections", u.lastPath)
	assert.Empty(list.Items)

	_, err = client.ListConnectionsInGroup(t.Context(), "", 10, "")
	assert.ErrorIs(err, fivetran.ErrBadParameter)
}

func Test_client_013(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","message":"Schema reload started"}`)
	client := newClient(t, u)

	message, err := client.ReloadSchema(t.Context(), "conn_1")
	assert.NoError(err)
	assert.Equal("POST", u.lastMethod)
	assert.Equal("/connections/conn_1/schemas/reload", u.lastPath)
	assert.Equal("Schema reload started", message)
}

func Test_client_014(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusOK, `{"code":"Success","data":{"columns":{"email":{"enabled":true,"hashed":true}}}}`)
	client := newClient(t, u)

	columns, err := client.GetTableColumns(t.Context(), "conn_1", "public", "users")
	assert.NoError(err)
	assert.Equal("/connections/conn_1/schemas/public/tables/users/columns", u.lastPath)
	assert.Contains(columns, "email")
	assert.True(*columns["email"].Hashed)

	_, err = client.GetTableColumns(t.Context(), "conn_1", "", "users")
	assert.ErrorIs(err, fivetran.ErrBadParameter)
}

// Upstream failures are reported as upstream errors, matchable by callers
func Test_client_015(t *testing.T) {
	assert := assert.New(t)
	u := newUpstream(t, http.StatusUnauthorized, `{"code":"AuthFailed","message":"Invalid credentials"}`)
	client := newClient(t, u)

	_, err := client.ListConnections(t.Context(), 0, "")
	assert.Error(err)
	assert.ErrorIs(err, fivetran.ErrUpstream)
}
