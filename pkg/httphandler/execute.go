package httphandler

import (
	"encoding/json"
	"net/http"

	// Packages
	runner "github.com/mutablelogic/go-fivetran/pkg/runner"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ExecuteRequest struct {
	Tool      string          `json:"tool"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type ExecuteResponse struct {
	Result any `json:"result"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /execute
func ExecuteHandler(runner *runner.Runner) (string, http.HandlerFunc, *openapi.PathItem) {
	return "/execute", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost:
				var req ExecuteRequest
				if err := httprequest.Read(r, &req); err != nil {
					_ = httpresponse.Error(w, err)
					return
				}
				if req.Tool == "" {
					_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With("missing tool name"))
					return
				}

				// Perform operation and return response
				var args any
				if len(req.Arguments) > 0 {
					args = req.Arguments
				}
				result, err := runner.Execute(r.Context(), req.Tool, args)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), ExecuteResponse{Result: result})
			default:
				_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
			}
		}, types.Ptr(openapi.PathItem{
			Post: &openapi.Operation{
				Description: "Execute a tool by name with arguments",
			},
		})
}
