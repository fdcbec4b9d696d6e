package httphandler

import (
	"errors"
	"net/http"

	// Package
	fivetran "github.com/mutablelogic/go-fivetran"
	runner "github.com/mutablelogic/go-fivetran/pkg/runner"
	server "github.com/mutablelogic/go-server"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	openapi "github.com/mutablelogic/go-server/pkg/openapi/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Router interface {
	RegisterFunc(path string, handler http.HandlerFunc, middleware bool, spec *openapi.PathItem) error
}

func RegisterHandlers(runner *runner.Runner, router server.HTTPRouter, middleware bool) error {
	var result error

	// Convenience function to register a handler and accumulate any errors
	register := func(path string, handler http.HandlerFunc, spec *openapi.PathItem) {
		result = errors.Join(result, router.(Router).RegisterFunc(path, handler, middleware, spec))
	}

	// Register handlers
	register(ToolListHandler(runner))
	register(ToolGetHandler(runner))
	register(ExecuteHandler(runner))

	// Return any errors
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a fivetran.Err to an httpresponse.Err, preserving the
// original error message. An unknown tool is 404, a rejected parameter is
// 400, an upstream failure is 502 and unknown error codes map to 500.
func httpErr(err error) error {
	var fivetranErr fivetran.Err
	if !errors.As(err, &fivetranErr) {
		return err
	}
	switch fivetranErr {
	case fivetran.ErrUnknownTool:
		return httpresponse.ErrNotFound.With(err)
	case fivetran.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case fivetran.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case fivetran.ErrUpstream:
		return httpresponse.Err(http.StatusBadGateway).With(err)
	case fivetran.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	case fivetran.ErrConfiguration, fivetran.ErrInternalServerError:
		return httpresponse.ErrInternalError.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
