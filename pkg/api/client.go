/*
api implements a client for the Fivetran REST API, and exposes its
sync-orchestration operations as a set of named tools.
https://fivetran.com/docs/rest-api
*/
package api

import (
	"encoding/base64"

	// Packages
	client "github.com/mutablelogic/go-client"
	fivetran "github.com/mutablelogic/go-fivetran"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.fivetran.com/v1"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client from an API key and secret
func New(key, secret string, opts ...client.ClientOpt) (*Client, error) {
	token, err := BasicToken(key, secret)
	if err != nil {
		return nil, err
	}

	// Create client. Defaults go first so the caller can override the
	// endpoint, which the tests use to point at a local server.
	opts = append([]client.ClientOpt{client.OptEndpoint(endPoint), client.OptReqToken(token)}, opts...)
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{client}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// BasicToken returns the Basic authorization token for an API key and
// secret. Deterministic and pure; fails only when either value is empty,
// which is a configuration error rather than a runtime one.
func BasicToken(key, secret string) (client.Token, error) {
	if key == "" || secret == "" {
		return client.Token{}, fivetran.ErrConfiguration.With("missing API key or secret")
	}
	return client.Token{
		Scheme: "Basic",
		Value:  base64.StdEncoding.EncodeToString([]byte(key + ":" + secret)),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// upstreamErr wraps a transport or non-2xx failure so callers can match it
// with errors.Is(err, fivetran.ErrUpstream). The status and body surfaced
// by the transport travel in the error text.
func upstreamErr(err error) error {
	if err == nil {
		return nil
	}
	return fivetran.ErrUpstream.With(err)
}
