// Package identitysdk provides the request and response types of the
// identity service HTTP API, plus a small Go client for calling it.
//
// The types here are the wire contract: handlers encode them, the client
// decodes them, and external consumers can import this package without
// pulling in any server internals.
package identitysdk
