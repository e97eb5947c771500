// Package http serves the incremental sync feeds of the reference server.
//
// Every request passes through panic recovery, trace id assignment, access
// logging and gzip negotiation before reaching a handler. Requests for a
// known path with an unregistered method are answered with 404.
package http
