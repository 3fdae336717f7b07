// Package api handles incoming HTTP requests, request validation and response
// formatting for the generation endpoints and exam materialization. It
// translates HTTP concerns to service calls and renders generation envelopes
// in their wire form.
package api
