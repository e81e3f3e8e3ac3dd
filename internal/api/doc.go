// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts HTTP to the extraction service and maps
// service errors to status codes and client-safe messages.
package api
