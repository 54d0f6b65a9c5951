// Package api exposes the study service over HTTP with chi.
//
// Handlers decode and validate requests, call the service and map its
// errors to status codes through MapErrorToStatusCode and
// GetSafeErrorMessage; clients only ever see the safe message plus the
// request's trace ID.
package api
