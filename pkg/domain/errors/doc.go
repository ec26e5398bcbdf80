// Package errors provides the typed error taxonomy raised by the mediation
// core.
//
// UnknownKeyError, PolicyViolationError, SchemaViolationError,
// MalformedRequestError, and RegistryFaultError give callers a consistent,
// type-switchable way to distinguish mediation failures from ordinary tool
// errors. All error types implement the standard error interface and
// support error unwrapping where they wrap a cause.
package errors
