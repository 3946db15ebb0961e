// Package apierr defines the structured error and response primitives shared
// by every service. Services return *Error for single failures and List for
// exhaustive validation failures; handlers call Parse and NewResponse to
// normalize whatever came back into the {errors, statusCode} payload.
//
// This package is pure data transformation. It never logs and has no
// transport or storage dependencies.
package apierr
