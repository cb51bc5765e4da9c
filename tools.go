//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// goose applies the SQL migrations in migrations/.
// moq regenerates the service-layer mocks (installed separately,
// see the go:generate directives in the _test files).
