// Package integration provides integration tests for the portfolio content service.
// They run the API server and the static build against fake content providers.
package integration
