// Package mock provides deterministic test doubles for the ai interfaces.
//
// The doubles work without any external service. Default behavior is
// deterministic (same input, same output) so tests stay reproducible; custom
// behavior is injected through function fields.
package mock
