// Package stubtests is a suite of end-to-end scenarios for the stubs package, built on the
// framework package so that it can run outside of the Go test runner.
//
// Each scenario gets its own T, which owns a fresh stubs.Registry. Verification failures from
// that registry are captured rather than failing the scenario directly: scenarios that expect
// failures claim them with ExpectFailures, and anything left unclaimed when the scenario ends
// fails it.
package stubtests
