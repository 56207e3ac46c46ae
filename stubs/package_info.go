// Package stubs replaces the network for an HTTP client under test with canned responses, and
// records what the client sent so that tests can verify it.
//
// The general model is:
//
// 1. A test creates a Registry and registers a Stub for each method and URL it expects the
// client to call, with the response to return.
//
// 2. The client is configured to route requests through the registry, either with the
// Transport/Client adapters or through the Router and ObserveRequest hooks directly.
//
// 3. Every dispatched request is recorded against the stub it matches. A request that
// matches no stub is reported as a failure and gets a transport error back.
//
// 4. The test then verifies each stub with methods such as AssertRequestedOnce, optionally
// inspecting the recorded requests with AssertHeaderEqual and AssertBodyEqual.
//
// A URL matches a stub only if the scheme, user info, host, port, path and fragment are
// identical. Query parameters are compared as an unordered multiset, so clients that build
// query strings in varying order still match.
//
// Failures are delivered to a FailureReporter rather than raised, so every assertion in a test
// reports independently.
package stubs
