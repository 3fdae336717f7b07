// Package mocks provides shared fakes for testing.
//
// Prefer these over inline fakes when several packages need the same
// behaviour. Each mock uses function fields for per-test behaviour and
// records its calls for verification:
//
//	backend := &mocks.MockBackend{Response: "QUESTION: ..."}
//	// exercise code under test
//	assert.Equal(t, 1, backend.CallCount())
package mocks
