// Package gemini implements generation.Backend on top of Google's Gemini API.
//
// This package is an infrastructure adapter: it sends one text prompt per call
// and returns the concatenated text of the first candidate. It performs no
// retries; quota responses are translated to generation.ErrQuotaExceeded with
// the server's suggested retry delay preserved in the error text so the
// caller's classifier can extract it.
package gemini
