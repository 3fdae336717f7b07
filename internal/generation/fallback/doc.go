// Package fallback produces deterministic demo content for every generation
// kind without calling the generative backend.
//
// Quiz content is drawn from pre-authored banks keyed by question type and a
// coarse topic category, and is rendered in the same block grammar the live
// backend is asked for, so callers see structurally identical output. The
// remaining kinds render fixed Markdown templates around the caller's text.
//
// All state in this package is read-only after initialization; identical
// inputs always produce byte-identical output.
package fallback
