// Package generation defines the core vocabulary of the AI content generation
// pipeline: the kinds of content that can be requested (lesson plans, quizzes,
// rubrics, concept explanations and syllabi), the structured quiz records produced
// by parsing LLM output, and the Envelope returned to callers.
//
// The package also declares the Backend interface, which is the boundary between
// the application core and an external LLM service such as Gemini, and the error
// classifier used to tell quota exhaustion apart from other upstream failures.
//
// Subpackages implement the individual pipeline stages:
//
//   - prompt: renders a Request into a prompt string with a strict output grammar
//   - parse: turns raw quiz text back into ParsedQuestion records
//   - fallback: deterministic demo content used when the backend is throttled
package generation
