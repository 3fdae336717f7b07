// Package service contains the application use cases. GenerationService runs
// the content generation pipeline (rate limiting, prompt construction, the
// backend call, quota classification, parsing and fallback) and always
// answers with a generation.Envelope. ExamService materializes parsed quizzes
// as persisted exams.
//
// Services receive their dependencies through constructor injection and
// depend on interfaces, never on concrete infrastructure.
package service
