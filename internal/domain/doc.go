// Package domain contains the core business entities of the application:
// exams materialized from generated quizzes, their questions and choices.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
