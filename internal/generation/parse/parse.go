// Package parse recovers structured quiz questions from free-form model output.
//
// Parsing is lossy but never fails: blocks that do not satisfy the minimum
// structure for their question type are dropped and counted, and the caller
// receives whatever could be recovered.
package parse

import (
	"strings"

	"github.com/phrazzld/lms-api/internal/generation"
)

// Result is the outcome of parsing one raw response.
type Result struct {
	Questions []generation.ParsedQuestion
	// Blocks is the number of non-blank blocks that were examined.
	Blocks int
	// Dropped is the number of non-blank blocks that failed validation.
	Dropped int
}

// Questions splits raw on the block delimiter and parses each non-blank block
// as a question of type qt. Order is the 1-based position of the block in
// the split sequence and is not renumbered after invalid blocks are dropped.
// An unknown qt is parsed as short answer.
func Questions(raw string, qt generation.QuestionType) Result {
	res := Result{Questions: []generation.ParsedQuestion{}}

	segments := strings.Split(StripCodeFences(raw), generation.BlockDelimiter)
	for i, segment := range segments {
		lines := blockLines(segment)
		if len(lines) == 0 {
			continue
		}
		res.Blocks++

		q, ok := parseBlock(lines, i+1, qt)
		if !ok {
			res.Dropped++
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

// Content returns the envelope payload for raw output of the given kind. Only
// quizzes are structurally parsed; every other kind passes through as text.
// The returned count is the number of dropped quiz blocks.
func Content(raw string, kind generation.Kind, qt generation.QuestionType) (generation.Content, int) {
	content := generation.Content{Text: raw}
	if kind != generation.KindQuiz {
		return content, 0
	}
	res := Questions(raw, qt)
	content.Questions = res.Questions
	return content, res.Dropped
}

// StripCodeFences removes a surrounding Markdown code fence, including an
// optional language tag on the opening fence.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(strings.TrimSpace(s[:nl]), " \t") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func blockLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func parseBlock(lines []string, order int, qt generation.QuestionType) (generation.ParsedQuestion, bool) {
	switch qt {
	case generation.MultipleChoice:
		return parseMultipleChoice(lines, order)
	case generation.TrueFalse:
		return parseTrueFalse(lines, order)
	default:
		return parseShortAnswer(lines, order)
	}
}
