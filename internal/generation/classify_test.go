package generation_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/stretchr/testify/assert"
)

func TestErrorClassifier_IsQuota(t *testing.T) {
	t.Parallel()

	classifier := generation.NewErrorClassifier()

	testCases := []struct {
		name     string
		err      error
		expected bool
		rule     string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "http 429 in message",
			err:      errors.New("googleapi: Error 429: Resource has been exhausted"),
			expected: true,
			rule:     "status_429",
		},
		{
			name:     "quota keyword is case insensitive",
			err:      errors.New("QUOTA limit reached for project"),
			expected: true,
			rule:     "quota_keyword",
		},
		{
			name:     "wrapped sentinel",
			err:      fmt.Errorf("gemini: %w", generation.ErrQuotaExceeded),
			expected: true,
			rule:     "sentinel",
		},
		{
			name:     "timeout is not quota",
			err:      context.DeadlineExceeded,
			expected: false,
		},
		{
			name:     "generic failure",
			err:      errors.New("connection reset by peer"),
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifier.IsQuota(tc.err))
			rule, ok := classifier.QuotaRule(tc.err)
			assert.Equal(t, tc.expected, ok)
			assert.Equal(t, tc.rule, rule)
		})
	}
}

func TestErrorClassifier_ExtraRules(t *testing.T) {
	t.Parallel()

	errOverloaded := errors.New("model overloaded")
	classifier := generation.NewErrorClassifier(generation.QuotaRule{
		Name:  "overloaded",
		Match: func(err error) bool { return errors.Is(err, errOverloaded) },
	})

	rule, ok := classifier.QuotaRule(errOverloaded)
	assert.True(t, ok)
	assert.Equal(t, "overloaded", rule)

	// Default rules still apply first
	rule, ok = classifier.QuotaRule(errors.New("429 too many requests"))
	assert.True(t, ok)
	assert.Equal(t, "status_429", rule)
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		message  string
		expected int
	}{
		{"429 quota exceeded, retry in seconds: 45", 45},
		{`{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "17s"}`, 17},
		{"Details: [map[@type:type.googleapis.com/google.rpc.RetryInfo retryDelay:33s]]", 33},
		{"quota exceeded", generation.DefaultRetryAfterSeconds},
		{"seconds: 0", 0},
		{`"retryDelay": "0s"`, 0},
		{"seconds: 99999999999999999999999", generation.DefaultRetryAfterSeconds},
		{"", generation.DefaultRetryAfterSeconds},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.expected, generation.RetryAfterSeconds(tc.message))
		})
	}
}
