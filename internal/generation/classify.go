package generation

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// DefaultRetryAfterSeconds is used when a quota error carries no usable delay.
const DefaultRetryAfterSeconds = 60

// QuotaRule matches upstream errors that indicate quota or rate-limit exhaustion.
type QuotaRule struct {
	Name  string
	Match func(err error) bool
}

// DefaultQuotaRules is the rule list used by NewErrorClassifier. The upstream
// error taxonomy is not contractually guaranteed, so matching is best-effort:
// a typed sentinel first, then substring heuristics on the message.
var DefaultQuotaRules = []QuotaRule{
	{
		Name:  "sentinel",
		Match: func(err error) bool { return errors.Is(err, ErrQuotaExceeded) },
	},
	{
		Name:  "status_429",
		Match: func(err error) bool { return strings.Contains(err.Error(), "429") },
	},
	{
		Name:  "quota_keyword",
		Match: func(err error) bool { return strings.Contains(strings.ToLower(err.Error()), "quota") },
	},
}

// retryDelayPatterns extract a delay in seconds from upstream error text.
// The first pattern is the protobuf text form ("seconds: 45"); the second is the
// RetryInfo form, quoted or not ("retryDelay": "45s", retryDelay:45s).
var retryDelayPatterns = []*regexp.Regexp{
	regexp.MustCompile(`seconds: (\d+)`),
	regexp.MustCompile(`retryDelay"?\s*:\s*"?(\d+)s`),
}

// ErrorClassifier decides whether an upstream error means "quota exhausted,
// serve demo content" or "unexpected failure, surface to the caller".
type ErrorClassifier struct {
	rules []QuotaRule
}

// NewErrorClassifier returns a classifier using DefaultQuotaRules followed by
// any extra rules.
func NewErrorClassifier(extra ...QuotaRule) *ErrorClassifier {
	rules := make([]QuotaRule, 0, len(DefaultQuotaRules)+len(extra))
	rules = append(rules, DefaultQuotaRules...)
	rules = append(rules, extra...)
	return &ErrorClassifier{rules: rules}
}

// QuotaRule returns the name of the first rule matching err, and whether any matched.
func (c *ErrorClassifier) QuotaRule(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	for _, rule := range c.rules {
		if rule.Match(err) {
			return rule.Name, true
		}
	}
	return "", false
}

// IsQuota reports whether err should be treated as quota exhaustion.
func (c *ErrorClassifier) IsQuota(err error) bool {
	_, ok := c.QuotaRule(err)
	return ok
}

// RetryAfterSeconds extracts the suggested retry delay from an error message,
// returning DefaultRetryAfterSeconds when none is present or parsable. An
// explicit zero is kept.
func RetryAfterSeconds(message string) int {
	for _, re := range retryDelayPatterns {
		m := re.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 0 {
			return DefaultRetryAfterSeconds
		}
		return n
	}
	return DefaultRetryAfterSeconds
}
