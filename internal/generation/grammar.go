package generation

// Line grammar shared by the quiz prompt and the response parser. Prefixes are
// case-sensitive and must start a line.
const (
	BlockDelimiter     = "---"
	PrefixQuestion     = "QUESTION:"
	PrefixCorrect      = "CORRECT:"
	PrefixExplanation  = "EXPLANATION:"
	PrefixSampleAnswer = "SAMPLE_ANSWER:"
	ChoiceLetters      = "ABCD"
	choiceLetterSuffix = ")"
	MaxChoicesPerBlock = len(ChoiceLetters)
)

// ChoicePrefix returns the line prefix for a choice letter, e.g. "A)".
func ChoicePrefix(letter byte) string {
	return string(letter) + choiceLetterSuffix
}
