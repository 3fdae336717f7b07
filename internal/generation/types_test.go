package generation_test

import (
	"encoding/json"
	"testing"

	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWithDefaults(t *testing.T) {
	t.Parallel()

	quiz := generation.Request{Kind: generation.KindQuiz, Topic: "history"}.WithDefaults()
	assert.Equal(t, generation.DefaultNumQuestions, quiz.NumQuestions)
	assert.Equal(t, generation.MultipleChoice, quiz.QuestionType)

	explanation := generation.Request{Kind: generation.KindExplanation, Topic: "entropy"}.WithDefaults()
	assert.Equal(t, generation.DefaultGradeLevel, explanation.GradeLevel)

	// Explicit values are preserved
	custom := generation.Request{
		Kind:         generation.KindQuiz,
		NumQuestions: 2,
		QuestionType: generation.TrueFalse,
	}.WithDefaults()
	assert.Equal(t, 2, custom.NumQuestions)
	assert.Equal(t, generation.TrueFalse, custom.QuestionType)
}

func TestRequestValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, generation.Request{Kind: generation.KindRubric}.Validate())
	assert.ErrorIs(t, generation.Request{Kind: "poem"}.Validate(), generation.ErrUnsupportedKind)
	assert.Error(t, generation.Request{Kind: generation.KindQuiz, QuestionType: "essay"}.Validate())
	// Empty topic is not an error
	assert.NoError(t, generation.Request{Kind: generation.KindQuiz, QuestionType: generation.ShortAnswer}.Validate())
}

func TestKindOperation(t *testing.T) {
	t.Parallel()

	seen := map[string]bool{}
	for _, k := range []generation.Kind{
		generation.KindLessonPlan,
		generation.KindQuiz,
		generation.KindRubric,
		generation.KindExplanation,
		generation.KindSyllabus,
	} {
		op := k.Operation()
		assert.NotEmpty(t, op)
		assert.False(t, seen[op], "operation keys must be distinct: %s", op)
		seen[op] = true
	}
}

func TestAnswerJSON(t *testing.T) {
	t.Parallel()

	q := generation.ParsedQuestion{
		Order:         1,
		Type:          generation.TrueFalse,
		Text:          "The Earth orbits the Sun.",
		CorrectAnswer: generation.BoolAnswer(true),
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"correct_answer":true`)

	mc := generation.ParsedQuestion{Order: 2, Type: generation.MultipleChoice, CorrectAnswer: generation.LetterAnswer("B")}
	data, err = json.Marshal(mc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"correct_answer":"B"`)

	sa := generation.ParsedQuestion{Order: 3, Type: generation.ShortAnswer, Text: "Why?", SampleAnswer: "Because."}
	data, err = json.Marshal(sa)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "correct_answer")

	var decoded generation.ParsedQuestion
	require.NoError(t, json.Unmarshal([]byte(`{"order":1,"type":"true_false","text":"x","correct_answer":false}`), &decoded))
	require.NotNil(t, decoded.CorrectAnswer)
	assert.True(t, decoded.CorrectAnswer.IsBool())
	assert.Equal(t, "False", decoded.CorrectAnswer.String())

	var bad generation.Answer
	assert.Error(t, json.Unmarshal([]byte(`{}`), &bad))
}

func TestEnvelopeVariants(t *testing.T) {
	t.Parallel()

	ok := generation.Success(generation.KindQuiz, generation.Content{Text: "raw"}, 1)
	assert.False(t, ok.IsDemo())
	assert.False(t, ok.QuotaExceeded())
	assert.False(t, ok.RateLimited())
	assert.False(t, ok.IsFailed())
	assert.Equal(t, 1, ok.DroppedBlocks)

	quota := generation.Degraded(generation.KindQuiz, generation.Content{}, generation.ReasonQuotaExceeded, 45)
	assert.True(t, quota.IsDemo())
	assert.True(t, quota.QuotaExceeded())
	assert.False(t, quota.RateLimited())
	assert.Equal(t, 45, quota.RetryAfter)

	limited := generation.Degraded(generation.KindRubric, generation.Content{}, generation.ReasonRateLimited, 60)
	assert.True(t, limited.IsDemo())
	assert.True(t, limited.RateLimited())
	assert.False(t, limited.QuotaExceeded())

	failed := generation.Failed(generation.KindSyllabus, "boom")
	assert.True(t, failed.IsFailed())
	assert.False(t, failed.IsDemo())
	assert.Equal(t, "boom", failed.Message)
}
