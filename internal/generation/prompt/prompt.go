// Package prompt renders the instruction text sent to the generative backend
// for each content kind. Prompts for quizzes describe the line grammar that
// package parse expects back.
package prompt

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/lms-api/internal/generation"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Build renders the prompt for req. Optional fields are defaulted first, so a
// zero NumQuestions or QuestionType on a quiz request is never rendered.
// Kinds without a template produce an empty string.
func Build(req generation.Request) string {
	req = req.WithDefaults()
	switch req.Kind {
	case generation.KindLessonPlan:
		return LessonPlan(req.Topic, req.Duration, req.Difficulty)
	case generation.KindQuiz:
		return Quiz(req.Topic, req.NumQuestions, req.QuestionType)
	case generation.KindRubric:
		return Rubric(req.Topic, req.GradingCriteria)
	case generation.KindExplanation:
		return Explanation(req.Topic, req.GradeLevel)
	case generation.KindSyllabus:
		return Syllabus(req.Topic, req.Duration, req.TopicsList)
	}
	return ""
}

// LessonPlan asks for a structured lesson plan.
func LessonPlan(topic, duration, difficulty string) string {
	return render("lesson_plan.tmpl", map[string]any{
		"Topic":      topic,
		"Duration":   duration,
		"Difficulty": difficulty,
	})
}

// Quiz asks for numQuestions questions of the given type in the block grammar.
// An unknown question type falls back to the multiple choice instructions.
func Quiz(topic string, numQuestions int, qt generation.QuestionType) string {
	if !qt.Valid() {
		qt = generation.MultipleChoice
	}
	return render("quiz_"+string(qt)+".tmpl", map[string]any{
		"Topic":        topic,
		"NumQuestions": numQuestions,
	})
}

// Rubric asks for a four-level grading rubric.
func Rubric(assignment, criteria string) string {
	return render("rubric.tmpl", map[string]any{
		"Topic":           assignment,
		"GradingCriteria": criteria,
	})
}

// Explanation asks for a concept explanation pitched at gradeLevel.
func Explanation(concept, gradeLevel string) string {
	return render("explanation.tmpl", map[string]any{
		"Topic":      concept,
		"GradeLevel": gradeLevel,
	})
}

// Syllabus asks for a full course syllabus.
func Syllabus(title, duration, topics string) string {
	return render("syllabus.tmpl", map[string]any{
		"Topic":      title,
		"Duration":   duration,
		"TopicsList": topics,
	})
}

// render executes an embedded template. Templates are parsed at init and only
// reference map keys, so execution cannot fail for valid names.
func render(name string, data map[string]any) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		panic(fmt.Sprintf("prompt: render %s: %v", name, err))
	}
	return strings.TrimSpace(b.String())
}
