package fallback

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/phrazzld/lms-api/internal/generation"
	"github.com/phrazzld/lms-api/internal/generation/prompt"
)

//go:embed templates/*.md.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.md.tmpl"))

// Provider renders demo content. The zero value is not usable; use New.
type Provider struct {
	bank Bank
}

// New returns a Provider backed by the embedded question bank.
func New() *Provider {
	return &Provider{bank: DefaultBank()}
}

// NewWithBank returns a Provider backed by a custom bank.
func NewWithBank(bank Bank) *Provider {
	return &Provider{bank: bank}
}

// Content renders demo content for req. Optional fields are defaulted the
// same way the live path defaults them.
func (p *Provider) Content(req generation.Request) generation.Content {
	req = req.WithDefaults()
	switch req.Kind {
	case generation.KindQuiz:
		return p.Quiz(req.Topic, req.NumQuestions, req.QuestionType)
	case generation.KindLessonPlan:
		return textContent(LessonPlan(req.Topic, req.Duration, req.Difficulty))
	case generation.KindRubric:
		return textContent(Rubric(req.Topic, req.GradingCriteria))
	case generation.KindExplanation:
		return textContent(Explanation(req.Topic, req.GradeLevel))
	case generation.KindSyllabus:
		return textContent(Syllabus(req.Topic, req.Duration, req.TopicsList))
	}
	return generation.Content{}
}

// Quiz selects up to n bank questions for the topic's category. Text is the
// block grammar rendering of the selected questions.
func (p *Provider) Quiz(topic string, n int, qt generation.QuestionType) generation.Content {
	questions := p.bank.Select(qt, Classify(topic), n)
	return generation.Content{
		Text:      prompt.FormatQuestions(questions),
		Questions: questions,
	}
}

func textContent(text string) generation.Content {
	return generation.Content{Text: text}
}

// LessonPlan renders the demo lesson plan.
func LessonPlan(topic, duration, difficulty string) string {
	return render("lesson_plan.md.tmpl", map[string]any{
		"Topic":      topic,
		"Duration":   duration,
		"Difficulty": difficulty,
	})
}

// Rubric renders the demo grading rubric.
func Rubric(assignment, criteria string) string {
	return render("rubric.md.tmpl", map[string]any{
		"Topic":           assignment,
		"GradingCriteria": criteria,
	})
}

// Explanation renders the demo concept explanation.
func Explanation(concept, gradeLevel string) string {
	return render("explanation.md.tmpl", map[string]any{
		"Topic":      concept,
		"GradeLevel": gradeLevel,
	})
}

type syllabusWeek struct {
	Span  string
	Title string
	Items []string
}

// Syllabus renders the demo syllabus. The first four comma separated entries
// of topics headline weeks 1-8; missing or blank entries use generic titles.
func Syllabus(title, duration, topics string) string {
	entries := splitTopics(topics)
	pick := func(i int, def string) string {
		if i < len(entries) && entries[i] != "" {
			return entries[i]
		}
		return def
	}

	weeks := []syllabusWeek{
		{"1-2", "Introduction and Foundations", []string{
			"Course overview and expectations",
			pick(0, "Fundamental concepts"),
			"Historical background and context",
		}},
		{"3-4", "Core Concepts", []string{
			pick(1, "Key theories and principles"),
			"Practical applications and examples",
			"Case studies and analysis",
		}},
		{"5-6", "Advanced Topics", []string{
			pick(2, "Advanced concepts and techniques"),
			"Research methods and best practices",
			"Industry standards and regulations",
		}},
		{"7-8", "Practical Applications", []string{
			pick(3, "Hands-on projects and activities"),
			"Group work and collaboration",
			"Problem-solving exercises",
		}},
		{"9-10", "Integration and Assessment", []string{
			"Synthesis of course materials",
			"Final project presentations",
			"Course review and evaluation",
		}},
	}

	return render("syllabus.md.tmpl", map[string]any{
		"Topic":    title,
		"Duration": duration,
		"Weeks":    weeks,
	})
}

func splitTopics(topics string) []string {
	parts := strings.Split(topics, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func render(name string, data map[string]any) string {
	var b strings.Builder
	if err := templates.ExecuteTemplate(&b, name, data); err != nil {
		panic(fmt.Sprintf("fallback: render %s: %v", name, err))
	}
	return strings.TrimSpace(b.String())
}
