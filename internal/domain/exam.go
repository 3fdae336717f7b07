package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Exam defaults.
const (
	DefaultTimeLimitMinutes = 60
	DefaultQuestionPoints   = 1
	MaxExamTitleLength      = 200
)

// QuestionType is the answer format of an exam question.
type QuestionType string

// Possible question types
const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice"
	QuestionTypeTrueFalse      QuestionType = "true_false"
	QuestionTypeShortAnswer    QuestionType = "short_answer"
)

// Validation errors for Exam, Question and Choice
var (
	ErrEmptyExamID          = errors.New("exam ID cannot be empty")
	ErrEmptyExamCourseID    = errors.New("exam course ID cannot be empty")
	ErrEmptyExamCreator     = errors.New("exam creator ID cannot be empty")
	ErrEmptyExamTitle       = errors.New("exam title cannot be empty")
	ErrExamTitleTooLong     = errors.New("exam title exceeds 200 characters")
	ErrInvalidTimeLimit     = errors.New("exam time limit must be positive")
	ErrEmptyQuestionID      = errors.New("question ID cannot be empty")
	ErrEmptyQuestionText    = errors.New("question text cannot be empty")
	ErrInvalidQuestionType  = errors.New("invalid question type")
	ErrInvalidQuestionOrder = errors.New("question order must be positive")
	ErrInvalidPoints        = errors.New("question points must be positive")
	ErrNoChoices            = errors.New("multiple choice question needs at least one choice")
	ErrEmptyChoiceID        = errors.New("choice ID cannot be empty")
	ErrEmptyChoiceText      = errors.New("choice text cannot be empty")
)

// Exam is an assessment attached to a course. Exams created from generated
// quizzes keep the raw model output in GeneratedContent.
type Exam struct {
	ID               uuid.UUID   `json:"id"`
	CourseID         uuid.UUID   `json:"course_id"`
	CreatedBy        uuid.UUID   `json:"created_by"`
	Title            string      `json:"title"`
	Instructions     string      `json:"instructions"`
	GeneratedContent string      `json:"generated_content,omitempty"`
	TimeLimitMinutes int         `json:"time_limit_minutes"`
	IsPublished      bool        `json:"is_published"`
	Questions        []*Question `json:"questions"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

// Question is one item of an exam.
type Question struct {
	ID      uuid.UUID    `json:"id"`
	ExamID  uuid.UUID    `json:"exam_id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Points  int          `json:"points"`
	Order   int          `json:"order"`
	Choices []*Choice    `json:"choices,omitempty"`
}

// Choice is one option of a multiple choice or true/false question.
type Choice struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"question_id"`
	Text       string    `json:"text"`
	IsCorrect  bool      `json:"is_correct"`
	Order      int       `json:"order"`
}

// NewExam creates a published Exam with a fresh ID and the default time limit.
// Returns an error if validation fails.
func NewExam(courseID, createdBy uuid.UUID, title, instructions string) (*Exam, error) {
	now := time.Now().UTC()
	exam := &Exam{
		ID:               uuid.New(),
		CourseID:         courseID,
		CreatedBy:        createdBy,
		Title:            title,
		Instructions:     instructions,
		TimeLimitMinutes: DefaultTimeLimitMinutes,
		IsPublished:      true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := exam.Validate(); err != nil {
		return nil, err
	}

	return exam, nil
}

// AddQuestion appends a question to the exam, assigning the next order
// position and the default points.
func (e *Exam) AddQuestion(text string, qt QuestionType) (*Question, error) {
	q := &Question{
		ID:     uuid.New(),
		ExamID: e.ID,
		Text:   text,
		Type:   qt,
		Points: DefaultQuestionPoints,
		Order:  len(e.Questions) + 1,
	}
	if err := q.Validate(); err != nil && !errors.Is(err, ErrNoChoices) {
		return nil, err
	}
	e.Questions = append(e.Questions, q)
	return q, nil
}

// Validate checks if the Exam and all of its questions have valid data.
func (e *Exam) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExamID
	}

	if e.CourseID == uuid.Nil {
		return ErrEmptyExamCourseID
	}

	if e.CreatedBy == uuid.Nil {
		return ErrEmptyExamCreator
	}

	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyExamTitle
	}

	if utf8.RuneCountInString(e.Title) > MaxExamTitleLength {
		return ErrExamTitleTooLong
	}

	if e.TimeLimitMinutes <= 0 {
		return ErrInvalidTimeLimit
	}

	for _, q := range e.Questions {
		if err := q.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// AddChoice appends an option to the question in order.
func (q *Question) AddChoice(text string, correct bool) (*Choice, error) {
	c := &Choice{
		ID:         uuid.New(),
		QuestionID: q.ID,
		Text:       text,
		IsCorrect:  correct,
		Order:      len(q.Choices) + 1,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	q.Choices = append(q.Choices, c)
	return c, nil
}

// Validate checks if the Question has valid data.
func (q *Question) Validate() error {
	if q.ID == uuid.Nil {
		return ErrEmptyQuestionID
	}

	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuestionText
	}

	if !isValidQuestionType(q.Type) {
		return ErrInvalidQuestionType
	}

	if q.Order <= 0 {
		return ErrInvalidQuestionOrder
	}

	if q.Points <= 0 {
		return ErrInvalidPoints
	}

	for _, c := range q.Choices {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	if q.Type == QuestionTypeMultipleChoice && len(q.Choices) == 0 {
		return ErrNoChoices
	}

	return nil
}

// Validate checks if the Choice has valid data.
func (c *Choice) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyChoiceID
	}

	if strings.TrimSpace(c.Text) == "" {
		return ErrEmptyChoiceText
	}

	return nil
}

func isValidQuestionType(qt QuestionType) bool {
	switch qt {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer:
		return true
	default:
		return false
	}
}
