package dto

import (
	"encoding/json"
	"time"

	"quizcraft/internal/domain"
)

// UploadMaterialRequest registers a file the client already uploaded to the blob store.
// @Description Request body for processing an uploaded lecture material
type UploadMaterialRequest struct {
	Path     string `json:"path"`
	Name     string `json:"name"`
	CourseID string `json:"courseId"`
	TempURL  string `json:"tempUrl"`
}

// GenerateQuestionsRequest asks the model for a new quiz.
// @Description Request body for generating quiz questions
type GenerateQuestionsRequest struct {
	Materials           []string `json:"materials"`
	NumQuestions        float64  `json:"numQuestions"`
	DifficultyLevel     string   `json:"difficultyLevel"`
	Prompt              string   `json:"prompt,omitempty"`
	TargetQuestionTypes []string `json:"targetQuestionTypes,omitempty"`
	CourseID            string   `json:"courseid"`
}

// GradeRequest identifies the generation to grade.
type GradeRequest struct {
	GenerationID string `json:"generationId"`
	CourseID     string `json:"courseId"`
}

// GradeResponse carries the normalized score (0..1) and feedback.
type GradeResponse struct {
	Grade   float64 `json:"grade"`
	Summary string  `json:"summary"`
}

// AnswerSubmission is one user answer; its JSON type depends on the question variant.
type AnswerSubmission struct {
	QuestionID string          `json:"questionId"`
	UserAnswer json.RawMessage `json:"userAnswer" swaggertype:"object"`
}

// SubmitAnswersRequest stores user answers ahead of grading.
type SubmitAnswersRequest struct {
	GenerationID string             `json:"generationId"`
	CourseID     string             `json:"courseId"`
	Answers      []AnswerSubmission `json:"answers"`
}

type SubmitAnswersResponse struct {
	Updated int `json:"updated"`
}

// GenerationResponse is a quiz generation as returned to clients.
type GenerationResponse struct {
	ID                    string         `json:"id"`
	CourseID              string         `json:"courseId"`
	GenerationNickname    string         `json:"generationNickname"`
	SourceMaterialIDs     []string       `json:"sourceMaterialIds"`
	CustomPrompt          string         `json:"customPrompt,omitempty"`
	NumQuestionsRequested int            `json:"numQuestionsRequested"`
	DifficultyLevel       string         `json:"difficultyLevel"`
	Status                string         `json:"status"`
	CreatedAt             time.Time      `json:"createdAt"`
	CompletedAt           *time.Time     `json:"completedAt,omitempty"`
	QuestionsCount        int            `json:"questionsCount"`
	Grade                 *float64       `json:"grade,omitempty"`
	Summary               string         `json:"summary,omitempty"`
	Questions             []QuestionView `json:"questions,omitempty"`
}

// QuestionView is a stored question as shown to the quiz taker. The answer
// key and explanation are only present once the generation is graded.
type QuestionView struct {
	ID            string              `json:"id"`
	QuestionType  domain.QuestionType `json:"questionType"`
	QuestionText  string              `json:"questionText"`
	Options       []string            `json:"options"`
	CorrectAnswer *domain.Answer      `json:"correctAnswer,omitempty" swaggertype:"object"`
	Explanation   string              `json:"explanation,omitempty"`
	UserAnswer    *domain.Answer      `json:"userAnswer,omitempty" swaggertype:"object"`
}

func newQuestionViews(questions []domain.QuestionRecord, revealAnswers bool) []QuestionView {
	if questions == nil {
		return nil
	}
	views := make([]QuestionView, 0, len(questions))
	for _, q := range questions {
		view := QuestionView{
			ID:           q.ID,
			QuestionType: q.QuestionType,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			UserAnswer:   q.UserAnswer,
		}
		if revealAnswers {
			answer := q.CorrectAnswer
			view.CorrectAnswer = &answer
			view.Explanation = q.Explanation
		}
		views = append(views, view)
	}
	return views
}

// NewGenerationResponse maps a stored generation and optionally its questions.
// Answer keys stay hidden until the generation is completed.
func NewGenerationResponse(g *domain.QuizGeneration, questions []domain.QuestionRecord) GenerationResponse {
	return GenerationResponse{
		ID:                    g.ID,
		CourseID:              g.CourseID,
		GenerationNickname:    g.GenerationNickname,
		SourceMaterialIDs:     g.SourceMaterialIDs,
		CustomPrompt:          g.CustomPrompt,
		NumQuestionsRequested: g.NumQuestionsRequested,
		DifficultyLevel:       string(g.DifficultyLevel),
		Status:                string(g.Status),
		CreatedAt:             g.CreatedAt,
		CompletedAt:           g.CompletedAt,
		QuestionsCount:        g.QuestionsCount,
		Grade:                 g.Grade,
		Summary:               g.Summary,
		Questions:             newQuestionViews(questions, g.Status == domain.GenerationStatusCompleted),
	}
}

// MessageResponse is returned by endpoints with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}
