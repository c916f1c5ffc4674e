package domain

import (
	"context"
	"time"
)

// TextGenerator is the language model as seen by the rest of the system.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// MediaTranscriber turns binary documents and images into text using a multimodal model.
type MediaTranscriber interface {
	Transcribe(ctx context.Context, mimeType string, data []byte, prompt string) (string, error)
}

// QuestionGenerator produces a validated batch from lecture material.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) (*QuestionBatch, error)
}

// AnswerGrader scores a set of answered questions against the rubric.
type AnswerGrader interface {
	Grade(ctx context.Context, materialTexts []string, items []GradingItem) (*GradingResult, error)
}

// MaterialSummarizer writes a short description of a lecture material.
type MaterialSummarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// TextExtractor downloads a file and returns its textual content.
type TextExtractor interface {
	Extract(ctx context.Context, sourceURL string) (*ExtractedText, error)
}

// BlobStore is the object storage holding raw uploads and processed text.
type BlobStore interface {
	Put(ctx context.Context, path string, data []byte, contentType string) error
	Delete(ctx context.Context, path string) error
	DeletePrefix(ctx context.Context, prefix string) error
	PublicURL(path string) string
}

// Identity is the verified caller of an authenticated request.
type Identity struct {
	UID   string
	Email string
}

// IdentityVerifier validates bearer tokens issued by the identity provider.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type CourseRepository interface {
	CreateCourse(ctx context.Context, course *Course) error
	GetCourse(ctx context.Context, userID, courseID string) (*Course, error)
	IncrementCounter(ctx context.Context, userID, courseID, field string, delta int, now time.Time) error
	DeleteCourse(ctx context.Context, userID, courseID string) error
}

type MaterialRepository interface {
	SaveMaterial(ctx context.Context, material *LectureMaterial) error
	ListMaterialIDs(ctx context.Context, userID, courseID string) ([]string, error)
	DeleteMaterials(ctx context.Context, userID, courseID string) error
}

type GenerationRepository interface {
	SaveGeneration(ctx context.Context, generation *QuizGeneration) error
	// SaveQuestions writes one document per question concurrently.
	SaveQuestions(ctx context.Context, generationID string, questions []QuestionRecord) error
	GetGeneration(ctx context.Context, userID, courseID, generationID string) (*QuizGeneration, error)
	ListQuestions(ctx context.Context, generationID string) ([]QuestionRecord, error)
	SetUserAnswer(ctx context.Context, generationID, questionID string, answer Answer) error
	CompleteGeneration(ctx context.Context, generationID string, grade float64, summary string, completedAt time.Time) error
	ListGenerationIDs(ctx context.Context, userID, courseID string) ([]string, error)
	DeleteQuestions(ctx context.Context, generationID string) error
	DeleteGenerations(ctx context.Context, userID, courseID string) error
}

// Course counter fields.
const (
	CourseFieldMaterials = "numberOfMaterials"
	CourseFieldQuizzes   = "numberOfQuizzes"
)
