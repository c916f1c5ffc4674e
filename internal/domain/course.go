package domain

import "time"

type MaterialStatus string

const (
	MaterialStatusUploaded        MaterialStatus = "uploaded"
	MaterialStatusProcessing      MaterialStatus = "processing"
	MaterialStatusProcessed       MaterialStatus = "processed"
	MaterialStatusErrorProcessing MaterialStatus = "error_processing"
)

type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusProcessing GenerationStatus = "processing"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) IsValid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Course groups a user's lecture materials and quiz generations.
type Course struct {
	ID                string    `json:"id" bson:"_id"`
	UserID            string    `json:"-" bson:"userId"`
	CourseName        string    `json:"courseName" bson:"courseName"`
	CourseCode        string    `json:"courseCode,omitempty" bson:"courseCode,omitempty"`
	NumberOfMaterials int       `json:"numberOfMaterials" bson:"numberOfMaterials"`
	NumberOfQuizzes   int       `json:"numberOfQuizzes" bson:"numberOfQuizzes"`
	Performance       float64   `json:"performance" bson:"performance"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt" bson:"updatedAt"`
}

func NewCourse(id, userID, name, code string, now time.Time) *Course {
	return &Course{
		ID:         id,
		UserID:     userID,
		CourseName: name,
		CourseCode: code,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

type LectureMaterial struct {
	ID                      string         `json:"id" bson:"_id"`
	UserID                  string         `json:"-" bson:"userId"`
	CourseID                string         `json:"courseId" bson:"courseId"`
	FileName                string         `json:"fileName" bson:"fileName"`
	StoragePath             string         `json:"storagePath" bson:"storagePath"`
	FileType                string         `json:"fileType" bson:"fileType"`
	FileSize                int            `json:"fileSize" bson:"fileSize"`
	Status                  MaterialStatus `json:"status" bson:"status"`
	ProcessedTextContentURL string         `json:"processedTextContentUrl" bson:"processedTextContentUrl"`
	Summary                 string         `json:"summary" bson:"summary"`
	UploadedAt              time.Time      `json:"uploadedAt" bson:"uploadedAt"`
}

// QuizGeneration is one generated quiz. Grade and Summary are set only when
// grading completes.
type QuizGeneration struct {
	ID                    string           `json:"id" bson:"_id"`
	UserID                string           `json:"-" bson:"userId"`
	CourseID              string           `json:"courseId" bson:"courseId"`
	GenerationNickname    string           `json:"generationNickname" bson:"generationNickname"`
	SourceMaterialIDs     []string         `json:"sourceMaterialIds" bson:"sourceMaterialIds"`
	CustomPrompt          string           `json:"customPrompt,omitempty" bson:"customPrompt,omitempty"`
	NumQuestionsRequested int              `json:"numQuestionsRequested" bson:"numQuestionsRequested"`
	DifficultyLevel       Difficulty       `json:"difficultyLevel" bson:"difficultyLevel"`
	Status                GenerationStatus `json:"status" bson:"status"`
	CreatedAt             time.Time        `json:"createdAt" bson:"createdAt"`
	CompletedAt           *time.Time       `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	ErrorMessage          string           `json:"errorMessage,omitempty" bson:"errorMessage,omitempty"`
	QuestionsCount        int              `json:"questionsCount" bson:"questionsCount"`
	Grade                 *float64         `json:"grade,omitempty" bson:"grade,omitempty"`
	Summary               string           `json:"summary,omitempty" bson:"summary,omitempty"`
}

// GenerationRequest carries everything the question generator needs.
type GenerationRequest struct {
	MaterialTexts []string
	NumQuestions  int
	Difficulty    Difficulty
	CustomPrompt  string
	TargetTypes   []QuestionType
}

// ExtractedText is the plain text recovered from an uploaded file.
type ExtractedText struct {
	Text     string
	FileType string
	Size     int
}
