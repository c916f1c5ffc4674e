package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/logger"
	"quizcraft/internal/util"
	"quizcraft/internal/validation"

	"go.uber.org/zap"
)

// QuizService generates quizzes from lecture materials and grades the answers.
type QuizService interface {
	GenerateQuestions(ctx context.Context, userID string, req dto.GenerateQuestionsRequest) (*dto.GenerationResponse, error)
	SubmitAnswers(ctx context.Context, userID string, req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error)
	GradeAndSummarize(ctx context.Context, userID string, req dto.GradeRequest) (*dto.GradeResponse, error)
	GetGeneration(ctx context.Context, userID, courseID, generationID string) (*dto.GenerationResponse, error)
}

type quizService struct {
	courses     domain.CourseRepository
	generations domain.GenerationRepository
	extractor   domain.TextExtractor
	generator   domain.QuestionGenerator
	grader      domain.AnswerGrader
	validator   *validation.Validator
	now         func() time.Time
}

func NewQuizService(
	courses domain.CourseRepository,
	generations domain.GenerationRepository,
	extractor domain.TextExtractor,
	generator domain.QuestionGenerator,
	grader domain.AnswerGrader,
	validator *validation.Validator,
) QuizService {
	return &quizService{
		courses:     courses,
		generations: generations,
		extractor:   extractor,
		generator:   generator,
		grader:      grader,
		validator:   validator,
		now:         time.Now,
	}
}

// materialTexts downloads each processed material in order.
func (s *quizService) materialTexts(ctx context.Context, urls []string) ([]string, error) {
	texts := make([]string, 0, len(urls))
	for _, url := range urls {
		extracted, err := s.extractor.Extract(ctx, url)
		if err != nil {
			logger.Get().Warn("Failed to load material text", zap.String("url", url), zap.Error(err))
			return nil, err
		}
		texts = append(texts, extracted.Text)
	}
	return texts, nil
}

// GenerateQuestions persists nothing unless the model's batch validates.
func (s *quizService) GenerateQuestions(ctx context.Context, userID string, req dto.GenerateQuestionsRequest) (*dto.GenerationResponse, error) {
	l := logger.Get().With(zap.String("course_id", req.CourseID), zap.String("user_id", userID))

	if _, err := s.courses.GetCourse(ctx, userID, req.CourseID); err != nil {
		return nil, err
	}

	texts, err := s.materialTexts(ctx, req.Materials)
	if err != nil {
		return nil, err
	}

	targetTypes := make([]domain.QuestionType, 0, len(req.TargetQuestionTypes))
	for _, t := range req.TargetQuestionTypes {
		targetTypes = append(targetTypes, domain.QuestionType(t))
	}

	genReq := domain.GenerationRequest{
		MaterialTexts: texts,
		NumQuestions:  int(req.NumQuestions),
		Difficulty:    domain.Difficulty(req.DifficultyLevel),
		CustomPrompt:  strings.TrimSpace(req.Prompt),
		TargetTypes:   targetTypes,
	}
	batch, err := s.generator.GenerateQuestions(ctx, genReq)
	if err != nil {
		l.Warn("Question generation failed", zap.Error(err))
		return nil, err
	}

	now := s.now().UTC()
	generation := &domain.QuizGeneration{
		ID:                    util.NewULID(),
		UserID:                userID,
		CourseID:              req.CourseID,
		GenerationNickname:    batch.GenerationNickname,
		SourceMaterialIDs:     req.Materials,
		CustomPrompt:          genReq.CustomPrompt,
		NumQuestionsRequested: genReq.NumQuestions,
		DifficultyLevel:       genReq.Difficulty,
		Status:                domain.GenerationStatusPending,
		CreatedAt:             now,
		QuestionsCount:        len(batch.Questions),
	}

	records := batch.Records()
	for i := range records {
		records[i].ID = util.NewULID()
		records[i].GenerationID = generation.ID
		records[i].UserID = userID
	}

	if err := s.generations.SaveGeneration(ctx, generation); err != nil {
		return nil, domain.NewInternalError("Failed to save quiz generation", err)
	}
	if err := s.generations.SaveQuestions(ctx, generation.ID, records); err != nil {
		l.Error("Failed to save generated questions", zap.String("generation_id", generation.ID), zap.Error(err))
		return nil, domain.NewInternalError("Failed to save generated questions", err)
	}
	if err := s.courses.IncrementCounter(ctx, userID, req.CourseID, domain.CourseFieldQuizzes, 1, now); err != nil {
		return nil, domain.NewInternalError("Failed to update course quiz count", err)
	}

	l.Info("Quiz generated",
		zap.String("generation_id", generation.ID),
		zap.Int("questions", len(records)),
		zap.Int("warnings", len(batch.Warnings)))

	resp := dto.NewGenerationResponse(generation, records)
	return &resp, nil
}

// SubmitAnswers checks every answer against its question variant before
// storing any of them.
func (s *quizService) SubmitAnswers(ctx context.Context, userID string, req dto.SubmitAnswersRequest) (*dto.SubmitAnswersResponse, error) {
	if _, err := s.generations.GetGeneration(ctx, userID, req.CourseID, req.GenerationID); err != nil {
		return nil, err
	}
	questions, err := s.generations.ListQuestions(ctx, req.GenerationID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}
	byID := make(map[string]domain.QuestionRecord, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	answers := make([]domain.Answer, len(req.Answers))
	var violations domain.ValidationErrors
	for i, submission := range req.Answers {
		q, ok := byID[submission.QuestionID]
		if !ok {
			violations = append(violations, domain.NewValidationError(
				fmt.Sprintf("answers[%d].questionId", i),
				fmt.Sprintf("Question %s does not belong to generation %s", submission.QuestionID, req.GenerationID)))
			continue
		}
		answer, errs := s.validator.ValidateUserAnswer(fmt.Sprintf("answers[%d].userAnswer", i), q, submission.UserAnswer)
		if len(errs) > 0 {
			violations = append(violations, errs...)
			continue
		}
		answers[i] = answer
	}
	if len(violations) > 0 {
		return nil, violations
	}

	for i, submission := range req.Answers {
		if err := s.generations.SetUserAnswer(ctx, req.GenerationID, submission.QuestionID, answers[i]); err != nil {
			return nil, domain.NewInternalError("Failed to store answer", err)
		}
	}

	logger.Get().Info("Answers submitted",
		zap.String("generation_id", req.GenerationID),
		zap.Int("count", len(req.Answers)))
	return &dto.SubmitAnswersResponse{Updated: len(req.Answers)}, nil
}

// GradeAndSummarize grades the stored answers and records the normalized
// grade. A rejected or out-of-range grade leaves the generation untouched.
func (s *quizService) GradeAndSummarize(ctx context.Context, userID string, req dto.GradeRequest) (*dto.GradeResponse, error) {
	l := logger.Get().With(zap.String("generation_id", req.GenerationID), zap.String("user_id", userID))

	generation, err := s.generations.GetGeneration(ctx, userID, req.CourseID, req.GenerationID)
	if err != nil {
		return nil, err
	}
	questions, err := s.generations.ListQuestions(ctx, generation.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}
	if len(questions) == 0 {
		return nil, domain.NewInvalidInputError("Generation has no questions to grade")
	}

	items := make([]domain.GradingItem, 0, len(questions))
	for _, q := range questions {
		items = append(items, domain.NewGradingItem(q))
	}

	texts, err := s.materialTexts(ctx, generation.SourceMaterialIDs)
	if err != nil {
		return nil, err
	}

	result, err := s.grader.Grade(ctx, texts, items)
	if err != nil {
		l.Warn("Grading failed", zap.Error(err))
		return nil, err
	}

	normalized := result.Normalize(len(items))
	if err := s.generations.CompleteGeneration(ctx, generation.ID, normalized, result.Summary, s.now().UTC()); err != nil {
		return nil, domain.NewInternalError("Failed to store grade", err)
	}

	l.Info("Quiz graded",
		zap.Float64("raw_grade", result.Grade),
		zap.Float64("grade", normalized),
		zap.Int("items", len(items)))
	return &dto.GradeResponse{Grade: normalized, Summary: result.Summary}, nil
}

func (s *quizService) GetGeneration(ctx context.Context, userID, courseID, generationID string) (*dto.GenerationResponse, error) {
	generation, err := s.generations.GetGeneration(ctx, userID, courseID, generationID)
	if err != nil {
		return nil, err
	}
	questions, err := s.generations.ListQuestions(ctx, generation.ID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load questions", err)
	}
	resp := dto.NewGenerationResponse(generation, questions)
	return &resp, nil
}
