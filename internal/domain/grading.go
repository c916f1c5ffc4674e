package domain

// Rubric constants shared by the grader prompt and the result validator.
const (
	MaxPointsPerItem   = 1.0
	PointIncrement     = 0.1
	GradeBoundEpsilon  = 1e-9
	PartialCreditFloor = 0.1
	PartialCreditCeil  = 0.9
)

// GradingItem pairs a stored question with whatever the user answered.
// The user answer is passed to the grader without interpretation.
type GradingItem struct {
	Question   QuestionRecord `json:"question"`
	UserAnswer interface{}    `json:"userAnswer"`
}

// NewGradingItem strips persistence-only fields from the record.
func NewGradingItem(q QuestionRecord) GradingItem {
	var userAnswer interface{}
	if q.UserAnswer != nil {
		userAnswer = q.UserAnswer.Value()
	}
	return GradingItem{
		Question: QuestionRecord{
			QuestionType:  q.QuestionType,
			QuestionText:  q.QuestionText,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		},
		UserAnswer: userAnswer,
	}
}

// GradingResult is the aggregate score the grader returns. Grade is the sum
// of per-item points, not a percentage.
type GradingResult struct {
	Grade   float64 `json:"grade"`
	Summary string  `json:"summary"`
}

// Normalize converts the aggregate grade into the 0..1 score reported to users.
func (r GradingResult) Normalize(itemCount int) float64 {
	if itemCount <= 0 {
		return 0
	}
	return r.Grade / float64(itemCount)
}
