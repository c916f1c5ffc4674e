package domain

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// QuestionType is the discriminator of the question union.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeTrueFalse      QuestionType = "true-false"
	QuestionTypeShortAnswer    QuestionType = "short-answer"
	QuestionTypeFillInTheBlank QuestionType = "fill-in-the-blank"
)

// BlankMarker is the placeholder fill-in-the-blank questions are expected to contain.
const BlankMarker = "____"

// AllQuestionTypes lists the variants in the order they are presented to the model.
var AllQuestionTypes = []QuestionType{
	QuestionTypeMultipleChoice,
	QuestionTypeTrueFalse,
	QuestionTypeShortAnswer,
	QuestionTypeFillInTheBlank,
}

// IsValid reports whether t names one of the four variants.
func (t QuestionType) IsValid() bool {
	switch t {
	case QuestionTypeMultipleChoice, QuestionTypeTrueFalse, QuestionTypeShortAnswer, QuestionTypeFillInTheBlank:
		return true
	}
	return false
}

// IsOpenEnded reports whether answers to this variant may receive partial credit.
func (t QuestionType) IsOpenEnded() bool {
	return t == QuestionTypeShortAnswer || t == QuestionTypeFillInTheBlank
}

// Question is a validated quiz question. The concrete type is one of
// MultipleChoiceQuestion, TrueFalseQuestion, ShortAnswerQuestion or
// FillInTheBlankQuestion; the set is closed.
type Question interface {
	Type() QuestionType
	Text() string
	Explanation() string
	// Record flattens the question into its persisted/wire shape.
	Record() QuestionRecord
	isQuestion()
}

type MultipleChoiceQuestion struct {
	QuestionText  string
	Options       []string
	CorrectIndex  int
	ExplanationMD string
}

type TrueFalseQuestion struct {
	QuestionText  string
	CorrectAnswer bool
	ExplanationMD string
}

// ShortAnswerQuestion holds a text answer or a list of accepted variants.
type ShortAnswerQuestion struct {
	QuestionText  string
	CorrectAnswer Answer
	ExplanationMD string
}

type FillInTheBlankQuestion struct {
	QuestionText  string
	CorrectAnswer Answer
	ExplanationMD string
}

func (MultipleChoiceQuestion) isQuestion() {}
func (TrueFalseQuestion) isQuestion()      {}
func (ShortAnswerQuestion) isQuestion()    {}
func (FillInTheBlankQuestion) isQuestion() {}

func (q MultipleChoiceQuestion) Type() QuestionType { return QuestionTypeMultipleChoice }
func (q TrueFalseQuestion) Type() QuestionType      { return QuestionTypeTrueFalse }
func (q ShortAnswerQuestion) Type() QuestionType    { return QuestionTypeShortAnswer }
func (q FillInTheBlankQuestion) Type() QuestionType { return QuestionTypeFillInTheBlank }

func (q MultipleChoiceQuestion) Text() string { return q.QuestionText }
func (q TrueFalseQuestion) Text() string      { return q.QuestionText }
func (q ShortAnswerQuestion) Text() string    { return q.QuestionText }
func (q FillInTheBlankQuestion) Text() string { return q.QuestionText }

func (q MultipleChoiceQuestion) Explanation() string { return q.ExplanationMD }
func (q TrueFalseQuestion) Explanation() string      { return q.ExplanationMD }
func (q ShortAnswerQuestion) Explanation() string    { return q.ExplanationMD }
func (q FillInTheBlankQuestion) Explanation() string { return q.ExplanationMD }

func (q MultipleChoiceQuestion) Record() QuestionRecord {
	return QuestionRecord{
		QuestionType:  q.Type(),
		QuestionText:  q.QuestionText,
		Options:       append([]string(nil), q.Options...),
		CorrectAnswer: IndexAnswer(q.CorrectIndex),
		Explanation:   q.ExplanationMD,
	}
}

func (q TrueFalseQuestion) Record() QuestionRecord {
	return QuestionRecord{
		QuestionType:  q.Type(),
		QuestionText:  q.QuestionText,
		Options:       []string{},
		CorrectAnswer: BoolAnswer(q.CorrectAnswer),
		Explanation:   q.ExplanationMD,
	}
}

func (q ShortAnswerQuestion) Record() QuestionRecord {
	return QuestionRecord{
		QuestionType:  q.Type(),
		QuestionText:  q.QuestionText,
		Options:       []string{},
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.ExplanationMD,
	}
}

func (q FillInTheBlankQuestion) Record() QuestionRecord {
	return QuestionRecord{
		QuestionType:  q.Type(),
		QuestionText:  q.QuestionText,
		Options:       []string{},
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.ExplanationMD,
	}
}

// QuestionBatch is the validated output of one generation request.
type QuestionBatch struct {
	Questions          []Question
	GenerationNickname string
	// Warnings holds advisory findings that did not reject the batch.
	Warnings ValidationErrors
}

// Records flattens every question of the batch.
func (b *QuestionBatch) Records() []QuestionRecord {
	records := make([]QuestionRecord, 0, len(b.Questions))
	for _, q := range b.Questions {
		records = append(records, q.Record())
	}
	return records
}

// QuestionRecord is the flat shape used on the wire and in the document store.
type QuestionRecord struct {
	ID            string       `json:"id,omitempty" bson:"_id,omitempty"`
	GenerationID  string       `json:"generationId,omitempty" bson:"generationId,omitempty"`
	UserID        string       `json:"-" bson:"userId,omitempty"`
	QuestionType  QuestionType `json:"questionType" bson:"questionType"`
	QuestionText  string       `json:"questionText" bson:"questionText"`
	Options       []string     `json:"options" bson:"options"`
	CorrectAnswer Answer       `json:"correctAnswer" bson:"correctAnswer"`
	Explanation   string       `json:"explanation" bson:"explanation"`
	UserAnswer    *Answer      `json:"userAnswer,omitempty" bson:"userAnswer,omitempty"`
}

type answerKind uint8

const (
	answerNone answerKind = iota
	answerIndex
	answerBool
	answerText
	answerTextList
)

// Answer is a variant-dependent answer value: an option index, a boolean, a
// single string or an ordered list of accepted strings. It serializes to the
// bare JSON/BSON value so stored documents keep a plain field shape.
type Answer struct {
	kind  answerKind
	index int
	flag  bool
	texts []string
}

func IndexAnswer(i int) Answer { return Answer{kind: answerIndex, index: i} }
func BoolAnswer(b bool) Answer { return Answer{kind: answerBool, flag: b} }

func TextAnswer(value string) Answer { return Answer{kind: answerText, texts: []string{value}} }

// TextListAnswer builds a list of accepted string variants.
func TextListAnswer(values ...string) Answer {
	return Answer{kind: answerTextList, texts: append([]string{}, values...)}
}

// IsList reports whether the answer is a list of strings.
func (a Answer) IsList() bool { return a.kind == answerTextList }

func (a Answer) IsZero() bool { return a.kind == answerNone }

// Index returns the option index of an MCQ answer.
func (a Answer) Index() (int, bool) { return a.index, a.kind == answerIndex }

// Bool returns the value of a true/false answer.
func (a Answer) Bool() (bool, bool) { return a.flag, a.kind == answerBool }

// Texts returns the string values of an open-ended answer.
func (a Answer) Texts() ([]string, bool) {
	if a.kind != answerText && a.kind != answerTextList {
		return nil, false
	}
	return append([]string(nil), a.texts...), true
}

// Value returns the plain Go value of the answer.
func (a Answer) Value() interface{} {
	switch a.kind {
	case answerIndex:
		return a.index
	case answerBool:
		return a.flag
	case answerText:
		return a.texts[0]
	case answerTextList:
		return append([]string{}, a.texts...)
	default:
		return nil
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("answer index must be an integer, got %v", v)
		}
		*a = IndexAnswer(int(v))
	case bool:
		*a = BoolAnswer(v)
	case string:
		*a = TextAnswer(v)
	case []interface{}:
		texts := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("answer list must contain strings, got %T", item)
			}
			texts = append(texts, s)
		}
		*a = TextListAnswer(texts...)
	case nil:
		*a = Answer{}
	default:
		return fmt.Errorf("unsupported answer type %T", raw)
	}
	return nil
}

func (a Answer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if a.kind == answerTextList {
		return bson.MarshalValue(a.texts)
	}
	return bson.MarshalValue(a.Value())
}

func (a *Answer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*a = IndexAnswer(int(rv.Int32()))
	case bsontype.Int64:
		*a = IndexAnswer(int(rv.Int64()))
	case bsontype.Double:
		*a = IndexAnswer(int(rv.Double()))
	case bsontype.Boolean:
		*a = BoolAnswer(rv.Boolean())
	case bsontype.String:
		*a = TextAnswer(rv.StringValue())
	case bsontype.Array:
		var texts []string
		if err := rv.Unmarshal(&texts); err != nil {
			return fmt.Errorf("decode answer list: %w", err)
		}
		*a = TextListAnswer(texts...)
	case bsontype.Null, bsontype.Undefined:
		*a = Answer{}
	default:
		return fmt.Errorf("unsupported answer bson type %s", t)
	}
	return nil
}
