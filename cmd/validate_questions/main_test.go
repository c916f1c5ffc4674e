package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validReply = "<think>planning</think>\n```json\n" + `{
  "questions": [
    {
      "questionType": "multiple-choice",
      "questionText": "Which organelle produces ATP?",
      "options": ["Nucleus", "Mitochondria", "Ribosome"],
      "correctAnswer": 1,
      "explanation": "Mitochondria run cellular respiration."
    },
    {
      "questionType": "fill-in-the-blank",
      "questionText": "The nucleus stores DNA.",
      "options": [],
      "correctAnswer": "nucleus",
      "explanation": "It holds the genome."
    }
  ],
  "generationNickname": "Cell Basics"
}` + "\n```"

func TestValidateQuestionBatch(t *testing.T) {
	var out bytes.Buffer
	err := validate(&out, []byte(validReply), true, 0)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "warning: ")
	assert.Contains(t, out.String(), `"generationNickname": "Cell Basics"`)
}

func TestValidateQuestionBatchRejected(t *testing.T) {
	reply := `{"questions":[{"questionType":"multiple-choice","questionText":"Q","options":["a","b"],"correctAnswer":4,"explanation":"e"}],"generationNickname":"Nick"}`

	var out bytes.Buffer
	err := validate(&out, []byte(reply), true, 0)
	assert.True(t, errors.Is(err, errRejected))
	assert.True(t, strings.HasPrefix(out.String(), "rejected with 1 violation(s):"))
}

func TestValidateWithoutExtraction(t *testing.T) {
	var out bytes.Buffer
	err := validate(&out, []byte(validReply), false, 0)
	assert.True(t, errors.Is(err, errRejected))
	assert.Contains(t, out.String(), "not valid JSON")
}

func TestValidateGradingResult(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, validate(&out, []byte(`{"grade": 3.5, "summary": "Nice work."}`), true, 4))
	assert.Contains(t, out.String(), `"grade": 0.875`)

	out.Reset()
	err := validate(&out, []byte(`{"grade": 5, "summary": "Too generous."}`), true, 4)
	assert.True(t, errors.Is(err, errRejected))
	assert.Contains(t, out.String(), "grade")
}

func TestRootCommandReadsStdin(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(`{"grade": 1, "summary": "ok"}`))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--grading-items", "2"})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), `"grade": 0.5`)
}
