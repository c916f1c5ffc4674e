package evaluator

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

const graderSystemPrompt = "You are an expert AI teaching assistant and grader. Your task is to evaluate a user's answers to a quiz based on provided lecture materials and a defined grading scheme. You must then provide an overall grade and a performance summary."

// GradingRubric is sent verbatim to the grader.
const GradingRubric = `**Grading Rules (Strictly Follow These):**

- **Each question is worth a maximum of 1.0 point**
- **Score each answer from 0.0 to 1.0 in 0.1 increments**

**Full Points (1.0):**
- **Multiple Choice:** userAnswer === correctAnswer (index)
- **True/False:** userAnswer === correctAnswer (boolean)
- **Short-Answer / Fill-in-the-Blank:** userAnswer matches correctAnswer or any acceptable variant in correctAnswer (if an array), meaningfully correct even with minor spelling errors

**Partial Credit (0.1–0.9):**
- Only allowed for Short-Answer and Fill-in-the-Blank
- Evaluate based on:
  - Partial understanding or inclusion of key ideas
  - Use of relevant terms
  - Grasp of the concept but with missing context or clarity
- Scoring Suggestions:
  - 0.7–0.9: Mostly correct, minor issues
  - 0.4–0.6: Some correct info, some key errors or omissions
  - 0.1–0.3: Slightly relevant or minimally correct

**Zero Points (0.0):**
- Completely incorrect, irrelevant, or too vague
- For MCQ or T/F: userAnswer does not match correctAnswer`

const gradingOutputFormat = "**Output Format (Strictly Use JSON):**\n" +
	"```json\n" +
	"{\n" +
	"  \"grade\": <decimal>,  // Total score (e.g. 7.2). This value must not exceed the total number of questions since each question is valued a maximum of 1 point.\n" +
	"  \"summary\": \"<string>\" // A short, constructive feedback paragraph\n" +
	"}\n" +
	"```"

const summaryGuidelines = `**Summary Guidelines:**
- Acknowledge the user's effort
- Highlight general strengths (e.g., "Clear understanding of concepts like X")
- Suggest areas for improvement (e.g., "Review the explanation of Y")
- Be encouraging and never list individual question scores`

// BuildGradingPrompt renders the grader instructions for the given items.
func BuildGradingPrompt(materialTexts []string, items []domain.GradingItem) (string, error) {
	itemsJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal grading items: %w", err)
	}

	var b strings.Builder
	b.WriteString(graderSystemPrompt)
	b.WriteString("\n\n")
	for i, text := range materialTexts {
		fmt.Fprintf(&b, "--- Lecture material %d ---\n%s\n--- End of lecture material %d ---\n\n", i+1, strings.TrimSpace(text), i+1)
	}
	b.WriteString("Evaluate the user's answers to the quiz below using the lecture materials as the source of truth. ")
	b.WriteString("Each question includes the correct answer and the user's submitted answer. ")
	b.WriteString("Score each question according to the rubric and provide the total grade (not a percentage).\n\n---\n\n")
	fmt.Fprintf(&b, "**Quiz Questions with User Answers:**\n%s\n\n---\n\n", itemsJSON)
	b.WriteString(GradingRubric)
	b.WriteString("\n\n---\n\n")
	b.WriteString(gradingOutputFormat)
	b.WriteString("\n\n")
	b.WriteString(summaryGuidelines)
	b.WriteString("\n")
	return b.String(), nil
}
