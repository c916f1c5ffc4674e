package quizgen

import (
	"fmt"
	"strings"

	"quizcraft/internal/domain"
)

const generatorSystemPrompt = "You are an expert exam question creator for university students."

const questionFieldInstructions = `
For each question, provide:
1.  "questionText": The text of the question.
    - For "fill-in-the-blank" questions, use "____" to indicate the blank.
2.  "questionType": One of "multiple-choice", "true-false", "short-answer", "fill-in-the-blank".
3.  "options" (ONLY for "multiple-choice"): An array of strings representing the answer choices. There should be at least 2 options.
4.  "correctAnswer":
    - For "multiple-choice": The 0-based integer index of the correct option in the "options" array.
    - For "true-false": A boolean value (true or false).
    - For "short-answer" or "fill-in-the-blank": A string representing the correct answer, or an array of acceptable string answers. The expected answer must not be more than 3 words long.
5.  "explanation": Add short explanation for the answer. Do NOT quote page references (Number or lines) in your explanation. But you can quote the text in the lecture materials itself.
`

// BuildGenerationPrompt renders the question generation instructions with the
// lecture material inlined ahead of them.
func BuildGenerationPrompt(req domain.GenerationRequest) string {
	var b strings.Builder

	b.WriteString(generatorSystemPrompt)
	b.WriteString("\n\n")
	writeMaterials(&b, req.MaterialTexts)

	fmt.Fprintf(&b, "Based on the lecture materials above, generate %d exam questions. The overall difficulty level should be: %s.\n",
		req.NumQuestions, req.Difficulty)

	if len(req.TargetTypes) > 0 {
		types := make([]string, 0, len(req.TargetTypes))
		for _, t := range req.TargetTypes {
			types = append(types, string(t))
		}
		fmt.Fprintf(&b, "Focus on generating the following types of questions: %s.\n", strings.Join(types, ", "))
	} else {
		b.WriteString("Generate a mix of question types including multiple-choice, true-false, short-answer, and fill-in-the-blank.\n")
	}

	b.WriteString(questionFieldInstructions)
	b.WriteString("\n")

	if req.CustomPrompt != "" {
		fmt.Fprintf(&b, "Additional instructions from student: %s\n\n", req.CustomPrompt)
	}

	nicknameBasis := "the context or lecture materials"
	if req.CustomPrompt != "" {
		nicknameBasis = "the user's prompt and " + nicknameBasis
	}
	fmt.Fprintf(&b, `Please provide your response as a JSON object.
Output schema should be:
{"questions": (array) an array of the questions, "generationNickname": (required string) a nickname at most 90 characters long for the generation based on %s}.

Adhere strictly to this structure.
Do NOT include any introductory text, explanations, or summaries outside of the JSON structure itself.`, nicknameBasis)

	return b.String()
}

const summaryInstruction = "Generate a 5-10 lines summary/description of the attached lecture Material."

// BuildSummaryPrompt asks for a short description of one material.
func BuildSummaryPrompt(materialText string) string {
	var b strings.Builder
	b.WriteString(summaryInstruction)
	b.WriteString("\n\n")
	writeMaterials(&b, []string{materialText})
	b.WriteString(`Respond with ONLY a JSON object in the following format:
{"summary": "<5-10 lines of text>"}`)
	return b.String()
}

func writeMaterials(b *strings.Builder, texts []string) {
	for i, text := range texts {
		fmt.Fprintf(b, "--- Lecture material %d ---\n%s\n--- End of lecture material %d ---\n\n", i+1, strings.TrimSpace(text), i+1)
	}
}
