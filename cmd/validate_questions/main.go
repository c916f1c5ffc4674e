package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"quizcraft/internal/adapter/llm"
	"quizcraft/internal/domain"
	"quizcraft/internal/dto"
	"quizcraft/internal/validation"

	"github.com/spf13/cobra"
)

// errRejected signals that validation ran and found violations.
var errRejected = errors.New("output rejected")

var rootCmd = &cobra.Command{
	Use:   "validate_questions [file]",
	Short: "Validate raw model output offline",
	Long: `Reads a model reply from a file (or stdin when the file is "-" or omitted)
and runs the same validation the API applies before persisting anything.

By default the input is checked as a question batch. With --grading-items the
input is checked as a grading result for that many answered questions.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runValidate,
}

func init() {
	rootCmd.Flags().Bool("raw", true, "Strip reasoning blocks and code fences before validating")
	rootCmd.Flags().Int("grading-items", 0, "Validate a grading result for this many items instead of a question batch")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	gradingItems, _ := cmd.Flags().GetInt("grading-items")

	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return validate(cmd.OutOrStdout(), data, raw, gradingItems)
}

func validate(out io.Writer, data []byte, raw bool, gradingItems int) error {
	payload := data
	if raw {
		extracted, err := llm.ExtractJSONObject(string(data))
		if err != nil {
			return report(out, domain.ValidationErrors{domain.NewValidationError("", err.Error())})
		}
		payload = []byte(extracted)
	}

	v := validation.NewValidator()
	if gradingItems > 0 {
		result, violations := v.ValidateGradingResult(payload, gradingItems)
		if len(violations) > 0 {
			return report(out, violations)
		}
		return printJSON(out, dto.GradeResponse{Grade: result.Normalize(gradingItems), Summary: result.Summary})
	}

	batch, violations := v.ParseQuestionBatch(payload)
	if len(violations) > 0 {
		return report(out, violations)
	}
	for _, w := range batch.Warnings {
		fmt.Fprintf(out, "warning: %s\n", w.Error())
	}
	return printJSON(out, struct {
		GenerationNickname string                  `json:"generationNickname"`
		Questions          []domain.QuestionRecord `json:"questions"`
	}{batch.GenerationNickname, batch.Records()})
}

func report(out io.Writer, violations domain.ValidationErrors) error {
	fmt.Fprintf(out, "rejected with %d violation(s):\n", len(violations))
	for _, v := range violations {
		fmt.Fprintf(out, "  - %s\n", v.Error())
	}
	return errRejected
}

func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
