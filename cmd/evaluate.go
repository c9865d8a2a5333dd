package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/evaluator"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score a quiz answer sheet offline",
	Long: "Scores answers against a quiz with the deterministic evaluator. " +
		"The quiz file holds a quiz object and the answers file holds {\"answers\": [...]}.",
	RunE: func(cmd *cobra.Command, args []string) error {
		quizPath, _ := cmd.Flags().GetString("quiz")
		answersPath, _ := cmd.Flags().GetString("answers")
		asJSON, _ := cmd.Flags().GetBool("json")

		rawQuiz, err := os.ReadFile(quizPath)
		if err != nil {
			return fmt.Errorf("read quiz: %w", err)
		}
		rawAnswers, err := os.ReadFile(answersPath)
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}

		res := evaluator.EvaluateJSON(rawQuiz, rawAnswers)
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
		} else {
			printEvaluation(cmd, res)
		}
		if res.Failed() {
			return fmt.Errorf("evaluation failed: %s", res.Error)
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().String("quiz", "", "Quiz JSON file (required)")
	evaluateCmd.Flags().String("answers", "", "Answers JSON file (required)")
	evaluateCmd.Flags().Bool("json", false, "Print the result as JSON")
	_ = evaluateCmd.MarkFlagRequired("quiz")
	_ = evaluateCmd.MarkFlagRequired("answers")
}

func printEvaluation(cmd *cobra.Command, res evaluator.Result) {
	out := cmd.OutOrStdout()
	if res.Failed() {
		return
	}

	fmt.Fprintf(out, "%-4s  %-6s  %-3s  %s\n", "Q", "Score", "OK", "Feedback")
	fmt.Fprintln(out, strings.Repeat("─", 60))
	for _, s := range res.Scores {
		ok := "✗"
		if s.IsCorrect {
			ok = "✓"
		}
		fmt.Fprintf(out, "%-4d  %-6.2f  %-3s  %s\n", s.QuestionNumber, s.Score, ok, s.Feedback)
	}
	fmt.Fprintln(out, strings.Repeat("─", 60))
	fmt.Fprintf(out, "Evaluated %d of %d questions. Average %.2f (%.0f%%)\n",
		res.QuestionsEvaluated, res.TotalQuestions, res.AverageScore, res.OverallPercentage)
}
