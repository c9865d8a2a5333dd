package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/studybuddy/internal/agent"
	"github.com/abhisek/studybuddy/internal/content"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/learner"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Start a tutoring session on a topic",
	Example: `  studybuddy learn --topic "Go concurrency"
  studybuddy learn --topic "SQL joins" --difficulty intermediate --max-iterations 30`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().StringP("topic", "t", "", "Topic to learn (required)")
	learnCmd.Flags().StringP("difficulty", "d", "", "Starting difficulty: beginner, intermediate or advanced")
	learnCmd.Flags().Int("max-iterations", 0, "Maximum tutoring steps (overrides config)")
	learnCmd.Flags().Int("max-concepts", 0, "Maximum concepts in the learning path (overrides config)")
	learnCmd.Flags().StringP("config", "c", "", "Session config YAML file")
	_ = learnCmd.MarkFlagRequired("topic")
}

// runLearn opens the store, builds dependencies, and runs the session loop
// with the terminal learner.
func runLearn(cmd *cobra.Command, args []string) error {
	cfg, err := learnConfig(cmd)
	if err != nil {
		return err
	}
	topic, _ := cmd.Flags().GetString("topic")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logger := slog.Default()
	eventRepo := st.EventRepo()

	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, eventRepo, logger)
	if err != nil {
		return fmt.Errorf("LLM provider not configured: %w", err)
	}
	logger.Debug("llm provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())

	state, err := session.New(topic, cfg.Difficulty)
	if err != nil {
		return err
	}

	a := agent.New(state, content.NewLLMService(provider, content.DefaultConfig()),
		agent.WithConfig(cfg),
		agent.WithLearner(learner.New(learner.WithState(state))),
		agent.WithJournal(eventRepo),
		agent.WithSnapshots(st.SnapshotRepo()),
		agent.WithLogger(logger),
	)
	fmt.Print(renderSummary(a.Run(ctx)))
	return nil
}

// learnConfig merges the config file and command-line overrides.
func learnConfig(cmd *cobra.Command) (agent.Config, error) {
	cfg := agent.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := agent.LoadConfig(path)
		if err != nil {
			return agent.Config{}, err
		}
		cfg = loaded
	}

	if name, _ := cmd.Flags().GetString("difficulty"); name != "" {
		d, err := progress.ParseDifficulty(name)
		if err != nil {
			return agent.Config{}, err
		}
		cfg.Difficulty = d
	}
	if n, _ := cmd.Flags().GetInt("max-iterations"); n > 0 {
		cfg.MaxIterations = n
	}
	if n, _ := cmd.Flags().GetInt("max-concepts"); n > 0 {
		cfg.MaxConcepts = n
	}
	return cfg, cfg.Validate()
}

// renderSummary formats the end-of-session report.
func renderSummary(sum agent.Summary) string {
	var b strings.Builder

	b.WriteString("\n" + theme.Title.Render("Session summary: "+sum.Topic) + "\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("%s · %d steps · %s", sum.SessionID, sum.Iterations, sum.StopReason)) + "\n\n")
	b.WriteString(components.NewProgressBar("Mastery", sum.Progress, true, 50).View() + "\n\n")

	if sum.AverageScore != nil {
		b.WriteString("Average score: " + theme.ScoreStyle(*sum.AverageScore).Render(fmt.Sprintf("%.2f", *sum.AverageScore)) + "\n")
	}
	b.WriteString(conceptList("Mastered", sum.Mastered, theme.Correct))
	b.WriteString(conceptList("Taught", sum.Taught, theme.Body))

	return theme.Card.Render(strings.TrimRight(b.String(), "\n")) + "\n"
}

func conceptList(label string, names []string, style lipgloss.Style) string {
	if len(names) == 0 {
		return fmt.Sprintf("%s: %s\n", label, theme.Hint.Render("none"))
	}
	return fmt.Sprintf("%s: %s\n", label, style.Render(strings.Join(names, ", ")))
}
