package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List past sessions or show the steps of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		repo := s.EventRepo()
		ctx := cmd.Context()

		if len(args) == 1 {
			steps, err := repo.SessionSteps(ctx, args[0])
			if err != nil {
				return fmt.Errorf("query steps: %w", err)
			}
			if len(steps) == 0 {
				return fmt.Errorf("session %s not found", args[0])
			}

			fmt.Printf("Session %s: %s\n\n", args[0], steps[0].Topic)
			fmt.Printf("%-4s  %-8s  %-20s  %-24s  %-5s  %s\n",
				"#", "Time", "Action", "Concept", "OK", "Progress")
			fmt.Println(strings.Repeat("─", 80))
			for _, st := range steps {
				fmt.Printf("%-4d  %-8s  %-20s  %-24s  %-5s  %.0f%%\n",
					st.Iteration,
					st.Timestamp.Local().Format("15:04:05"),
					st.Action,
					truncate(st.Concept, 24),
					checkMark(st.Success),
					st.Progress,
				)
				if st.ErrorMessage != "" {
					fmt.Printf("      error: %s\n", st.ErrorMessage)
				}
			}
			return nil
		}

		limit, _ := cmd.Flags().GetInt("limit")
		sessions, err := repo.ListSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions recorded yet.")
			return nil
		}

		fmt.Printf("%-36s  %-24s  %-16s  %5s  %s\n", "Session", "Topic", "Started", "Steps", "Progress")
		fmt.Println(strings.Repeat("─", 100))
		for _, ss := range sessions {
			fmt.Printf("%-36s  %-24s  %-16s  %5d  %.0f%%\n",
				ss.SessionID,
				truncate(ss.Topic, 24),
				ss.StartedAt.Local().Format("2006-01-02 15:04"),
				ss.Steps,
				ss.LastProgress,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
