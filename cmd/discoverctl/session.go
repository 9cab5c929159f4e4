package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alcyxob/exercise-discovery/internal/domain"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a discovery session",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		cfg := domain.SessionConfig{}
		cfg.TestMode, _ = flags.GetBool("test")
		cfg.SportFilter, _ = flags.GetString("sport")
		cfg.FitnessComponentFilter, _ = flags.GetString("component")
		cfg.PurposeFilter, _ = flags.GetString("purpose")
		cfg.MaxTerms, _ = flags.GetInt("max-terms")
		cfg.MaxExercisesPerTerm, _ = flags.GetInt("per-term")
		cfg.QualityThreshold, _ = flags.GetInt("threshold")
		cfg.IncludeVariations, _ = flags.GetBool("variations")
		cfg.PriorityOnly, _ = flags.GetBool("priority-only")
		scoring, _ := flags.GetString("scoring")
		cfg.Scoring = domain.ScoringMode(scoring)

		ctx := context.Background()
		c := newClient()
		started, err := c.StartSession(ctx, cfg)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen, color.Bold).SprintFunc()
		fmt.Printf("%s session %s\n", green("Started"), started.SessionID)
		fmt.Printf("  Terms:     %d\n", started.TotalTerms)
		fmt.Printf("  Estimated: %s\n", started.EstimatedDuration)

		if follow, _ := flags.GetBool("watch"); follow {
			return watchSession(ctx, started.SessionID)
		}
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status <session-id>",
	Short: "Show a discovery session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newClient().GetSession(context.Background(), args[0])
		if err != nil {
			return err
		}
		printSession(*s)
		return nil
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <session-id>",
	Short: "Follow a session until it finishes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchSession(context.Background(), args[0])
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <session-id>",
	Short: "Ask a running session to stop after its current term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newClient().CancelSession(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Cancellation requested for %s\n", args[0])
		return nil
	},
}

func init() {
	startCmd.Flags().Bool("test", false, "Test mode: at most 10 terms, no inter-call delay")
	startCmd.Flags().String("sport", "", "Sport filter (e.g. tennis)")
	startCmd.Flags().String("component", "", "Fitness component filter (e.g. power)")
	startCmd.Flags().String("purpose", "", "Purpose filter (e.g. injury_prevention)")
	startCmd.Flags().Int("max-terms", 0, "Cap the number of search terms")
	startCmd.Flags().Int("per-term", 0, "Exercises requested per term")
	startCmd.Flags().Int("threshold", 0, "Quality threshold (1-100)")
	startCmd.Flags().Bool("variations", false, "Append variation terms")
	startCmd.Flags().Bool("priority-only", false, "Only families with high sport relevance")
	startCmd.Flags().String("scoring", "", "Scoring mode: enhanced or legacy")
	startCmd.Flags().Bool("watch", false, "Follow the session until it finishes")

	rootCmd.AddCommand(startCmd, statusCmd, watchCmd, cancelCmd)
}

func watchSession(ctx context.Context, sessionID string) error {
	c := newClient()
	last := -1
	s, err := c.Wait(ctx, sessionID, func(s domain.Session) {
		if s.Progress.TermsProcessed != last {
			last = s.Progress.TermsProcessed
			fmt.Println(progressLine(s))
		}
	})
	if err != nil {
		return err
	}
	fmt.Println()
	printSession(*s)
	return nil
}

func statusColor(status domain.SessionStatus) func(a ...interface{}) string {
	switch status {
	case domain.SessionCompleted:
		return color.New(color.FgGreen).SprintFunc()
	case domain.SessionFailed:
		return color.New(color.FgRed).SprintFunc()
	case domain.SessionCancelled:
		return color.New(color.FgYellow).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}

func progressLine(s domain.Session) string {
	p := s.Progress
	pct := 0
	if p.TotalTerms > 0 {
		pct = p.TermsProcessed * 100 / p.TotalTerms
	}
	return fmt.Sprintf("[%3d%%] %d/%d terms, batch %d/%d, %d exercises found",
		pct, p.TermsProcessed, p.TotalTerms, p.CurrentBatch, p.TotalBatches, p.ExercisesFound)
}

func printSession(s domain.Session) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%s\n", cyan("=== Discovery Session "+s.SessionID+" ==="))
	fmt.Printf("  Status:   %s\n", statusColor(s.Status)(string(s.Status)))
	fmt.Printf("  Started:  %s\n", s.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if s.CompletedAt != nil {
		fmt.Printf("  Finished: %s (%v)\n", s.CompletedAt.Local().Format("15:04:05"), s.CompletedAt.Sub(s.StartedAt).Round(time.Second))
	}
	fmt.Printf("  Progress: %s\n", progressLine(s))

	if r := s.Results; r != nil {
		fmt.Printf("  Results:  %d kept of %d raw (%d duplicates, %d below threshold), avg quality %.2f\n",
			r.TotalExercises, r.RawExercises, r.DuplicatesRemoved, r.BelowThreshold, r.AverageQuality)
		if len(r.ByMethod) > 0 {
			fmt.Printf("  Methods:  %s\n", formatCounts(r.ByMethod))
		}
	}
	if len(s.Errors) > 0 {
		red := color.New(color.FgRed).SprintFunc()
		fmt.Printf("  %s\n", red(fmt.Sprintf("Errors (%d):", len(s.Errors))))
		for _, e := range s.Errors {
			term := e.Term
			if term == "" {
				term = "session"
			}
			fmt.Printf("    %s %s\n", gray(term+":"), e.Error)
		}
	}
}

func formatCounts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}
