package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/learner"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		dc := learner.Aggregate(s.ContextSource().Inputs(ctx, ""))
		perf := dc.Performance

		fmt.Printf("Learner:        %s (%s learner)\n", dc.Learner.Name, dc.Learner.LearningStyle)
		fmt.Printf("Quizzes:        %d\n", perf.TotalQuizzes)
		fmt.Printf("Average score:  %d%%\n", perf.AverageScore)
		fmt.Printf("Stars:          %d\n", perf.Stars)
		fmt.Printf("Credits:        %d\n", perf.TotalCredits)
		fmt.Printf("Active days:    %d\n", dc.Consistency.ActiveDayCount)

		stats, err := s.QuizRepo().Stats(ctx)
		if err != nil {
			return err
		}
		if stats != nil {
			fmt.Printf("Success rate:   %d%%\n", stats.SuccessRate)
		}
		return nil
	},
}
