package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Record quiz results",
}

var quizRecordCmd = &cobra.Command{
	Use:   "record <course-id> <correct> <total>",
	Short: "Record a quiz attempt",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		correct, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid correct count %q", args[1])
		}
		total, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid total %q", args[2])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := s.QuizRepo().Record(cmd.Context(), args[0], correct, total)
		if err != nil {
			return err
		}
		fmt.Printf("Scored %d%% (%d/%d)  %s  +%d credits\n",
			res.Percentage, res.Correct, res.Total,
			strings.Repeat("★", res.Stars)+strings.Repeat("☆", 3-res.Stars), res.Credits)
		return nil
	},
}

func init() {
	quizCmd.AddCommand(quizRecordCmd)
}
