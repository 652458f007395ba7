package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var engageCmd = &cobra.Command{
	Use:   "engage",
	Short: "Mark a day as active",
	RunE: func(cmd *cobra.Command, args []string) error {
		day := time.Now()
		if d, _ := cmd.Flags().GetString("date"); d != "" {
			parsed, err := time.Parse(time.DateOnly, d)
			if err != nil {
				return fmt.Errorf("invalid date %q (want YYYY-MM-DD)", d)
			}
			day = parsed
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.EngagementRepo().Record(cmd.Context(), day); err != nil {
			return err
		}
		fmt.Printf("Recorded activity on %s\n", day.UTC().Format(time.DateOnly))
		return nil
	},
}

func init() {
	engageCmd.Flags().String("date", "", "Day to record (YYYY-MM-DD, default today)")
}
