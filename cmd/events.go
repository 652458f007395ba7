package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/store"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Inspect video search and assistant turn events",
}

var eventsSearchesCmd = &cobra.Command{
	Use:   "searches",
	Short: "List recent video searches",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		failed, _ := cmd.Flags().GetBool("failed")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryVideoSearches(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No video search events found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-8s  %-30s  %-4s  %-7s  %s\n",
			"ID", "Timestamp", "Provider", "Query", "Hits", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 90))

		for _, e := range events {
			if failed && e.Success {
				continue
			}
			ok := "✓"
			if !e.Success {
				ok = "✗ " + e.ErrorMessage
			}
			query := e.Query
			if len(query) > 30 {
				query = query[:27] + "..."
			}
			fmt.Printf("%-5d  %-19s  %-8s  %-30s  %-4d  %-7d  %s\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				e.Provider,
				query,
				e.ResultCount,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var eventsTurnsCmd = &cobra.Command{
	Use:   "turns",
	Short: "List recent assistant turns",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		sessionID, _ := cmd.Flags().GetString("session")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryAssistantTurns(cmd.Context(), store.QueryOpts{Limit: limit, SessionID: sessionID})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if len(events) == 0 {
			fmt.Println("No assistant turns found.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-8s  %-18s  %-12s  %-14s  %-4s  %s\n",
			"ID", "Timestamp", "Session", "Rule", "Tone", "Course", "Res", "Ms")
		fmt.Println(strings.Repeat("─", 100))

		for _, e := range events {
			sid := e.SessionID
			if len(sid) > 8 {
				sid = sid[:8]
			}
			fmt.Printf("%-5d  %-19s  %-8s  %-18s  %-12s  %-14s  %-4d  %d\n",
				e.ID,
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				sid,
				e.Rule,
				e.Tone,
				e.CourseID,
				e.ResourceCount,
				e.LatencyMs,
			)
		}
		return nil
	},
}

func init() {
	eventsSearchesCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	eventsSearchesCmd.Flags().Bool("failed", false, "Only show failed searches")
	eventsTurnsCmd.Flags().Int("limit", 20, "Maximum number of events to show")
	eventsTurnsCmd.Flags().String("session", "", "Only show turns of this session ID")

	eventsCmd.AddCommand(eventsSearchesCmd)
	eventsCmd.AddCommand(eventsTurnsCmd)
}
