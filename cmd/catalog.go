package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/catalog"
	"github.com/abhisek/coursebuddy/internal/learner"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Import and browse the course catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a catalog JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		im := &catalog.Importer{Courses: s.CourseRepo()}
		res, err := im.ImportFile(cmd.Context(), args[0], force)
		if errors.Is(err, catalog.ErrNotNewer) {
			return fmt.Errorf("%w (use --force to import anyway)", err)
		}
		if err != nil {
			return err
		}

		from := res.Previous
		if from == "" {
			from = "none"
		}
		fmt.Printf("Imported %d courses (catalog %s, previous %s)\n", res.Courses, res.Version, from)
		return nil
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses",
	RunE: func(cmd *cobra.Command, args []string) error {
		search, _ := cmd.Flags().GetString("search")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		var courses []learner.Course
		if search != "" {
			courses, err = s.CourseRepo().Search(cmd.Context(), search)
		} else {
			courses, err = s.CourseRepo().List(cmd.Context())
		}
		if err != nil {
			return fmt.Errorf("list courses: %w", err)
		}

		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		fmt.Printf("%-16s  %-32s  %-12s  %-7s  %s\n", "ID", "Title", "Difficulty", "Credits", "Content")
		fmt.Println(strings.Repeat("─", 90))
		for _, c := range courses {
			title := c.Title
			if len(title) > 32 {
				title = title[:29] + "..."
			}
			fmt.Printf("%-16s  %-32s  %-12s  %-7d  %dv %dm %dq\n",
				c.ID, title, learner.DifficultyLabel(c.Difficulty), c.Credits,
				len(c.Videos), len(c.Materials), len(c.Questions))
		}
		return nil
	},
}

var catalogShowCmd = &cobra.Command{
	Use:   "show <course-id>",
	Short: "Show the course context the assistant sees",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.CourseRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if c == nil {
			return fmt.Errorf("course %q not found", args[0])
		}
		focus := learner.Aggregate(learner.Inputs{Course: c}).Course
		fmt.Print(focus.Summary())
		fmt.Printf("Difficulty: %s\nCredits: %d\nQuiz questions: %d\n",
			learner.DifficultyLabel(focus.Difficulty), focus.Credits, focus.QuestionCount)
		return nil
	},
}

func init() {
	catalogImportCmd.Flags().Bool("force", false, "Import even if the catalog version is not newer")
	catalogListCmd.Flags().String("search", "", "Filter by title or description")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogShowCmd)
}
