package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/learner"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the learner profile",
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or update the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		p, err := s.ProfileRepo().Get(ctx)
		if err != nil {
			return err
		}
		if p == nil {
			p = &learner.Profile{}
		}

		flags := cmd.Flags()
		if flags.Changed("name") {
			p.Name, _ = flags.GetString("name")
		}
		if flags.Changed("email") {
			p.Email, _ = flags.GetString("email")
		}
		if flags.Changed("interests") {
			p.Interests, _ = flags.GetStringSlice("interests")
		}
		if flags.Changed("goals") {
			p.Goals, _ = flags.GetStringSlice("goals")
		}
		if flags.Changed("style") {
			p.LearningStyle, _ = flags.GetString("style")
		}
		if flags.Changed("skill") {
			skill, _ := flags.GetInt("skill")
			if skill < 1 || skill > 5 {
				return fmt.Errorf("skill level must be between 1 and 5, got %d", skill)
			}
			p.SkillLevel = skill
		}

		if err := s.ProfileRepo().Save(ctx, *p); err != nil {
			return err
		}
		fmt.Println("Profile saved.")
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		p, err := s.ProfileRepo().Get(cmd.Context())
		if err != nil {
			return err
		}
		if p == nil {
			fmt.Println("No profile yet. Create one with `coursebuddy profile set --name <name>`.")
			return nil
		}

		fmt.Printf("Name:           %s\n", p.Name)
		fmt.Printf("Email:          %s\n", p.Email)
		fmt.Printf("Learning style: %s\n", p.LearningStyle)
		fmt.Printf("Skill level:    %d\n", p.SkillLevel)
		fmt.Printf("Interests:      %s\n", strings.Join(p.Interests, ", "))
		fmt.Printf("Goals:          %s\n", strings.Join(p.Goals, ", "))
		return nil
	},
}

func init() {
	f := profileSetCmd.Flags()
	f.String("name", "", "Learner name")
	f.String("email", "", "Learner email")
	f.StringSlice("interests", nil, "Comma-separated interests")
	f.StringSlice("goals", nil, "Comma-separated goals")
	f.String("style", "", "Learning style: visual, reading or adaptive")
	f.Int("skill", 0, "Skill level 1-5")

	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileShowCmd)
}
