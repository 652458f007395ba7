package learner

import (
	"fmt"
	"strings"
	"time"
)

// Aggregate builds a DecisionContext from the collaborators' current values.
// It never fails: missing data degrades to defaults.
func Aggregate(in Inputs) DecisionContext {
	return DecisionContext{
		Learner:     learnerSnapshot(in.Profile),
		Performance: performanceSnapshot(in.Performance),
		Consistency: ConsistencySnapshot{ActiveDayCount: countDays(in.EngagementDays)},
		Course:      courseFocus(in.Course),
	}
}

func learnerSnapshot(p *Profile) LearnerSnapshot {
	snap := LearnerSnapshot{
		Name:          DefaultName,
		LearningStyle: StyleAdaptive,
		Goals:         []string{},
		Interests:     []string{},
	}
	if p == nil {
		return snap
	}
	if name := strings.TrimSpace(p.Name); name != "" {
		snap.Name = name
	}
	if style := NormalizeStyle(p.LearningStyle); style != "" {
		snap.LearningStyle = style
	}
	snap.Goals = nonEmpty(p.Goals)
	snap.Interests = nonEmpty(p.Interests)
	snap.SkillLevel = p.SkillLevel
	return snap
}

// NormalizeStyle lower-cases a learning style and folds variants such as
// "Reading/Writing" or "visual learner" onto the known styles.
func NormalizeStyle(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	switch {
	case strings.HasPrefix(style, StyleVisual):
		return StyleVisual
	case strings.HasPrefix(style, StyleReading):
		return StyleReading
	default:
		return style
	}
}

func performanceSnapshot(s *PerformanceStats) PerformanceSnapshot {
	if s == nil {
		return PerformanceSnapshot{}
	}
	return PerformanceSnapshot{
		AverageScore: clamp(s.AverageScore, 0, 100),
		TotalQuizzes: max(s.TotalQuizzes, 0),
		TotalCredits: max(s.TotalCredits, 0),
		Stars:        max(s.Stars, 0),
	}
}

// countDays counts distinct UTC calendar days.
func countDays(days []time.Time) int {
	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		if d.IsZero() {
			continue
		}
		seen[d.UTC().Format(time.DateOnly)] = struct{}{}
	}
	return len(seen)
}

func courseFocus(c *Course) *CourseFocus {
	if c == nil {
		return nil
	}
	return &CourseFocus{
		Title:          c.Title,
		Description:    c.Description,
		Difficulty:     clamp(c.Difficulty, 0, 5),
		Credits:        max(c.Credits, 0),
		RecommendedFor: append([]string(nil), c.RecommendedFor...),
		Materials:      append([]Material(nil), c.Materials...),
		Videos:         append([]Video(nil), c.Videos...),
		QuestionCount:  len(c.Questions),
	}
}

// Summary renders the course as plain text context.
func (c *CourseFocus) Summary() string {
	if c == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", c.Title)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	if len(c.Materials) > 0 {
		titles := make([]string, len(c.Materials))
		for i, m := range c.Materials {
			titles[i] = m.Title
		}
		fmt.Fprintf(&b, "Materials: %s\n", strings.Join(titles, ", "))
	}
	if len(c.Videos) > 0 {
		titles := make([]string, len(c.Videos))
		for i, v := range c.Videos {
			titles[i] = v.Title
		}
		fmt.Fprintf(&b, "Videos: %s\n", strings.Join(titles, ", "))
	}
	return b.String()
}

// DifficultyLabel maps a difficulty level to its display name. Out-of-range
// levels read as intermediate.
func DifficultyLabel(level int) string {
	labels := []string{"", "beginner", "intermediate", "advanced", "expert", "master"}
	if level <= 0 || level >= len(labels) {
		return "intermediate"
	}
	return labels[level]
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
