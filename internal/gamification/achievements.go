package gamification

import (
	"fmt"

	"github.com/neurolearn/backend/internal/models"
)

// AchievementDef defines a single achievement.
type AchievementDef struct {
	Name        string
	Description string
}

// Achievements maps achievement keys to their definitions.
var Achievements = map[string]AchievementDef{
	"first_quiz":  {Name: "First Steps", Description: "Complete your first quiz"},
	"streak_3":    {Name: "Getting Started", Description: "Pass 3 quizzes in a row"},
	"streak_5":    {Name: "On a Roll", Description: "Pass 5 quizzes in a row"},
	"streak_10":   {Name: "Unstoppable", Description: "Pass 10 quizzes in a row"},
	"quizzes_10":  {Name: "Regular", Description: "Complete 10 quizzes"},
	"quizzes_50":  {Name: "Scholar", Description: "Complete 50 quizzes"},
	"quizzes_100": {Name: "Centurion", Description: "Complete 100 quizzes"},
}

// CheckAchievements returns the keys earned by the given counters. Streak
// milestones use the best streak so they are never lost once reached.
func CheckAchievements(st models.StreakState) []string {
	earned := []string{}

	if st.TotalQuizzes >= 1 {
		earned = append(earned, "first_quiz")
	}

	// Streak milestones
	for _, n := range []int{3, 5, 10} {
		if st.BestStreak >= n {
			earned = append(earned, fmt.Sprintf("streak_%d", n))
		}
	}

	// Volume milestones
	if st.TotalQuizzes >= 10 {
		earned = append(earned, "quizzes_10")
	}
	if st.TotalQuizzes >= 50 {
		earned = append(earned, "quizzes_50")
	}
	if st.TotalQuizzes >= 100 {
		earned = append(earned, "quizzes_100")
	}

	return earned
}
