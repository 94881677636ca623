package gamification

import (
	"fmt"

	"github.com/neurolearn/backend/internal/models"
)

// RewardFor maps streak counters onto the encouragement ladder. Tiers only
// rise with the current streak while it stays at the personal best.
func RewardFor(st models.StreakState) models.Reward {
	switch {
	case st.CurrentStreak > 0 && st.CurrentStreak >= st.BestStreak:
		switch {
		case st.CurrentStreak >= 10:
			return models.Reward{Tier: models.RewardLegendary, Message: "Legendary streak! You're on fire!"}
		case st.CurrentStreak >= 5:
			return models.Reward{Tier: models.RewardAmazing, Message: "Amazing streak! Keep it up!"}
		case st.CurrentStreak >= 3:
			return models.Reward{Tier: models.RewardGreat, Message: "Great streak! You're building momentum!"}
		default:
			return models.Reward{Tier: models.RewardNiceStart, Message: "Nice start! Keep learning!"}
		}
	case st.CurrentStreak > 0:
		return models.Reward{
			Tier:    models.RewardChasing,
			Message: fmt.Sprintf("%d in a row! Aim for your best: %d!", st.CurrentStreak, st.BestStreak),
		}
	default:
		return models.Reward{Tier: models.RewardKeepGoing, Message: "Every expert was once a beginner. Keep going!"}
	}
}
