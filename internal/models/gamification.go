package models

// ── Core Gamification Structs ─────────────────────────────

type StreakState struct {
	CurrentStreak int `json:"current_streak"`
	BestStreak    int `json:"best_streak"`
	TotalQuizzes  int `json:"total_quizzes"`
}

type RewardTier string

const (
	RewardLegendary RewardTier = "legendary"
	RewardAmazing   RewardTier = "amazing"
	RewardGreat     RewardTier = "great"
	RewardNiceStart RewardTier = "nice-start"
	RewardChasing   RewardTier = "chasing-best"
	RewardKeepGoing RewardTier = "keep-going"
)

type Reward struct {
	Tier    RewardTier `json:"tier"`
	Message string     `json:"message"`
}

// ── Response Types ────────────────────────────────────────

type StreakResponse struct {
	Streak       StreakState `json:"streak"`
	Reward       Reward      `json:"reward"`
	Achievements []string    `json:"achievements"`
}
