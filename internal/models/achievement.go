package models

import "time"

// AchievementType represents the rule family an achievement tracks
type AchievementType string

const (
	AchievementTypeLoginStreak           AchievementType = "login_streak"
	AchievementTypeCourseCompletion      AchievementType = "course_completion"
	AchievementTypePerfectQuiz           AchievementType = "perfect_quiz"
	AchievementTypeCommunityContribution AchievementType = "community_contribution"
)

// Badge is a status reward granted when an achievement completes
type Badge struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Points      int    `json:"points"`
}

// UserBadge records that a user owns a badge; the pair is unique
type UserBadge struct {
	ID       int       `json:"id"`
	UserID   int       `json:"userId"`
	BadgeID  int       `json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
}

// Achievement is a rule tracking cumulative progress toward a milestone
type Achievement struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Type          AchievementType `json:"type"`
	RequiredCount int             `json:"requiredCount"`
	// BadgeID links the badge awarded on completion; nullable
	BadgeID *int `json:"badgeId,omitempty"`
}

// UserAchievement tracks one user's progress toward one achievement.
// Completed never reverts to false and CompletedAt is set exactly once.
type UserAchievement struct {
	ID            int        `json:"id"`
	UserID        int        `json:"userId"`
	AchievementID int        `json:"achievementId"`
	Progress      int        `json:"progress"`
	Completed     bool       `json:"completed"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// UserBadgeItem is a badge augmented with earn metadata for the caller
type UserBadgeItem struct {
	Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earnedAt,omitempty"`
}

// UserAchievementItem is an achievement augmented with the caller's progress
type UserAchievementItem struct {
	Achievement
	Progress    int        `json:"progress"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}
