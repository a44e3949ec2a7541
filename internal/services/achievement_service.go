package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codecampus/backend/internal/models"
)

// AchievementRepository is the interface that wraps methods for Achievement table data access
type AchievementRepository interface {
	// GetByID retrieves an achievement by ID.
	//
	// Returns models.ErrNotFound if no such achievement exists.
	GetByID(ctx context.Context, id int) (*models.Achievement, error)
	// GetByType retrieves all achievements of the given type
	GetByType(ctx context.Context, achievementType models.AchievementType) ([]models.Achievement, error)
	// GetAllWithUser retrieves all achievements annotated with the user's progress
	GetAllWithUser(ctx context.Context, userID int) ([]models.UserAchievementItem, error)
	// GetUserAchievement retrieves the progress row for a (user, achievement) pair.
	//
	// Returns models.ErrNotFound if no row exists yet.
	GetUserAchievement(ctx context.Context, userID, achievementID int) (*models.UserAchievement, error)
	// CreateUserAchievement inserts a new user achievement row
	CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error
	// UpdateUserAchievement updates progress, completed and completed_at of a row
	UpdateUserAchievement(ctx context.Context, ua *models.UserAchievement) error
}

// BadgeRepository is the interface that wraps methods for Badge table data access
type BadgeRepository interface {
	// GetAllWithUser retrieves all badges annotated with the user's earn state
	GetAllWithUser(ctx context.Context, userID int) ([]models.UserBadgeItem, error)
	// GetUserBadge retrieves the ownership row for a (user, badge) pair.
	//
	// Returns models.ErrNotFound if the user does not own the badge.
	GetUserBadge(ctx context.Context, userID, badgeID int) (*models.UserBadge, error)
	// CreateUserBadge inserts a new user badge row
	CreateUserBadge(ctx context.Context, userBadge *models.UserBadge) error
}

type achievementService struct {
	achievementRepo AchievementRepository
	badgeRepo       BadgeRepository
}

// NewAchievementService creates a new achievement service
func NewAchievementService(achievementRepo AchievementRepository, badgeRepo BadgeRepository) *achievementService {
	return &achievementService{
		achievementRepo: achievementRepo,
		badgeRepo:       badgeRepo,
	}
}

// UpdateProgress writes an absolute progress value toward an achievement and
// handles unlock plus badge award on the first threshold crossing.
//
// Completion is one-shot: completed never reverts and completedAt is written
// exactly once, even if a later call passes a lower value. At most one badge
// award happens per not-completed to completed transition.
func (s *achievementService) UpdateProgress(ctx context.Context, userID, achievementID, progress int) (*models.UserAchievement, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}

	reached := progress >= achievement.RequiredCount

	ua, err := s.achievementRepo.GetUserAchievement(ctx, userID, achievementID)
	if errors.Is(err, models.ErrNotFound) {
		ua = &models.UserAchievement{
			UserID:        userID,
			AchievementID: achievementID,
			Progress:      progress,
			Completed:     reached,
		}
		if reached {
			now := time.Now()
			ua.CompletedAt = &now
		}
		if err := s.achievementRepo.CreateUserAchievement(ctx, ua); err != nil {
			return nil, fmt.Errorf("failed to create user achievement: %w", err)
		}
		if reached {
			if err := s.awardLinkedBadge(ctx, userID, achievement); err != nil {
				return nil, err
			}
		}
		return ua, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user achievement: %w", err)
	}

	unlocked := reached && !ua.Completed
	ua.Progress = progress
	if unlocked {
		ua.Completed = true
		now := time.Now()
		ua.CompletedAt = &now
	}
	if err := s.achievementRepo.UpdateUserAchievement(ctx, ua); err != nil {
		return nil, fmt.Errorf("failed to update user achievement: %w", err)
	}

	if unlocked {
		if err := s.awardLinkedBadge(ctx, userID, achievement); err != nil {
			return nil, err
		}
	}
	return ua, nil
}

// AwardBadge records badge ownership, at most once. A repeat award returns
// the original row without error.
func (s *achievementService) AwardBadge(ctx context.Context, userID, badgeID int) (*models.UserBadge, error) {
	existing, err := s.badgeRepo.GetUserBadge(ctx, userID, badgeID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("failed to get user badge: %w", err)
	}

	userBadge := &models.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}
	if err := s.badgeRepo.CreateUserBadge(ctx, userBadge); err != nil {
		return nil, fmt.Errorf("failed to create user badge: %w", err)
	}
	return userBadge, nil
}

// RecordCourseCompletion advances every course-completion achievement of the
// user by one completed course
func (s *achievementService) RecordCourseCompletion(ctx context.Context, userID int) error {
	achievements, err := s.achievementRepo.GetByType(ctx, models.AchievementTypeCourseCompletion)
	if err != nil {
		return fmt.Errorf("failed to get achievements: %w", err)
	}

	for _, achievement := range achievements {
		current := 0
		ua, err := s.achievementRepo.GetUserAchievement(ctx, userID, achievement.ID)
		if err == nil {
			current = ua.Progress
		} else if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("failed to get user achievement: %w", err)
		}

		if _, err := s.UpdateProgress(ctx, userID, achievement.ID, current+1); err != nil {
			return err
		}
	}
	return nil
}

// GetUserBadges retrieves all badges with the user's earn metadata
func (s *achievementService) GetUserBadges(ctx context.Context, userID int) ([]models.UserBadgeItem, error) {
	items, err := s.badgeRepo.GetAllWithUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	if items == nil {
		items = []models.UserBadgeItem{}
	}
	return items, nil
}

// GetUserAchievements retrieves all achievements with the user's progress
func (s *achievementService) GetUserAchievements(ctx context.Context, userID int) ([]models.UserAchievementItem, error) {
	items, err := s.achievementRepo.GetAllWithUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	if items == nil {
		items = []models.UserAchievementItem{}
	}
	return items, nil
}

func (s *achievementService) awardLinkedBadge(ctx context.Context, userID int, achievement *models.Achievement) error {
	if achievement.BadgeID == nil {
		return nil
	}
	if _, err := s.AwardBadge(ctx, userID, *achievement.BadgeID); err != nil {
		return fmt.Errorf("failed to award badge: %w", err)
	}
	return nil
}
