package memory

import (
	"context"
	"sort"

	"github.com/codecampus/backend/internal/models"
)

type achievementRepository struct {
	store *Store
}

// NewAchievementRepository creates an achievement repository backed by the store
func NewAchievementRepository(store *Store) *achievementRepository {
	return &achievementRepository{store: store}
}

func (r *achievementRepository) GetByID(ctx context.Context, id int) (*models.Achievement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	achievement, ok := r.store.achievements[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &achievement, nil
}

func (r *achievementRepository) GetByType(ctx context.Context, achievementType models.AchievementType) ([]models.Achievement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var achievements []models.Achievement
	for _, achievement := range r.store.achievements {
		if achievement.Type == achievementType {
			achievements = append(achievements, achievement)
		}
	}
	sort.Slice(achievements, func(i, j int) bool { return achievements[i].ID < achievements[j].ID })
	return achievements, nil
}

func (r *achievementRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserAchievementItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	progress := make(map[int]models.UserAchievement)
	for _, ua := range r.store.userAchievements {
		if ua.UserID == userID {
			progress[ua.AchievementID] = ua
		}
	}

	var items []models.UserAchievementItem
	for _, achievement := range r.store.achievements {
		item := models.UserAchievementItem{Achievement: achievement}
		if ua, ok := progress[achievement.ID]; ok {
			item.Progress = ua.Progress
			item.Completed = ua.Completed
			item.CompletedAt = ua.CompletedAt
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *achievementRepository) GetUserAchievement(ctx context.Context, userID, achievementID int) (*models.UserAchievement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, ua := range r.store.userAchievements {
		if ua.UserID == userID && ua.AchievementID == achievementID {
			copied := ua
			return &copied, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *achievementRepository) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ua.ID = r.store.nextID("user_achievements")
	r.store.userAchievements[ua.ID] = *ua
	return nil
}

func (r *achievementRepository) UpdateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.userAchievements[ua.ID]; !ok {
		return models.ErrNotFound
	}
	r.store.userAchievements[ua.ID] = *ua
	return nil
}

func (r *achievementRepository) Create(ctx context.Context, achievement *models.Achievement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	achievement.ID = r.store.nextID("achievements")
	r.store.achievements[achievement.ID] = *achievement
	return nil
}

func (r *achievementRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, achievement := range r.store.achievements {
		if achievement.Name == name {
			return true, nil
		}
	}
	return false, nil
}
