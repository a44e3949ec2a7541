package memory

import (
	"context"
	"sort"
	"time"

	"github.com/codecampus/backend/internal/models"
)

type badgeRepository struct {
	store *Store
}

// NewBadgeRepository creates a badge repository backed by the store
func NewBadgeRepository(store *Store) *badgeRepository {
	return &badgeRepository{store: store}
}

func (r *badgeRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserBadgeItem, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	earned := make(map[int]time.Time)
	for _, userBadge := range r.store.userBadges {
		if userBadge.UserID == userID {
			earned[userBadge.BadgeID] = userBadge.EarnedAt
		}
	}

	var items []models.UserBadgeItem
	for _, badge := range r.store.badges {
		item := models.UserBadgeItem{Badge: badge}
		if earnedAt, ok := earned[badge.ID]; ok {
			item.Earned = true
			t := earnedAt
			item.EarnedAt = &t
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *badgeRepository) GetUserBadge(ctx context.Context, userID, badgeID int) (*models.UserBadge, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, userBadge := range r.store.userBadges {
		if userBadge.UserID == userID && userBadge.BadgeID == badgeID {
			ub := userBadge
			return &ub, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *badgeRepository) CreateUserBadge(ctx context.Context, userBadge *models.UserBadge) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// the (user, badge) pair is unique
	for _, existing := range r.store.userBadges {
		if existing.UserID == userBadge.UserID && existing.BadgeID == userBadge.BadgeID {
			userBadge.ID = existing.ID
			userBadge.EarnedAt = existing.EarnedAt
			return nil
		}
	}

	userBadge.ID = r.store.nextID("user_badges")
	if userBadge.EarnedAt.IsZero() {
		userBadge.EarnedAt = time.Now()
	}
	r.store.userBadges[userBadge.ID] = *userBadge
	return nil
}

func (r *badgeRepository) Create(ctx context.Context, badge *models.Badge) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	badge.ID = r.store.nextID("badges")
	r.store.badges[badge.ID] = *badge
	return nil
}

func (r *badgeRepository) GetByName(ctx context.Context, name string) (*models.Badge, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, badge := range r.store.badges {
		if badge.Name == name {
			b := badge
			return &b, nil
		}
	}
	return nil, models.ErrNotFound
}
