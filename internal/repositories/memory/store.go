// Package memory provides map-backed repository implementations used when no
// database is configured. They mirror the SQL repositories method for method,
// so services and handlers are wired identically in both modes.
package memory

import (
	"sync"

	"github.com/codecampus/backend/internal/models"
)

type pathCourse struct {
	PathID     int
	CourseID   int
	OrderIndex int
}

// Store holds all in-memory tables behind a single lock. Repositories share
// one Store so cross-entity reads stay consistent.
type Store struct {
	mu  sync.RWMutex
	seq map[string]int

	users            map[int]models.User
	categories       map[int]models.Category
	instructors      map[int]models.Instructor
	courses          map[int]models.Course
	courseCategories map[int][]int
	modules          map[int]models.Module
	lessons          map[int]models.Lesson
	learningPaths    map[int]models.LearningPath
	pathCourses      []pathCourse
	enrollments      map[int]models.Enrollment
	progress         map[int]models.Progress
	reviews          map[int]models.Review
	badges           map[int]models.Badge
	userBadges       map[int]models.UserBadge
	achievements     map[int]models.Achievement
	userAchievements map[int]models.UserAchievement
	subscriptions    map[int]models.Subscription
	contactMessages  map[int]models.ContactMessage
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		seq:              make(map[string]int),
		users:            make(map[int]models.User),
		categories:       make(map[int]models.Category),
		instructors:      make(map[int]models.Instructor),
		courses:          make(map[int]models.Course),
		courseCategories: make(map[int][]int),
		modules:          make(map[int]models.Module),
		lessons:          make(map[int]models.Lesson),
		learningPaths:    make(map[int]models.LearningPath),
		enrollments:      make(map[int]models.Enrollment),
		progress:         make(map[int]models.Progress),
		reviews:          make(map[int]models.Review),
		badges:           make(map[int]models.Badge),
		userBadges:       make(map[int]models.UserBadge),
		achievements:     make(map[int]models.Achievement),
		userAchievements: make(map[int]models.UserAchievement),
		subscriptions:    make(map[int]models.Subscription),
		contactMessages:  make(map[int]models.ContactMessage),
	}
}

// nextID allocates the next auto-increment id for a table.
// Callers must hold the write lock.
func (s *Store) nextID(table string) int {
	s.seq[table]++
	return s.seq[table]
}
