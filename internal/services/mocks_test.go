package services

import (
	"context"

	"github.com/codecampus/backend/internal/models"
)

// Hand-rolled repository mocks shared by the service tests. Each mock returns
// canned data and records mutating calls.

type mockUserRepository struct {
	user           *models.User
	usersByLogin   map[string]*models.User
	emailExists    bool
	usernameExists bool
	err            error
	created        []*models.User
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.err != nil {
		return m.err
	}
	user.ID = len(m.created) + 1
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user == nil {
		return nil, models.ErrNotFound
	}
	return m.user, nil
}

func (m *mockUserRepository) GetByEmailOrUsername(ctx context.Context, login string) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if user, ok := m.usersByLogin[login]; ok {
		return user, nil
	}
	return nil, models.ErrNotFound
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.emailExists, m.err
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return m.usernameExists, m.err
}

type mockCategoryRepository struct {
	categories       []models.Category
	courseIDs        []int
	byCourse         map[int][]models.Category
	err              error
	addedAssignments [][2]int
	removedCourses   []int
}

func (m *mockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return m.categories, m.err
}

func (m *mockCategoryRepository) GetCourseIDs(ctx context.Context, categoryID int) ([]int, error) {
	return m.courseIDs, m.err
}

func (m *mockCategoryRepository) GetByCourseIDs(ctx context.Context, courseIDs []int) (map[int][]models.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.byCourse == nil {
		return map[int][]models.Category{}, nil
	}
	return m.byCourse, nil
}

func (m *mockCategoryRepository) AddCourseCategory(ctx context.Context, courseID, categoryID int) error {
	m.addedAssignments = append(m.addedAssignments, [2]int{courseID, categoryID})
	return m.err
}

func (m *mockCategoryRepository) RemoveCourseCategories(ctx context.Context, courseID int) error {
	m.removedCourses = append(m.removedCourses, courseID)
	return m.err
}

type mockInstructorRepository struct {
	instructor *models.Instructor
	err        error
}

func (m *mockInstructorRepository) GetByID(ctx context.Context, id int) (*models.Instructor, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.instructor == nil {
		return nil, models.ErrNotFound
	}
	return m.instructor, nil
}

type mockCourseRepository struct {
	course      *models.Course
	courses     []models.Course
	notEnrolled []models.Course
	enrolled    []models.Course
	err         error
	getByIDErr  error

	created         []*models.Course
	updated         []*models.Course
	deleted         []int
	incremented     []int
	incrementErr    error
	lastFilter      models.CourseFilter
	lastRestrictIDs []int
	getAllCallCount int
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if m.course == nil {
		return nil, models.ErrNotFound
	}
	return m.course, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, filter models.CourseFilter, restrictIDs []int) ([]models.Course, error) {
	m.getAllCallCount++
	m.lastFilter = filter
	m.lastRestrictIDs = restrictIDs
	return m.courses, m.err
}

func (m *mockCourseRepository) GetNotEnrolled(ctx context.Context, userID, limit int) ([]models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.notEnrolled) {
		return m.notEnrolled[:limit], nil
	}
	return m.notEnrolled, nil
}

func (m *mockCourseRepository) GetEnrolled(ctx context.Context, userID int) ([]models.Course, error) {
	return m.enrolled, m.err
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	course.ID = len(m.created) + 1
	m.created = append(m.created, course)
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, course *models.Course) error {
	m.updated = append(m.updated, course)
	return m.err
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockCourseRepository) IncrementEnrollmentCount(ctx context.Context, id int) error {
	m.incremented = append(m.incremented, id)
	return m.incrementErr
}

type mockModuleRepository struct {
	module  *models.Module
	modules []models.Module
	err     error
	created []*models.Module
}

func (m *mockModuleRepository) GetByID(ctx context.Context, id int) (*models.Module, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.module == nil {
		return nil, models.ErrNotFound
	}
	return m.module, nil
}

func (m *mockModuleRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Module, error) {
	return m.modules, m.err
}

func (m *mockModuleRepository) Create(ctx context.Context, module *models.Module) error {
	if m.err != nil {
		return m.err
	}
	module.ID = len(m.created) + 1
	m.created = append(m.created, module)
	return nil
}

type mockLessonRepository struct {
	lesson   *models.Lesson
	lessons  []models.Lesson
	counts   map[int]int
	err      error
	countErr error
	created  []*models.Lesson
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.lesson == nil {
		return nil, models.ErrNotFound
	}
	return m.lesson, nil
}

func (m *mockLessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	return m.lessons, m.err
}

func (m *mockLessonRepository) CountGroupedByCourse(ctx context.Context, courseIDs []int) (map[int]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.countErr != nil {
		return nil, m.countErr
	}
	if m.counts == nil {
		return map[int]int{}, nil
	}
	return m.counts, nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.err != nil {
		return m.err
	}
	lesson.ID = len(m.created) + 1
	m.created = append(m.created, lesson)
	return nil
}

type mockEnrollmentRepository struct {
	enrollment *models.Enrollment
	exists     bool
	courseIDs  []int
	err        error
	created    []*models.Enrollment
}

func (m *mockEnrollmentRepository) Get(ctx context.Context, userID, courseID int) (*models.Enrollment, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.enrollment == nil {
		return nil, models.ErrNotFound
	}
	return m.enrollment, nil
}

func (m *mockEnrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	return m.exists, m.err
}

func (m *mockEnrollmentRepository) GetCourseIDsByUser(ctx context.Context, userID int) ([]int, error) {
	return m.courseIDs, m.err
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.err != nil {
		return m.err
	}
	enrollment.ID = len(m.created) + 1
	m.created = append(m.created, enrollment)
	return nil
}

type mockProgressRepository struct {
	progress         *models.Progress
	completedCount   int
	completedGrouped map[int]int
	completedIDs     map[int]bool
	err              error
	created          []*models.Progress
}

func (m *mockProgressRepository) Get(ctx context.Context, userID, lessonID int) (*models.Progress, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.progress == nil {
		return nil, models.ErrNotFound
	}
	return m.progress, nil
}

func (m *mockProgressRepository) Create(ctx context.Context, progress *models.Progress) error {
	if m.err != nil {
		return m.err
	}
	progress.ID = len(m.created) + 1
	m.created = append(m.created, progress)
	return nil
}

func (m *mockProgressRepository) CountCompletedByCourse(ctx context.Context, userID, courseID int) (int, error) {
	return m.completedCount, m.err
}

func (m *mockProgressRepository) CountCompletedGrouped(ctx context.Context, userID int, courseIDs []int) (map[int]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.completedGrouped == nil {
		return map[int]int{}, nil
	}
	return m.completedGrouped, nil
}

func (m *mockProgressRepository) GetCompletedLessonIDs(ctx context.Context, userID, courseID int) (map[int]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.completedIDs == nil {
		return map[int]bool{}, nil
	}
	return m.completedIDs, nil
}

type mockSubscriptionRepository struct {
	exists  bool
	err     error
	created []*models.Subscription
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	if m.err != nil {
		return m.err
	}
	subscription.ID = len(m.created) + 1
	m.created = append(m.created, subscription)
	return nil
}

func (m *mockSubscriptionRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return m.exists, m.err
}

type mockContactMessageRepository struct {
	err     error
	created []*models.ContactMessage
}

func (m *mockContactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	if m.err != nil {
		return m.err
	}
	message.ID = len(m.created) + 1
	m.created = append(m.created, message)
	return nil
}

type mockReviewRepository struct {
	reviews []models.Review
	err     error
	created []*models.Review
}

func (m *mockReviewRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Review, error) {
	return m.reviews, m.err
}

func (m *mockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if m.err != nil {
		return m.err
	}
	review.ID = len(m.created) + 1
	m.created = append(m.created, review)
	return nil
}

type mockLearningPathRepository struct {
	paths     []models.LearningPath
	courseIDs map[int][]int
	err       error
}

func (m *mockLearningPathRepository) GetAll(ctx context.Context) ([]models.LearningPath, error) {
	return m.paths, m.err
}

func (m *mockLearningPathRepository) GetCourseIDs(ctx context.Context, pathID int) ([]int, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.courseIDs[pathID], nil
}

type mockBadgeRepository struct {
	items     []models.UserBadgeItem
	userBadge *models.UserBadge
	err       error
	created   []*models.UserBadge
}

func (m *mockBadgeRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserBadgeItem, error) {
	return m.items, m.err
}

func (m *mockBadgeRepository) GetUserBadge(ctx context.Context, userID, badgeID int) (*models.UserBadge, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.userBadge == nil {
		return nil, models.ErrNotFound
	}
	return m.userBadge, nil
}

func (m *mockBadgeRepository) CreateUserBadge(ctx context.Context, userBadge *models.UserBadge) error {
	if m.err != nil {
		return m.err
	}
	userBadge.ID = len(m.created) + 1
	m.created = append(m.created, userBadge)
	return nil
}

type mockAchievementRepository struct {
	achievement *models.Achievement
	byType      []models.Achievement
	ua          *models.UserAchievement
	items       []models.UserAchievementItem
	err         error
	createdUA   []*models.UserAchievement
	updatedUA   []*models.UserAchievement
}

func (m *mockAchievementRepository) GetByID(ctx context.Context, id int) (*models.Achievement, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.achievement == nil {
		return nil, models.ErrNotFound
	}
	return m.achievement, nil
}

func (m *mockAchievementRepository) GetByType(ctx context.Context, achievementType models.AchievementType) ([]models.Achievement, error) {
	return m.byType, m.err
}

func (m *mockAchievementRepository) GetAllWithUser(ctx context.Context, userID int) ([]models.UserAchievementItem, error) {
	return m.items, m.err
}

func (m *mockAchievementRepository) GetUserAchievement(ctx context.Context, userID, achievementID int) (*models.UserAchievement, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.ua == nil {
		return nil, models.ErrNotFound
	}
	return m.ua, nil
}

func (m *mockAchievementRepository) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	if m.err != nil {
		return m.err
	}
	ua.ID = len(m.createdUA) + 1
	m.createdUA = append(m.createdUA, ua)
	return nil
}

func (m *mockAchievementRepository) UpdateUserAchievement(ctx context.Context, ua *models.UserAchievement) error {
	if m.err != nil {
		return m.err
	}
	m.updatedUA = append(m.updatedUA, ua)
	return nil
}

type mockCompletionTracker struct {
	calls []int
	err   error
}

func (m *mockCompletionTracker) RecordCourseCompletion(ctx context.Context, userID int) error {
	m.calls = append(m.calls, userID)
	return m.err
}
