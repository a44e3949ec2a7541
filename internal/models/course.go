package models

import "time"

// CourseLevel represents the difficulty level of a course
type CourseLevel string

const (
	CourseLevelBeginner     CourseLevel = "beginner"
	CourseLevelIntermediate CourseLevel = "intermediate"
	CourseLevelAdvanced     CourseLevel = "advanced"
	// CourseLevelAll is accepted as a filter value and means "no level filter"
	CourseLevelAll CourseLevel = "all"
)

// Valid reports whether the level is a persistable course level
func (l CourseLevel) Valid() bool {
	switch l {
	case CourseLevelBeginner, CourseLevelIntermediate, CourseLevelAdvanced:
		return true
	}
	return false
}

// Category represents a course category
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IconName    string `json:"iconName"`
}

// Instructor represents a course instructor
type Instructor struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Title        string `json:"title"`
	Bio          string `json:"bio"`
	CourseCount  int    `json:"courseCount"`
	StudentCount int    `json:"studentCount"`
	ReviewScore  int    `json:"reviewScore"`
}

// Course represents a course in the catalog
type Course struct {
	ID              int         `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	ImageURL        string      `json:"imageUrl"`
	Level           CourseLevel `json:"level"`
	Duration        string      `json:"duration"`
	Price           int         `json:"price"`
	EnrollmentCount int         `json:"enrollmentCount"`
	InstructorID    int         `json:"instructorId"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// CourseFilter narrows the course listing. Zero values mean "no filter";
// Limit/Offset of nil mean "no bound" for that dimension.
type CourseFilter struct {
	CategoryID *int
	Level      CourseLevel
	Search     string
	Limit      *int
	Offset     *int
}

// CourseListItem is a catalog entry augmented with per-user and aggregate data
type CourseListItem struct {
	Course
	Categories   []Category `json:"categories"`
	IsEnrolled   bool       `json:"isEnrolled"`
	LessonsCount int        `json:"lessonsCount"`
	// Progress is only populated in the recommended "in progress" bucket
	Progress int `json:"progress,omitempty"`
}

// CourseDetailResponse is the full course page payload
type CourseDetailResponse struct {
	Course
	Categories       []Category          `json:"categories"`
	Modules          []ModuleWithLessons `json:"modules"`
	Instructor       *Instructor         `json:"instructor"`
	Reviews          []Review            `json:"reviews"`
	IsEnrolled       bool                `json:"isEnrolled"`
	Progress         int                 `json:"progress"`
	LessonsCount     int                 `json:"lessonsCount"`
	CompletedLessons int                 `json:"completedLessons"`
	FirstLessonID    *int                `json:"firstLessonId"`
	VideoDuration    float64             `json:"videoDuration"`
	ExercisesCount   int                 `json:"exercisesCount"`
	ResourcesCount   int                 `json:"resourcesCount"`
}

// RecommendedResponse is the personalized course feed
type RecommendedResponse struct {
	InProgress  []CourseListItem `json:"inProgress"`
	Recommended []CourseListItem `json:"recommended"`
}

// CreateCourseRequest represents the admin course form fields
type CreateCourseRequest struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Level        CourseLevel `json:"level"`
	Duration     string      `json:"duration"`
	Price        int         `json:"price"`
	InstructorID int         `json:"instructorId"`
	CategoryIDs  []int       `json:"categoryIds"`
}

// UpdateCourseRequest represents a partial course update
type UpdateCourseRequest struct {
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Level       CourseLevel `json:"level,omitempty"`
	Duration    string      `json:"duration,omitempty"`
	Price       *int        `json:"price,omitempty"`
	CategoryIDs []int       `json:"categoryIds,omitempty"`
}

// Review represents a user review on a course
type Review struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	CourseID  int       `json:"courseId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateReviewRequest represents a request to review a course
type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
