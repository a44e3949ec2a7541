package models

// LearningPath is an ordered bundle of courses presented as a guided sequence
type LearningPath struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Duration    string `json:"duration"`
	OrderIndex  int    `json:"order"`
}

// LearningPathItem is a path augmented with aggregate and per-user data.
// Progress and Enrolled are only computed for authenticated callers.
type LearningPathItem struct {
	LearningPath
	CourseCount   int        `json:"courseCount"`
	Categories    []Category `json:"categories"`
	Progress      int        `json:"progress"`
	Enrolled      bool       `json:"enrolled"`
	FirstCourseID *int       `json:"firstCourseId"`
}
