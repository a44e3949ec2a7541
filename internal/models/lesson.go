package models

// LessonType represents the kind of content a lesson carries
type LessonType string

const (
	LessonTypeVideo    LessonType = "video"
	LessonTypeText     LessonType = "text"
	LessonTypeQuiz     LessonType = "quiz"
	LessonTypeExercise LessonType = "exercise"
	LessonTypeResource LessonType = "resource"
	LessonTypeDocument LessonType = "document"
)

// Valid reports whether the lesson type is known
func (t LessonType) Valid() bool {
	switch t {
	case LessonTypeVideo, LessonTypeText, LessonTypeQuiz,
		LessonTypeExercise, LessonTypeResource, LessonTypeDocument:
		return true
	}
	return false
}

// Module represents an ordered group of lessons inside a course
type Module struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order"`
}

// Lesson represents a single unit of course content
type Lesson struct {
	ID          int        `json:"id"`
	ModuleID    int        `json:"moduleId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        LessonType `json:"type"`
	// Content is an opaque payload (rendered by the frontend); nullable
	Content *string `json:"content,omitempty"`
	VideoURL *string `json:"videoUrl,omitempty"`
	// Duration is an "HH:MM:SS" string for video lessons; nullable
	Duration   *string `json:"duration,omitempty"`
	OrderIndex int     `json:"order"`
	IsPreview  bool    `json:"isPreview"`
}

// LessonWithCompletion is a lesson augmented with the caller's completion flag
type LessonWithCompletion struct {
	Lesson
	Completed bool `json:"completed"`
}

// ModuleWithLessons is a module with its ordered lessons
type ModuleWithLessons struct {
	Module
	Lessons []LessonWithCompletion `json:"lessons"`
}

// LessonDetailResponse is the lesson page payload with navigation context
type LessonDetailResponse struct {
	Lesson
	CourseID     int  `json:"courseId"`
	PrevLessonID *int `json:"prevLessonId"`
	NextLessonID *int `json:"nextLessonId"`
	Completed    bool `json:"completed"`
}
