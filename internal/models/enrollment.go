package models

import "time"

// Enrollment records that a user has joined a course.
// The (user, course) pair is unique.
type Enrollment struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	CourseID   int       `json:"courseId"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolledAt"`
}

// EnrollmentStatusActive is the default status of a new enrollment
const EnrollmentStatusActive = "active"

// EnrollRequest represents a request to enroll in a course
type EnrollRequest struct {
	CourseID int `json:"courseId"`
}

// Progress records that a user completed a specific lesson.
// The (user, lesson) pair is unique and the row is immutable once created.
type Progress struct {
	ID       int `json:"id"`
	UserID   int `json:"userId"`
	LessonID int `json:"lessonId"`
	// CourseID is denormalized from the lesson's module for cheap
	// per-course aggregation
	CourseID    int       `json:"courseId"`
	Status      string    `json:"status"`
	CompletedAt time.Time `json:"completedAt"`
}

// ProgressStatusCompleted is the terminal (and only persisted) progress status
const ProgressStatusCompleted = "completed"
