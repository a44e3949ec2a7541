package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/codecampus/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

const lessonColumns = "id, module_id, title, description, type, content, video_url, duration, order_index, is_preview"

func scanLesson(row interface{ Scan(...any) error }, lesson *models.Lesson) error {
	return row.Scan(
		&lesson.ID,
		&lesson.ModuleID,
		&lesson.Title,
		&lesson.Description,
		&lesson.Type,
		&lesson.Content,
		&lesson.VideoURL,
		&lesson.Duration,
		&lesson.OrderIndex,
		&lesson.IsPreview,
	)
}

// GetByID retrieves a lesson by ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`, lessonColumns)

	var lesson models.Lesson
	err := scanLesson(r.db.QueryRowContext(ctx, query, id), &lesson)

	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByCourseID retrieves all lessons of a course in module order, then
// lesson order. This is the canonical course-wide ordering used for
// prev/next navigation and the first-lesson pointer.
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int) ([]models.Lesson, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM lessons l
		JOIN modules m ON m.id = l.module_id
		WHERE m.course_id = ?
		ORDER BY m.order_index, m.id, l.order_index, l.id
	`, prefixColumns(lessonColumns, "l"))

	return r.queryLessons(ctx, query, courseID)
}

// CountGroupedByCourse counts lessons per course for the given course ids
func (r *lessonRepository) CountGroupedByCourse(ctx context.Context, courseIDs []int) (map[int]int, error) {
	if len(courseIDs) == 0 {
		return map[int]int{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(courseIDs)), ",")
	query := fmt.Sprintf(`
		SELECT m.course_id, COUNT(l.id)
		FROM lessons l
		JOIN modules m ON m.id = l.module_id
		WHERE m.course_id IN (%s)
		GROUP BY m.course_id
	`, placeholders)

	args := make([]any, len(courseIDs))
	for i, id := range courseIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var courseID, count int
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan lesson count: %w", err)
		}
		counts[courseID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return counts, nil
}

// Create inserts a new lesson
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (module_id, title, description, type, content, video_url, duration, order_index, is_preview)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.ModuleID,
		lesson.Title,
		lesson.Description,
		lesson.Type,
		lesson.Content,
		lesson.VideoURL,
		lesson.Duration,
		lesson.OrderIndex,
		lesson.IsPreview,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

func (r *lessonRepository) queryLessons(ctx context.Context, query string, args ...any) ([]models.Lesson, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		var lesson models.Lesson
		if err := scanLesson(rows, &lesson); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// prefixColumns qualifies a comma-separated column list with a table alias
func prefixColumns(columns, alias string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
