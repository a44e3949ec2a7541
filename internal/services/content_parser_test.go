package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codecampus/backend/internal/models"
)

func TestParseCourseContent_JSON(t *testing.T) {
	payload := []byte(`{
		"modules": [
			{
				"title": "Getting Started",
				"description": "Toolchain and workspace",
				"lessons": [
					{"title": "Why Go", "type": "video", "videoUrl": "/media/why-go.mp4", "duration": "00:08:30"},
					{"title": "First Program", "type": "exercise", "content": "Write hello world"}
				]
			}
		]
	}`)

	content, err := parseCourseContent(payload, "course.json")

	require.NoError(t, err)
	require.Len(t, content.Modules, 1)
	module := content.Modules[0]
	assert.Equal(t, "Getting Started", module.Title)
	require.Len(t, module.Lessons, 2)
	assert.Equal(t, "video", module.Lessons[0].Type)
	assert.Equal(t, "/media/why-go.mp4", module.Lessons[0].VideoURL)
	assert.Equal(t, "Write hello world", module.Lessons[1].Content)
}

func TestParseCourseContent_JSONDetectedByPrefix(t *testing.T) {
	content, err := parseCourseContent([]byte(`  {"modules":[{"title":"M1"}]}`), "course.txt")

	require.NoError(t, err)
	require.Len(t, content.Modules, 1)
	assert.Equal(t, "M1", content.Modules[0].Title)
}

func TestParseCourseContent_InvalidJSON(t *testing.T) {
	_, err := parseCourseContent([]byte(`{"modules": [`), "course.json")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseTextContent(t *testing.T) {
	payload := []byte(`# Getting Started
## Why Go
Go compiles fast and deploys as a single binary.
It has a small language surface.

## First Program
Write hello world.

# The Language
## Structs and Methods
`)

	content, err := parseCourseContent(payload, "course.md")

	require.NoError(t, err)
	require.Len(t, content.Modules, 2)

	first := content.Modules[0]
	assert.Equal(t, "Getting Started", first.Title)
	require.Len(t, first.Lessons, 2)
	assert.Equal(t, "Why Go", first.Lessons[0].Title)
	assert.Equal(t, string(models.LessonTypeText), first.Lessons[0].Type)
	assert.Equal(t, "Go compiles fast and deploys as a single binary.\nIt has a small language surface.", first.Lessons[0].Content)
	assert.Equal(t, "Write hello world.", first.Lessons[1].Content)

	second := content.Modules[1]
	assert.Equal(t, "The Language", second.Title)
	require.Len(t, second.Lessons, 1)
	assert.Equal(t, "Structs and Methods", second.Lessons[0].Title)
	assert.Empty(t, second.Lessons[0].Content)
}

func TestParseTextContent_ModuleWithoutLessons(t *testing.T) {
	content, err := parseCourseContent([]byte("# Only a module"), "course.txt")

	require.NoError(t, err)
	require.Len(t, content.Modules, 1)
	assert.Empty(t, content.Modules[0].Lessons)
}

func TestParseTextContent_LessonBeforeModule(t *testing.T) {
	_, err := parseCourseContent([]byte("## Orphan lesson\n# Module"), "course.txt")

	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseTextContent_NoHeadings(t *testing.T) {
	_, err := parseCourseContent([]byte("just prose with no structure"), "course.txt")

	assert.ErrorIs(t, err, models.ErrValidation)
}
