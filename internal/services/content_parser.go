package services

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/codecampus/backend/internal/models"
)

// courseContent is the structured payload an admin can attach to a course
// upload, either as JSON or as heading-delimited plain text
type courseContent struct {
	Modules []moduleContent `json:"modules"`
}

type moduleContent struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Lessons     []lessonContent `json:"lessons"`
}

type lessonContent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	VideoURL    string `json:"videoUrl"`
	Duration    string `json:"duration"`
}

// parseCourseContent parses an uploaded content file. A payload starting with
// "{" (or a .json filename) is decoded as JSON; anything else goes through the
// heading-delimited text format:
//
//	# Module title
//	## Lesson title
//	lesson body lines...
func parseCourseContent(data []byte, filename string) (*courseContent, error) {
	trimmed := bytes.TrimSpace(data)
	if strings.HasSuffix(strings.ToLower(filename), ".json") || bytes.HasPrefix(trimmed, []byte("{")) {
		var content courseContent
		if err := json.Unmarshal(trimmed, &content); err != nil {
			return nil, fmt.Errorf("%w: invalid content JSON: %v", models.ErrValidation, err)
		}
		return &content, nil
	}
	return parseTextContent(trimmed)
}

// parseTextContent builds one module per "#" heading, nests following "##"
// headings as its lessons in encountered order, and accumulates non-heading
// lines as the current lesson's content text
func parseTextContent(data []byte) (*courseContent, error) {
	content := &courseContent{}
	var module *moduleContent
	var lesson *lessonContent
	var body []string

	flushLesson := func() {
		if lesson == nil {
			return
		}
		lesson.Content = strings.TrimSpace(strings.Join(body, "\n"))
		module.Lessons = append(module.Lessons, *lesson)
		lesson = nil
		body = nil
	}
	flushModule := func() {
		flushLesson()
		if module != nil {
			content.Modules = append(content.Modules, *module)
			module = nil
		}
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "## "):
			if module == nil {
				return nil, fmt.Errorf("%w: lesson heading before any module heading", models.ErrValidation)
			}
			flushLesson()
			lesson = &lessonContent{
				Title: strings.TrimSpace(strings.TrimPrefix(line, "## ")),
				Type:  string(models.LessonTypeText),
			}
		case strings.HasPrefix(line, "# "):
			flushModule()
			module = &moduleContent{
				Title: strings.TrimSpace(strings.TrimPrefix(line, "# ")),
			}
		default:
			if lesson != nil {
				body = append(body, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	flushModule()

	if len(content.Modules) == 0 {
		return nil, fmt.Errorf("%w: content file contains no module headings", models.ErrValidation)
	}
	return content, nil
}
