// Package course holds the embedded course catalog used by the e-learning
// assistant to build course-scoped query context.
package course

import (
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

//go:embed courses.json
var catalogJSON []byte

// Material is one learning resource of a chapter.
type Material struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
	URL   string `json:"url"`
}

// Chapter of a course.
type Chapter struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Materials   []Material `json:"materials,omitempty"`
}

// Course as presented to students. Its ID doubles as the backend collection
// name for course-scoped retrieval.
type Course struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Instructor  string    `json:"instructor"`
	Schedule    string    `json:"schedule"`
	Chapters    []Chapter `json:"chapters"`
}

// ChapterTitles returns the chapter titles in order, the form sent as course
// context to the backend.
func (c *Course) ChapterTitles() []string {
	titles := make([]string, 0, len(c.Chapters))
	for _, chapter := range c.Chapters {
		titles = append(titles, chapter.Title)
	}
	return titles
}

var (
	loadOnce sync.Once
	catalog  []Course
	loadErr  error
)

// Catalog returns all courses.
func Catalog() ([]Course, error) {
	loadOnce.Do(func() {
		loadErr = json.Unmarshal(catalogJSON, &catalog)
	})
	if loadErr != nil {
		return nil, errors.Wrap(loadErr, "parsing course catalog")
	}
	return catalog, nil
}

// Find returns the course with the given id or code.
func Find(id string) (*Course, bool) {
	courses, err := Catalog()
	if err != nil {
		return nil, false
	}
	for i := range courses {
		if courses[i].ID == id || courses[i].Code == id {
			return &courses[i], true
		}
	}
	return nil, false
}
