package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/coursebuddy/internal/store"
)

const sampleCatalog = `{
  "version": "1.0.0",
  "courses": [
    {
      "id": "go-101",
      "title": "Go Basics",
      "description": "Types, functions and packages",
      "difficulty": 1,
      "credits": 10,
      "recommended_for": ["backend"],
      "materials": [{"title": "Tour notes", "content": "..."}],
      "videos": [{"title": "Hello Go", "url": "https://example.com/v/1"}],
      "questions": [{"text": "Keyword for functions?", "options": ["fn", "func"], "answer": 1}]
    },
    {"id": "sql-101", "title": "SQL Basics"}
  ]
}`

func newImporter(t *testing.T) (*Importer, store.CourseRepo) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return &Importer{Courses: s.CourseRepo()}, s.CourseRepo()
}

func withVersion(t *testing.T, v string) *File {
	t.Helper()
	f, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	f.Version = v
	return f
}

func TestParse_Valid(t *testing.T) {
	f, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", f.Version)
	require.Len(t, f.Courses, 2)
	assert.Equal(t, "Go Basics", f.Courses[0].Title)
	assert.Equal(t, 1, f.Courses[0].Questions[0].Answer)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing version", `{"courses": []}`},
		{"missing title", `{"version": "1.0.0", "courses": [{"id": "a"}]}`},
		{"difficulty too high", `{"version": "1.0.0", "courses": [{"id": "a", "title": "A", "difficulty": 9}]}`},
		{"bad semver", `{"version": "latest", "courses": []}`},
		{"duplicate id", `{"version": "1.0.0", "courses": [{"id": "a", "title": "A"}, {"id": "a", "title": "B"}]}`},
		{"answer out of range", `{"version": "1.0.0", "courses": [{"id": "a", "title": "A",
			"questions": [{"text": "q", "options": ["x", "y"], "answer": 2}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestImport_StoresCourses(t *testing.T) {
	ctx := context.Background()
	im, courses := newImporter(t)

	res, err := im.Import(ctx, withVersion(t, "1.0.0"), false)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Courses)
	assert.Empty(t, res.Previous)

	c, err := courses.Get(ctx, "go-101")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 10, c.Credits)
	require.Len(t, c.Videos, 1)
	assert.Equal(t, "https://example.com/v/1", c.Videos[0].URL)
	require.Len(t, c.Questions, 1)

	v, err := courses.CatalogVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}

func TestImport_VersionGate(t *testing.T) {
	ctx := context.Background()
	im, _ := newImporter(t)

	_, err := im.Import(ctx, withVersion(t, "1.2.0"), false)
	require.NoError(t, err)

	_, err = im.Import(ctx, withVersion(t, "1.2.0"), false)
	assert.ErrorIs(t, err, ErrNotNewer)

	_, err = im.Import(ctx, withVersion(t, "v1.1.9"), false)
	assert.ErrorIs(t, err, ErrNotNewer)

	res, err := im.Import(ctx, withVersion(t, "1.1.0"), true)
	require.NoError(t, err, "force bypasses the gate")
	assert.Equal(t, "1.2.0", res.Previous)

	_, err = im.Import(ctx, withVersion(t, "1.10.0"), false)
	assert.NoError(t, err, "semver ordering, not string ordering")
}

func TestWatch_ReimportsOnChange(t *testing.T) {
	im, courses := newImporter(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	imported := make(chan Result, 4)
	done := make(chan error, 1)
	go func() { done <- im.Watch(ctx, path, func(r Result) { imported <- r }) }()

	select {
	case r := <-imported:
		assert.Equal(t, "1.0.0", r.Version)
	case <-time.After(5 * time.Second):
		t.Fatal("initial import did not happen")
	}

	f := withVersion(t, "1.1.0")
	f.Courses = append(f.Courses, Course{ID: "rust-101", Title: "Rust Basics"})
	raw, err := json.Marshal(f)
	require.NoError(t, err)

	// The watcher may not be registered yet; keep rewriting until it is seen.
	deadline := time.After(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(path, raw, 0o644))
		select {
		case r := <-imported:
			assert.Equal(t, "1.1.0", r.Version)
			c, err := courses.Get(context.Background(), "rust-101")
			require.NoError(t, err)
			assert.NotNil(t, c)
			cancel()
			assert.NoError(t, <-done)
			return
		case <-time.After(500 * time.Millisecond):
		case <-deadline:
			t.Fatal("change was not imported")
		}
	}
}
