// Package catalog imports course catalogs from JSON files into the store.
package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"

	"github.com/abhisek/coursebuddy/internal/learner"
	"github.com/abhisek/coursebuddy/internal/store"
)

//go:embed schema.json
var schemaJSON []byte

// ErrNotNewer is returned when the catalog version is not newer than the
// one already imported.
var ErrNotNewer = errors.New("catalog is not newer than the imported version")

// File is the on-disk catalog document.
type File struct {
	Version string   `json:"version"`
	Courses []Course `json:"courses"`
}

// Course is a catalog course entry.
type Course struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Difficulty     int        `json:"difficulty,omitempty"`
	Credits        int        `json:"credits,omitempty"`
	RecommendedFor []string   `json:"recommended_for,omitempty"`
	Materials      []Material `json:"materials,omitempty"`
	Videos         []Video    `json:"videos,omitempty"`
	Questions      []Question `json:"questions,omitempty"`
}

type Material struct {
	Title   string `json:"title"`
	Content string `json:"content,omitempty"`
}

type Video struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
}

type Question struct {
	Text    string   `json:"text"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Result summarises an import.
type Result struct {
	Version  string
	Previous string
	Courses  int
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", doc); err != nil {
			compileErr = fmt.Errorf("add catalog schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile("schema://catalog.json")
	})
	return compiled, compileErr
}

// Parse validates raw JSON against the catalog schema and decodes it.
func Parse(raw []byte) (*File, error) {
	sch, err := schema()
	if err != nil {
		return nil, err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("catalog validation failed: %w", err)
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if !semver.IsValid(canonical(f.Version)) {
		return nil, fmt.Errorf("catalog version %q is not a semantic version", f.Version)
	}

	seen := make(map[string]bool, len(f.Courses))
	for i, c := range f.Courses {
		if seen[c.ID] {
			return nil, fmt.Errorf("duplicate course id %q", c.ID)
		}
		seen[c.ID] = true
		for j, q := range c.Questions {
			if q.Answer >= len(q.Options) {
				return nil, fmt.Errorf("course %d question %d: answer %d out of range", i, j, q.Answer)
			}
		}
	}
	return &f, nil
}

// ParseFile reads and parses a catalog file.
func ParseFile(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Importer writes catalogs into a CourseRepo.
type Importer struct {
	Courses store.CourseRepo
}

// Import stores every course of f. Unless force is set, the catalog must be
// strictly newer than the last imported version.
func (im *Importer) Import(ctx context.Context, f *File, force bool) (Result, error) {
	prev, err := im.Courses.CatalogVersion(ctx)
	if err != nil {
		return Result{}, err
	}
	res := Result{Version: f.Version, Previous: prev, Courses: len(f.Courses)}

	if !force && prev != "" && semver.Compare(canonical(f.Version), canonical(prev)) <= 0 {
		return res, fmt.Errorf("%w: %s <= %s", ErrNotNewer, f.Version, prev)
	}

	for _, c := range f.Courses {
		if err := im.Courses.Upsert(ctx, c.toCourse()); err != nil {
			return res, fmt.Errorf("import course %q: %w", c.ID, err)
		}
	}
	if err := im.Courses.SetCatalogVersion(ctx, f.Version); err != nil {
		return res, err
	}
	return res, nil
}

// ImportFile parses and imports the catalog at path.
func (im *Importer) ImportFile(ctx context.Context, path string, force bool) (Result, error) {
	f, err := ParseFile(path)
	if err != nil {
		return Result{}, err
	}
	return im.Import(ctx, f, force)
}

func (c Course) toCourse() learner.Course {
	out := learner.Course{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		Difficulty:     c.Difficulty,
		Credits:        c.Credits,
		RecommendedFor: c.RecommendedFor,
	}
	for _, m := range c.Materials {
		out.Materials = append(out.Materials, learner.Material{Title: m.Title, Content: m.Content})
	}
	for _, v := range c.Videos {
		out.Videos = append(out.Videos, learner.Video{Title: v.Title, Description: v.Description, URL: v.URL})
	}
	for _, q := range c.Questions {
		out.Questions = append(out.Questions, learner.Question{Text: q.Text, Options: q.Options, Answer: q.Answer})
	}
	return out
}

// canonical accepts versions with or without the leading "v".
func canonical(v string) string {
	if v != "" && !strings.HasPrefix(v, "v") {
		return "v" + v
	}
	return v
}
