// Package importfile reads article import files.
//
// A file is a YAML sequence of records:
//
//	# articles.yaml
//	- title: Ada Lovelace
//	  slug: ada-lovelace                # optional, derived from title
//	  content: |
//	    Ada Lovelace was a mathematician...
//	  image_url: /images/ada.png        # optional
//	  created_at: 2024-03-01T12:00:00Z  # optional
package importfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	artUC "williampedia/internal/usecase/article"
)

// Record is one article in an import file.
type Record struct {
	Title     string     `yaml:"title"`
	Slug      string     `yaml:"slug"`
	Content   string     `yaml:"content"`
	ImageURL  string     `yaml:"image_url"`
	CreatedAt *time.Time `yaml:"created_at"`
}

// Input converts the record to the use case input.
func (r Record) Input() artUC.CreateInput {
	in := artUC.CreateInput{
		Title:    r.Title,
		Slug:     r.Slug,
		Content:  r.Content,
		ImageURL: r.ImageURL,
	}
	if r.CreatedAt != nil {
		in.CreatedAt = *r.CreatedAt
	}
	return in
}

// Parse decodes records from r. Unknown keys are rejected so that typos
// such as "imageUrl" do not silently drop data.
func Parse(r io.Reader) ([]Record, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var records []Record
	if err := dec.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse import file: %w", err)
	}
	return records, nil
}

// Load reads and parses the file at path.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Inputs converts records in order.
func Inputs(records []Record) []artUC.CreateInput {
	out := make([]artUC.CreateInput, len(records))
	for i, r := range records {
		out[i] = r.Input()
	}
	return out
}
