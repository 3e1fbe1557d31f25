package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Content is the closed set of section content shapes. Every implementation
// lives in this package; callers dispatch with a type switch.
type Content interface {
	json.Marshaler
	clone() Content
	equal(Content) bool
}

// SummaryContent is a single paragraph of text. It encodes as a JSON string.
type SummaryContent struct {
	Text string
}

// ExperienceContent is an ordered list of work experience entries.
type ExperienceContent struct {
	Entries []WorkExperience
}

// EducationContent is an ordered list of education entries.
type EducationContent struct {
	Entries []Education
}

// ProjectsContent is an ordered list of projects.
type ProjectsContent struct {
	Entries []Project
}

// ItemListContent is the shared shape of custom, certifications, awards,
// volunteer and interests sections.
type ItemListContent struct {
	Items []CustomItem
}

func (c SummaryContent) clone() Content { return c }

func (c SummaryContent) equal(o Content) bool {
	other, ok := o.(SummaryContent)
	return ok && c.Text == other.Text
}

// MarshalJSON encodes the summary as a bare string.
func (c SummaryContent) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Text)
}

// UnmarshalJSON decodes a bare string.
func (c *SummaryContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Text)
}

func (c ExperienceContent) clone() Content {
	entries := make([]WorkExperience, len(c.Entries))
	for i, e := range c.Entries {
		e.Responsibilities = append([]string(nil), e.Responsibilities...)
		entries[i] = e
	}
	return ExperienceContent{Entries: entries}
}

func (c ExperienceContent) equal(o Content) bool {
	other, ok := o.(ExperienceContent)
	if !ok || len(c.Entries) != len(other.Entries) {
		return false
	}
	for i, e := range c.Entries {
		f := other.Entries[i]
		if e.ID != f.ID || e.Company != f.Company || e.Role != f.Role || e.Duration != f.Duration {
			return false
		}
		if !stringsEqual(e.Responsibilities, f.Responsibilities) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the entries as a JSON array, never null.
func (c ExperienceContent) MarshalJSON() ([]byte, error) {
	entries := make([]WorkExperience, len(c.Entries))
	for i, e := range c.Entries {
		if e.Responsibilities == nil {
			e.Responsibilities = []string{}
		}
		entries[i] = e
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes a JSON array of entries.
func (c *ExperienceContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Entries)
}

func (c EducationContent) clone() Content {
	return EducationContent{Entries: append([]Education{}, c.Entries...)}
}

func (c EducationContent) equal(o Content) bool {
	other, ok := o.(EducationContent)
	if !ok || len(c.Entries) != len(other.Entries) {
		return false
	}
	for i := range c.Entries {
		if c.Entries[i] != other.Entries[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the entries as a JSON array, never null.
func (c EducationContent) MarshalJSON() ([]byte, error) {
	if c.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Entries)
}

// UnmarshalJSON decodes a JSON array of entries.
func (c *EducationContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Entries)
}

func (c ProjectsContent) clone() Content {
	return ProjectsContent{Entries: append([]Project{}, c.Entries...)}
}

func (c ProjectsContent) equal(o Content) bool {
	other, ok := o.(ProjectsContent)
	if !ok || len(c.Entries) != len(other.Entries) {
		return false
	}
	for i := range c.Entries {
		if c.Entries[i] != other.Entries[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the entries as a JSON array, never null.
func (c ProjectsContent) MarshalJSON() ([]byte, error) {
	if c.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Entries)
}

// UnmarshalJSON decodes a JSON array of entries.
func (c *ProjectsContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Entries)
}

func (c ItemListContent) clone() Content {
	return ItemListContent{Items: append([]CustomItem{}, c.Items...)}
}

func (c ItemListContent) equal(o Content) bool {
	other, ok := o.(ItemListContent)
	if !ok || len(c.Items) != len(other.Items) {
		return false
	}
	for i := range c.Items {
		if c.Items[i] != other.Items[i] {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the items as a JSON array, never null.
func (c ItemListContent) MarshalJSON() ([]byte, error) {
	if c.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Items)
}

// UnmarshalJSON decodes a JSON array of items.
func (c *ItemListContent) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &c.Items)
}

// DecodeContent decodes raw JSON into the content shape required by t.
// A missing or null payload yields the type's empty content.
func DecodeContent(t SectionType, raw json.RawMessage) (Content, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown section type %q", t)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return t.EmptyContent()
	}

	var (
		content Content
		err     error
	)
	switch {
	case t == SectionSummary:
		var c SummaryContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	case t == SectionExperience:
		var c ExperienceContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	case t == SectionEducation:
		var c EducationContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	case t == SectionProjects:
		var c ProjectsContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	case t == SectionSkills:
		var c SkillsContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	case t.IsItemList():
		var c ItemListContent
		err = json.Unmarshal(trimmed, &c)
		content = c
	}
	if err != nil {
		return nil, fmt.Errorf("content does not match section type %q: %w", t, err)
	}
	return content, nil
}

func contentEqual(a, b Content) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.equal(b)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
