package types

import (
	"encoding/json"
	"fmt"
)

// ContactInfo is the contact block of a resume. All fields are free text.
type ContactInfo struct {
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Location string `json:"location"`
}

// ResumeDocument is one immutable snapshot of a resume. Section order is
// render order.
type ResumeDocument struct {
	Name     string      `json:"name"`
	Title    string      `json:"title"`
	Contact  ContactInfo `json:"contact"`
	Sections []Section   `json:"sections"`
}

// Equal reports deep structural equality, covering every section, nested
// list and skills map. Nil and empty lists compare equal.
func (d ResumeDocument) Equal(o ResumeDocument) bool {
	if d.Name != o.Name || d.Title != o.Title || d.Contact != o.Contact {
		return false
	}
	if len(d.Sections) != len(o.Sections) {
		return false
	}
	for i := range d.Sections {
		if !d.Sections[i].Equal(o.Sections[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy sharing no slices with d.
func (d ResumeDocument) Clone() ResumeDocument {
	out := d
	out.Sections = make([]Section, len(d.Sections))
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// SectionIndex returns the position of the section with the given id, or -1.
func (d ResumeDocument) SectionIndex(id string) int {
	for i, s := range d.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// HasSectionType reports whether any section has type t.
func (d ResumeDocument) HasSectionType(t SectionType) bool {
	for _, s := range d.Sections {
		if s.Type == t {
			return true
		}
	}
	return false
}

// Validate checks the document invariants: known types, unique ids, content
// shapes matching type tags, and the reserved summary id.
func (d ResumeDocument) Validate() error {
	seen := make(map[string]bool, len(d.Sections))
	summaries := 0
	for i, s := range d.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d: id is empty", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("section %d: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true

		if !s.Type.Valid() {
			return fmt.Errorf("section %q: unknown type %q", s.ID, s.Type)
		}
		if s.Content == nil || !s.Type.Accepts(s.Content) {
			return fmt.Errorf("section %q: content does not match type %q", s.ID, s.Type)
		}

		if s.Type == SectionSummary {
			summaries++
			if s.ID != SummarySectionID {
				return fmt.Errorf("section %q: summary sections must use id %q", s.ID, SummarySectionID)
			}
			if s.Deletable {
				return fmt.Errorf("section %q: summary section cannot be deletable", s.ID)
			}
		} else if s.ID == SummarySectionID {
			return fmt.Errorf("section id %q is reserved for the summary section", SummarySectionID)
		}
	}
	if summaries > 1 {
		return fmt.Errorf("document has %d summary sections", summaries)
	}
	return nil
}

// sectionJSON is the wire shape of a section before its content is typed.
type sectionJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      SectionType     `json:"type"`
	Deletable bool            `json:"isDeletable"`
	Content   json.RawMessage `json:"content"`
}

// UnmarshalJSON decodes the content according to the section's type tag.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw sectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := DecodeContent(raw.Type, raw.Content)
	if err != nil {
		return fmt.Errorf("section %q: %w", raw.ID, err)
	}
	*s = Section{
		ID:        raw.ID,
		Title:     raw.Title,
		Type:      raw.Type,
		Deletable: raw.Deletable,
		Content:   content,
	}
	return nil
}

// MarshalJSON keeps the sections array non-null.
func (d ResumeDocument) MarshalJSON() ([]byte, error) {
	type plain ResumeDocument
	p := plain(d)
	if p.Sections == nil {
		p.Sections = []Section{}
	}
	return json.Marshal(p)
}
