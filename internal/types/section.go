// Package types provides type definitions for the resume document model shared by the editor.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// SectionType tags a section with the shape of its content.
type SectionType string

// Section type tags. The item-list family (custom, certifications, awards,
// volunteer, interests) shares the CustomItem list shape.
const (
	SectionSummary        SectionType = "summary"
	SectionExperience     SectionType = "experience"
	SectionEducation      SectionType = "education"
	SectionProjects       SectionType = "projects"
	SectionSkills         SectionType = "skills"
	SectionCustom         SectionType = "custom"
	SectionCertifications SectionType = "certifications"
	SectionAwards         SectionType = "awards"
	SectionVolunteer      SectionType = "volunteer"
	SectionInterests      SectionType = "interests"
)

// SummarySectionID is the reserved identifier of the single summary section.
const SummarySectionID = "summary"

// SectionTypes returns every section type in the order the editor offers them.
func SectionTypes() []SectionType {
	return []SectionType{
		SectionSummary,
		SectionExperience,
		SectionEducation,
		SectionProjects,
		SectionSkills,
		SectionCertifications,
		SectionAwards,
		SectionVolunteer,
		SectionInterests,
		SectionCustom,
	}
}

// Valid reports whether t is a known section type.
func (t SectionType) Valid() bool {
	switch t {
	case SectionSummary, SectionExperience, SectionEducation, SectionProjects, SectionSkills,
		SectionCustom, SectionCertifications, SectionAwards, SectionVolunteer, SectionInterests:
		return true
	}
	return false
}

// IsItemList reports whether t belongs to the CustomItem list family.
func (t SectionType) IsItemList() bool {
	switch t {
	case SectionCustom, SectionCertifications, SectionAwards, SectionVolunteer, SectionInterests:
		return true
	}
	return false
}

// DefaultTitle is the title given to a freshly added section of this type.
func (t SectionType) DefaultTitle() string {
	switch t {
	case SectionSummary:
		return "Professional Summary"
	case SectionExperience:
		return "Work Experience"
	case SectionEducation:
		return "Education"
	case SectionProjects:
		return "Projects"
	case SectionSkills:
		return "Skills"
	case SectionCertifications:
		return "Certifications"
	case SectionAwards:
		return "Awards"
	case SectionVolunteer:
		return "Volunteer Experience"
	case SectionInterests:
		return "Interests"
	case SectionCustom:
		return "Custom Section"
	}
	return string(t)
}

// EmptyContent returns the empty content value matching t.
func (t SectionType) EmptyContent() (Content, error) {
	switch {
	case t == SectionSummary:
		return SummaryContent{}, nil
	case t == SectionExperience:
		return ExperienceContent{}, nil
	case t == SectionEducation:
		return EducationContent{}, nil
	case t == SectionProjects:
		return ProjectsContent{}, nil
	case t == SectionSkills:
		return SkillsContent{}, nil
	case t.IsItemList():
		return ItemListContent{}, nil
	}
	return nil, fmt.Errorf("unknown section type %q", t)
}

// Accepts reports whether c has the content shape required by t.
func (t SectionType) Accepts(c Content) bool {
	switch c.(type) {
	case SummaryContent:
		return t == SectionSummary
	case ExperienceContent:
		return t == SectionExperience
	case EducationContent:
		return t == SectionEducation
	case ProjectsContent:
		return t == SectionProjects
	case SkillsContent:
		return t == SectionSkills
	case ItemListContent:
		return t.IsItemList()
	}
	return false
}

// Section is a titled, typed, reorderable block of resume content.
type Section struct {
	ID        string      `json:"id"`
	Title     string      `json:"title"`
	Type      SectionType `json:"type"`
	Deletable bool        `json:"isDeletable"`
	Content   Content     `json:"content"`
}

// Equal reports deep structural equality.
func (s Section) Equal(o Section) bool {
	if s.ID != o.ID || s.Title != o.Title || s.Type != o.Type || s.Deletable != o.Deletable {
		return false
	}
	return contentEqual(s.Content, o.Content)
}

// Clone returns a copy sharing no mutable state with s.
func (s Section) Clone() Section {
	out := s
	if s.Content != nil {
		out.Content = s.Content.clone()
	}
	return out
}

// WorkExperience is one entry of an experience section.
type WorkExperience struct {
	ID               string   `json:"id"`
	Company          string   `json:"company"`
	Role             string   `json:"role"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
}

// Education is one entry of an education section.
type Education struct {
	ID          string `json:"id"`
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Duration    string `json:"duration"`
}

// Project is one entry of a projects section.
type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CustomItem is one entry of any item-list section.
type CustomItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}
