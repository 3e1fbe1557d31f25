package editing

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// SplitLines turns a multi-line text block into responsibility lines. Blank
// lines are kept so the editing surface round-trips exactly.
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// NewWorkExperience returns an empty experience entry with a fresh id.
func NewWorkExperience() types.WorkExperience {
	return types.WorkExperience{ID: newID(), Responsibilities: []string{}}
}

// NewEducation returns an empty education entry with a fresh id.
func NewEducation() types.Education {
	return types.Education{ID: newID()}
}

// NewProject returns an empty project with a fresh id.
func NewProject() types.Project {
	return types.Project{ID: newID()}
}

// NewCustomItem returns an empty list item with a fresh id.
func NewCustomItem() types.CustomItem {
	return types.CustomItem{ID: newID()}
}

// AddEntry appends a new empty entry to a list section. Summary and skills
// sections have no entries and yield ErrContentMismatch.
func AddEntry(sectionID string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(sectionID)
		if i < 0 {
			return doc, nil
		}

		var next types.Content
		switch c := doc.Sections[i].Content.(type) {
		case types.ExperienceContent:
			next = types.ExperienceContent{Entries: append(append([]types.WorkExperience{}, c.Entries...), NewWorkExperience())}
		case types.EducationContent:
			next = types.EducationContent{Entries: append(append([]types.Education{}, c.Entries...), NewEducation())}
		case types.ProjectsContent:
			next = types.ProjectsContent{Entries: append(append([]types.Project{}, c.Entries...), NewProject())}
		case types.ItemListContent:
			next = types.ItemListContent{Items: append(append([]types.CustomItem{}, c.Items...), NewCustomItem())}
		default:
			return doc, fmt.Errorf("section %q has no entries: %w", sectionID, ErrContentMismatch)
		}
		return SetContent(sectionID, next)(doc)
	}
}

// RemoveEntry drops the entry with entryID from a list section. Unknown ids
// are a no-op.
func RemoveEntry(sectionID, entryID string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(sectionID)
		if i < 0 {
			return doc, nil
		}

		var next types.Content
		switch c := doc.Sections[i].Content.(type) {
		case types.ExperienceContent:
			next = types.ExperienceContent{Entries: without(c.Entries, func(e types.WorkExperience) bool { return e.ID == entryID })}
		case types.EducationContent:
			next = types.EducationContent{Entries: without(c.Entries, func(e types.Education) bool { return e.ID == entryID })}
		case types.ProjectsContent:
			next = types.ProjectsContent{Entries: without(c.Entries, func(e types.Project) bool { return e.ID == entryID })}
		case types.ItemListContent:
			next = types.ItemListContent{Items: without(c.Items, func(e types.CustomItem) bool { return e.ID == entryID })}
		default:
			return doc, fmt.Errorf("section %q has no entries: %w", sectionID, ErrContentMismatch)
		}
		return SetContent(sectionID, next)(doc)
	}
}

func without[E any](in []E, drop func(E) bool) []E {
	out := make([]E, 0, len(in))
	for _, e := range in {
		if !drop(e) {
			out = append(out, e)
		}
	}
	return out
}
