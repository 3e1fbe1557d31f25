// Package editing provides the pure document transformations applied through
// the editing history.
package editing

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-editor/internal/types"
)

// Mutation maps a document to its successor. Implementations never modify
// their input; a mutation that finds nothing to do returns the input as is.
type Mutation func(types.ResumeDocument) (types.ResumeDocument, error)

// Direction is the way a section moves in the list.
type Direction string

// Directions accepted by Move.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// newID generates identifiers for sections and entries.
var newID = func() string { return uuid.NewString() }

// Move swaps the section at index with its neighbour in dir. Out-of-range
// targets are a no-op.
func Move(index int, dir Direction) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		target := index - 1
		if dir == Down {
			target = index + 1
		} else if dir != Up {
			return doc, fmt.Errorf("%q: %w", dir, ErrInvalidDirection)
		}
		if index < 0 || index >= len(doc.Sections) || target < 0 || target >= len(doc.Sections) {
			return doc, nil
		}
		out := doc.Clone()
		out.Sections[index], out.Sections[target] = out.Sections[target], out.Sections[index]
		return out, nil
	}
}

// Delete removes the section with id. The deletable flag is not enforced here.
func Delete(id string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(id)
		if i < 0 {
			return doc, nil
		}
		out := doc.Clone()
		out.Sections = append(out.Sections[:i], out.Sections[i+1:]...)
		return out, nil
	}
}

// Add appends a new empty section of type t with its default title. A summary
// uses the reserved id and is skipped when one already exists.
func Add(t types.SectionType) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		content, err := t.EmptyContent()
		if err != nil {
			return doc, fmt.Errorf("%q: %w", t, ErrUnknownSectionType)
		}

		id := newID()
		if t == types.SectionSummary {
			if doc.SectionIndex(types.SummarySectionID) >= 0 || doc.HasSectionType(types.SectionSummary) {
				return doc, nil
			}
			id = types.SummarySectionID
		}

		out := doc.Clone()
		out.Sections = append(out.Sections, types.Section{
			ID:        id,
			Title:     t.DefaultTitle(),
			Type:      t,
			Deletable: t != types.SectionSummary,
			Content:   content,
		})
		return out, nil
	}
}

// SetContent replaces the content of section id. Content whose shape does not
// match the section type is rejected with ErrContentMismatch.
func SetContent(id string, content types.Content) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(id)
		if i < 0 {
			return doc, nil
		}
		if content == nil || !doc.Sections[i].Type.Accepts(content) {
			return doc, fmt.Errorf("section %q (%s): %w", id, doc.Sections[i].Type, ErrContentMismatch)
		}
		out := doc.Clone()
		out.Sections[i].Content = content
		out.Sections[i] = out.Sections[i].Clone()
		return out, nil
	}
}

// SetTitle replaces the display title of section id.
func SetTitle(id, title string) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(id)
		if i < 0 {
			return doc, nil
		}
		out := doc.Clone()
		out.Sections[i].Title = title
		return out, nil
	}
}

// Replace installs a complete document after checking its invariants.
func Replace(next types.ResumeDocument) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		if err := next.Validate(); err != nil {
			return doc, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		return next.Clone(), nil
	}
}

// Chain applies mutations in order against each intermediate result. The first
// error aborts the chain and returns the original document.
func Chain(ms ...Mutation) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		cur := doc
		for _, m := range ms {
			next, err := m(cur)
			if err != nil {
				return doc, err
			}
			cur = next
		}
		return cur, nil
	}
}
