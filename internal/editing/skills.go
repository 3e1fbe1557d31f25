package editing

import (
	"fmt"

	"github.com/jonathan/resume-editor/internal/types"
)

// AddSkill adds name under category in a skills section.
func AddSkill(sectionID, category, name string) Mutation {
	return skillsMutation(sectionID, func(c types.SkillsContent) types.SkillsContent {
		return c.WithSkill(category, name)
	})
}

// RemoveSkill removes name from category in a skills section.
func RemoveSkill(sectionID, category, name string) Mutation {
	return skillsMutation(sectionID, func(c types.SkillsContent) types.SkillsContent {
		return c.WithoutSkill(category, name)
	})
}

func skillsMutation(sectionID string, fn func(types.SkillsContent) types.SkillsContent) Mutation {
	return func(doc types.ResumeDocument) (types.ResumeDocument, error) {
		i := doc.SectionIndex(sectionID)
		if i < 0 {
			return doc, nil
		}
		skills, ok := doc.Sections[i].Content.(types.SkillsContent)
		if !ok {
			return doc, fmt.Errorf("section %q is not a skills section: %w", sectionID, ErrContentMismatch)
		}
		return SetContent(sectionID, fn(skills))(doc)
	}
}
