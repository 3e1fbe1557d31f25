package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// SkillCategory is one key of the skills map with its ordered skill names.
type SkillCategory struct {
	Name   string
	Skills []string
}

// SkillsContent maps category names to skill names, preserving category
// insertion order. It encodes as a JSON object whose keys appear in that order.
type SkillsContent struct {
	Categories []SkillCategory
}

func (c SkillsContent) clone() Content {
	cats := make([]SkillCategory, len(c.Categories))
	for i, cat := range c.Categories {
		cats[i] = SkillCategory{Name: cat.Name, Skills: append([]string(nil), cat.Skills...)}
	}
	return SkillsContent{Categories: cats}
}

func (c SkillsContent) equal(o Content) bool {
	other, ok := o.(SkillsContent)
	if !ok || len(c.Categories) != len(other.Categories) {
		return false
	}
	for i, cat := range c.Categories {
		if cat.Name != other.Categories[i].Name || !stringsEqual(cat.Skills, other.Categories[i].Skills) {
			return false
		}
	}
	return true
}

// Skills returns the skills listed under category.
func (c SkillsContent) Skills(category string) ([]string, bool) {
	for _, cat := range c.Categories {
		if cat.Name == category {
			return cat.Skills, true
		}
	}
	return nil, false
}

// WithSkill returns a copy with name appended to category. Both values are
// trimmed; blank input or a case-insensitive duplicate leaves the content
// unchanged. A new category is appended after the existing ones.
func (c SkillsContent) WithSkill(category, name string) SkillsContent {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	out := c.clone().(SkillsContent)
	if category == "" || name == "" {
		return out
	}

	for i, cat := range out.Categories {
		if cat.Name != category {
			continue
		}
		for _, existing := range cat.Skills {
			if strings.EqualFold(existing, name) {
				return out
			}
		}
		out.Categories[i].Skills = append(out.Categories[i].Skills, name)
		return out
	}

	out.Categories = append(out.Categories, SkillCategory{Name: category, Skills: []string{name}})
	return out
}

// WithoutSkill returns a copy with name removed from category. A category
// left empty is removed entirely.
func (c SkillsContent) WithoutSkill(category, name string) SkillsContent {
	out := SkillsContent{Categories: make([]SkillCategory, 0, len(c.Categories))}
	for _, cat := range c.Categories {
		if cat.Name != category {
			out.Categories = append(out.Categories, SkillCategory{Name: cat.Name, Skills: append([]string(nil), cat.Skills...)})
			continue
		}
		kept := make([]string, 0, len(cat.Skills))
		for _, s := range cat.Skills {
			if s != name {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			out.Categories = append(out.Categories, SkillCategory{Name: cat.Name, Skills: kept})
		}
	}
	return out
}

// MarshalJSON writes an object with keys in category order.
func (c SkillsContent) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, cat := range c.Categories {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(cat.Name)
		if err != nil {
			return nil, err
		}
		skills := cat.Skills
		if skills == nil {
			skills = []string{}
		}
		val, err := json.Marshal(skills)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object of string arrays, keeping key order.
// A repeated key replaces the earlier value in place.
func (c *SkillsContent) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("skills content must be a JSON object")
	}

	var cats []SkillCategory
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("skills content: unexpected key %v", tok)
		}
		var skills []string
		if err := dec.Decode(&skills); err != nil {
			return fmt.Errorf("skills content: category %q: %w", name, err)
		}

		replaced := false
		for i := range cats {
			if cats[i].Name == name {
				cats[i].Skills = skills
				replaced = true
				break
			}
		}
		if !replaced {
			cats = append(cats, SkillCategory{Name: name, Skills: skills})
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	c.Categories = cats
	return nil
}
