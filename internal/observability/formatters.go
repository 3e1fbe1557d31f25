// Package observability provides logging, metrics and formatted output for
// verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// PrintDocument outputs the identity block and a one-line summary per section.
func (p *Printer) PrintDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", doc.Name))
	sb.WriteString(fmt.Sprintf("Title:    %s\n", doc.Title))
	if doc.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", doc.Contact.Email))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Sections (%d):\n", len(doc.Sections)))

	for i, s := range doc.Sections {
		sb.WriteString(fmt.Sprintf("  %d. %s [%s] %s\n", i+1, s.Title, s.Type, describeContent(s.Content)))
	}

	p.printBox("RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

func describeContent(c types.Content) string {
	switch c := c.(type) {
	case types.SummaryContent:
		return fmt.Sprintf("%d words", len(strings.Fields(c.Text)))
	case types.ExperienceContent:
		return countOf(len(c.Entries), "entry", "entries")
	case types.EducationContent:
		return countOf(len(c.Entries), "entry", "entries")
	case types.ProjectsContent:
		return countOf(len(c.Entries), "project", "projects")
	case types.ItemListContent:
		return countOf(len(c.Items), "item", "items")
	case types.SkillsContent:
		n := 0
		for _, cat := range c.Categories {
			n += len(cat.Skills)
		}
		return fmt.Sprintf("%s, %s", countOf(len(c.Categories), "category", "categories"), countOf(n, "skill", "skills"))
	default:
		return "empty"
	}
}

func countOf(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}

// PrintSkills outputs the skills of every skills section, one row per category.
func (p *Printer) PrintSkills(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	for _, s := range doc.Sections {
		skills, ok := s.Content.(types.SkillsContent)
		if !ok {
			continue
		}
		count := min(len(skills.Categories), maxItemsToShow)
		for i := 0; i < count; i++ {
			cat := skills.Categories[i]
			sb.WriteString(fmt.Sprintf("• %s: %s\n", cat.Name, strings.Join(cat.Skills, ", ")))
		}
		if len(skills.Categories) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills.Categories)-maxItemsToShow))
		}
	}
	if sb.Len() == 0 {
		return
	}

	p.printBox("SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExport outputs which path produced the PDF and any notices raised on the way.
func (p *Printer) PrintExport(path string, size int, notices []string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Path:     %s\n", path))
	sb.WriteString(fmt.Sprintf("Size:     %d bytes", size))
	if len(notices) > 0 {
		sb.WriteString("\n\nNotices:")
		for _, n := range notices {
			sb.WriteString(fmt.Sprintf("\n⚠ %s", n))
		}
	}

	p.printBox("PDF EXPORT", sb.String())
}
