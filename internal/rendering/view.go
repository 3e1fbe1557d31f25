package rendering

import (
	"html/template"
	"strings"

	"github.com/jonathan/resume-editor/internal/types"
)

// Page dimensions of the unscaled layout, in CSS pixels (A4 at 96 DPI).
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

// PreviewScale is the uniform factor that fits the page into containerWidth.
// The page is never enlarged.
func PreviewScale(containerWidth float64) float64 {
	if containerWidth <= 0 {
		return 0
	}
	return min(1, containerWidth/PageWidthPx)
}

// FormatURL prefixes https:// when url has no http or https scheme.
func FormatURL(url string) string {
	if url == "" {
		return ""
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

type contactItem struct {
	Kind  string
	Value string
	Href  template.URL
	Link  bool
}

// contactItems lists the non-empty contact fields in display order.
func contactItems(c types.ContactInfo) []contactItem {
	var items []contactItem
	if c.Email != "" {
		// #nosec G203 -- mailto scheme is fixed
		items = append(items, contactItem{Kind: "email", Value: c.Email, Href: template.URL("mailto:" + c.Email), Link: true})
	}
	if c.Phone != "" {
		items = append(items, contactItem{Kind: "phone", Value: c.Phone})
	}
	if c.Location != "" {
		items = append(items, contactItem{Kind: "location", Value: c.Location})
	}
	if c.LinkedIn != "" {
		items = append(items, contactItem{Kind: "linkedin", Value: c.LinkedIn, Href: safeURL(c.LinkedIn), Link: true})
	}
	if c.GitHub != "" {
		items = append(items, contactItem{Kind: "github", Value: c.GitHub, Href: safeURL(c.GitHub), Link: true})
	}
	return items
}

// safeURL normalizes u to an http(s) URL trusted by html/template.
func safeURL(u string) template.URL {
	// #nosec G203 -- FormatURL forces an http(s) scheme
	return template.URL(FormatURL(u))
}

type experienceView struct {
	Role, Company, Duration string
	Bullets                 []string
}

type educationView struct {
	Institution, Degree, Duration string
}

type projectView struct {
	Name, Description string
}

type skillRow struct {
	Category string
	Skills   string
}

type itemView struct {
	Title, Subtitle, Description string
}

// sectionView is the template-facing form of a section. Exactly one of the
// content fields is populated, selected by Kind.
type sectionView struct {
	ID    string
	Title string
	Kind  string
	Mono  bool

	Summary    string
	Experience []experienceView
	Education  []educationView
	Projects   []projectView
	Skills     []skillRow
	Items      []itemView
}

type pageView struct {
	Template  string
	Name      string
	Title     string
	Contact   []contactItem
	Separator string
	Sections  []sectionView
	Sidebar   []sectionView
	Main      []sectionView
	Vars      template.CSS
	Width     int
	Height    int
}

// separators maps each template to the glyph between contact items.
var separators = map[types.Template]string{
	types.TemplateClassic:   "|",
	types.TemplateCorporate: "|",
	types.TemplateExecutive: "•",
	types.TemplateTechnical: "//",
}

func buildPage(doc types.ResumeDocument, tpl types.Template, pal Palette) pageView {
	mono := tpl == types.TemplateTechnical
	page := pageView{
		Template:  string(tpl),
		Name:      doc.Name,
		Title:     doc.Title,
		Contact:   contactItems(doc.Contact),
		Separator: separators[tpl],
		Vars:      pal.Vars(),
		Width:     PageWidthPx,
		Height:    PageHeightPx,
	}
	for _, s := range doc.Sections {
		v := buildSection(s, mono)
		page.Sections = append(page.Sections, v)
		if inSidebar(s.Type) {
			page.Sidebar = append(page.Sidebar, v)
		} else {
			page.Main = append(page.Main, v)
		}
	}
	return page
}

// inSidebar reports whether the creative layout places t in the sidebar.
func inSidebar(t types.SectionType) bool {
	return t == types.SectionSkills || t == types.SectionEducation
}

func buildSection(s types.Section, mono bool) sectionView {
	v := sectionView{ID: s.ID, Title: s.Title, Mono: mono}

	switch c := s.Content.(type) {
	case types.SummaryContent:
		v.Kind = "summary"
		v.Summary = c.Text
	case types.ExperienceContent:
		v.Kind = "experience"
		for _, e := range c.Entries {
			v.Experience = append(v.Experience, experienceView{
				Role:     e.Role,
				Company:  e.Company,
				Duration: e.Duration,
				Bullets:  nonBlank(e.Responsibilities),
			})
		}
	case types.EducationContent:
		v.Kind = "education"
		for _, e := range c.Entries {
			v.Education = append(v.Education, educationView{Institution: e.Institution, Degree: e.Degree, Duration: e.Duration})
		}
	case types.ProjectsContent:
		v.Kind = "projects"
		for _, p := range c.Entries {
			v.Projects = append(v.Projects, projectView{Name: p.Name, Description: p.Description})
		}
	case types.SkillsContent:
		v.Kind = "skills"
		for _, cat := range c.Categories {
			v.Skills = append(v.Skills, skillRow{Category: cat.Name, Skills: strings.Join(cat.Skills, ", ")})
		}
	case types.ItemListContent:
		v.Kind = "items"
		for _, it := range c.Items {
			v.Items = append(v.Items, itemView{Title: it.Title, Subtitle: it.Subtitle, Description: it.Description})
		}
	}
	return v
}

// nonBlank drops lines that are empty after trimming.
func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
