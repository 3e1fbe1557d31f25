package types

// DefaultDocument returns the document every new editing session starts from.
func DefaultDocument() ResumeDocument {
	return ResumeDocument{
		Name:  "Jane Doe",
		Title: "Senior Frontend Engineer",
		Contact: ContactInfo{
			Phone:    "123-456-7890",
			Email:    "jane.doe@email.com",
			LinkedIn: "linkedin.com/in/janedoe",
			GitHub:   "github.com/janedoe",
			Location: "San Francisco, CA",
		},
		Sections: []Section{
			{
				ID:        SummarySectionID,
				Type:      SectionSummary,
				Title:     "Professional Summary",
				Deletable: false,
				Content: SummaryContent{Text: "Innovative Senior Frontend Engineer with 8+ years of experience in building and maintaining " +
					"responsive and scalable web applications. Proficient in React, TypeScript, and modern JavaScript frameworks. " +
					"Passionate about creating seamless user experiences and writing clean, efficient code."},
			},
			{
				ID:        "experience",
				Type:      SectionExperience,
				Title:     "Work Experience",
				Deletable: true,
				Content: ExperienceContent{Entries: []WorkExperience{
					{
						ID:       "work1",
						Company:  "Tech Solutions Inc.",
						Role:     "Senior Frontend Engineer",
						Duration: "Jan 2020 - Present",
						Responsibilities: []string{
							"Led the development of a new customer-facing dashboard using React and TypeScript, resulting in a 20% increase in user engagement.",
							"Mentored junior developers and conducted code reviews to maintain high code quality.",
							"Collaborated with UX/UI designers to implement complex design systems and improve application aesthetics.",
						},
					},
					{
						ID:       "work2",
						Company:  "Innovate Co.",
						Role:     "Frontend Developer",
						Duration: "Jun 2016 - Dec 2019",
						Responsibilities: []string{
							"Developed and maintained features for a large-scale e-commerce platform using Angular and Node.js.",
							"Improved website performance by 15% through code optimization and lazy loading techniques.",
							"Worked in an Agile environment, participating in daily stand-ups and sprint planning.",
						},
					},
				}},
			},
			{
				ID:        "education",
				Type:      SectionEducation,
				Title:     "Education",
				Deletable: true,
				Content: EducationContent{Entries: []Education{
					{
						ID:          "edu1",
						Institution: "State University",
						Degree:      "B.S. in Computer Science",
						Duration:    "Aug 2012 - May 2016",
					},
				}},
			},
			{
				ID:        "projects",
				Type:      SectionProjects,
				Title:     "Projects",
				Deletable: true,
				Content: ProjectsContent{Entries: []Project{
					{
						ID:          "proj1",
						Name:        "Personal Portfolio",
						Description: "A responsive personal portfolio website built with Next.js and deployed on Vercel to showcase my projects and skills.",
					},
				}},
			},
			{
				ID:        "skills",
				Type:      SectionSkills,
				Title:     "Skills",
				Deletable: true,
				Content: SkillsContent{Categories: []SkillCategory{
					{Name: "Programming Languages", Skills: []string{"JavaScript (ES6+)", "TypeScript", "HTML5", "CSS3"}},
					{Name: "Frameworks & Libraries", Skills: []string{"React", "Node.js", "Tailwind CSS", "Next.js"}},
					{Name: "Tools & Platforms", Skills: []string{"Git", "Docker", "Webpack", "Jest", "Vercel"}},
				}},
			},
		},
	}
}
