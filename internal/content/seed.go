package content

import "encoding/json"

// Seed collections shown on a fresh install, before the admin panel has
// written anything. They double as the local store's fallback when a
// stored value is missing or unreadable.

// SeedCertificates returns the initial certificate collection.
func SeedCertificates() []Certificate {
	return []Certificate{
		{
			ID:             "18",
			Title:          "JAVA 101 Basic",
			Issuer:         "SATR",
			Date:           "2024",
			Image:          "https://i.postimg.cc/fbmV7GBB/certificate-15.png",
			CertificateURL: "https://i.postimg.cc/fbmV7GBB/certificate-15.png",
			Skills:         []string{"Conditional Statements", "Java", "Data Types"},
			Tags:           []string{"Java", "SATR", "Basic", "Programming"},
			Category:       "Programming",
			Description:    "Fundamental Java programming concepts including data types and conditional statements",
		},
		{
			ID:             "19",
			Title:          "HTML Basics",
			Issuer:         "SATR",
			Date:           "2024",
			Image:          "https://i.postimg.cc/j5TLMM1K/HTML.png",
			CertificateURL: "https://i.postimg.cc/j5TLMM1K/HTML.png",
			Skills:         []string{"HTML", "CSS", "Responsive Design"},
			Tags:           []string{"HTML", "CSS", "SATR", "Web", "Frontend"},
			Category:       "Web Development",
			Description:    "HTML fundamentals and basic CSS styling techniques",
		},
		{
			ID:             "13",
			Title:          "CSS Basics",
			Issuer:         "SATR",
			Date:           "2024",
			Image:          "https://i.postimg.cc/pL1f1MQv/certificate-10.png",
			CertificateURL: "https://i.postimg.cc/pL1f1MQv/certificate-10.png",
			Skills:         []string{"CSS", "HTML"},
			Tags:           []string{"CSS", "HTML", "SATR", "Styling", "Frontend"},
			Featured:       true,
			Category:       "Web Development",
			Description:    "CSS fundamentals for styling web pages",
		},
	}
}

// SeedProjects returns the initial project collection.
func SeedProjects() []Project {
	return []Project{
		{
			ID:          "1",
			Title:       "Leon Template",
			Description: "My first project, a simple template for a website, i made it using HTML and CSS",
			Image:       "https://i.postimg.cc/05X9Jn7z/Leon-Template-One-03-31-2025-04-12-PM.png",
			TechStack:   []string{"HTML", "CSS"},
			DemoLink:    "https://ahmed-icode.github.io/HTML_and_Css_Template_1/",
			GithubLink:  "https://github.com/Ahmed-iCode/HTML_and_Css_Template_1",
			Featured:    true,
		},
		{
			ID:          "2",
			Title:       "CRUD Product Management System",
			Description: "A simple product management system that allows you to add, edit, and delete products",
			Image:       "https://i.postimg.cc/DZj3LfJ9/CRUD-System-03-31-2025-04-18-PM.png",
			TechStack:   []string{"HTML", "CSS", "JavaScript"},
			DemoLink:    "https://ahmed-icode.github.io/CRUD-Product-Management-System/",
			GithubLink:  "https://github.com/Ahmed-iCode/CRUD-Product-Management-System",
			Featured:    true,
		},
		{
			ID:          "3",
			Title:       "XO Game",
			Description: "A simple XO game, i made it using HTML, CSS and JavaScript",
			Image:       "https://i.postimg.cc/FKF9LBCJ/XO-Game-03-31-2025-04-25-PM.png",
			TechStack:   []string{"HTML", "CSS", "JavaScript"},
			DemoLink:    "https://ahmed-icode.github.io/XO-Game/",
			GithubLink:  "https://github.com/Ahmed-iCode/XO-Game",
		},
	}
}

// SeedArticles returns the initial article collection.
func SeedArticles() []Article {
	content := "Building a portfolio is more than just showcasing projects. " +
		"When I decided to create a dedicated certificates page, I wanted " +
		"something that would be both visually appealing and functionally robust. " +
		"This post walks through the data model, the filtering system and the " +
		"lessons learned along the way."
	return []Article{
		{
			ID:          "1",
			Title:       "How I Built My Certificate Management System",
			Slug:        "how-i-built-my-certificates-page",
			Excerpt:     "A deep dive into creating a responsive, filterable certificate showcase.",
			Content:     content,
			Category:    "Web Development",
			Tags:        []string{"Portfolio", "Frontend"},
			Featured:    true,
			ReadingTime: ReadingTime(content),
			AuthorName:  "Ahmed",
			PublishedAt: "2025-04-01T00:00:00Z",
		},
	}
}

// SeedDefaults marshals the seed collections keyed by logical table name,
// in the row form the store adapters traffic in.
func SeedDefaults() map[string][]json.RawMessage {
	defaults := make(map[string][]json.RawMessage, 3)
	defaults[TableCertificates] = mustRows(SeedCertificates())
	defaults[TableProjects] = mustRows(SeedProjects())
	defaults[TableArticles] = mustRows(SeedArticles())
	return defaults
}

func mustRows[T any](items []T) []json.RawMessage {
	rows := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		b, err := json.Marshal(item)
		if err != nil {
			// Static seed data; a marshal failure is a programming error.
			panic(err)
		}
		rows = append(rows, b)
	}
	return rows
}
