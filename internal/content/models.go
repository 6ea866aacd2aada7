package content

// Logical table names used by both persistence backends. The local store
// prefixes them with "portfolio_" for its storage keys; the remote store
// uses them verbatim as API table names.
const (
	TableCertificates = "certificates"
	TableProjects     = "projects"
	TableArticles     = "articles"
)

// Certificate is a single credential shown on the certificates page.
type Certificate struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Issuer         string   `json:"issuer"`
	Date           string   `json:"date"`
	Image          string   `json:"image"`
	CertificateURL string   `json:"certificate_url"`
	Skills         []string `json:"skills"`
	Tags           []string `json:"tags"`
	Featured       bool     `json:"featured"`
	Category       string   `json:"category"`
	Description    string   `json:"description,omitempty"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

// Normalize repairs legacy records loaded from storage: older schema
// variants lacked category, tags and description, and JSON round trips
// can leave nil slices behind.
func (c *Certificate) Normalize() {
	if c.Skills == nil {
		c.Skills = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

// FilterCategory implements search.Matcher.
func (c Certificate) FilterCategory() string { return c.Category }

// FilterText implements search.Matcher.
func (c Certificate) FilterText() []string {
	fields := []string{c.Title, c.Issuer, c.Description}
	fields = append(fields, c.Tags...)
	fields = append(fields, c.Skills...)
	return fields
}

// Project is a portfolio project entry.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	TechStack   []string `json:"tech_stack"`
	DemoLink    string   `json:"demo_link"`
	GithubLink  string   `json:"github_link"`
	Featured    bool     `json:"featured"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// Normalize repairs legacy records loaded from storage.
func (p *Project) Normalize() {
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
}

// Article is a blog post. Content is markdown text; it is stored and
// served as-is, rendering happens client side.
type Article struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	Excerpt         string   `json:"excerpt"`
	Content         string   `json:"content"`
	Category        string   `json:"category"`
	Tags            []string `json:"tags"`
	Featured        bool     `json:"featured"`
	ReadingTime     int      `json:"reading_time"`
	Image           string   `json:"image,omitempty"`
	MetaTitle       string   `json:"meta_title,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	AuthorName      string   `json:"author_name"`
	AuthorAvatar    string   `json:"author_avatar,omitempty"`
	PublishedAt     string   `json:"published_at"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// Normalize repairs legacy records loaded from storage.
func (a *Article) Normalize() {
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

// FilterCategory implements search.Matcher.
func (a Article) FilterCategory() string { return a.Category }

// FilterText implements search.Matcher.
func (a Article) FilterText() []string {
	fields := []string{a.Title, a.Excerpt}
	fields = append(fields, a.Tags...)
	return fields
}
