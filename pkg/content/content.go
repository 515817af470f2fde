// Package content holds the static portfolio content: profile, sections,
// projects, skills and social links.
package content

// Section identifies one content section of the page, top to bottom.
type Section string

const (
	Intro    Section = "intro"
	About    Section = "about"
	Skills   Section = "skills"
	Projects Section = "projects"
	Contact  Section = "contact"
)

// Order lists the sections as they appear while scrolling.
var Order = []Section{Intro, About, Skills, Projects, Contact}

// Title returns the heading shown for a section.
func (s Section) Title() string {
	switch s {
	case Intro:
		return "Hello"
	case About:
		return "About Me"
	case Skills:
		return "Technical Skills"
	case Projects:
		return "Featured Projects"
	case Contact:
		return "Let's Connect"
	default:
		return ""
	}
}

// Category groups skills.
type Category string

const (
	Frontend Category = "frontend"
	Backend  Category = "backend"
	Database Category = "database"
	Tools    Category = "tools"
	Other    Category = "other"
)

// Categories lists skill categories in display order.
var Categories = []Category{Frontend, Backend, Database, Tools, Other}

// Project is a featured project card.
type Project struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Link        string   `json:"link"`
	GitHub      string   `json:"github"`
	Image       string   `json:"image"`
}

// Skill is one entry of the skills grid.
type Skill struct {
	Name     string   `json:"name"`
	Category Category `json:"category"`
}

// Social holds outbound profile links.
type Social struct {
	GitHub   string `json:"github"`
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	Email    string `json:"email"`
	CV       string `json:"cv"`
}

// Profile is the page owner's introduction.
type Profile struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Tagline string `json:"tagline"`
	About   string `json:"about"`
}

// Site bundles everything the page renders.
type Site struct {
	Profile  Profile   `json:"profile"`
	Sections []Section `json:"sections"`
	Projects []Project `json:"projects"`
	Skills   []Skill   `json:"skills"`
	Social   Social    `json:"social"`
}

// SkillsByCategory groups skills preserving their declared order.
func (s Site) SkillsByCategory() map[Category][]Skill {
	out := make(map[Category][]Skill, len(Categories))
	for _, sk := range s.Skills {
		out[sk.Category] = append(out[sk.Category], sk)
	}
	return out
}

// Project returns the project with the given id.
func (s Site) Project(id int) (Project, bool) {
	for _, p := range s.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}
