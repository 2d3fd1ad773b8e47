package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DefaultImage is served for projects created without an uploaded image.
const DefaultImage = "/portfolio-default.jpg"

// Project is a single portfolio case-study entry.
type Project struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Image        string    `json:"image"`
	Slug         string    `json:"slug"`
	Overview     string    `json:"overview"`
	Role         string    `json:"role"`
	Tasks        []string  `json:"tasks"`
	Achievements []string  `json:"achievements"`
	Challenges   []string  `json:"challenges"`
	Solutions    []string  `json:"solutions"`
	Technologies []string  `json:"technologies"`
	LiveURL      string    `json:"liveUrl"`
	GithubURL    string    `json:"githubUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Draft carries the creatable fields of a project. Field names mirror the
// public JSON contract.
type Draft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Image        string   `json:"image"`
	Slug         string   `json:"slug"`
	Overview     string   `json:"overview"`
	Role         string   `json:"role"`
	Tasks        []string `json:"tasks"`
	Achievements []string `json:"achievements"`
	Challenges   []string `json:"challenges"`
	Solutions    []string `json:"solutions"`
	Technologies []string `json:"technologies"`
	LiveURL      string   `json:"liveUrl"`
	GithubURL    string   `json:"githubUrl"`
}

// Patch carries a partial update. Nil fields are left untouched; supplied
// sequences replace the stored ones wholesale. The id and createdAt of a
// project can never be patched.
type Patch struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Category     *string   `json:"category"`
	Image        *string   `json:"image"`
	Slug         *string   `json:"slug"`
	Overview     *string   `json:"overview"`
	Role         *string   `json:"role"`
	Tasks        *[]string `json:"tasks"`
	Achievements *[]string `json:"achievements"`
	Challenges   *[]string `json:"challenges"`
	Solutions    *[]string `json:"solutions"`
	Technologies *[]string `json:"technologies"`
	LiveURL      *string   `json:"liveUrl"`
	GithubURL    *string   `json:"githubUrl"`
}

// ValidationError reports the required creation fields that were absent.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate checks the required creation fields and returns a
// *ValidationError naming every missing one.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(d.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title: lower-cased, runs of
// non-alphanumerics collapsed to a single hyphen, edge hyphens trimmed.
func Slugify(title string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// New builds a project from a draft, applying the documented defaults.
// The id is assigned later by the store.
func New(d Draft, now time.Time) Project {
	p := Project{
		Title:        d.Title,
		Description:  d.Description,
		Category:     d.Category,
		Image:        d.Image,
		Slug:         d.Slug,
		Overview:     d.Overview,
		Role:         d.Role,
		Tasks:        orEmpty(d.Tasks),
		Achievements: orEmpty(d.Achievements),
		Challenges:   orEmpty(d.Challenges),
		Solutions:    orEmpty(d.Solutions),
		Technologies: orEmpty(d.Technologies),
		LiveURL:      d.LiveURL,
		GithubURL:    d.GithubURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Image == "" {
		p.Image = DefaultImage
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	p.normalizePairs()
	return p
}

// Apply merges the patch over the project and refreshes updatedAt.
func (p *Project) Apply(patch Patch, now time.Time) {
	setString(&p.Title, patch.Title)
	setString(&p.Description, patch.Description)
	setString(&p.Category, patch.Category)
	setString(&p.Image, patch.Image)
	setString(&p.Slug, patch.Slug)
	setString(&p.Overview, patch.Overview)
	setString(&p.Role, patch.Role)
	setSlice(&p.Tasks, patch.Tasks)
	setSlice(&p.Achievements, patch.Achievements)
	setSlice(&p.Challenges, patch.Challenges)
	setSlice(&p.Solutions, patch.Solutions)
	setSlice(&p.Technologies, patch.Technologies)
	setString(&p.LiveURL, patch.LiveURL)
	setString(&p.GithubURL, patch.GithubURL)
	p.normalizePairs()
	p.UpdatedAt = now
}

// normalizePairs keeps the positional challenge/solution pairing total by
// padding solutions with empty strings up to the number of challenges.
// Extra solutions are kept as-is.
func (p *Project) normalizePairs() {
	for len(p.Solutions) < len(p.Challenges) {
		p.Solutions = append(p.Solutions, "")
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setSlice(dst *[]string, src *[]string) {
	if src != nil {
		*dst = orEmpty(*src)
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
