package portfolio

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
)

// NewProjectRequest is the payload an editor submits to create a project.
type NewProjectRequest struct {
	Title       string
	Description string
	Kind        ProjectKind
	Stack       []string
	Features    []string
	Status      *ProjectStatus
	Stars       *int
	Forks       *int
	LastUpdated string
	Image       string
	URL         string
}

func (r NewProjectRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.Errorf("project title is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		return errors.Errorf("project description is required")
	}
	switch r.Kind {
	case "", KindGitHub, KindManual:
	default:
		return errors.Errorf("unknown project type %q", r.Kind)
	}
	return nil
}

type NewSkillRequest struct {
	Name       string
	Category   string
	Level      string
	Experience string
}

func (r NewSkillRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.Errorf("skill name is required")
	}
	if !slices.Contains(Categories, r.Category) {
		return errors.Errorf("unknown skill category %q", r.Category)
	}
	if !slices.Contains(Levels, r.Level) {
		return errors.Errorf("unknown skill level %q", r.Level)
	}
	return nil
}

type NewAchievementRequest struct {
	Title        string
	Organization string
	Duration     string
	Location     string
	Description  string
	Skills       []string
	Status       string
	Issuer       string
	CredentialID string
	ValidUntil   string
	Category     string
}

func (r NewAchievementRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.Errorf("achievement title is required")
	}
	if strings.TrimSpace(r.Organization) == "" && strings.TrimSpace(r.Issuer) == "" {
		return errors.Errorf("achievement organization or issuer is required")
	}
	return nil
}

// SplitList turns comma-separated form input into a trimmed list without blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ProjectPatch carries the fields to merge onto an existing project. Nil
// fields are left untouched; a non-nil list replaces the stored list.
type ProjectPatch struct {
	Title       *string
	Description *string
	Kind        *ProjectKind
	Stack       *[]string
	Features    *[]string
	Status      *ProjectStatus
	Stars       *int
	Forks       *int
	LastUpdated *string
	Image       *string
	URL         *string

	// AISummary flips one status flag, applied after Status.
	AISummary *bool
}

// PatchFromRequest builds a patch that sets every field of r.
func PatchFromRequest(r NewProjectRequest) ProjectPatch {
	p := ProjectPatch{
		Title:       &r.Title,
		Description: &r.Description,
		Kind:        &r.Kind,
		Stack:       &r.Stack,
		Features:    &r.Features,
		LastUpdated: &r.LastUpdated,
		Image:       &r.Image,
		URL:         &r.URL,
		Status:      r.Status,
		Stars:       r.Stars,
		Forks:       r.Forks,
	}
	return p
}

func (p ProjectPatch) apply(rec *Project) {
	setIf(&rec.Title, p.Title)
	setIf(&rec.Description, p.Description)
	setIf(&rec.Kind, p.Kind)
	setIf(&rec.LastUpdated, p.LastUpdated)
	setIf(&rec.Image, p.Image)
	setIf(&rec.URL, p.URL)
	if p.Stack != nil {
		rec.Stack = cloneStrings(*p.Stack)
	}
	if p.Features != nil {
		rec.Features = cloneStrings(*p.Features)
	}
	if p.Status != nil {
		st := *p.Status
		rec.Status = &st
	}
	if p.AISummary != nil {
		st := ProjectStatus{}
		if rec.Status != nil {
			st = *rec.Status
		}
		st.AISummary = *p.AISummary
		rec.Status = &st
	}
	if p.Stars != nil {
		rec.Stars = intPtr(*p.Stars)
	}
	if p.Forks != nil {
		rec.Forks = intPtr(*p.Forks)
	}
}

type SkillPatch struct {
	Name       *string
	Category   *string
	Level      *string
	Experience *string
}

func (p SkillPatch) apply(rec *Skill) {
	setIf(&rec.Name, p.Name)
	setIf(&rec.Category, p.Category)
	setIf(&rec.Level, p.Level)
	setIf(&rec.Experience, p.Experience)
}

type AchievementPatch struct {
	Title        *string
	Organization *string
	Duration     *string
	Location     *string
	Description  *string
	Skills       *[]string
	Status       *string
	Issuer       *string
	CredentialID *string
	ValidUntil   *string
	Category     *string
}

func (p AchievementPatch) apply(rec *Achievement) {
	setIf(&rec.Title, p.Title)
	setIf(&rec.Organization, p.Organization)
	setIf(&rec.Duration, p.Duration)
	setIf(&rec.Location, p.Location)
	setIf(&rec.Description, p.Description)
	setIf(&rec.Status, p.Status)
	setIf(&rec.Issuer, p.Issuer)
	setIf(&rec.CredentialID, p.CredentialID)
	setIf(&rec.ValidUntil, p.ValidUntil)
	setIf(&rec.Category, p.Category)
	if p.Skills != nil {
		rec.Skills = cloneStrings(*p.Skills)
	}
}

type ProfilePatch struct {
	Name                 *string
	Email                *string
	Bio                  *string
	Avatar               *string
	Location             *string
	Website              *string
	GitHub               *string
	LinkedIn             *string
	Twitter              *string
	Visibility           *Visibility
	CompletionPercentage *int

	// IsPublic and ShowContact set single visibility flags, applied after
	// Visibility.
	IsPublic    *bool
	ShowContact *bool
}

func (p ProfilePatch) apply(rec *Profile) {
	setIf(&rec.Name, p.Name)
	setIf(&rec.Email, p.Email)
	setIf(&rec.Bio, p.Bio)
	setIf(&rec.Avatar, p.Avatar)
	setIf(&rec.Location, p.Location)
	setIf(&rec.Website, p.Website)
	setIf(&rec.GitHub, p.GitHub)
	setIf(&rec.LinkedIn, p.LinkedIn)
	setIf(&rec.Twitter, p.Twitter)
	setIf(&rec.Visibility, p.Visibility)
	setIf(&rec.Visibility.IsPublic, p.IsPublic)
	setIf(&rec.Visibility.ShowContact, p.ShowContact)
	setIf(&rec.CompletionPercentage, p.CompletionPercentage)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func intPtr(v int) *int { return &v }

// cloneStrings never returns nil so stored lists always marshal as [].
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
