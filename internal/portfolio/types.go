package portfolio

import (
	"time"

	"github.com/dustin/go-humanize"
)

// ProjectKind records where a project came from.
type ProjectKind string

const (
	KindGitHub ProjectKind = "github"
	KindManual ProjectKind = "manual"
)

// ProjectStatus flags are display-only.
type ProjectStatus struct {
	Imported  bool `json:"imported" yaml:"imported"`
	AISummary bool `json:"aiSummary" yaml:"aiSummary"`
	Saved     bool `json:"saved" yaml:"saved"`
}

type Project struct {
	ID          int64          `json:"id" yaml:"id"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description" yaml:"description"`
	Kind        ProjectKind    `json:"type" yaml:"type"`
	Stack       []string       `json:"stack" yaml:"stack"`
	Features    []string       `json:"features" yaml:"features"`
	Status      *ProjectStatus `json:"status,omitempty" yaml:"status,omitempty"`
	Stars       *int           `json:"stars,omitempty" yaml:"stars,omitempty"`
	Forks       *int           `json:"forks,omitempty" yaml:"forks,omitempty"`
	LastUpdated string         `json:"lastUpdated" yaml:"lastUpdated"`
	Image       string         `json:"image,omitempty" yaml:"image,omitempty"`
	URL         string         `json:"url,omitempty" yaml:"url,omitempty"`
}

// Categories lists the skill categories editors offer, in display order.
var Categories = []string{
	"Frontend", "Backend", "Programming", "Cloud", "DevOps",
	"Database", "Design", "AI/ML", "Soft Skills",
}

// Skill levels.
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelExpert       = "Expert"
)

var Levels = []string{LevelBeginner, LevelIntermediate, LevelExpert}

type Skill struct {
	ID         int64  `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Category   string `json:"category" yaml:"category"`
	Level      string `json:"level" yaml:"level"`
	Experience string `json:"experience" yaml:"experience"`
}

// Bucket routes an achievement to one of the fixed sub-collections.
type Bucket string

const (
	Internships  Bucket = "internships"
	Certificates Bucket = "certificates"
	Awards       Bucket = "awards"
)

var Buckets = []Bucket{Internships, Certificates, Awards}

// Singular is the human label used in activity messages.
func (b Bucket) Singular() string {
	switch b {
	case Internships:
		return "internship"
	case Certificates:
		return "certificate"
	case Awards:
		return "award"
	default:
		return string(b)
	}
}

// Known reports whether b is one of the three fixed buckets.
func (b Bucket) Known() bool {
	for _, k := range Buckets {
		if b == k {
			return true
		}
	}
	return false
}

type Achievement struct {
	ID           int64    `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Organization string   `json:"organization" yaml:"organization"`
	Duration     string   `json:"duration" yaml:"duration"`
	Location     string   `json:"location,omitempty" yaml:"location,omitempty"`
	Description  string   `json:"description" yaml:"description"`
	Skills       []string `json:"skills,omitempty" yaml:"skills,omitempty"`
	Status       string   `json:"status,omitempty" yaml:"status,omitempty"`
	Issuer       string   `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	CredentialID string   `json:"credentialId,omitempty" yaml:"credentialId,omitempty"`
	ValidUntil   string   `json:"validUntil,omitempty" yaml:"validUntil,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// Achievements holds the three buckets.
type Achievements struct {
	Internships  []Achievement `json:"internships" yaml:"internships"`
	Certificates []Achievement `json:"certificates" yaml:"certificates"`
	Awards       []Achievement `json:"awards" yaml:"awards"`
}

// list returns a pointer to the slice backing bucket b, or nil for an unknown bucket.
func (a *Achievements) list(b Bucket) *[]Achievement {
	switch b {
	case Internships:
		return &a.Internships
	case Certificates:
		return &a.Certificates
	case Awards:
		return &a.Awards
	}
	return nil
}

// Bucket returns a copy of the named bucket's records.
func (a Achievements) Bucket(b Bucket) []Achievement {
	l := a.list(b)
	if l == nil {
		return nil
	}
	return cloneAchievements(*l)
}

type Visibility struct {
	IsPublic    bool `json:"isPublic" yaml:"isPublic"`
	ShowContact bool `json:"showContact" yaml:"showContact"`
}

type Profile struct {
	Name                 string     `json:"name" yaml:"name"`
	Email                string     `json:"email" yaml:"email"`
	Bio                  string     `json:"bio" yaml:"bio"`
	Avatar               string     `json:"avatar" yaml:"avatar"`
	Location             string     `json:"location" yaml:"location"`
	Website              string     `json:"website" yaml:"website"`
	GitHub               string     `json:"github" yaml:"github"`
	LinkedIn             string     `json:"linkedin" yaml:"linkedin"`
	Twitter              string     `json:"twitter" yaml:"twitter"`
	Visibility           Visibility `json:"portfolio" yaml:"portfolio"`
	CompletionPercentage int        `json:"completionPercentage" yaml:"completionPercentage"`
}

type ActivityKind string

const (
	ProjectAdded     ActivityKind = "project_added"
	SkillUpdated     ActivityKind = "skill_updated"
	ProfileUpdated   ActivityKind = "profile_updated"
	AchievementAdded ActivityKind = "achievement_added"
)

type Activity struct {
	ID      int64        `json:"id" yaml:"id"`
	Kind    ActivityKind `json:"type" yaml:"type"`
	Message string       `json:"message" yaml:"message"`
	At      time.Time    `json:"at" yaml:"at"`
}

// Label renders the activity time the way the dashboard shows it ("3 minutes ago").
func (a Activity) Label() string {
	if a.At.IsZero() {
		return "Just now"
	}
	return humanize.Time(a.At)
}

// Templates.
const (
	TemplateClassic  = "classic"
	TemplateCreative = "creative"
	TemplateModern   = "modern"
)

var Templates = []string{TemplateClassic, TemplateCreative, TemplateModern}

// Snapshot is a consistent, detached copy of everything renderers read.
type Snapshot struct {
	Projects     []Project    `json:"projects"`
	Skills       []Skill      `json:"skills"`
	Achievements Achievements `json:"achievements"`
	Profile      Profile      `json:"profile"`
	Activities   []Activity   `json:"activities"`
	Template     string       `json:"selectedTemplate"`
}
