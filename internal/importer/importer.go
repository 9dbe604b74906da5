// Package importer turns a repository URL into a project draft. The only
// implementation is simulated: it never touches the network.
package importer

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

// ErrInvalidURL is returned for anything that is not a github.com/<owner>/<repo> URL.
var ErrInvalidURL = errors.New("not a GitHub repository URL")

// Importer fetches project data for a repository URL.
type Importer interface {
	ImportFrom(ctx context.Context, repoURL string) (portfolio.NewProjectRequest, error)
}

// Simulated fabricates a plausible project after an artificial delay.
type Simulated struct {
	Delay  time.Duration
	Rand   *rand.Rand
	Logger *slog.Logger
}

var _ Importer = (*Simulated)(nil)

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{
		Delay:  delay,
		Rand:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		Logger: slog.Default(),
	}
}

func (s *Simulated) ImportFrom(ctx context.Context, repoURL string) (portfolio.NewProjectRequest, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return portfolio.NewProjectRequest{}, err
	}

	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return portfolio.NewProjectRequest{}, errors.Wrap(ctx.Err(), "import cancelled")
		case <-t.C:
		}
	}

	stars, forks := 0, 0
	if s.Rand != nil {
		stars, forks = s.Rand.IntN(100), s.Rand.IntN(20)
	}
	if s.Logger != nil {
		s.Logger.Info("simulated github import", "owner", owner, "repo", repo)
	}

	return portfolio.NewProjectRequest{
		Title:       repo,
		Description: "Project imported from GitHub repository " + owner + "/" + repo,
		Kind:        portfolio.KindGitHub,
		Stack:       []string{"React", "TypeScript", "Node.js"},
		Features:    []string{},
		Status:      &portfolio.ProjectStatus{Imported: true, Saved: true},
		Stars:       &stars,
		Forks:       &forks,
		LastUpdated: "Just now",
		Image:       "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=400&h=200&fit=crop",
		URL:         "https://github.com/" + owner + "/" + repo,
	}, nil
}

// ParseRepoURL extracts owner and repository from a GitHub URL. A scheme-less
// "github.com/owner/repo" is accepted too.
func ParseRepoURL(raw string) (owner, repo string, err error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", errors.Wrapf(ErrInvalidURL, "%q", raw)
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	if host != "github.com" {
		return "", "", errors.Wrapf(ErrInvalidURL, "host %q", u.Host)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Wrapf(ErrInvalidURL, "path %q", u.Path)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}
