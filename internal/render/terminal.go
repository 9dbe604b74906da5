package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	starStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Markdown lays out snap as a markdown document, used for terminal previews.
func Markdown(snap portfolio.Snapshot) string {
	var sb strings.Builder
	p := snap.Profile
	fmt.Fprintf(&sb, "# %s\n\n", p.Name)
	if p.Location != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", p.Location)
	}
	if p.Bio != "" {
		sb.WriteString(p.Bio + "\n\n")
	}

	if len(snap.Projects) > 0 {
		sb.WriteString("## Projects\n\n")
		for _, pr := range snap.Projects {
			fmt.Fprintf(&sb, "### %s\n\n%s\n\n", pr.Title, pr.Description)
			if len(pr.Stack) > 0 {
				fmt.Fprintf(&sb, "Stack: %s\n\n", strings.Join(pr.Stack, ", "))
			}
			if pr.Kind == portfolio.KindGitHub && pr.Stars != nil {
				fmt.Fprintf(&sb, "Stars: %s\n\n", humanize.Comma(int64(*pr.Stars)))
			}
		}
	}

	if groups := portfolio.GroupByCategory(snap.Skills); len(groups) > 0 {
		sb.WriteString("## Skills\n\n")
		for _, g := range groups {
			fmt.Fprintf(&sb, "**%s**\n\n", g.Category)
			for _, sk := range g.Skills {
				fmt.Fprintf(&sb, "- %s (%s) %s\n", sk.Name, sk.Level, starRow(sk.Level))
			}
			sb.WriteString("\n")
		}
	}

	for _, b := range portfolio.Buckets {
		items := snap.Achievements.Bucket(b)
		if len(items) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "## %s\n\n", strings.ToUpper(string(b[:1]))+string(b[1:]))
		for _, a := range items {
			fmt.Fprintf(&sb, "- **%s**, %s", a.Title, a.Organization)
			if a.Duration != "" {
				fmt.Fprintf(&sb, " (%s)", a.Duration)
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Terminal renders snap for a terminal with glamour.
func Terminal(snap portfolio.Snapshot) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", errors.Wrap(err, "creating renderer")
	}
	out, err := r.Render(Markdown(snap))
	if err != nil {
		return "", errors.Wrap(err, "rendering markdown")
	}
	return out, nil
}

// SkillLine renders one skill with a coloured rating for list output.
func SkillLine(sk portfolio.Skill) string {
	return fmt.Sprintf("%-20s %s %s", sk.Name, starStyle.Render(starRow(sk.Level)), dimStyle.Render(sk.Experience))
}

// Header styles a section title for list output.
func Header(title string) string {
	return headerStyle.Render(title)
}
