package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

func testSnapshot() portfolio.Snapshot {
	stars := 1234
	return portfolio.Snapshot{
		Profile: portfolio.Profile{Name: "Ada Lovelace", Bio: "Writes **engines**", Location: "London"},
		Projects: []portfolio.Project{{
			ID: 1, Title: "Analytical Engine", Description: "Mechanical computer",
			Kind: portfolio.KindGitHub, Stack: []string{"Brass", "Steam"}, Stars: &stars,
		}},
		Skills: []portfolio.Skill{
			{ID: 2, Name: "Go", Category: "Backend", Level: portfolio.LevelExpert},
			{ID: 3, Name: "React", Category: "Frontend", Level: portfolio.LevelBeginner},
		},
		Achievements: portfolio.Achievements{
			Awards: []portfolio.Achievement{{ID: 4, Title: "First Programmer", Organization: "History"}},
		},
		Template: portfolio.TemplateClassic,
	}
}

func TestRender_AllKnownTemplates(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range portfolio.Templates {
		var buf bytes.Buffer
		require.NoError(t, r.Render(&buf, name, NewPage(testSnapshot())), name)
		out := buf.String()
		assert.Contains(t, out, `data-template="`+name+`"`)
		assert.Contains(t, out, "Analytical Engine")
		assert.Contains(t, out, "Backend")
		assert.Contains(t, out, "First Programmer")
		assert.Contains(t, out, "<strong>engines</strong>")
	}
}

func TestRender_UnknownTemplateRendersNothing(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = r.Render(&buf, "unknown-template", NewPage(testSnapshot()))
	assert.True(t, errors.Is(err, ErrUnknownTemplate))
	assert.Zero(t, buf.Len())
}

func TestMarkdown_Sanitises(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	out := string(r.Markdown("hi <script>alert(1)</script>"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hi")
}

func TestStarRow(t *testing.T) {
	assert.Equal(t, "★★★", starRow(portfolio.LevelExpert))
	assert.Equal(t, "★☆☆", starRow(portfolio.LevelBeginner))
	assert.Equal(t, "☆☆☆", starRow("Guru"))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AL", initials("ada lovelace"))
	assert.Equal(t, "", initials(""))
}

func TestMarkdownDocument(t *testing.T) {
	doc := Markdown(testSnapshot())
	assert.True(t, strings.HasPrefix(doc, "# Ada Lovelace"))
	assert.Contains(t, doc, "## Skills")
	assert.Contains(t, doc, "- Go (Expert) ★★★")
	assert.Contains(t, doc, "## Awards")
	assert.Contains(t, doc, "Stars: 1,234")
	assert.NotContains(t, doc, "## Internships")
}
