package importer

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

func TestParseRepoURL(t *testing.T) {
	cases := []struct {
		in          string
		owner, repo string
		ok          bool
	}{
		{"https://github.com/gin-gonic/gin", "gin-gonic", "gin", true},
		{"github.com/spf13/cobra.git", "spf13", "cobra", true},
		{"https://www.github.com/a/b/tree/main", "a", "b", true},
		{"https://gitlab.com/a/b", "", "", false},
		{"https://github.com/onlyowner", "", "", false},
		{"", "", "", false},
	}
	for _, tc := range cases {
		owner, repo, err := ParseRepoURL(tc.in)
		if !tc.ok {
			assert.True(t, errors.Is(err, ErrInvalidURL), tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.owner, owner)
		assert.Equal(t, tc.repo, repo)
	}
}

func TestSimulated_FabricatesGitHubProject(t *testing.T) {
	imp := &Simulated{Rand: rand.New(rand.NewPCG(1, 2))}
	req, err := imp.ImportFrom(context.Background(), "https://github.com/Zachkp/zach-dev")
	require.NoError(t, err)

	require.NoError(t, req.Validate())
	assert.Equal(t, portfolio.KindGitHub, req.Kind)
	assert.Equal(t, "zach-dev", req.Title)
	assert.Equal(t, portfolio.ProjectStatus{Imported: true, Saved: true}, *req.Status)
	require.NotNil(t, req.Stars)
	assert.Less(t, *req.Stars, 100)
	assert.Less(t, *req.Forks, 20)
}

func TestSimulated_RejectsBadURL(t *testing.T) {
	imp := &Simulated{}
	_, err := imp.ImportFrom(context.Background(), "https://example.com/x/y")
	assert.True(t, errors.Is(err, ErrInvalidURL))
}

func TestSimulated_HonoursCancellation(t *testing.T) {
	imp := &Simulated{Delay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := imp.ImportFrom(ctx, "https://github.com/a/b")
	assert.True(t, errors.Is(err, context.Canceled))
}
