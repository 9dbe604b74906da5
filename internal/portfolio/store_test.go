package portfolio

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(WithIDs(&Sequence{}))
	t.Cleanup(s.Close)
	return s
}

func sampleProject() NewProjectRequest {
	stars := 12
	return NewProjectRequest{
		Title:       "Folio",
		Description: "Portfolio builder",
		Kind:        KindManual,
		Stack:       []string{"Go", "HTMX"},
		Status:      &ProjectStatus{Saved: true},
		Stars:       &stars,
		LastUpdated: "Just now",
		URL:         "https://example.com/folio",
	}
}

func sampleAchievement(title string) NewAchievementRequest {
	return NewAchievementRequest{Title: title, Organization: "Acme", Duration: "2024"}
}

func TestAddProject_AssignsUniqueIDsInOrder(t *testing.T) {
	s := newTestStore(t)
	for i := 0; i < 5; i++ {
		s.AddProject(sampleProject())
	}

	projects := s.Projects()
	require.Len(t, projects, 5)
	seen := map[int64]bool{}
	for i, p := range projects {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		if i > 0 {
			assert.Greater(t, p.ID, projects[i-1].ID)
		}
	}
}

func TestAddProject_DefaultsListsAndLogsActivity(t *testing.T) {
	s := newTestStore(t)
	p := s.AddProject(NewProjectRequest{Title: "Bare", Description: "No lists"})

	assert.NotNil(t, p.Stack)
	assert.NotNil(t, p.Features)
	assert.Empty(t, p.Stack)

	acts := s.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, ProjectAdded, acts[0].Kind)
	assert.Contains(t, acts[0].Message, "Bare")
}

func TestAddProject_AllowsDuplicateTitles(t *testing.T) {
	s := newTestStore(t)
	a := s.AddProject(sampleProject())
	b := s.AddProject(sampleProject())
	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, s.Projects(), 2)
}

func TestUpdateProject_ChangesOnlyGivenFields(t *testing.T) {
	s := newTestStore(t)
	p := s.AddProject(sampleProject())

	title := "X"
	s.UpdateProject(p.ID, ProjectPatch{Title: &title})

	got, ok := s.Project(p.ID)
	require.True(t, ok)
	want := p
	want.Title = "X"
	assert.Equal(t, want, got)
}

func TestUpdateProject_UnknownIDIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.AddProject(sampleProject())
	before := s.Projects()

	title := "ghost"
	s.UpdateProject(999, ProjectPatch{Title: &title})
	assert.Equal(t, before, s.Projects())
}

func TestUpdateProject_IdenticalValuesRoundTrip(t *testing.T) {
	s := newTestStore(t)
	req := sampleProject()
	added := s.AddProject(req)

	s.UpdateProject(added.ID, PatchFromRequest(req))

	got, ok := s.Project(added.ID)
	require.True(t, ok)
	assert.Equal(t, added, got)
}

func TestDeleteProject_Idempotent(t *testing.T) {
	s := newTestStore(t)
	p := s.AddProject(sampleProject())
	keep := s.AddProject(sampleProject())

	s.DeleteProject(p.ID)
	after := s.Projects()
	s.DeleteProject(p.ID)

	assert.Equal(t, after, s.Projects())
	require.Len(t, after, 1)
	assert.Equal(t, keep.ID, after[0].ID)
}

func TestReads_AreDetachedCopies(t *testing.T) {
	s := newTestStore(t)
	p := s.AddProject(sampleProject())

	projects := s.Projects()
	projects[0].Stack[0] = "mutated"
	*projects[0].Stars = 0
	projects[0].Status.Saved = false

	got, _ := s.Project(p.ID)
	assert.Equal(t, "Go", got.Stack[0])
	assert.Equal(t, 12, *got.Stars)
	assert.True(t, got.Status.Saved)
}

func TestAddSkill_GroupsByCategory(t *testing.T) {
	s := newTestStore(t)
	sk := s.AddSkill(NewSkillRequest{Name: "Go", Category: "Backend", Level: LevelExpert, Experience: "1 year"})

	skills := s.Skills()
	require.Len(t, skills, 1)
	assert.NotZero(t, skills[0].ID)
	assert.Equal(t, Skill{ID: sk.ID, Name: "Go", Category: "Backend", Level: LevelExpert, Experience: "1 year"}, skills[0])

	groups := GroupByCategory(skills)
	require.Len(t, groups, 1)
	assert.Equal(t, "Backend", groups[0].Category)
	assert.Equal(t, []Skill{skills[0]}, groups[0].Skills)
}

func TestUpdateAndDeleteSkill(t *testing.T) {
	s := newTestStore(t)
	sk := s.AddSkill(NewSkillRequest{Name: "Docker", Category: "DevOps", Level: LevelBeginner})

	lvl := LevelIntermediate
	s.UpdateSkill(sk.ID, SkillPatch{Level: &lvl})
	assert.Equal(t, LevelIntermediate, s.Skills()[0].Level)
	assert.Equal(t, "Docker", s.Skills()[0].Name)

	s.DeleteSkill(sk.ID)
	s.DeleteSkill(sk.ID)
	assert.Empty(t, s.Skills())
}

func TestAddAchievement_OnlyTouchesItsBucket(t *testing.T) {
	s := newTestStore(t)
	s.AddAchievement(Internships, sampleAchievement("Intern"))

	a := s.Achievements()
	assert.Len(t, a.Internships, 1)
	assert.Empty(t, a.Certificates)
	assert.Empty(t, a.Awards)

	acts := s.Activities()
	require.Len(t, acts, 1)
	assert.Equal(t, AchievementAdded, acts[0].Kind)
	assert.Contains(t, acts[0].Message, "internship")
}

func TestAchievementActivityLabelsPerBucket(t *testing.T) {
	s := newTestStore(t)
	s.AddAchievement(Certificates, sampleAchievement("CKA"))
	s.AddAchievement(Awards, sampleAchievement("Hackathon"))

	acts := s.Activities()
	require.Len(t, acts, 2)
	assert.Contains(t, acts[0].Message, "certificate")
	assert.Contains(t, acts[1].Message, "award")
}

func TestUpdateAchievement_WrongBucketIsNoop(t *testing.T) {
	s := newTestStore(t)
	cert := s.AddAchievement(Certificates, sampleAchievement("CKA"))

	title := "changed"
	s.UpdateAchievement(Awards, cert.ID, AchievementPatch{Title: &title})
	s.DeleteAchievement(Awards, cert.ID)

	a := s.Achievements()
	assert.Empty(t, a.Awards)
	require.Len(t, a.Certificates, 1)
	assert.Equal(t, cert, a.Certificates[0])
}

func TestUpdateAchievement_MergesInBucket(t *testing.T) {
	s := newTestStore(t)
	aw := s.AddAchievement(Awards, sampleAchievement("Hackathon"))

	loc := "Berlin"
	skills := []string{"Go"}
	s.UpdateAchievement(Awards, aw.ID, AchievementPatch{Location: &loc, Skills: &skills})

	got := s.Achievements().Awards[0]
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Equal(t, "Hackathon", got.Title)
}

func TestUnknownBucketIsAccepted(t *testing.T) {
	s := newTestStore(t)
	assert.NotPanics(t, func() {
		s.AddAchievement(Bucket("talks"), sampleAchievement("GopherCon"))
		s.UpdateAchievement(Bucket("talks"), 1, AchievementPatch{})
		s.DeleteAchievement(Bucket("talks"), 1)
	})
	a := s.Achievements()
	assert.Empty(t, a.Internships)
	assert.Empty(t, a.Certificates)
	assert.Empty(t, a.Awards)
}

func TestUpdateProfile_Merges(t *testing.T) {
	s := New(WithIDs(&Sequence{}), WithSeed(&Seed{Profile: Profile{Name: "Ada", Email: "ada@example.com"}}))
	defer s.Close()

	bio := "Engineer"
	s.UpdateProfile(ProfilePatch{Bio: &bio, Visibility: &Visibility{IsPublic: true}})

	p := s.Profile()
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "ada@example.com", p.Email)
	assert.Equal(t, "Engineer", p.Bio)
	assert.True(t, p.Visibility.IsPublic)
	assert.Equal(t, ProfileUpdated, s.Activities()[0].Kind)
}

func TestUpdateProfile_SingleVisibilityFlags(t *testing.T) {
	s := New(WithIDs(&Sequence{}))
	defer s.Close()

	on := true
	s.UpdateProfile(ProfilePatch{IsPublic: &on})
	s.UpdateProfile(ProfilePatch{ShowContact: &on})

	vis := s.Profile().Visibility
	assert.True(t, vis.IsPublic)
	assert.True(t, vis.ShowContact)

	off := false
	s.UpdateProfile(ProfilePatch{IsPublic: &off})
	vis = s.Profile().Visibility
	assert.False(t, vis.IsPublic)
	assert.True(t, vis.ShowContact)
}

func TestUpdateProject_AISummaryKeepsOtherFlags(t *testing.T) {
	s := New(WithIDs(&Sequence{}))
	defer s.Close()
	p := s.AddProject(NewProjectRequest{Title: "A", Description: "B", Status: &ProjectStatus{Imported: true, Saved: true}})
	bare := s.AddProject(NewProjectRequest{Title: "C", Description: "D"})

	on := true
	s.UpdateProject(p.ID, ProjectPatch{AISummary: &on})
	s.UpdateProject(bare.ID, ProjectPatch{AISummary: &on})

	got, _ := s.Project(p.ID)
	assert.Equal(t, ProjectStatus{Imported: true, AISummary: true, Saved: true}, *got.Status)
	got, _ = s.Project(bare.ID)
	require.NotNil(t, got.Status)
	assert.True(t, got.Status.AISummary)
}

func TestSetSelectedTemplate_AcceptsUnknown(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, TemplateClassic, s.SelectedTemplate())

	s.SetSelectedTemplate(TemplateClassic)
	s.SetSelectedTemplate("unknown-template")
	assert.Equal(t, "unknown-template", s.SelectedTemplate())
}

func TestSubscribe_ReceivesChanges(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sub := s.Subscribe(ctx, 4)

	p := s.AddProject(sampleProject())
	s.DeleteProject(p.ID)

	select {
	case c := <-sub:
		assert.Equal(t, "project.added", c.Type())
		assert.Equal(t, p.ID, c.ID)
	case <-time.After(time.Second):
		t.Fatal("no change received")
	}
	c := <-sub
	assert.Equal(t, OpDeleted, c.Op)
}

func TestSubscribe_NoEventForNoop(t *testing.T) {
	s := newTestStore(t)
	sub := s.Subscribe(context.Background(), 4)

	s.DeleteProject(42)
	select {
	case c := <-sub:
		t.Fatalf("unexpected change %v", c)
	default:
	}
}

func TestClose_ClosesSubscribers(t *testing.T) {
	s := New()
	sub := s.Subscribe(context.Background(), 1)
	s.Close()

	_, ok := <-sub
	assert.False(t, ok)

	late := s.Subscribe(context.Background(), 1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestClockIDs_Monotonic(t *testing.T) {
	fixed := time.UnixMilli(1_700_000_000_000)
	ids := NewClockIDs(func() time.Time { return fixed })

	a, b, c := ids.Next(), ids.Next(), ids.Next()
	assert.Equal(t, fixed.UnixMilli(), a)
	assert.Equal(t, a+1, b)
	assert.Equal(t, b+1, c)
}

func TestSampleSeed(t *testing.T) {
	seed, err := SampleSeed()
	require.NoError(t, err)

	s := New(WithSeed(seed))
	defer s.Close()
	snap := s.Snapshot()
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Achievements.Internships, 1)
	assert.Len(t, snap.Achievements.Certificates, 1)
	assert.Len(t, snap.Achievements.Awards, 1)
	assert.Equal(t, "Sample", snap.Profile.Name)
	assert.Equal(t, TemplateClassic, snap.Template)

	added := s.AddProject(sampleProject())
	assert.NotEqual(t, snap.Projects[0].ID, added.ID)
}

func TestLoadSeed_None(t *testing.T) {
	seed, err := LoadSeed("none")
	require.NoError(t, err)
	assert.Nil(t, seed)
}

func TestLoadSeed_Errors(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "reading seed")

	_, err = ParseSeed([]byte("projects: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing seed")
}
