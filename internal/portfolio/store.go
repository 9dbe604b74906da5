// Package portfolio holds the single in-memory source of truth for a
// portfolio editing session: projects, skills, achievements, the profile, the
// activity log and the selected display template.
//
// Every mutation goes through a Store method. The store never returns an
// error: updates and deletes of unknown ids are no-ops, and unknown template
// names or buckets are accepted without complaint. Required-field checks
// belong to the editors (see the Validate methods on the request types).
package portfolio

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"
)

// Store is constructed once per session and passed to every editor and
// renderer that needs it.
type Store struct {
	mu           sync.RWMutex
	projects     []Project
	skills       []Skill
	achievements Achievements
	profile      Profile
	activities   []Activity
	template     string

	ids    IDGenerator
	now    func() time.Time
	logger *slog.Logger

	subMu  sync.RWMutex
	subs   map[chan Change]struct{}
	closed bool
}

type Option func(*Store)

func WithIDs(g IDGenerator) Option {
	return func(s *Store) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithTemplate sets the initially selected template.
func WithTemplate(name string) Option {
	return func(s *Store) { s.template = name }
}

// WithSeed preloads the store. Seed ids are kept as given.
func WithSeed(seed *Seed) Option {
	return func(s *Store) {
		if seed == nil {
			return
		}
		s.projects = cloneProjects(seed.Projects)
		s.skills = slices.Clone(seed.Skills)
		s.achievements = cloneAllAchievements(seed.Achievements)
		s.profile = seed.Profile
		s.activities = slices.Clone(seed.Activities)
		if seed.Template != "" {
			s.template = seed.Template
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		template: TemplateClassic,
		now:      time.Now,
		logger:   slog.Default(),
		subs:     make(map[chan Change]struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	if s.ids == nil {
		s.ids = NewClockIDs(s.now)
	}
	if s.projects == nil {
		s.projects = []Project{}
	}
	if s.skills == nil {
		s.skills = []Skill{}
	}
	if s.activities == nil {
		s.activities = []Activity{}
	}
	return s
}

// Close ends the session: subscribers' channels are closed and later
// Subscribe calls receive an already-closed channel.
func (s *Store) Close() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
}

// --- projects ---

func (s *Store) AddProject(req NewProjectRequest) Project {
	s.mu.Lock()
	p := Project{
		ID:          s.ids.Next(),
		Title:       req.Title,
		Description: req.Description,
		Kind:        req.Kind,
		Stack:       cloneStrings(req.Stack),
		Features:    cloneStrings(req.Features),
		LastUpdated: req.LastUpdated,
		Image:       req.Image,
		URL:         req.URL,
	}
	if req.Status != nil {
		st := *req.Status
		p.Status = &st
	}
	if req.Stars != nil {
		p.Stars = intPtr(*req.Stars)
	}
	if req.Forks != nil {
		p.Forks = intPtr(*req.Forks)
	}
	s.projects = append(slices.Clip(s.projects), p)
	s.logActivity(ProjectAdded, fmt.Sprintf("%s has been added to your portfolio", p.Title))
	s.mu.Unlock()

	s.logger.Debug("project added", "id", p.ID, "title", p.Title)
	s.publish(Change{Entity: EntityProject, Op: OpAdded, ID: p.ID})
	return cloneProject(p)
}

func (s *Store) UpdateProject(id int64, patch ProjectPatch) {
	s.mu.Lock()
	i := slices.IndexFunc(s.projects, func(p Project) bool { return p.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next := slices.Clone(s.projects)
	rec := cloneProject(next[i])
	patch.apply(&rec)
	next[i] = rec
	s.projects = next
	s.mu.Unlock()

	s.publish(Change{Entity: EntityProject, Op: OpUpdated, ID: id})
}

func (s *Store) DeleteProject(id int64) {
	s.mu.Lock()
	before := len(s.projects)
	s.projects = slices.DeleteFunc(slices.Clone(s.projects), func(p Project) bool { return p.ID == id })
	removed := len(s.projects) != before
	s.mu.Unlock()

	if removed {
		s.publish(Change{Entity: EntityProject, Op: OpDeleted, ID: id})
	}
}

// --- skills ---

func (s *Store) AddSkill(req NewSkillRequest) Skill {
	s.mu.Lock()
	sk := Skill{
		ID:         s.ids.Next(),
		Name:       req.Name,
		Category:   req.Category,
		Level:      req.Level,
		Experience: req.Experience,
	}
	s.skills = append(slices.Clip(s.skills), sk)
	s.logActivity(SkillUpdated, fmt.Sprintf("%s has been added to your skills", sk.Name))
	s.mu.Unlock()

	s.logger.Debug("skill added", "id", sk.ID, "name", sk.Name)
	s.publish(Change{Entity: EntitySkill, Op: OpAdded, ID: sk.ID})
	return sk
}

func (s *Store) UpdateSkill(id int64, patch SkillPatch) {
	s.mu.Lock()
	i := slices.IndexFunc(s.skills, func(sk Skill) bool { return sk.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next := slices.Clone(s.skills)
	patch.apply(&next[i])
	s.skills = next
	s.logActivity(SkillUpdated, fmt.Sprintf("%s was updated", next[i].Name))
	s.mu.Unlock()

	s.publish(Change{Entity: EntitySkill, Op: OpUpdated, ID: id})
}

func (s *Store) DeleteSkill(id int64) {
	s.mu.Lock()
	before := len(s.skills)
	s.skills = slices.DeleteFunc(slices.Clone(s.skills), func(sk Skill) bool { return sk.ID == id })
	removed := len(s.skills) != before
	s.mu.Unlock()

	if removed {
		s.publish(Change{Entity: EntitySkill, Op: OpDeleted, ID: id})
	}
}

// --- achievements ---

// AddAchievement appends to the named bucket. An unknown bucket is accepted
// and nothing is stored.
func (s *Store) AddAchievement(b Bucket, req NewAchievementRequest) Achievement {
	a := Achievement{
		Title:        req.Title,
		Organization: req.Organization,
		Duration:     req.Duration,
		Location:     req.Location,
		Description:  req.Description,
		Skills:       cloneStrings(req.Skills),
		Status:       req.Status,
		Issuer:       req.Issuer,
		CredentialID: req.CredentialID,
		ValidUntil:   req.ValidUntil,
		Category:     req.Category,
	}

	s.mu.Lock()
	l := s.achievements.list(b)
	if l == nil {
		s.mu.Unlock()
		s.logger.Warn("achievement for unknown bucket ignored", "bucket", string(b))
		return a
	}
	a.ID = s.ids.Next()
	*l = append(slices.Clip(*l), a)
	s.logActivity(AchievementAdded, fmt.Sprintf("New %s added: %s", b.Singular(), a.Title))
	s.mu.Unlock()

	s.logger.Debug("achievement added", "bucket", string(b), "id", a.ID)
	s.publish(Change{Entity: EntityAchievement, Op: OpAdded, Bucket: b, ID: a.ID})
	return cloneAchievement(a)
}

// UpdateAchievement only looks inside bucket b.
func (s *Store) UpdateAchievement(b Bucket, id int64, patch AchievementPatch) {
	s.mu.Lock()
	l := s.achievements.list(b)
	if l == nil {
		s.mu.Unlock()
		return
	}
	i := slices.IndexFunc(*l, func(a Achievement) bool { return a.ID == id })
	if i < 0 {
		s.mu.Unlock()
		return
	}
	next := slices.Clone(*l)
	rec := cloneAchievement(next[i])
	patch.apply(&rec)
	next[i] = rec
	*l = next
	s.mu.Unlock()

	s.publish(Change{Entity: EntityAchievement, Op: OpUpdated, Bucket: b, ID: id})
}

func (s *Store) DeleteAchievement(b Bucket, id int64) {
	s.mu.Lock()
	l := s.achievements.list(b)
	if l == nil {
		s.mu.Unlock()
		return
	}
	before := len(*l)
	*l = slices.DeleteFunc(slices.Clone(*l), func(a Achievement) bool { return a.ID == id })
	removed := len(*l) != before
	s.mu.Unlock()

	if removed {
		s.publish(Change{Entity: EntityAchievement, Op: OpDeleted, Bucket: b, ID: id})
	}
}

// --- profile & template ---

func (s *Store) UpdateProfile(patch ProfilePatch) {
	s.mu.Lock()
	patch.apply(&s.profile)
	s.logActivity(ProfileUpdated, "Profile updated")
	s.mu.Unlock()

	s.publish(Change{Entity: EntityProfile, Op: OpUpdated})
}

// SetSelectedTemplate stores name verbatim; it is not checked against the
// known templates.
func (s *Store) SetSelectedTemplate(name string) {
	s.mu.Lock()
	s.template = name
	s.mu.Unlock()

	s.logger.Debug("template selected", "template", name)
	s.publish(Change{Entity: EntityTemplate, Op: OpUpdated})
}

// --- reads ---

func (s *Store) Projects() []Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProjects(s.projects)
}

// Project returns a copy of the project with the given id.
func (s *Store) Project(id int64) (Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return cloneProject(p), true
		}
	}
	return Project{}, false
}

func (s *Store) Skills() []Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.skills)
}

func (s *Store) Achievements() Achievements {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAllAchievements(s.achievements)
}

func (s *Store) Profile() Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) Activities() []Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.activities)
}

func (s *Store) SelectedTemplate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.template
}

// Snapshot copies every collection under a single read lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Projects:     cloneProjects(s.projects),
		Skills:       slices.Clone(s.skills),
		Achievements: cloneAllAchievements(s.achievements),
		Profile:      s.profile,
		Activities:   slices.Clone(s.activities),
		Template:     s.template,
	}
}

// --- change feed ---

// Subscribe returns a channel receiving a Change after every applied
// mutation. Events are dropped for subscribers whose buffer is full. The
// channel is closed when ctx ends or the store is closed.
func (s *Store) Subscribe(ctx context.Context, buffer int) <-chan Change {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Change, buffer)

	s.subMu.Lock()
	if s.closed {
		s.subMu.Unlock()
		close(ch)
		return ch
	}
	s.subs[ch] = struct{}{}
	s.subMu.Unlock()

	go func() {
		<-ctx.Done()
		s.subMu.Lock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
		s.subMu.Unlock()
	}()
	return ch
}

func (s *Store) publish(c Change) {
	c.At = s.now()

	s.subMu.RLock()
	defer s.subMu.RUnlock()
	for ch := range s.subs {
		select {
		case ch <- c:
		default:
		}
	}
}

// logActivity must be called with s.mu held.
func (s *Store) logActivity(kind ActivityKind, msg string) {
	s.activities = append(slices.Clip(s.activities), Activity{
		ID:      s.ids.Next(),
		Kind:    kind,
		Message: msg,
		At:      s.now(),
	})
}

// --- copying ---

func cloneProject(p Project) Project {
	p.Stack = cloneStrings(p.Stack)
	p.Features = cloneStrings(p.Features)
	if p.Status != nil {
		st := *p.Status
		p.Status = &st
	}
	if p.Stars != nil {
		p.Stars = intPtr(*p.Stars)
	}
	if p.Forks != nil {
		p.Forks = intPtr(*p.Forks)
	}
	return p
}

func cloneProjects(in []Project) []Project {
	out := make([]Project, len(in))
	for i, p := range in {
		out[i] = cloneProject(p)
	}
	return out
}

func cloneAchievement(a Achievement) Achievement {
	a.Skills = cloneStrings(a.Skills)
	return a
}

func cloneAchievements(in []Achievement) []Achievement {
	out := make([]Achievement, len(in))
	for i, a := range in {
		out[i] = cloneAchievement(a)
	}
	return out
}

func cloneAllAchievements(a Achievements) Achievements {
	return Achievements{
		Internships:  cloneAchievements(a.Internships),
		Certificates: cloneAchievements(a.Certificates),
		Awards:       cloneAchievements(a.Awards),
	}
}
