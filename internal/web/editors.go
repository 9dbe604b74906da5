package web

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-builder/internal/importer"
	"github.com/Zachkp/portfolio-builder/internal/portfolio"
)

// Drafts as submitted by the editor dialogs. List fields arrive as
// comma-separated text and are split here, never in the store.

type projectDraft struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Stack       string `form:"stack" json:"stack"`
	Features    string `form:"features" json:"features"`
	URL         string `form:"url" json:"url" binding:"omitempty,url"`
	Image       string `form:"image" json:"image" binding:"omitempty,url"`
}

func (d projectDraft) request() portfolio.NewProjectRequest {
	return portfolio.NewProjectRequest{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Kind:        portfolio.KindManual,
		Stack:       portfolio.SplitList(d.Stack),
		Features:    portfolio.SplitList(d.Features),
		Status:      &portfolio.ProjectStatus{Saved: true},
		LastUpdated: "Just now",
		Image:       d.Image,
		URL:         d.URL,
	}
}

type projectPatchDraft struct {
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	Stack       *string `form:"stack" json:"stack"`
	Features    *string `form:"features" json:"features"`
	URL         *string `form:"url" json:"url"`
	Image       *string `form:"image" json:"image"`
	Stars       *int    `form:"stars" json:"stars" binding:"omitempty,min=0"`
	Forks       *int    `form:"forks" json:"forks" binding:"omitempty,min=0"`
	AISummary   *bool   `form:"aiSummary" json:"aiSummary"`
}

func (d projectPatchDraft) patch() (portfolio.ProjectPatch, error) {
	if err := notBlank("title", d.Title); err != nil {
		return portfolio.ProjectPatch{}, err
	}
	if err := notBlank("description", d.Description); err != nil {
		return portfolio.ProjectPatch{}, err
	}
	p := portfolio.ProjectPatch{
		Title:       d.Title,
		Description: d.Description,
		URL:         d.URL,
		Image:       d.Image,
		Stars:       d.Stars,
		Forks:       d.Forks,
		AISummary:   d.AISummary,
	}
	if d.Stack != nil {
		l := portfolio.SplitList(*d.Stack)
		p.Stack = &l
	}
	if d.Features != nil {
		l := portfolio.SplitList(*d.Features)
		p.Features = &l
	}
	return p, nil
}

type skillDraft struct {
	Name       string `form:"name" json:"name" binding:"required"`
	Category   string `form:"category" json:"category" binding:"required"`
	Level      string `form:"level" json:"level" binding:"required,oneof=Beginner Intermediate Expert"`
	Experience string `form:"experience" json:"experience"`
}

type skillPatchDraft struct {
	Name       *string `form:"name" json:"name"`
	Category   *string `form:"category" json:"category"`
	Level      *string `form:"level" json:"level" binding:"omitempty,oneof=Beginner Intermediate Expert"`
	Experience *string `form:"experience" json:"experience"`
}

type achievementDraft struct {
	Title        string `form:"title" json:"title" binding:"required"`
	Organization string `form:"organization" json:"organization"`
	Duration     string `form:"duration" json:"duration"`
	Location     string `form:"location" json:"location"`
	Description  string `form:"description" json:"description"`
	Skills       string `form:"skills" json:"skills"`
	Status       string `form:"status" json:"status"`
	Issuer       string `form:"issuer" json:"issuer"`
	CredentialID string `form:"credentialId" json:"credentialId"`
	ValidUntil   string `form:"validUntil" json:"validUntil"`
	Category     string `form:"category" json:"category"`
}

type achievementPatchDraft struct {
	Title        *string `form:"title" json:"title"`
	Organization *string `form:"organization" json:"organization"`
	Duration     *string `form:"duration" json:"duration"`
	Location     *string `form:"location" json:"location"`
	Description  *string `form:"description" json:"description"`
	Skills       *string `form:"skills" json:"skills"`
	Status       *string `form:"status" json:"status"`
	Issuer       *string `form:"issuer" json:"issuer"`
	CredentialID *string `form:"credentialId" json:"credentialId"`
	ValidUntil   *string `form:"validUntil" json:"validUntil"`
	Category     *string `form:"category" json:"category"`
}

type profileDraft struct {
	Name                 *string `form:"name" json:"name"`
	Email                *string `form:"email" json:"email" binding:"omitempty,email"`
	Bio                  *string `form:"bio" json:"bio"`
	Avatar               *string `form:"avatar" json:"avatar"`
	Location             *string `form:"location" json:"location"`
	Website              *string `form:"website" json:"website"`
	GitHub               *string `form:"github" json:"github"`
	LinkedIn             *string `form:"linkedin" json:"linkedin"`
	Twitter              *string `form:"twitter" json:"twitter"`
	IsPublic             *bool   `form:"isPublic" json:"isPublic"`
	ShowContact          *bool   `form:"showContact" json:"showContact"`
	CompletionPercentage *int    `form:"completionPercentage" json:"completionPercentage" binding:"omitempty,min=0,max=100"`
}

type templateDraft struct {
	Template string `form:"template" json:"template" binding:"required"`
}

type importDraft struct {
	URL string `form:"url" json:"url" binding:"required"`
}

// --- projects ---

func (s *Server) handleAddProject(c *gin.Context) {
	var d projectDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	req := d.request()
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddProject(req))
}

func (s *Server) handleImportProject(c *gin.Context) {
	var d importDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	req, err := s.importer.ImportFrom(c.Request.Context(), d.URL)
	if err != nil {
		if errors.Is(err, importer.ErrInvalidURL) {
			badRequest(c, err)
			return
		}
		s.logger.Warn("import failed", "url", d.URL, "err", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Import failed"})
		return
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddProject(req))
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var d projectPatchDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	patch, err := d.patch()
	if err != nil {
		badRequest(c, err)
		return
	}
	s.store.UpdateProject(id, patch)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.store.DeleteProject(id)
	c.Status(http.StatusNoContent)
}

// --- skills ---

func (s *Server) handleAddSkill(c *gin.Context) {
	var d skillDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	req := portfolio.NewSkillRequest{
		Name:       strings.TrimSpace(d.Name),
		Category:   d.Category,
		Level:      d.Level,
		Experience: strings.TrimSpace(d.Experience),
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddSkill(req))
}

func (s *Server) handleUpdateSkill(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var d skillPatchDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	if err := notBlank("name", d.Name); err != nil {
		badRequest(c, err)
		return
	}
	if d.Category != nil && !isCategory(*d.Category) {
		badRequest(c, errors.Errorf("unknown skill category %q", *d.Category))
		return
	}
	s.store.UpdateSkill(id, portfolio.SkillPatch{
		Name:       d.Name,
		Category:   d.Category,
		Level:      d.Level,
		Experience: d.Experience,
	})
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteSkill(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.store.DeleteSkill(id)
	c.Status(http.StatusNoContent)
}

// --- achievements ---

func (s *Server) handleAddAchievement(c *gin.Context) {
	var d achievementDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	bucket := portfolio.Bucket(c.Param("bucket"))
	org := strings.TrimSpace(d.Organization)
	if org == "" && bucket == portfolio.Certificates {
		// certificate forms only ask for the issuer
		org = strings.TrimSpace(d.Issuer)
	}
	req := portfolio.NewAchievementRequest{
		Title:        strings.TrimSpace(d.Title),
		Organization: org,
		Duration:     d.Duration,
		Location:     d.Location,
		Description:  d.Description,
		Skills:       portfolio.SplitList(d.Skills),
		Status:       d.Status,
		Issuer:       d.Issuer,
		CredentialID: d.CredentialID,
		ValidUntil:   d.ValidUntil,
		Category:     d.Category,
	}
	if err := req.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, s.store.AddAchievement(bucket, req))
}

func (s *Server) handleUpdateAchievement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var d achievementPatchDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	for field, v := range map[string]*string{"title": d.Title, "organization": d.Organization} {
		if err := notBlank(field, v); err != nil {
			badRequest(c, err)
			return
		}
	}
	patch := portfolio.AchievementPatch{
		Title:        d.Title,
		Organization: d.Organization,
		Duration:     d.Duration,
		Location:     d.Location,
		Description:  d.Description,
		Status:       d.Status,
		Issuer:       d.Issuer,
		CredentialID: d.CredentialID,
		ValidUntil:   d.ValidUntil,
		Category:     d.Category,
	}
	if d.Skills != nil {
		l := portfolio.SplitList(*d.Skills)
		patch.Skills = &l
	}
	s.store.UpdateAchievement(portfolio.Bucket(c.Param("bucket")), id, patch)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDeleteAchievement(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.store.DeleteAchievement(portfolio.Bucket(c.Param("bucket")), id)
	c.Status(http.StatusNoContent)
}

// --- profile & template ---

func (s *Server) handleUpdateProfile(c *gin.Context) {
	var d profileDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	patch := portfolio.ProfilePatch{
		Name:                 d.Name,
		Email:                d.Email,
		Bio:                  d.Bio,
		Avatar:               d.Avatar,
		Location:             d.Location,
		Website:              d.Website,
		GitHub:               d.GitHub,
		LinkedIn:             d.LinkedIn,
		Twitter:              d.Twitter,
		CompletionPercentage: d.CompletionPercentage,
		IsPublic:             d.IsPublic,
		ShowContact:          d.ShowContact,
	}
	s.store.UpdateProfile(patch)
	c.JSON(http.StatusOK, s.store.Profile())
}

func (s *Server) handleSetTemplate(c *gin.Context) {
	var d templateDraft
	if err := c.ShouldBind(&d); err != nil {
		badRequest(c, err)
		return
	}
	s.store.SetSelectedTemplate(d.Template)
	c.JSON(http.StatusOK, gin.H{"selectedTemplate": s.store.SelectedTemplate()})
}

// --- helpers ---

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, errors.Errorf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notBlank(field string, v *string) error {
	if v != nil && strings.TrimSpace(*v) == "" {
		return errors.Errorf("%s cannot be empty", field)
	}
	return nil
}

func isCategory(c string) bool {
	return slices.Contains(portfolio.Categories, c)
}
