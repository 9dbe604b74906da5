package web

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
	"github.com/Zachkp/portfolio-builder/internal/render"
)

func (s *Server) handlePreviewSelected(c *gin.Context) {
	s.renderPage(c, s.store.SelectedTemplate(), s.store.Snapshot(), "")
}

func (s *Server) handlePreview(c *gin.Context) {
	s.renderPage(c, c.Param("template"), s.store.Snapshot(), "")
}

// renderPage shows the named layout, or an empty page when the name matches
// none of the known templates.
func (s *Server) renderPage(c *gin.Context, name string, snap portfolio.Snapshot, contactAction string) {
	page := render.NewPage(snap)
	page.ShareURL = s.ShareLink()
	page.ContactAction = contactAction

	file, ok := render.FileFor(name)
	if !ok {
		s.logger.Debug("no template matches", "template", name)
		page.Notice = "No template matches \"" + name + "\""
		c.HTML(http.StatusOK, render.EmptyPage, page)
		return
	}
	c.HTML(http.StatusOK, file, page)
}

func (s *Server) handleSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Snapshot())
}

// handleProjects supports the projects page filter (?type=github|manual).
func (s *Server) handleProjects(c *gin.Context) {
	c.JSON(http.StatusOK, portfolio.FilterByKind(s.store.Projects(), c.Query("type")))
}

// handleSkills supports the skills page filter (?category=Backend) and
// ?grouped=true for category sections.
func (s *Server) handleSkills(c *gin.Context) {
	skills := portfolio.FilterByCategory(s.store.Skills(), c.Query("category"))
	if c.Query("grouped") == "true" {
		c.JSON(http.StatusOK, portfolio.GroupByCategory(skills))
		return
	}
	c.JSON(http.StatusOK, skills)
}

type activityView struct {
	portfolio.Activity
	Timestamp string `json:"timestamp"`
}

func (s *Server) handleActivities(c *gin.Context) {
	acts := s.store.Activities()
	out := make([]activityView, len(acts))
	for i, a := range acts {
		out[i] = activityView{Activity: a, Timestamp: a.Label()}
	}
	c.JSON(http.StatusOK, out)
}

// handleEvents streams store changes as server-sent events so open previews
// know when to re-read.
func (s *Server) handleEvents(c *gin.Context) {
	ctx := c.Request.Context()
	sub := s.store.Subscribe(ctx, 32)

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.SSEvent("ready", gin.H{"selectedTemplate": s.store.SelectedTemplate()})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", gin.H{})
			return true
		case ch, ok := <-sub:
			if !ok {
				return false
			}
			c.SSEvent(ch.Type(), ch)
			return true
		}
	})
}
