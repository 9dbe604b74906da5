package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/Zachkp/portfolio-builder/internal/portfolio"
	"github.com/Zachkp/portfolio-builder/internal/share"
)

type shareInfo struct {
	Link     string                  `json:"link"`
	Intents  share.Intents           `json:"intents"`
	Template string                  `json:"selectedTemplate"`
	Options  portfolio.ExportOptions `json:"options"`
	IsPublic bool                    `json:"isPublic"`
}

func (s *Server) handleShareInfo(c *gin.Context) {
	link := s.ShareLink()
	c.JSON(http.StatusOK, shareInfo{
		Link:     link,
		Intents:  share.IntentsFor(link),
		Template: s.store.SelectedTemplate(),
		Options:  s.exportOptions(),
		IsPublic: s.store.Profile().Visibility.IsPublic,
	})
}

func (s *Server) handleExportOptions(c *gin.Context) {
	opts := s.exportOptions()
	if err := c.ShouldBindJSON(&opts); err != nil {
		badRequest(c, err)
		return
	}
	s.mu.Lock()
	s.export = opts
	s.mu.Unlock()
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handlePDF(c *gin.Context) {
	share.PDFIntent(s.logger, s.store.SelectedTemplate())
	c.JSON(http.StatusAccepted, gin.H{"message": "PDF export is not available yet"})
}

func (s *Server) handleStats(c *gin.Context) {
	if s.tracker == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visitor tracking disabled"})
		return
	}
	stats, err := s.tracker.Stats(c.Request.Context())
	if err != nil {
		s.logger.Error("error loading visitor stats", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// requireToken hides the public page unless the token matches this session
// and the profile is public.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Param("token") != s.token || !s.store.Profile().Visibility.IsPublic {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

func (s *Server) handleShared(c *gin.Context) {
	snap := s.exportOptions().Filter(s.store.Snapshot())
	action := ""
	if snap.Profile.Visibility.ShowContact {
		action = "/p/" + s.token + "/contact"
	}
	s.renderPage(c, snap.Template, snap, action)
}

type contactDraft struct {
	Name    string `form:"fullName" binding:"required"`
	Email   string `form:"email" binding:"required,email"`
	Message string `form:"message" binding:"required"`
}

func (s *Server) handleContact(c *gin.Context) {
	profile := s.store.Profile()
	if !profile.Visibility.ShowContact || !s.exportOptions().IncludeContact {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var d contactDraft
	if err := c.ShouldBind(&d); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", "Please fill in your name, a valid email and a message.")
		return
	}

	err := errors.New("contact form disabled")
	if s.mailer != nil {
		err = s.mailer.Send(profile.Email, share.ContactMessage{Name: d.Name, Email: d.Email, Message: d.Message})
	}
	if err != nil {
		s.logger.Warn("error sending contact email", "err", err)
		c.HTML(http.StatusOK, "contact-error.html", "Sorry, there was an error sending your message. Please try again later.")
		return
	}
	c.HTML(http.StatusOK, "contact-success.html", "Thank you for your message! I'll get back to you soon.")
}
