// Package web exposes the portfolio store over HTTP: editor endpoints that
// validate drafts before calling the store, template previews, the shared
// public page and a change feed for live previews.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio-builder/internal/analytics"
	"github.com/Zachkp/portfolio-builder/internal/importer"
	"github.com/Zachkp/portfolio-builder/internal/portfolio"
	"github.com/Zachkp/portfolio-builder/internal/render"
	"github.com/Zachkp/portfolio-builder/internal/share"
)

// Deps are the collaborators a Server needs. Tracker and Mailer are optional.
type Deps struct {
	Store    *portfolio.Store
	Renderer *render.Renderer
	Importer importer.Importer
	Tracker  *analytics.Tracker
	Mailer   share.Mailer
	Logger   *slog.Logger
	BaseURL  string
	Token    string
}

type Server struct {
	store    *portfolio.Store
	renderer *render.Renderer
	importer importer.Importer
	tracker  *analytics.Tracker
	mailer   share.Mailer
	logger   *slog.Logger
	baseURL  string
	token    string

	mu     sync.RWMutex
	export portfolio.ExportOptions
}

func New(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Token == "" {
		d.Token = share.NewToken()
	}
	return &Server{
		store:    d.Store,
		renderer: d.Renderer,
		importer: d.Importer,
		tracker:  d.Tracker,
		mailer:   d.Mailer,
		logger:   d.Logger,
		baseURL:  d.BaseURL,
		token:    d.Token,
		export:   portfolio.DefaultExportOptions(),
	}
}

// ShareLink is the public URL of this session's portfolio.
func (s *Server) ShareLink() string {
	return share.Link(s.baseURL, s.token)
}

// Engine builds the gin router.
func (s *Server) Engine() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(s.renderer.Templates())

	// Template previews
	r.GET("/", s.handlePreviewSelected)
	r.GET("/preview/:template", s.handlePreview)

	// Read API for renderers
	api := r.Group("/api")
	api.GET("/portfolio", s.handleSnapshot)
	api.GET("/projects", s.handleProjects)
	api.GET("/skills", s.handleSkills)
	api.GET("/activities", s.handleActivities)
	r.GET("/events", s.handleEvents)

	// Editors
	r.POST("/projects", s.handleAddProject)
	r.POST("/projects/import", s.handleImportProject)
	r.PATCH("/projects/:id", s.handleUpdateProject)
	r.DELETE("/projects/:id", s.handleDeleteProject)

	r.POST("/skills", s.handleAddSkill)
	r.PATCH("/skills/:id", s.handleUpdateSkill)
	r.DELETE("/skills/:id", s.handleDeleteSkill)

	r.POST("/achievements/:bucket", s.handleAddAchievement)
	r.PATCH("/achievements/:bucket/:id", s.handleUpdateAchievement)
	r.DELETE("/achievements/:bucket/:id", s.handleDeleteAchievement)

	r.PATCH("/profile", s.handleUpdateProfile)
	r.PUT("/template", s.handleSetTemplate)

	// Sharing
	r.GET("/share", s.handleShareInfo)
	r.PUT("/share/options", s.handleExportOptions)
	r.POST("/share/pdf", s.handlePDF)
	r.GET("/share/stats", s.handleStats)

	public := r.Group("/p/:token")
	public.Use(s.requireToken())
	if s.tracker != nil {
		public.GET("", s.tracker.Middleware(), s.handleShared)
	} else {
		public.GET("", s.handleShared)
	}
	public.POST("/contact", s.handleContact)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("portfolio builder listening", "addr", addr, "share", s.ShareLink())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		// ends open event streams so Shutdown does not wait on them
		s.store.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) exportOptions() portfolio.ExportOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.export
}
