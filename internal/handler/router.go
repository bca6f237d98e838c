package handler

import (
	"fmt"
	"net/http"

	"github.com/ad-tracker/videoshelf-go/internal/middleware"
	"github.com/ad-tracker/videoshelf-go/internal/web"
	"github.com/ad-tracker/videoshelf-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route onto a new gin engine. metrics may be nil.
func NewRouter(videos *VideoHandler, health *HealthHandler, metrics http.Handler) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger.L()), middleware.Recovery(logger.L()))
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", web.Static())

	r.GET("/", videos.Index)
	r.GET("/videos", videos.Index)
	r.GET("/videos/create", videos.New)
	r.GET("/videos/:id", videos.Show)
	r.POST("/videos", videos.Create)

	r.GET("/health/live", health.LivenessProbe)
	r.GET("/health/ready", health.ReadinessProbe)

	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}

	r.NoRoute(videos.NotFound)

	return r, nil
}
