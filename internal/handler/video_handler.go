package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ad-tracker/videoshelf-go/internal/models"
	"github.com/ad-tracker/videoshelf-go/internal/service"
	"github.com/ad-tracker/videoshelf-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const savedFlash = "Video saved"

// VideoService is the part of service.VideoService the pages need.
type VideoService interface {
	Submit(ctx context.Context, in models.VideoInput) (*models.Video, error)
	List(ctx context.Context) ([]*models.Video, error)
	Get(ctx context.Context, rawID string) (*models.Video, error)
}

// View models for the templates in internal/web.
type (
	indexPage struct {
		Videos []*models.Video
	}

	createPage struct {
		Errors models.FieldErrors
		Input  models.VideoInput
	}

	showPage struct {
		Video   *models.Video
		Flashes []string
	}

	errorPage struct {
		Message string
	}
)

// VideoHandler serves the video pages.
type VideoHandler struct {
	videos VideoService
	flash  *flashes
}

// NewVideoHandler creates a new VideoHandler. store may be nil, which disables flash messages.
func NewVideoHandler(videos VideoService, store sessions.Store, sessionName string) *VideoHandler {
	return &VideoHandler{
		videos: videos,
		flash:  &flashes{store: store, name: sessionName},
	}
}

// Index renders every stored video.
func (h *VideoHandler) Index(c *gin.Context) {
	videos, err := h.videos.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "videos/index", indexPage{Videos: videos})
}

// New renders the empty creation form.
func (h *VideoHandler) New(c *gin.Context) {
	c.HTML(http.StatusOK, "videos/create", createPage{Errors: models.FieldErrors{}})
}

// Create runs the submission pipeline: a stored video redirects to its page,
// a rejected one re-renders the form with the submitted values and field errors.
func (h *VideoHandler) Create(c *gin.Context) {
	var in models.VideoInput
	if err := c.ShouldBind(&in); err != nil {
		logger.L().Warn("Unreadable video form",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		c.HTML(http.StatusBadRequest, "videos/create", createPage{
			Input:  in,
			Errors: models.FieldErrors{"_": "the submitted form could not be read"},
		})
		return
	}

	video, err := h.videos.Submit(c.Request.Context(), in)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.flash.add(c, savedFlash)
	c.Redirect(http.StatusFound, video.Path())
}

// Show renders one video. Unknown ids render the page without a video and a 404.
func (h *VideoHandler) Show(c *gin.Context) {
	video, err := h.videos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.HTML(http.StatusOK, "videos/show", showPage{
		Video:   video,
		Flashes: h.flash.pop(c),
	})
}

// NotFound renders the error page for routes that do not exist.
func (h *VideoHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "error", errorPage{Message: "Page not found"})
}

func (h *VideoHandler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var perr *service.ProcessingError

	switch {
	case errors.As(err, &verr):
		c.HTML(http.StatusBadRequest, "videos/create", createPage{
			Input:  verr.Input,
			Errors: verr.Fields,
		})
	case errors.Is(err, service.ErrVideoNotFound):
		logger.L().Info("Video not found",
			zap.String("id", c.Param("id")),
		)
		c.HTML(http.StatusNotFound, "videos/show", showPage{})
	case errors.As(err, &perr):
		logger.L().Error("Processing error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "error", errorPage{
			Message: "The video store is unavailable right now. Please try again.",
		})
	default:
		logger.L().Error("Unexpected error",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
		)
		_ = c.Error(err)
		c.HTML(http.StatusInternalServerError, "error", errorPage{
			Message: "An unexpected error occurred.",
		})
	}
}
