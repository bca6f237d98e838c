// Package service provides the video submission pipeline and read paths.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ad-tracker/videoshelf-go/internal/db"
	"github.com/ad-tracker/videoshelf-go/internal/db/repository"
	"github.com/ad-tracker/videoshelf-go/internal/metrics"
	"github.com/ad-tracker/videoshelf-go/internal/models"
	"github.com/ad-tracker/videoshelf-go/internal/validation"
	"github.com/ad-tracker/videoshelf-go/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrVideoNotFound is returned by Get when no video has the requested id.
var ErrVideoNotFound = errors.New("video not found")

// EventPublisher announces stored videos to other systems.
type EventPublisher interface {
	PublishVideoCreated(ctx context.Context, video *models.Video) error
}

// VideoService handles video submission and retrieval.
type VideoService struct {
	repo      repository.VideoRepository
	validator *validation.Validator
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// NewVideoService creates a new VideoService. publisher and m may be nil.
func NewVideoService(repo repository.VideoRepository, validator *validation.Validator, publisher EventPublisher, m *metrics.Metrics) *VideoService {
	return &VideoService{
		repo:      repo,
		validator: validator,
		publisher: publisher,
		metrics:   m,
	}
}

// Submit validates the form and stores the video.
//
// It returns exactly one of: the stored video, a *ValidationError holding the submitted input
// and every field error (nothing is stored), or a *ProcessingError when the store fails.
func (s *VideoService) Submit(ctx context.Context, in models.VideoInput) (*models.Video, error) {
	// Step 1: Validate the raw input
	if fields := s.validator.ValidateVideo(&in); len(fields) > 0 {
		logger.L().Info("Video submission rejected",
			zap.Strings("fields", fieldNames(fields)),
		)
		s.metrics.Submission(metrics.OutcomeRejected)
		return nil, &ValidationError{Input: in, Fields: fields}
	}

	// Step 2: Build the entity from the submitted values
	video := models.NewVideo(in)

	// Step 3: Persist; the store assigns the id
	if err := s.repo.Create(ctx, video); err != nil {
		logger.L().Error("Failed to persist video",
			zap.Error(err),
			zap.String("title", video.Title),
		)
		s.metrics.Submission(metrics.OutcomeFailed)
		return nil, &ProcessingError{Message: "failed to save video", Cause: err}
	}

	s.metrics.Submission(metrics.OutcomeCreated)
	logger.L().Info("Video created",
		zap.String("videoId", video.ID.String()),
		zap.String("title", video.Title),
	)

	// Step 4: Announce it. The video is already stored, so a broker failure is only logged.
	if s.publisher != nil {
		err := s.publisher.PublishVideoCreated(ctx, video)
		s.metrics.Publish(err)
		if err != nil {
			logger.L().Warn("Failed to publish video created event",
				zap.Error(err),
				zap.String("videoId", video.ID.String()),
			)
		}
	}

	return video, nil
}

// List returns every stored video in store order. An empty store yields an empty slice.
func (s *VideoService) List(ctx context.Context) ([]*models.Video, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		logger.L().Error("Failed to list videos", zap.Error(err))
		return nil, &ProcessingError{Message: "failed to list videos", Cause: err}
	}
	return videos, nil
}

// Get looks a video up by its id as it appears in the URL.
// Ids that are not valid UUIDs cannot exist and are reported as ErrVideoNotFound.
func (s *VideoService) Get(ctx context.Context, rawID string) (*models.Video, error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		s.metrics.Lookup(false)
		return nil, fmt.Errorf("parse id %q: %w", rawID, ErrVideoNotFound)
	}

	video, err := s.repo.GetByID(ctx, id)
	if db.IsNotFound(err) {
		s.metrics.Lookup(false)
		return nil, fmt.Errorf("video %s: %w", id, ErrVideoNotFound)
	}
	if err != nil {
		logger.L().Error("Failed to get video",
			zap.Error(err),
			zap.String("videoId", id.String()),
		)
		return nil, &ProcessingError{Message: "failed to get video", Cause: err}
	}

	s.metrics.Lookup(true)
	return video, nil
}

// Ping reports whether the store is reachable.
func (s *VideoService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
