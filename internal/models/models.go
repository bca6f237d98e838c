// Package models contains the video entity and the form and event types built around it.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Video is a stored video record. ID and CreatedAt are assigned by the store.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Video struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Path returns the detail page path for the video.
func (v *Video) Path() string {
	return "/videos/" + v.ID.String()
}

// VideoInput holds the raw fields of a submitted creation form.
type VideoInput struct {
	Title       string `form:"title" json:"title" validate:"notblank,storable"`
	Description string `form:"description" json:"description" validate:"storable"`
	URL         string `form:"url" json:"url" validate:"required,storable"`
}

// NewVideo populates a fresh, unsaved Video with the submitted values as-is.
func NewVideo(in VideoInput) *Video {
	return &Video{
		Title:       in.Title,
		Description: in.Description,
		URL:         in.URL,
	}
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

// VideoCreatedEvent is published after a video is stored.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type VideoCreatedEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	Video     Video     `json:"video"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewVideoCreatedEvent wraps v in an event with a fresh event id.
func NewVideoCreatedEvent(v *Video) *VideoCreatedEvent {
	return &VideoCreatedEvent{
		EventID:   uuid.New(),
		Video:     *v,
		CreatedAt: time.Now(),
	}
}
