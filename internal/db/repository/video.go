// Package repository provides the PostgreSQL-backed video store.
package repository

import (
	"context"
	"fmt"

	"github.com/ad-tracker/videoshelf-go/internal/db"
	"github.com/ad-tracker/videoshelf-go/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VideoRepository defines operations for managing videos.
// Videos are write-once: there is no update or delete.
type VideoRepository interface {
	// Create inserts the video and fills in its store-assigned ID and CreatedAt.
	Create(ctx context.Context, video *models.Video) error

	// GetByID retrieves a single video by ID. A miss returns db.ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error)

	// List retrieves every video in insertion order.
	List(ctx context.Context) ([]*models.Video, error)

	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

type videoRepository struct {
	pool *pgxpool.Pool
}

// NewVideoRepository creates a new VideoRepository.
func NewVideoRepository(pool *pgxpool.Pool) VideoRepository {
	return &videoRepository{pool: pool}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	query := `
		INSERT INTO videos (title, description, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		video.Title,
		video.Description,
		video.URL,
	).Scan(
		&video.ID,
		&video.CreatedAt,
	)

	if err != nil {
		return db.WrapError(err, "create video")
	}

	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Video, error) {
	query := `
		SELECT id, title, description, url, created_at
		FROM videos
		WHERE id = $1
	`

	video := &models.Video{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&video.ID,
		&video.Title,
		&video.Description,
		&video.URL,
		&video.CreatedAt,
	)

	if err != nil {
		return nil, db.WrapError(err, "get video by id")
	}

	return video, nil
}

func (r *videoRepository) List(ctx context.Context) ([]*models.Video, error) {
	query := `
		SELECT id, title, description, url, created_at
		FROM videos
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, db.WrapError(err, "list videos")
	}
	defer rows.Close()

	return scanVideos(rows)
}

func (r *videoRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Helper function to scan multiple videos from query results
func scanVideos(rows pgx.Rows) ([]*models.Video, error) {
	videos := make([]*models.Video, 0)

	for rows.Next() {
		video := &models.Video{}
		err := rows.Scan(
			&video.ID,
			&video.Title,
			&video.Description,
			&video.URL,
			&video.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		videos = append(videos, video)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}

	return videos, nil
}
