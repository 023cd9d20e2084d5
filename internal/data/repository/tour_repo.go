package repository

import (
	"context"
	"fmt"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TourRepository interface {
	Create(ctx context.Context, tour *entity.Tour) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error)
	FindByGuideID(ctx context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error)
	Count(ctx context.Context) (int64, error)
	CountByGuideID(ctx context.Context, guideID uuid.UUID) (int64, error)
	Update(ctx context.Context, tour *entity.Tour) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type tourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTourRepository(db database.PgxIface, log *zap.Logger) TourRepository {
	return &tourRepository{
		db:  db,
		log: log.With(zap.String("repository", "tour")),
	}
}

const tourColumns = `id, guide_id, title, location, price, duration, spots, description, cover_photo, created_at, updated_at`

func scanTour(row pgx.Row) (*entity.Tour, error) {
	var tour entity.Tour
	err := row.Scan(
		&tour.ID,
		&tour.GuideID,
		&tour.Title,
		&tour.Location,
		&tour.Price,
		&tour.Duration,
		&tour.Spots,
		&tour.Description,
		&tour.CoverPhoto,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tour, nil
}

func (r *tourRepository) Create(ctx context.Context, tour *entity.Tour) error {
	query := `
		INSERT INTO tours (` + tourColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.GuideID,
		tour.Title,
		tour.Location,
		tour.Price,
		tour.Duration,
		tour.Spots,
		tour.Description,
		tour.CoverPhoto,
		tour.CreatedAt,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create tour",
			zap.Error(err),
			zap.String("guide_id", tour.GuideID.String()),
			zap.String("title", tour.Title),
		)
		return fmt.Errorf("create tour %s: %w", tour.Title, err)
	}

	return nil
}

func (r *tourRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Tour, error) {
	query := `SELECT ` + tourColumns + ` FROM tours WHERE id = $1`

	tour, err := scanTour(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find tour by ID",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return nil, fmt.Errorf("find tour by ID %s: %w", id.String(), err)
	}

	return tour, nil
}

func (r *tourRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tours",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find tours: %w", err)
	}
	defer rows.Close()

	return collectTours(rows, r.log)
}

func (r *tourRepository) FindByGuideID(ctx context.Context, guideID uuid.UUID, limit, offset int) ([]*entity.Tour, error) {
	query := `
		SELECT ` + tourColumns + `
		FROM tours
		WHERE guide_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, guideID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find tours by guide ID",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return nil, fmt.Errorf("find tours by guide ID %s: %w", guideID.String(), err)
	}
	defer rows.Close()

	return collectTours(rows, r.log)
}

func collectTours(rows pgx.Rows, log *zap.Logger) ([]*entity.Tour, error) {
	var tours []*entity.Tour
	for rows.Next() {
		tour, err := scanTour(rows)
		if err != nil {
			log.Error("Failed to scan tour row", zap.Error(err))
			return nil, fmt.Errorf("scan tour row: %w", err)
		}
		tours = append(tours, tour)
	}
	return tours, nil
}

func (r *tourRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tours", zap.Error(err))
		return 0, fmt.Errorf("count tours: %w", err)
	}

	return count, nil
}

func (r *tourRepository) CountByGuideID(ctx context.Context, guideID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM tours WHERE guide_id = $1`, guideID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count tours by guide ID",
			zap.Error(err),
			zap.String("guide_id", guideID.String()),
		)
		return 0, fmt.Errorf("count tours by guide ID %s: %w", guideID.String(), err)
	}

	return count, nil
}

func (r *tourRepository) Update(ctx context.Context, tour *entity.Tour) error {
	query := `
		UPDATE tours
		SET title = $2, location = $3, price = $4, duration = $5, spots = $6,
		    description = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		tour.ID,
		tour.Title,
		tour.Location,
		tour.Price,
		tour.Duration,
		tour.Spots,
		tour.Description,
		tour.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update tour",
			zap.Error(err),
			zap.String("tour_id", tour.ID.String()),
		)
		return fmt.Errorf("update tour %s: %w", tour.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", tour.ID.String())
	}

	return nil
}

func (r *tourRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM tours WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete tour",
			zap.Error(err),
			zap.String("tour_id", id.String()),
		)
		return fmt.Errorf("delete tour %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("tour %s not found", id.String())
	}

	r.log.Info("Tour deleted", zap.String("tour_id", id.String()))
	return nil
}
