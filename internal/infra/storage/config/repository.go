package config

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/dbmetrics"
	"github.com/zeusvenues/Zeus-SchedulingService/pkg/psqlbuilder"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникальности
const pgUniqueViolation = "23505"

// configColumns единый список колонок для SELECT запросов
var configColumns = []string{
	"id",
	"venue_id",
	"space_id",
	"open_time",
	"close_time",
	"min_duration_minutes",
	"grid_step_minutes",
	"suggestion_limit",
	"advance_booking_days",
	"created_at",
	"updated_at",
}

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с конфигурацией расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания
func (r *Repository) Create(ctx context.Context, cfg *domain.VenueScheduleConfig) (*domain.VenueScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("venue_schedule_config").
		Columns(
			"venue_id",
			"space_id",
			"open_time",
			"close_time",
			"min_duration_minutes",
			"grid_step_minutes",
			"suggestion_limit",
			"advance_booking_days",
		).
		Values(
			cfg.VenueID,
			cfg.SpaceID,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.MinDurationMinutes,
			cfg.GridStepMinutes,
			cfg.SuggestionLimit,
			cfg.AdvanceBookingDays,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrDuplicateConfig
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return cfg, nil
}

// Update обновляет существующую конфигурацию
func (r *Repository) Update(ctx context.Context, cfg *domain.VenueScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("venue_schedule_config").
		Set("open_time", cfg.OpenTime).
		Set("close_time", cfg.CloseTime).
		Set("min_duration_minutes", cfg.MinDurationMinutes).
		Set("grid_step_minutes", cfg.GridStepMinutes).
		Set("suggestion_limit", cfg.SuggestionLimit).
		Set("advance_booking_days", cfg.AdvanceBookingDays).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": cfg.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// GetConfigWithHierarchy получает конфигурацию с учетом иерархии приоритетов:
// 1. Конфигурация конкретного пространства (venue_id, space_id)
// 2. Конфигурация всей площадки (venue_id, NULL)
// Если ни одной не найдено, возвращает ErrConfigNotFound.
func (r *Repository) GetConfigWithHierarchy(ctx context.Context, venueID int64, spaceID *int64) (*domain.VenueScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(configColumns...).
		From("venue_schedule_config").
		Where(squirrel.Eq{"venue_id": venueID})

	if spaceID != nil {
		// Конфигурация пространства приоритетнее конфигурации площадки
		selectBuilder = selectBuilder.
			Where(squirrel.Or{
				squirrel.Eq{"space_id": *spaceID},
				squirrel.Eq{"space_id": nil},
			}).
			OrderBy("space_id ASC NULLS LAST")
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"space_id": nil})
	}

	query, args, err := selectBuilder.Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfigWithHierarchy - scan config: %v", ErrScanRow, err)
	}

	return cfg, nil
}

// GetByVenue получает все конфигурации площадки (общую и по пространствам)
func (r *Repository) GetByVenue(ctx context.Context, venueID int64) ([]*domain.VenueScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("venue_schedule_config").
		Where(squirrel.Eq{"venue_id": venueID}).
		OrderBy("space_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.VenueScheduleConfig, 0)
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByVenue - scan config row: %v", ErrScanRow, err)
		}
		configs = append(configs, cfg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByVenue - rows error: %v", ErrScanRow, err)
	}

	return configs, nil
}

// rowScanner общий интерфейс для *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanConfig сканирует одну строку в модель конфигурации
func scanConfig(row rowScanner) (*domain.VenueScheduleConfig, error) {
	var cfg domain.VenueScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&cfg.ID,
		&cfg.VenueID,
		&cfg.SpaceID,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.MinDurationMinutes,
		&cfg.GridStepMinutes,
		&cfg.SuggestionLimit,
		&cfg.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	cfg.CreatedAt = createdAt.Time
	cfg.UpdatedAt = updatedAt.Time

	return &cfg, nil
}
