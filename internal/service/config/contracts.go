package config

import (
	"context"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания
type ConfigRepository interface {
	Create(ctx context.Context, cfg *domain.VenueScheduleConfig) (*domain.VenueScheduleConfig, error)
	Update(ctx context.Context, cfg *domain.VenueScheduleConfig) error
	GetConfigWithHierarchy(ctx context.Context, venueID int64, spaceID *int64) (*domain.VenueScheduleConfig, error)
	GetByVenue(ctx context.Context, venueID int64) ([]*domain.VenueScheduleConfig, error)
}

// VenueServiceClient интерфейс клиента для VenueService
type VenueServiceClient interface {
	GetVenue(ctx context.Context, venueID int64) (*venueservice.Venue, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
