package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	venueClient "github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания площадок
type Service struct {
	configRepo  ConfigRepository
	venueClient VenueServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		venueClient: venueClient,
		logger:      logger,
	}
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Публичный метод - используется для отображения расписания при бронировании
// Приоритет: space > venue-wide > значения по умолчанию
func (s *Service) GetWithHierarchy(ctx context.Context, req *models.GetConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("GetWithHierarchy: fetching config for venue=%d, space=%v", req.VenueID, req.SpaceID)

	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, req.VenueID, req.SpaceID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			// Площадка без сохранённой конфигурации работает по умолчаниям
			s.logger.Info("GetWithHierarchy: no config for venue=%d, using defaults", req.VenueID)
			defaults := domain.DefaultScheduleConfig()
			defaults.VenueID = req.VenueID
			return models.FromDomainConfig(defaults), nil
		}
		s.logger.Error("GetWithHierarchy: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetWithHierarchy - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetWithHierarchy: successfully fetched config id=%d (level: %s)",
		cfg.ID, s.getConfigLevel(cfg))
	return models.FromDomainConfig(cfg), nil
}

// GetAllByVenue получает все конфигурации площадки (общую и по пространствам)
// Доступно только менеджерам площадки
func (s *Service) GetAllByVenue(ctx context.Context, venueID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByVenue: fetching configs for venue=%d by user=%d", venueID, userID)

	// Проверяем права доступа (только менеджер площадки)
	if err := s.checkManagerAccess(ctx, venueID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("GetAllByVenue: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetAllByVenue - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByVenue: successfully fetched %d configs for venue=%d", len(configs), venueID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию расписания для площадки или пространства
// Доступно только менеджерам площадки
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: upserting config for venue=%d, space=%v by user=%d",
		req.VenueID, req.SpaceID, req.UserID)

	// 1. Получаем площадку для проверки прав доступа и пространств
	venue, err := s.venueClient.GetVenue(ctx, req.VenueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("Upsert: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("Upsert: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только менеджер площадки)
	if !venue.HasManager(req.UserID) {
		s.logger.Warn("Upsert: user=%d is not a manager of venue=%d", req.UserID, req.VenueID)
		return nil, ErrAccessDenied
	}

	// 3. Если указан spaceID, проверяем его существование
	if req.SpaceID != nil && !s.spaceExists(venue, *req.SpaceID) {
		s.logger.Warn("Upsert: space id=%d not found in venue=%d", *req.SpaceID, req.VenueID)
		return nil, ErrSpaceNotFound
	}

	// 4. Ищем существующую конфигурацию с точно таким же ключом (venue_id, space_id)
	existing, err := s.findExactConfig(ctx, req.VenueID, req.SpaceID)
	if err != nil {
		return nil, err
	}

	// 5. Готовим конфигурацию: обновления поверх существующей или умолчаний
	var cfg *domain.VenueScheduleConfig
	if existing != nil {
		tmp := *existing
		cfg = &tmp
	} else {
		cfg = domain.DefaultScheduleConfig()
		cfg.VenueID = req.VenueID
		cfg.SpaceID = req.SpaceID
	}
	if err := req.ApplyToConfig(cfg); err != nil {
		s.logger.Warn("Upsert: bad time value for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 6. Валидируем итоговые значения
	if err := s.validateConfigData(cfg); err != nil {
		s.logger.Warn("Upsert: validation failed for venue=%d: %v", req.VenueID, err)
		return nil, err
	}

	// 7. Создаем или обновляем конфигурацию в БД
	if existing == nil {
		created, err := s.configRepo.Create(ctx, cfg)
		if err != nil {
			s.logger.Error("Upsert: repository error on create: %v", err)
			return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Upsert: successfully created config id=%d", created.ID)
		return models.FromDomainConfig(created), nil
	}

	if err := s.configRepo.Update(ctx, cfg); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Upsert: config id=%d not found during update", cfg.ID)
			return nil, ErrConfigNotFound
		}
		s.logger.Error("Upsert: repository error on update: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully updated config id=%d", cfg.ID)
	return models.FromDomainConfig(cfg), nil
}

// Вспомогательные методы

// findExactConfig ищет конфигурацию с точным совпадением ключа (venue_id, space_id),
// без иерархического поиска
func (s *Service) findExactConfig(ctx context.Context, venueID int64, spaceID *int64) (*domain.VenueScheduleConfig, error) {
	configs, err := s.configRepo.GetByVenue(ctx, venueID)
	if err != nil {
		s.logger.Error("findExactConfig: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: findExactConfig - repository error: %v", ErrInternal, err)
	}

	for _, cfg := range configs {
		if spaceID == nil && cfg.SpaceID == nil {
			return cfg, nil
		}
		if spaceID != nil && cfg.SpaceID != nil && *spaceID == *cfg.SpaceID {
			return cfg, nil
		}
	}

	return nil, nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64) error {
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	if !venue.HasManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
		return ErrAccessDenied
	}

	return nil
}

// spaceExists проверяет, что пространство существует на площадке
func (s *Service) spaceExists(venue *venueClient.Venue, spaceID int64) bool {
	for _, space := range venue.Spaces {
		if space.ID == spaceID {
			return true
		}
	}
	return false
}

// validateConfigData валидирует параметры конфигурации
func (s *Service) validateConfigData(cfg *domain.VenueScheduleConfig) error {
	// Проверяем формат времени
	if err := cfg.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}
	if err := cfg.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}
	if !cfg.OpenTime.IsBefore(cfg.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	// Проверяем minDurationMinutes
	if cfg.MinDurationMinutes < domain.MinDurationLowerBound || cfg.MinDurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: minDurationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationLowerBound, domain.MaxDurationMinutes)
	}

	// Проверяем gridStepMinutes
	if cfg.GridStepMinutes < domain.MinGridStepMinutes || cfg.GridStepMinutes > domain.MaxGridStepMinutes {
		return fmt.Errorf("%w: gridStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinGridStepMinutes, domain.MaxGridStepMinutes)
	}

	// Проверяем suggestionLimit
	if cfg.SuggestionLimit < domain.MinSuggestionLimit || cfg.SuggestionLimit > domain.MaxSuggestionLimit {
		return fmt.Errorf("%w: suggestionLimit must be between %d and %d",
			ErrInvalidInput, domain.MinSuggestionLimit, domain.MaxSuggestionLimit)
	}

	// Проверяем advanceBookingDays
	if cfg.AdvanceBookingDays < 0 || cfg.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and %d",
			ErrInvalidInput, domain.MaxAdvanceBookingDays)
	}

	return nil
}

// getConfigLevel возвращает строковое представление уровня конфигурации для логирования
func (s *Service) getConfigLevel(cfg *domain.VenueScheduleConfig) string {
	if cfg.IsSpaceSpecific() {
		return "space"
	}
	return "venue"
}
