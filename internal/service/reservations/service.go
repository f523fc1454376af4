package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeusvenues/Zeus-SchedulingService/internal/domain"
	configRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/config"
	reservationRepo "github.com/zeusvenues/Zeus-SchedulingService/internal/infra/storage/reservation"
	venueClient "github.com/zeusvenues/Zeus-SchedulingService/internal/integrations/venueservice"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/scheduling"
	"github.com/zeusvenues/Zeus-SchedulingService/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	venueClient     VenueServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	venueClient VenueServiceClient,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		venueClient:     venueClient,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - пользователь может видеть только своё бронирование
// или если он является менеджером площадки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, userID)

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkUserAccess(ctx, reservation, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched reservation id=%d", id)
	return models.FromDomainReservation(reservation), nil
}

// GetUserReservations получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.ReservationStatus
	var domainStatus *domain.ReservationStatus
	if req.Status != nil {
		status, err := models.ToDomainReservationStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserReservations: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	reservations, err := s.reservationRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: successfully fetched %d reservations for user=%d", len(reservations), req.UserID)
	return models.FromDomainReservationList(reservations), nil
}

// GetVenueReservations получает бронирования площадки с гибкой фильтрацией
// Поддерживает фильтрацию по пространству, периоду, статусу и включению отменённых
// Доступно только менеджерам площадки
//
// Примеры использования:
// - Все активные бронирования: GetVenueReservations(ctx, &GetVenueReservationsRequest{VenueID: 123, UserID: 456})
// - Бронирования конкретного пространства: указать SpaceID
// - Расписание на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeCancelled = true
func (s *Service) GetVenueReservations(ctx context.Context, req *models.GetVenueReservationsRequest) (*models.ReservationListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetVenueReservations: fetching reservations for venue=%d, user=%d", req.VenueID, req.UserID)
	if req.SpaceID != nil {
		logMsg += fmt.Sprintf(", space=%d", *req.SpaceID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	// Проверяем права доступа менеджера
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueReservations: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	reservations, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueReservations: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueReservations: successfully fetched %d reservations for venue=%d", len(reservations), req.VenueID)
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование
// Пользователь может отменить только своё бронирование,
// менеджер может отменить любое бронирование площадки.
// При CancelBlock = true отменяются все бронирования блока.
func (s *Service) Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", reservationID, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Cancel: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("Cancel: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем, можно ли отменить бронирование
	if !reservation.CanBeCancelled() {
		s.logger.Warn("Cancel: reservation id=%d cannot be cancelled, status=%s", reservationID, reservation.Status)
		return ErrCannotCancel
	}

	// Проверяем права доступа: владелец или менеджер площадки
	if reservation.UserID != req.UserID {
		if err := s.checkManagerAccess(ctx, reservation.VenueID, req.UserID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel reservation id=%d", req.UserID, reservationID)
			return ErrAccessDenied
		}
	}

	// Собираем список бронирований к отмене
	targets := []*domain.Reservation{reservation}
	if req.CancelBlock && reservation.BlockID != nil {
		block, err := s.reservationRepo.GetByBlockID(ctx, *reservation.BlockID)
		if err != nil {
			s.logger.Error("Cancel: failed to load block %s: %v", *reservation.BlockID, err)
			return fmt.Errorf("%w: Cancel - failed to load block: %v", ErrInternal, err)
		}
		targets = targets[:0]
		for _, r := range block {
			if r.CanBeCancelled() {
				targets = append(targets, r)
			}
		}
		s.logger.Info("Cancel: cancelling %d reservation(s) of block %s", len(targets), *reservation.BlockID)
	}

	// Отменяем бронирования
	for _, target := range targets {
		if err := s.reservationRepo.Cancel(ctx, target.ID, req.CancellationReason); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Cancel: reservation id=%d not found during cancellation", target.ID)
				return ErrReservationNotFound
			}
			s.logger.Error("Cancel: repository error for reservation id=%d: %v", target.ID, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("Cancel: successfully cancelled %d reservation(s)", len(targets))
	return nil
}

// UpdateStatus обновляет статус бронирования
// Доступно только менеджерам площадки
func (s *Service) UpdateStatus(ctx context.Context, reservationID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d",
		reservationID, req.Status, req.UserID)

	// Получаем бронирование
	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа (только менеджер площадки)
	if err := s.checkManagerAccess(ctx, reservation.VenueID, req.UserID); err != nil {
		return err
	}

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for reservation id=%d", req.Status, reservationID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Обновляем статус
	if err := s.reservationRepo.UpdateStatus(ctx, reservationID, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found during update", reservationID)
			return ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for reservation id=%d: %v", reservationID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated reservation id=%d to status=%s", reservationID, newStatus)
	return nil
}

// PreviewShift вычисляет новые времена всех активных бронирований пространства
// на дату при сдвиге на N часов, не изменяя данные.
// Если хотя бы один слот выходит за часы работы - возвращается ошибка.
// Доступно только менеджерам площадки.
func (s *Service) PreviewShift(ctx context.Context, req *models.PreviewShiftRequest) (*models.PreviewShiftResponse, error) {
	s.logger.Info("PreviewShift: previewing shift of venue=%d, space=%d on %s by %d hour(s) for user=%d",
		req.VenueID, req.SpaceID, req.Date.Format(domain.DateFormat), req.ShiftHours, req.UserID)

	if req.ShiftHours == 0 {
		return nil, fmt.Errorf("%w: shiftHours must be non-zero", ErrInvalidInput)
	}

	// Проверяем права доступа (только менеджер площадки)
	if err := s.checkManagerAccess(ctx, req.VenueID, req.UserID); err != nil {
		return nil, err
	}

	// Получаем активные бронирования пространства на дату
	date := req.Date
	filter := domain.VenueReservationsFilter{
		VenueID:          req.VenueID,
		SpaceID:          &req.SpaceID,
		StartDate:        &date,
		EndDate:          &date,
		IncludeCancelled: false,
	}

	targets, err := s.reservationRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("PreviewShift: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: PreviewShift - repository error: %v", ErrInternal, err)
	}

	// Получаем часы работы из конфигурации расписания
	hours, err := s.operatingHours(ctx, req.VenueID, req.SpaceID)
	if err != nil {
		return nil, err
	}

	// Сдвигаем каждый слот; выход за часы работы отклоняет весь предпросмотр
	resp := &models.PreviewShiftResponse{
		ShiftHours: req.ShiftHours,
		Slots:      make([]models.ShiftedSlot, 0, len(targets)),
	}

	for _, target := range targets {
		newStart, err := scheduling.ShiftTime(target.StartTime, req.ShiftHours, hours)
		if err != nil {
			s.logger.Warn("PreviewShift: reservation id=%d start %s shifted outside %s-%s",
				target.ID, target.StartTime, hours.OpenTime, hours.CloseTime)
			return nil, ErrShiftOutsideHours
		}
		newEnd, err := scheduling.ShiftTime(target.EndTime, req.ShiftHours, hours)
		if err != nil {
			s.logger.Warn("PreviewShift: reservation id=%d end %s shifted outside %s-%s",
				target.ID, target.EndTime, hours.OpenTime, hours.CloseTime)
			return nil, ErrShiftOutsideHours
		}

		resp.Slots = append(resp.Slots, models.ShiftedSlot{
			ReservationID: target.ID,
			Date:          target.Date.Format(domain.DateFormat),
			OldStartTime:  target.StartTime.String(),
			OldEndTime:    target.EndTime.String(),
			NewStartTime:  newStart.String(),
			NewEndTime:    newEnd.String(),
		})
	}

	s.logger.Info("PreviewShift: successfully previewed shift of %d slot(s)", len(resp.Slots))
	return resp, nil
}

// Вспомогательные методы

// operatingHours возвращает часы работы пространства с учетом иерархии конфигураций
func (s *Service) operatingHours(ctx context.Context, venueID, spaceID int64) (scheduling.OperatingHours, error) {
	cfg, err := s.configRepo.GetConfigWithHierarchy(ctx, venueID, &spaceID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("operatingHours: failed to get config for venue=%d: %v", venueID, err)
		return scheduling.OperatingHours{}, fmt.Errorf("%w: operatingHours - failed to get config: %v", ErrInternal, err)
	}
	if cfg == nil {
		cfg = domain.DefaultScheduleConfig()
	}

	return scheduling.OperatingHours{
		OpenTime:  cfg.OpenTime,
		CloseTime: cfg.CloseTime,
	}, nil
}

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
// Пользователь может видеть своё бронирование или если он менеджер площадки
func (s *Service) checkUserAccess(ctx context.Context, reservation *domain.Reservation, userID int64) error {
	// Если пользователь владелец бронирования - доступ разрешён
	if reservation.UserID == userID {
		return nil
	}

	// Проверяем, является ли пользователь менеджером площадки
	if err := s.checkManagerAccess(ctx, reservation.VenueID, userID); err != nil {
		// Ошибка уже залогирована в checkManagerAccess
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером площадки
func (s *Service) checkManagerAccess(ctx context.Context, venueID int64, userID int64) error {
	// Получаем площадку через VenueService
	venue, err := s.venueClient.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueClient.ErrVenueNotFound) {
			s.logger.Warn("checkManagerAccess: venue id=%d not found", venueID)
			return ErrVenueNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get venue id=%d: %v", venueID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get venue: %v", ErrInternal, err)
	}

	// Проверяем, что userID в списке менеджеров
	if venue.HasManager(userID) {
		s.logger.Info("checkManagerAccess: user=%d is manager of venue=%d", userID, venueID)
		return nil
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of venue=%d", userID, venueID)
	return ErrAccessDenied
}
