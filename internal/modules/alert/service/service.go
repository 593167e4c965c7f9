package alert

import (
	"context"
	"fmt"
	"math"
	"strings"

	"anoa.com/lifesaver/internal/entity"
	"anoa.com/lifesaver/internal/modules/alert/dto"
	"anoa.com/lifesaver/internal/modules/alert/repository"
	notification "anoa.com/lifesaver/internal/modules/notification/service"
	"anoa.com/lifesaver/pkg/apperror"
)

type AlertService interface {
	// CreateAlert validates and persists an SOS event, then synchronously
	// attempts fanout. When fanout fails after the alert is persisted, the
	// alert is still returned together with an error wrapping
	// apperror.ErrFanout, so callers can tell "SOS not recorded" apart
	// from "SOS recorded, contacts may not be informed".
	CreateAlert(ctx context.Context, req dto.CreateAlertRequest) (*entity.Alert, []entity.Notification, error)
	ListAlerts(ctx context.Context) ([]entity.Alert, error)
}

type alertService struct {
	repo          repository.AlertRepository
	notifications notification.NotificationService
}

func NewAlertService(repo repository.AlertRepository, notifications notification.NotificationService) AlertService {
	return &alertService{repo: repo, notifications: notifications}
}

func (s *alertService) CreateAlert(ctx context.Context, req dto.CreateAlertRequest) (*entity.Alert, []entity.Notification, error) {
	senderName := strings.TrimSpace(req.SenderName)
	if senderName == "" {
		return nil, nil, fmt.Errorf("%w: sender name is required", apperror.ErrInvalidInput)
	}

	// An SOS without a usable location cannot be created. Binding already
	// rejects null coordinates; this guards non-HTTP callers too.
	if req.Latitude == nil || req.Longitude == nil {
		return nil, nil, fmt.Errorf("%w: latitude and longitude are required", apperror.ErrInvalidInput)
	}
	lat, lng := *req.Latitude, *req.Longitude
	if !isFiniteCoordinate(lat, 90) || !isFiniteCoordinate(lng, 180) {
		return nil, nil, fmt.Errorf("%w: coordinates must be finite and in range", apperror.ErrInvalidInput)
	}

	a := &entity.Alert{
		SenderName: senderName,
		Latitude:   lat,
		Longitude:  lng,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}

	notifications, err := s.notifications.Fanout(ctx, a)
	if err != nil {
		// The alert is recorded either way; fanout failure must not
		// masquerade as a failed SOS.
		return a, nil, fmt.Errorf("%w: %v", apperror.ErrFanout, err)
	}

	return a, notifications, nil
}

func (s *alertService) ListAlerts(ctx context.Context) ([]entity.Alert, error) {
	alerts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperror.ErrStorage, err)
	}
	if alerts == nil {
		alerts = []entity.Alert{}
	}
	return alerts, nil
}

func isFiniteCoordinate(v, bound float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= -bound && v <= bound
}
