package alert

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/lifesaver/internal/entity"
	"anoa.com/lifesaver/internal/modules/alert/dto"
	"anoa.com/lifesaver/pkg/apperror"
)

type fakeAlertRepo struct {
	mu      sync.Mutex
	alerts  []entity.Alert
	failNow error
}

func (f *fakeAlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNow != nil {
		return f.failNow
	}
	if alert.ID == uuid.Nil {
		alert.ID = uuid.New()
	}
	if alert.Status == "" {
		alert.Status = entity.AlertStatusActive
	}
	alert.CreatedAt = time.Now()
	f.alerts = append(f.alerts, *alert)
	return nil
}

func (f *fakeAlertRepo) FindAll(ctx context.Context) ([]entity.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Alert, 0, len(f.alerts))
	for i := len(f.alerts) - 1; i >= 0; i-- {
		out = append(out, f.alerts[i])
	}
	return out, nil
}

type fakeFanout struct {
	fanoutErr error
	calls     int
	lastAlert *entity.Alert
}

func (f *fakeFanout) Fanout(ctx context.Context, alert *entity.Alert) ([]entity.Notification, error) {
	f.calls++
	f.lastAlert = alert
	if f.fanoutErr != nil {
		return nil, f.fanoutErr
	}
	return []entity.Notification{{ID: uuid.New(), AlertID: alert.ID, RecipientPhone: "+1-555-0100"}}, nil
}

func (f *fakeFanout) ListUnread(ctx context.Context, phone string) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeFanout) MarkRead(ctx context.Context, id uuid.UUID) (*entity.Notification, error) {
	return nil, nil
}

func (f *fakeFanout) MarkAllRead(ctx context.Context, phone string) error { return nil }

func (f *fakeFanout) UnreadCount(ctx context.Context, phone string) (int64, error) { return 0, nil }

func ptr(v float64) *float64 { return &v }

func TestCreateAlert(t *testing.T) {
	ctx := context.Background()

	t.Run("valid request persists the alert and fans out once", func(t *testing.T) {
		repo := &fakeAlertRepo{}
		fanout := &fakeFanout{}
		svc := NewAlertService(repo, fanout)

		a, notifications, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
			SenderName: "Alice",
			Latitude:   ptr(37.7749),
			Longitude:  ptr(-122.4194),
		})
		require.NoError(t, err)
		require.NotNil(t, a)

		assert.Equal(t, "Alice", a.SenderName)
		assert.Equal(t, 37.7749, a.Latitude)
		assert.Equal(t, -122.4194, a.Longitude)
		assert.Equal(t, entity.AlertStatusActive, a.Status)
		assert.NotEqual(t, uuid.Nil, a.ID)

		assert.Equal(t, 1, fanout.calls)
		assert.Same(t, a, fanout.lastAlert)
		assert.Len(t, notifications, 1)
	})

	t.Run("sender name is trimmed", func(t *testing.T) {
		svc := NewAlertService(&fakeAlertRepo{}, &fakeFanout{})

		a, _, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
			SenderName: "  Bob  ",
			Latitude:   ptr(0),
			Longitude:  ptr(0),
		})
		require.NoError(t, err)
		assert.Equal(t, "Bob", a.SenderName)
	})

	t.Run("invalid input persists nothing and triggers no fanout", func(t *testing.T) {
		cases := []struct {
			name string
			req  dto.CreateAlertRequest
		}{
			{"blank sender", dto.CreateAlertRequest{SenderName: "   ", Latitude: ptr(1), Longitude: ptr(2)}},
			{"missing latitude", dto.CreateAlertRequest{SenderName: "A", Longitude: ptr(2)}},
			{"missing longitude", dto.CreateAlertRequest{SenderName: "A", Latitude: ptr(1)}},
			{"latitude out of range", dto.CreateAlertRequest{SenderName: "A", Latitude: ptr(90.5), Longitude: ptr(2)}},
			{"longitude out of range", dto.CreateAlertRequest{SenderName: "A", Latitude: ptr(1), Longitude: ptr(-180.5)}},
			{"NaN latitude", dto.CreateAlertRequest{SenderName: "A", Latitude: ptr(math.NaN()), Longitude: ptr(2)}},
			{"infinite longitude", dto.CreateAlertRequest{SenderName: "A", Latitude: ptr(1), Longitude: ptr(math.Inf(1))}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				repo := &fakeAlertRepo{}
				fanout := &fakeFanout{}
				svc := NewAlertService(repo, fanout)

				a, notifications, err := svc.CreateAlert(ctx, tc.req)
				assert.ErrorIs(t, err, apperror.ErrInvalidInput)
				assert.Nil(t, a)
				assert.Nil(t, notifications)
				assert.Empty(t, repo.alerts)
				assert.Zero(t, fanout.calls)
			})
		}
	})

	t.Run("boundary coordinates are accepted", func(t *testing.T) {
		svc := NewAlertService(&fakeAlertRepo{}, &fakeFanout{})

		for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
			_, _, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
				SenderName: "A",
				Latitude:   ptr(c[0]),
				Longitude:  ptr(c[1]),
			})
			assert.NoError(t, err)
		}
	})

	t.Run("storage failure means no alert and no fanout", func(t *testing.T) {
		repo := &fakeAlertRepo{failNow: errors.New("connection reset")}
		fanout := &fakeFanout{}
		svc := NewAlertService(repo, fanout)

		a, _, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
			SenderName: "A",
			Latitude:   ptr(1),
			Longitude:  ptr(2),
		})
		assert.ErrorIs(t, err, apperror.ErrStorage)
		assert.Nil(t, a)
		assert.Zero(t, fanout.calls)
	})

	t.Run("fanout failure still returns the persisted alert", func(t *testing.T) {
		repo := &fakeAlertRepo{}
		fanout := &fakeFanout{fanoutErr: errors.New("notification table unavailable")}
		svc := NewAlertService(repo, fanout)

		a, notifications, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
			SenderName: "Carol",
			Latitude:   ptr(10),
			Longitude:  ptr(20),
		})
		assert.ErrorIs(t, err, apperror.ErrFanout)
		require.NotNil(t, a)
		assert.Nil(t, notifications)
		assert.Len(t, repo.alerts, 1)
	})
}

func TestListAlerts(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history is an empty list", func(t *testing.T) {
		svc := NewAlertService(&fakeAlertRepo{}, &fakeFanout{})

		alerts, err := svc.ListAlerts(ctx)
		require.NoError(t, err)
		assert.NotNil(t, alerts)
		assert.Empty(t, alerts)
	})

	t.Run("newest alerts come first", func(t *testing.T) {
		repo := &fakeAlertRepo{}
		svc := NewAlertService(repo, &fakeFanout{})

		for _, name := range []string{"first", "second", "third"} {
			_, _, err := svc.CreateAlert(ctx, dto.CreateAlertRequest{
				SenderName: name,
				Latitude:   ptr(1),
				Longitude:  ptr(2),
			})
			require.NoError(t, err)
		}

		alerts, err := svc.ListAlerts(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 3)
		assert.Equal(t, "third", alerts[0].SenderName)
		assert.Equal(t, "first", alerts[2].SenderName)
	})
}
