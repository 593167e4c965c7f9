package poller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"anoa.com/lifesaver/internal/entity"
)

type fakeAPI struct {
	mu        sync.Mutex
	inbox     []entity.Notification
	listErr   error
	listCalls int
	alerts    []entity.Alert
	alertErr  error
}

func (f *fakeAPI) ListUnread(ctx context.Context, phone string) ([]entity.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]entity.Notification, len(f.inbox))
	copy(out, f.inbox)
	return out, nil
}

func (f *fakeAPI) CreateAlert(ctx context.Context, senderName string, lat, lng float64) (*entity.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.alertErr != nil {
		return nil, f.alertErr
	}
	a := entity.Alert{ID: uuid.New(), SenderName: senderName, Latitude: lat, Longitude: lng}
	f.alerts = append(f.alerts, a)
	return &a, nil
}

func (f *fakeAPI) setInbox(notifications []entity.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inbox = notifications
}

type fakeLocation struct {
	mu  sync.Mutex
	pos Position
	err error
}

func (f *fakeLocation) CurrentPosition(ctx context.Context) (Position, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, f.err
}

func (f *fakeLocation) set(pos Position, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pos = pos
	f.err = err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not reached in time")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestPollerDelivery(t *testing.T) {
	t.Run("each notification surfaces exactly once across polls", func(t *testing.T) {
		n1 := entity.Notification{ID: uuid.New(), RecipientPhone: "+1-555-0100", Message: "one"}
		n2 := entity.Notification{ID: uuid.New(), RecipientPhone: "+1-555-0100", Message: "two"}

		api := &fakeAPI{inbox: []entity.Notification{n1}}

		var mu sync.Mutex
		var delivered []uuid.UUID
		p := New(api, &fakeLocation{}, Options{
			Phone:        "+1-555-0100",
			PollInterval: 10 * time.Millisecond,
			OnNotification: func(n entity.Notification) {
				mu.Lock()
				delivered = append(delivered, n.ID)
				mu.Unlock()
			},
		})

		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(delivered) >= 1
		})

		// n1 keeps showing up unread; n2 joins the inbox later.
		api.setInbox([]entity.Notification{n1, n2})

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(delivered) >= 2
		})

		time.Sleep(50 * time.Millisecond)

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []uuid.UUID{n1.ID, n2.ID}, delivered)
	})

	t.Run("acknowledged ids are dropped from the merge set", func(t *testing.T) {
		n1 := entity.Notification{ID: uuid.New(), RecipientPhone: "+1-555-0100", Message: "one"}
		n2 := entity.Notification{ID: uuid.New(), RecipientPhone: "+1-555-0100", Message: "two"}

		api := &fakeAPI{inbox: []entity.Notification{n1}}

		var mu sync.Mutex
		var delivered []uuid.UUID
		p := New(api, &fakeLocation{}, Options{
			Phone:        "+1-555-0100",
			PollInterval: 10 * time.Millisecond,
			OnNotification: func(n entity.Notification) {
				mu.Lock()
				delivered = append(delivered, n.ID)
				mu.Unlock()
			},
		})

		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(delivered) == 1
		})

		// n1 gets acknowledged elsewhere and leaves the unread list; its
		// id must not pin memory for the life of the loop.
		api.setInbox(nil)
		waitFor(t, func() bool {
			p.mu.Lock()
			defer p.mu.Unlock()
			return len(p.seen) == 0
		})

		api.setInbox([]entity.Notification{n2})
		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return len(delivered) == 2
		})

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []uuid.UUID{n1.ID, n2.ID}, delivered)
	})

	t.Run("poll errors are retried, not fatal", func(t *testing.T) {
		n := entity.Notification{ID: uuid.New(), Message: "late"}
		api := &fakeAPI{listErr: errors.New("server unreachable")}

		var mu sync.Mutex
		var count int
		p := New(api, &fakeLocation{}, Options{
			PollInterval: 10 * time.Millisecond,
			OnNotification: func(entity.Notification) {
				mu.Lock()
				count++
				mu.Unlock()
			},
		})

		p.Start(context.Background())
		defer p.Stop()

		time.Sleep(30 * time.Millisecond)

		api.mu.Lock()
		api.listErr = nil
		api.inbox = []entity.Notification{n}
		api.mu.Unlock()

		waitFor(t, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return count == 1
		})
	})
}

func TestPollerLocation(t *testing.T) {
	t.Run("SOS before the first sample fails", func(t *testing.T) {
		loc := &fakeLocation{err: errors.New("gps cold start")}
		p := New(&fakeAPI{}, loc, Options{LocationInterval: 10 * time.Millisecond})

		p.Start(context.Background())
		defer p.Stop()

		_, err := p.TriggerSOS(context.Background())
		assert.ErrorIs(t, err, ErrNoLocation)

		_, ok := p.LastPosition()
		assert.False(t, ok)
	})

	t.Run("SOS uses the latest sample", func(t *testing.T) {
		api := &fakeAPI{}
		loc := &fakeLocation{pos: Position{Lat: 37.77, Lng: -122.41}}
		p := New(api, loc, Options{
			SenderName:       "Alice",
			LocationInterval: 10 * time.Millisecond,
		})

		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, func() bool {
			_, ok := p.LastPosition()
			return ok
		})

		a, err := p.TriggerSOS(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Alice", a.SenderName)
		assert.Equal(t, 37.77, a.Latitude)
		assert.Equal(t, -122.41, a.Longitude)
	})

	t.Run("a failed sample keeps the previous position", func(t *testing.T) {
		loc := &fakeLocation{pos: Position{Lat: 1, Lng: 2}}
		p := New(&fakeAPI{}, loc, Options{LocationInterval: 10 * time.Millisecond})

		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, func() bool {
			_, ok := p.LastPosition()
			return ok
		})

		loc.set(Position{}, errors.New("gps lost"))
		time.Sleep(30 * time.Millisecond)

		pos, ok := p.LastPosition()
		require.True(t, ok)
		assert.Equal(t, Position{Lat: 1, Lng: 2}, pos)
	})
}

func TestPollerStop(t *testing.T) {
	api := &fakeAPI{}
	p := New(api, &fakeLocation{}, Options{
		PollInterval:     5 * time.Millisecond,
		LocationInterval: 5 * time.Millisecond,
	})

	p.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	api.mu.Lock()
	callsAtStop := api.listCalls
	api.mu.Unlock()

	// Stop waits for the loops, so no poll lands afterwards.
	time.Sleep(30 * time.Millisecond)

	api.mu.Lock()
	defer api.mu.Unlock()
	assert.Equal(t, callsAtStop, api.listCalls)
}
