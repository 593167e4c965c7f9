// Package poller is the client side of the pipeline: a scheduled task with a
// cancellable handle that samples location, polls the unread inbox on a fixed
// interval, and fires an SOS on demand. The server-side contract (unread
// query plus idempotent acknowledge) does not depend on this loop; any client
// polling the same endpoints behaves identically.
package poller

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"anoa.com/lifesaver/internal/entity"
	"github.com/google/uuid"
)

// Position is one geolocation sample.
type Position struct {
	Lat float64
	Lng float64
}

// LocationSource produces location samples. The real implementation wraps
// whatever the device offers; it either yields a value or fails, and a
// failure simply leaves the previous sample in place.
type LocationSource interface {
	CurrentPosition(ctx context.Context) (Position, error)
}

// API is the slice of the server the poller talks to.
type API interface {
	ListUnread(ctx context.Context, phone string) ([]entity.Notification, error)
	CreateAlert(ctx context.Context, senderName string, lat, lng float64) (*entity.Alert, error)
}

// ErrNoLocation is returned by TriggerSOS before the first successful
// location sample: an SOS without a location cannot be created.
var ErrNoLocation = errors.New("location not available")

type Options struct {
	Phone      string
	SenderName string
	// PollInterval is the inbox cadence; defaults to 5s.
	PollInterval time.Duration
	// LocationInterval is the sampling cadence; defaults to 10s.
	LocationInterval time.Duration
	// OnNotification fires once per notification id, no matter how many
	// polls return it before it is acknowledged.
	OnNotification func(n entity.Notification)
}

type Poller struct {
	api      API
	location LocationSource
	opts     Options

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	lastPos *Position
	seen    map[uuid.UUID]struct{}
}

func New(api API, location LocationSource, opts Options) *Poller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 5 * time.Second
	}
	if opts.LocationInterval <= 0 {
		opts.LocationInterval = 10 * time.Second
	}

	return &Poller{
		api:      api,
		location: location,
		opts:     opts,
		seen:     make(map[uuid.UUID]struct{}),
	}
}

// Start launches the location and inbox loops. Stop cancels both.
func (p *Poller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(2)
	go p.locationLoop(ctx)
	go p.inboxLoop(ctx)
}

// Stop cancels the loops and waits for them to exit.
func (p *Poller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// LastPosition returns the most recent sample, if any arrived yet.
func (p *Poller) LastPosition() (Position, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastPos == nil {
		return Position{}, false
	}
	return *p.lastPos, true
}

// TriggerSOS sends an alert using the latest location sample.
func (p *Poller) TriggerSOS(ctx context.Context) (*entity.Alert, error) {
	pos, ok := p.LastPosition()
	if !ok {
		return nil, ErrNoLocation
	}
	return p.api.CreateAlert(ctx, p.opts.SenderName, pos.Lat, pos.Lng)
}

func (p *Poller) locationLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.opts.LocationInterval)
	defer ticker.Stop()

	p.sampleLocation(ctx)
	for {
		select {
		case <-ticker.C:
			p.sampleLocation(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) sampleLocation(ctx context.Context) {
	pos, err := p.location.CurrentPosition(ctx)
	if err != nil {
		// Keep the previous sample; a stale location beats none.
		return
	}

	p.mu.Lock()
	p.lastPos = &pos
	p.mu.Unlock()
}

func (p *Poller) inboxLoop(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.opts.PollInterval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// poll fetches the unread inbox and surfaces notifications not seen before.
// Each poll is a point-in-time snapshot; ids are the merge key across polls.
// The seen set is rebuilt from each snapshot: an id the server stopped
// returning was acknowledged, and read notifications never become unread
// again, so dropping it cannot cause a redelivery. This keeps the set
// bounded by the current unread count.
func (p *Poller) poll(ctx context.Context) {
	notifications, err := p.api.ListUnread(ctx, p.opts.Phone)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("inbox poll failed: %v", err)
		}
		return
	}

	current := make(map[uuid.UUID]struct{}, len(notifications))
	var fresh []entity.Notification

	p.mu.Lock()
	for _, n := range notifications {
		if _, dup := p.seen[n.ID]; !dup {
			fresh = append(fresh, n)
		}
		current[n.ID] = struct{}{}
	}
	p.seen = current
	p.mu.Unlock()

	if p.opts.OnNotification != nil {
		for _, n := range fresh {
			p.opts.OnNotification(n)
		}
	}
}
