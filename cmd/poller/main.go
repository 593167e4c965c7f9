package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/lifesaver/internal/entity"
	"anoa.com/lifesaver/internal/poller"
)

// staticSource yields a fixed position, standing in for a real device
// geolocation API.
type staticSource struct {
	pos poller.Position
}

func (s staticSource) CurrentPosition(ctx context.Context) (poller.Position, error) {
	return s.pos, nil
}

func main() {
	var (
		serverURL = flag.String("server", "http://localhost:8080", "LifeSaver API base URL")
		phone     = flag.String("phone", "", "phone this device polls notifications for")
		sender    = flag.String("sender", "", "sender name used when triggering an SOS")
		lat       = flag.Float64("lat", 0, "device latitude")
		lng       = flag.Float64("lng", 0, "device longitude")
		interval  = flag.Duration("interval", 5*time.Second, "inbox poll interval")
		sos       = flag.Bool("sos", false, "trigger an SOS once the first location sample lands")
	)
	flag.Parse()

	if *phone == "" {
		log.Fatal("-phone is required")
	}

	client := poller.NewClient(*serverURL, "")

	p := poller.New(client, staticSource{pos: poller.Position{Lat: *lat, Lng: *lng}}, poller.Options{
		Phone:        *phone,
		SenderName:   *sender,
		PollInterval: *interval,
		OnNotification: func(n entity.Notification) {
			log.Printf("🆘 %s: %s", n.SenderName, n.Message)
		},
	})

	ctx := context.Background()
	p.Start(ctx)
	defer p.Stop()

	if *sos {
		if *sender == "" {
			log.Fatal("-sender is required with -sos")
		}
		// The location loop samples immediately on start.
		time.Sleep(time.Second)
		alert, err := p.TriggerSOS(ctx)
		if err != nil {
			log.Fatalf("failed to trigger SOS: %v", err)
		}
		log.Printf("SOS recorded: %s", alert.ID)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("shutting down poller")
}
