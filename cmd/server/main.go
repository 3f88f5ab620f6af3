package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"refuel-rescue/internal/config"
	"refuel-rescue/internal/docs"
	"refuel-rescue/internal/domain"
	"refuel-rescue/internal/notify"
	natspub "refuel-rescue/internal/notify/nats"
	"refuel-rescue/internal/places"
	"refuel-rescue/internal/receipt"
	"refuel-rescue/internal/repo/postgres"
	"refuel-rescue/internal/service"
	"refuel-rescue/internal/transport/httpapi"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var receiptStore docs.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db error: %v", err)
		}
		defer pool.Close()
		if cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatalf("migration error: %v", err)
			}
		}
		receiptStore = postgres.NewReceiptStore(pool)
	} else {
		store, err := docs.NewFSStore(cfg.ReceiptDir)
		if err != nil {
			log.Fatalf("receipt dir error: %v", err)
		}
		receiptStore = store
	}

	var placeSource places.Source
	if cfg.PlacesBaseURL != "" {
		placeSource = places.NewHTTPSource(cfg.PlacesBaseURL, cfg.PlacesAPIKey)
		if cfg.PlacesCache {
			placeSource = places.NewCachedSource(placeSource)
		}
	} else {
		log.Printf("PLACES_BASE_URL not set, using built-in station list")
		placeSource = &places.StaticSource{Stations: builtinStations()}
	}

	var notifier notify.Notifier = notify.NoopNotifier{}
	if cfg.NATSEnabled {
		publisher, err := natspub.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		notifier = publisher
	}
	queue := notify.NewQueue(notifier, cfg.NotifyBuffer)
	defer queue.Close()

	svc := service.New(placeSource, queue, receipt.NewEmitter(receiptStore), cfg.RadiusMeters)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewServer(svc, receiptStore),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("http listening on %s", cfg.HTTPAddr)
		err := httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := queue.Start(ctx)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// builtinStations is the offline candidate set around the default
// fallback coordinate.
func builtinStations() []domain.Station {
	return []domain.Station{
		{ID: "blr-01", Name: "Indian Oil Majestic", Location: domain.Coordinate{Lat: 12.9778, Lng: 77.5713}},
		{ID: "blr-02", Name: "HP Petrol Bunk Shivajinagar", Location: domain.Coordinate{Lat: 12.9852, Lng: 77.6058}},
		{ID: "blr-03", Name: "Shell Richmond Road", Location: domain.Coordinate{Lat: 12.9626, Lng: 77.6075}},
		{ID: "blr-04", Name: "Bharat Petroleum Cubbonpet", Location: domain.Coordinate{Lat: 12.9687, Lng: 77.5832}},
	}
}
