package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sparcel-journey-service/internal/adapters/cache"
	"sparcel-journey-service/internal/adapters/catalog"
	"sparcel-journey-service/internal/adapters/courier"
	"sparcel-journey-service/internal/adapters/email"
	"sparcel-journey-service/internal/adapters/events"
	"sparcel-journey-service/internal/adapters/geocode"
	"sparcel-journey-service/internal/adapters/repositories"
	"sparcel-journey-service/internal/adapters/sessions"
	"sparcel-journey-service/internal/api"
	"sparcel-journey-service/internal/config"
	"sparcel-journey-service/internal/platform/db"
	"sparcel-journey-service/internal/ports"
	"sparcel-journey-service/internal/services"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, SQLite, Redis, Dropper, Resend, brokers)
// behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	localDB, err := db.OpenSQLite(cfg.LocalDBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer localDB.Close()
	if err := repositories.InitSqliteSchema(ctx, localDB); err != nil {
		log.Fatal(err)
	}

	var remoteDB *sql.DB
	if cfg.DatabaseURL != "" {
		remoteDB, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			// The local store keeps bookings flowing while the database is away.
			log.Printf("postgres unavailable, using local store only: err=%v", err)
		} else {
			defer remoteDB.Close()
			if err := repositories.InitPostgresSchema(ctx, remoteDB); err != nil {
				log.Fatal(err)
			}
		}
	}

	journeys := newJourneyStore(remoteDB, localDB)

	var qrService *services.QRCodeService
	if remoteDB != nil {
		qrService = services.NewQRCodeService(repositories.NewPostgresQRCodeRepository(remoteDB), cfg.QRImageURL, cfg.PublicBaseURL)
	}

	points, err := catalog.Load(cfg.PointsPath)
	if err != nil {
		log.Fatal(err)
	}
	resolver := services.NewLocationResolver(newGeocoder(cfg), newGeocodeCache(ctx, cfg, localDB), points)

	dropper, err := courier.NewDropperClient(cfg.DropperAPIKey, cfg.DropperServiceID, courier.WithBaseURL(cfg.DropperBaseURL))
	if err != nil {
		log.Fatal(fmt.Errorf("DROPPER_API_KEY and DROPPER_SERVICE_ID are required: %w", err))
	}

	notifier := newNotifier(cfg)

	publisher := newEventPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("close event publisher: err=%v", err)
		}
	}()

	orchestrator := services.NewJourneyOrchestrator(services.OrchestratorDeps{
		Sessions: sessions.NewMemoryStore(cfg.SessionTTL, 10*time.Minute),
		Journeys: journeys,
		Quotes:   dropper,
		Booking:  dropper,
		Notifier: notifier,
		Events:   publisher,
		PayFast: services.PayFastConfig{
			ProcessURL:  cfg.PayFastURL,
			MerchantID:  cfg.PayFastMerchantID,
			MerchantKey: cfg.PayFastMerchantKey,
			SiteURL:     cfg.PublicBaseURL,
		},
	})

	router := api.NewRouter(api.Deps{
		Orchestrator: orchestrator,
		Locations:    resolver,
		QRCodes:      qrService,
		Notifier:     notifier,

		AllowedOrigin: cfg.CORSAllowedOrigin,
	})

	// Submissions chain booking, storage and email calls, so writes get a long timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: err=%v", err)
		}
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}

func newJourneyStore(remoteDB, localDB *sql.DB) ports.JourneyStore {
	local := repositories.NewSqliteJourneyStore(localDB)
	if remoteDB == nil {
		log.Println("DATABASE_URL not set or unreachable: journeys are stored locally only")
		return local
	}
	return repositories.NewFallbackJourneyStore(repositories.NewPostgresJourneyStore(remoteDB), local)
}

// newGeocoder prefers Google and falls back to OpenRouteService.
func newGeocoder(cfg config.Config) ports.Geocoder {
	if g, err := geocode.NewGoogleGeocoder(cfg.GoogleMapsAPIKey); err == nil {
		return g
	}
	if o, err := geocode.NewORSGeocoder(cfg.ORSAPIKey); err == nil {
		log.Println("GOOGLE_MAPS_API_KEY not set: geocoding via openrouteservice")
		return o
	}
	log.Println("geocoding disabled, only partner points can be searched")
	return nil
}

// newGeocodeCache prefers Redis and falls back to the local SQLite table.
func newGeocodeCache(ctx context.Context, cfg config.Config, localDB *sql.DB) ports.GeocodeCache {
	if cfg.RedisURL == "" {
		return cache.NewSqliteGeocodeCache(localDB)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("invalid REDIS_URL, using local geocode cache: err=%v", err)
		return cache.NewSqliteGeocodeCache(localDB)
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable, using local geocode cache: err=%v", err)
		_ = client.Close()
		return cache.NewSqliteGeocodeCache(localDB)
	}
	return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL)
}

// newNotifier prefers an external email service, then Resend directly.
func newNotifier(cfg config.Config) ports.Notifier {
	if cfg.EmailServiceURL != "" {
		return email.NewRemoteNotifier(cfg.EmailServiceURL)
	}
	sender, err := email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	if err != nil {
		log.Printf("booking emails disabled: err=%v", err)
		return nil
	}
	return services.NewEmailDispatcher(sender)
}

func newEventPublisher(cfg config.Config) ports.EventPublisher {
	switch strings.ToLower(cfg.EventBroker) {
	case "kafka":
		log.Printf("publishing booking events to kafka broker=%s topic=%s", cfg.KafkaBroker, cfg.KafkaTopic)
		return events.NewKafkaPublisher(cfg.KafkaBroker, cfg.KafkaTopic)
	case "rabbitmq":
		p, err := events.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
		if err != nil {
			log.Printf("rabbitmq unavailable, booking events disabled: err=%v", err)
			return events.NopPublisher{}
		}
		log.Printf("publishing booking events to rabbitmq queue=%s", cfg.RabbitMQQueue)
		return p
	default:
		return events.NopPublisher{}
	}
}
