package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"rojak/internal/config"
	"rojak/internal/events"
	"rojak/internal/firebase"
	"rojak/internal/handlers"
	"rojak/internal/llm"
	"rojak/internal/service"
	"rojak/internal/storage"
)

// translationStore is a translation store that can report its health.
type translationStore interface {
	service.TranslationStore
	handlers.Pinger
}

// app holds the handles created at startup. Close releases them.
type app struct {
	db        *sql.DB
	firebase  *firebase.Clients
	nats      *nats.Conn
	generator *llm.Client
	store     translationStore
	identity  service.IdentityProvider
	publisher events.Publisher
}

// startup connects every collaborator named by cfg. On error, anything
// already opened is closed.
func startup(ctx context.Context, cfg *config.Config) (a *app, err error) {
	a = &app{
		generator: llm.NewClient(cfg.GeneratorURL, cfg.GeneratorAPIKey, cfg.GeneratorModel, cfg.GenerationTimeout),
		publisher: events.NopPublisher{},
	}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	if cfg.UseFirebase() {
		a.firebase, err = firebase.New(ctx, cfg.FirebaseCredentials, cfg.FirebaseProjectID)
		if err != nil {
			return a, err
		}
		a.store = firebase.NewTranslationStore(a.firebase.Firestore)
		a.identity = firebase.NewAuthProvider(a.firebase, cfg.FirebaseWebAPIKey)
		slog.Info("Firebase initialized", "project", cfg.FirebaseProjectID)
	} else {
		a.db, err = storage.New(cfg.DBPath)
		if err != nil {
			return a, fmt.Errorf("failed to open database: %w", err)
		}
		if err = storage.Migrate(a.db); err != nil {
			return a, fmt.Errorf("failed to run migrations: %w", err)
		}
		a.store = storage.NewTranslationRepo(a.db)
		a.identity = storage.NewUserRepo(a.db, cfg.PasswordResetURL)
		slog.Info("Database initialized", "path", cfg.DBPath)
	}

	if cfg.NATSURL != "" {
		a.nats, err = events.Connect(cfg.NATSURL)
		if err != nil {
			return a, err
		}
		a.publisher = events.NewNATSPublisher(a.nats, cfg.NATSSubject)
		slog.Info("Publishing translation events", "url", cfg.NATSURL, "subject", cfg.NATSSubject)
	}

	return a, nil
}

// Close releases every handle opened by startup.
func (a *app) Close() error {
	var errs []error
	if a.nats != nil {
		if err := a.nats.Drain(); err != nil {
			errs = append(errs, fmt.Errorf("nats: %w", err))
		}
	}
	if a.firebase != nil {
		if err := a.firebase.Close(); err != nil {
			errs = append(errs, fmt.Errorf("firestore: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	return errors.Join(errs...)
}
