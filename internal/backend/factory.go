package backend

import (
	"context"
	"errors"
	"fmt"

	"maeum/internal/amqp"
	"maeum/internal/log"
	"maeum/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	return &DefaultFactory{
		logger: log.OrDiscard(logger).WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store   Store
		closers []CleanupFunc
	)

	switch config.Type {
	case JSONBackend:
		store = storage.NewJSONStore(config.RecordsFile, f.logger)
		f.logger.InfoContext(ctx, "Initialized JSON backend", log.FieldPath, config.RecordsFile)
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store = repo
		closers = append(closers, repo.Close)
		f.logger.InfoContext(ctx, "Initialized SQLite backend", log.FieldPath, config.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	publisher := f.createPublisher(ctx, config)
	if publisher != nil {
		closers = append(closers, publisher.Close)
	}

	return &BackendResult{
		Store:     store,
		Publisher: publisher,
		Cleanup:   joinCleanup(closers),
	}, nil
}

// createPublisher connects to the broker when configured. A broker that is
// down only disables publishing.
func (f *DefaultFactory) createPublisher(ctx context.Context, config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
	if err != nil {
		f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without export events",
			log.FieldError, err)
		return nil
	}

	f.logger.InfoContext(ctx, "Initialized AMQP client",
		log.FieldExchange, config.AMQPExchange,
		log.FieldQueue, config.AMQPQueue)
	return client
}

// joinCleanup runs closers in reverse order and reports every failure.
func joinCleanup(closers []CleanupFunc) CleanupFunc {
	return func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}
