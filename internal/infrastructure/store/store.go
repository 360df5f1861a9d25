// Package store selects the persistence backend named by STORE_DRIVER and
// builds every repository on it.
package store

import (
	"context"
	"fmt"

	"github.com/wichananm65/page-flow-backend/internal/book"
	"github.com/wichananm65/page-flow-backend/internal/cart"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/config"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/mongodb"
	"github.com/wichananm65/page-flow-backend/internal/infrastructure/database/postgres"
	"github.com/wichananm65/page-flow-backend/internal/order"
	"github.com/wichananm65/page-flow-backend/internal/session"
	"github.com/wichananm65/page-flow-backend/internal/user"
)

type Stores struct {
	Books    book.Repository
	Carts    cart.Repository
	Orders   order.Repository
	Users    user.Repository
	Sessions session.Store

	close func(context.Context) error
}

// Close releases the underlying connection.
func (s *Stores) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured backend and prepares its schema.
func Open(ctx context.Context, cfg config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return Memory(), nil
	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, err
		}
		return &Stores{
			Books:    book.NewPostgresRepository(db),
			Carts:    cart.NewPostgresRepository(db),
			Orders:   order.NewPostgresRepository(db),
			Users:    user.NewPostgresRepository(db),
			Sessions: session.NewPostgresStore(db),
			close:    func(context.Context) error { return db.Close() },
		}, nil
	case config.DriverMongo:
		client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &Stores{
			Books:    book.NewMongoRepository(db),
			Carts:    cart.NewMongoRepository(db),
			Orders:   order.NewMongoRepository(db),
			Users:    user.NewMongoRepository(db),
			Sessions: session.NewMongoStore(db),
			close:    client.Disconnect,
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want %s, %s or %s)",
			cfg.StoreDriver, config.DriverPostgres, config.DriverMongo, config.DriverMemory)
	}
}

// Memory keeps everything in process. Data is lost on restart.
func Memory() *Stores {
	return &Stores{
		Books:    book.NewInMemoryRepository(nil),
		Carts:    cart.NewInMemoryRepository(),
		Orders:   order.NewInMemoryRepository(),
		Users:    user.NewInMemoryRepository(nil),
		Sessions: session.NewInMemoryStore(),
	}
}
