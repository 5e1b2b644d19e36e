package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"devevent/internal/database"
)

// Source yields the database to operate on, connecting on first use.
type Source interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type managerSource struct {
	manager *database.Manager[*Client]
}

// FromManager returns a Source that goes through the connection manager on every call,
// so each operation reuses the cached client or waits for the single in-flight attempt.
func FromManager(m *database.Manager[*Client]) Source {
	return managerSource{manager: m}
}

func (s managerSource) Database(ctx context.Context) (*mongo.Database, error) {
	c, err := s.manager.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(), nil
}

type staticSource struct {
	db *mongo.Database
}

// FromDatabase returns a Source that always yields db.
func FromDatabase(db *mongo.Database) Source {
	return staticSource{db: db}
}

func (s staticSource) Database(context.Context) (*mongo.Database, error) {
	return s.db, nil
}
