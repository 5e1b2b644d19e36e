// Package postgres stores events and bookings in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"devevent/internal/database"
)

const uniqueViolation = "23505"

// Client is an open connection pool.
type Client struct {
	db *sql.DB
}

func NewClient(db *sql.DB) *Client { return &Client{db: db} }

func (c *Client) DB() *sql.DB { return c.db }

func (c *Client) Ping(ctx context.Context) error { return c.db.PingContext(ctx) }

func (c *Client) Close(context.Context) error { return c.db.Close() }

// Dialer returns a dial function for database.Manager that opens a pool on dsn and
// verifies it with a ping.
func Dialer(dsn string) func(ctx context.Context) (*Client, error) {
	return func(ctx context.Context) (*Client, error) {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		return NewClient(db), nil
	}
}

// Source yields the pool to operate on, connecting on first use.
type Source interface {
	DB(ctx context.Context) (*sql.DB, error)
}

type managerSource struct {
	manager *database.Manager[*Client]
}

func FromManager(m *database.Manager[*Client]) Source {
	return managerSource{manager: m}
}

func (s managerSource) DB(ctx context.Context) (*sql.DB, error) {
	c, err := s.manager.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return c.DB(), nil
}

type staticSource struct {
	db *sql.DB
}

// FromDB returns a Source that always yields db.
func FromDB(db *sql.DB) Source {
	return staticSource{db: db}
}

func (s staticSource) DB(context.Context) (*sql.DB, error) {
	return s.db, nil
}

func hasCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}
