package database

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"topsongs/config"
	"topsongs/models"
)

// Store owns the connection pool. Every call acquires one connection and
// releases it before returning.
type Store struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// PoolConfig builds a pool config from cfg. The password is left empty and
// read from cfg.PasswordFile each time the pool dials a new connection.
func PoolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.User(cfg.User),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}

	poolCfg, err := pgxpool.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxConns)

	passwordFile := cfg.PasswordFile
	poolCfg.BeforeConnect = func(_ context.Context, cc *pgx.ConnConfig) error {
		password, err := ReadSecret(passwordFile)
		if err != nil {
			return err
		}
		cc.Password = password
		return nil
	}

	return poolCfg, nil
}

// Open connects to the database described by cfg and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *log.Logger) (*Store, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, connectError(err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, connectError(err)
	}

	logger.Info("connected to database", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name, "user", cfg.User)
	return NewStore(pool, logger), nil
}

// NewStore wraps an existing pool.
func NewStore(pool *pgxpool.Pool, logger *log.Logger) *Store {
	return &Store{pool: pool, logger: logger}
}

// Seed runs [Seed] on a pooled connection.
func (s *Store) Seed(ctx context.Context) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return connectError(err)
	}
	defer conn.Release()

	if err := Seed(ctx, conn); err != nil {
		return fmt.Errorf("%w: %w", ErrQuery, err)
	}

	s.logger.Info("seeded songs table", "rows", len(TopSongs))
	return nil
}

// Songs runs [FetchAll] on a pooled connection.
func (s *Store) Songs(ctx context.Context) ([]models.Song, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	defer conn.Release()

	songs, err := FetchAll(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}

	s.logger.Debug("fetched songs", "rows", len(songs))
	return songs, nil
}

// Close closes every connection in the pool.
func (s *Store) Close() {
	s.pool.Close()
}
