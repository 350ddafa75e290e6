package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"topsongs/models"
)

const selectSongs = `SELECT id, title, COALESCE(description, ''), listen_count FROM songs ORDER BY id`

// Querier is satisfied by *pgx.Conn, *pgxpool.Conn, *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// FetchAll returns every song in insertion order.
//
// An empty table and a table that was never created both yield an empty
// slice: before the first seed there is simply nothing to show.
func FetchAll(ctx context.Context, q Querier) ([]models.Song, error) {
	songs := []models.Song{}

	rows, err := q.Query(ctx, selectSongs)
	if err != nil {
		if sqlState(err) == undefinedTable {
			return songs, nil
		}
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var song models.Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Description, &song.ListenCount); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		if sqlState(err) == undefinedTable {
			return []models.Song{}, nil
		}
		return nil, fmt.Errorf("iterate songs: %w", err)
	}

	return songs, nil
}
