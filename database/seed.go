package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4"

	"topsongs/models"
)

// seedLockKey serializes seeding across processes sharing one database.
const seedLockKey int64 = 0x736f6e6773 // "songs"

const (
	dropSongsTable = `DROP TABLE IF EXISTS songs`

	createSongsTable = `
		CREATE TABLE songs (
			id           SERIAL PRIMARY KEY,
			title        VARCHAR(255) NOT NULL,
			description  TEXT,
			listen_count BIGINT NOT NULL CHECK (listen_count >= 0)
		)
	`

	insertSong = `INSERT INTO songs (title, description, listen_count) VALUES ($1, $2, $3)`
)

// TopSongs is the fixed seed set, in insertion order. IDs are assigned by
// the database.
var TopSongs = []models.Song{
	{
		Title:       "Die With a Smile - Lady Gaga & Bruno Mars",
		Description: "A global hit known for its emotional vocals and retro music video.",
		ListenCount: 520_000_000,
	},
	{
		Title:       "Apt. - ROSÉ & Bruno Mars",
		Description: "A soft, melodic duet blending pop and R&B influences.",
		ListenCount: 310_000_000,
	},
	{
		Title:       "Luther - Kendrick Lamar & SZA",
		Description: "A powerful collaboration with deep lyrics and atmospheric production.",
		ListenCount: 420_000_000,
	},
	{
		Title:       "DTMF - Bad Bunny",
		Description: "A reggaeton/Latin trap fusion currently dominating global charts.",
		ListenCount: 380_000_000,
	},
	{
		Title:       "Beautiful Things - Benson Boone",
		Description: "Viral hit praised for its emotional delivery and strong chorus.",
		ListenCount: 600_000_000,
	},
	{
		Title:       "Espresso - Sabrina Carpenter",
		Description: "A viral pop anthem known for its catchy hook and massive TikTok presence.",
		ListenCount: 780_000_000,
	},
	{
		Title:       "Fortnight - Taylor Swift ft. Post Malone",
		Description: "A moody, atmospheric pop track blending Swift's storytelling with Post Malone's soft vocals.",
		ListenCount: 650_000_000,
	},
	{
		Title:       "Lose Control - Teddy Swims",
		Description: "A soulful powerhouse performance that became a global breakout hit.",
		ListenCount: 890_000_000,
	},
}

// TxStarter is satisfied by *pgx.Conn, *pgxpool.Conn and *pgxpool.Pool.
type TxStarter interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Seed drops the songs table, recreates it and inserts TopSongs.
//
// Everything runs in one transaction under an advisory lock, so readers see
// either the old table or the fully seeded one and concurrent seeders take
// turns. Running it again always leaves exactly len(TopSongs) rows.
func Seed(ctx context.Context, db TxStarter) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return fmt.Errorf("acquire seed lock: %w", err)
	}
	if _, err := tx.Exec(ctx, dropSongsTable); err != nil {
		return fmt.Errorf("drop songs table: %w", err)
	}
	if _, err := tx.Exec(ctx, createSongsTable); err != nil {
		return fmt.Errorf("create songs table: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range TopSongs {
		batch.Queue(insertSong, s.Title, s.Description, s.ListenCount)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range TopSongs {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert seed song %d: %w", i+1, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close seed batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}
	return nil
}
