package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one numbered schema step. Applied steps are recorded in the
// migrations table so startup is idempotent and new steps can be appended
// without touching old ones.
type migration struct {
	description string
	statements  []string
}

var migrations = []migration{
	{
		description: "create users table",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS users (
				id              TEXT PRIMARY KEY,
				version         TEXT NOT NULL,
				display_name    TEXT NOT NULL,
				normalized_name TEXT NOT NULL UNIQUE,
				password_hash   TEXT NOT NULL,
				created_at      INTEGER NOT NULL
			)`,
		},
	},
	{
		description: "create shopping_lists table",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS shopping_lists (
				id       TEXT PRIMARY KEY,
				version  TEXT NOT NULL,
				name     TEXT NOT NULL,
				owner_id TEXT NOT NULL REFERENCES users(id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_shopping_lists_owner_id ON shopping_lists(owner_id)`,
		},
	},
	{
		description: "create memberships table",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS memberships (
				list_id TEXT NOT NULL REFERENCES shopping_lists(id),
				user_id TEXT NOT NULL REFERENCES users(id),
				state   TEXT NOT NULL CHECK (state IN ('invited', 'member')),
				PRIMARY KEY (list_id, user_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_memberships_user_id ON memberships(user_id)`,
		},
	},
	{
		// The *_by columns are audit fields, not foreign keys: items outlive
		// the accounts that touched them.
		description: "create shopping_list_items table",
		statements: []string{`
			CREATE TABLE IF NOT EXISTS shopping_list_items (
				id               TEXT PRIMARY KEY,
				version          TEXT NOT NULL,
				name             TEXT NOT NULL,
				list_id          TEXT NOT NULL REFERENCES shopping_lists(id),
				created_by       TEXT NOT NULL,
				modified_by      TEXT NOT NULL,
				bought_by        TEXT,
				state_changed_by TEXT NOT NULL,
				sort_order       INTEGER NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_items_list_id ON shopping_list_items(list_id)`,
		},
	},
}

// runMigrations applies every migration step that is not yet recorded in the
// migrations table. Each step runs in its own transaction together with its
// bookkeeping row.
func runMigrations(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS migrations (number INTEGER PRIMARY KEY)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for i, m := range migrations {
		var done int
		err := db.QueryRow(`SELECT COUNT(*) FROM migrations WHERE number = ?`, i).Scan(&done)
		if err != nil {
			return fmt.Errorf("failed to check migration %d: %w", i, err)
		}
		if done > 0 {
			continue
		}

		slog.Info("applying migration", "number", i, "description", m.description)
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", i, err)
		}
		if err := applyMigration(tx, i, m); err != nil {
			tx.Rollback()
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", i, err)
		}
	}

	return nil
}

func applyMigration(tx *sql.Tx, number int, m migration) error {
	for _, stmt := range m.statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", number, m.description, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO migrations (number) VALUES (?)`, number); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", number, err)
	}
	return nil
}

// dropAll removes every table, data and bookkeeping included. Reset support.
var dropAll = []string{
	`DROP TABLE IF EXISTS migrations`,
	`DROP TABLE IF EXISTS shopping_list_items`,
	`DROP TABLE IF EXISTS memberships`,
	`DROP TABLE IF EXISTS shopping_lists`,
	`DROP TABLE IF EXISTS users`,
}
