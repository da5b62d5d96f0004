package documents

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/KirkDiggler/rpg-items/internal/errors"
	"github.com/KirkDiggler/rpg-items/internal/pkg/clock"
)

//go:embed schema.sql
var schema string

type sqliteRepository struct {
	db    *sql.DB
	clock clock.Clock
}

// SQLiteConfig contains configuration for the SQLite document repository.
type SQLiteConfig struct {
	// Path is the database file
	Path  string
	Clock clock.Clock
}

// Validate validates the SQLiteConfig.
func (cfg *SQLiteConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if strings.TrimSpace(cfg.Path) == "" {
		return errors.InvalidArgument("path cannot be empty")
	}
	return nil
}

// SQLiteRepository is a Repository that also owns its database handle
type SQLiteRepository interface {
	Repository
	Close() error
}

// OpenSQLite opens the database, creating the schema when needed
func OpenSQLite(cfg *SQLiteConfig) (SQLiteRepository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dsn := filepath.Clean(cfg.Path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open sqlite database")
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to ping sqlite database")
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to apply schema")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &sqliteRepository{db: db, clock: c}, nil
}

func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

func (r *sqliteRepository) now() int64 {
	return r.clock.Now().UnixMilli()
}

func (r *sqliteRepository) GetActor(ctx context.Context, input GetActorInput) (*GetActorOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}

	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM actors WHERE id = ?`, input.ID).Scan(&doc)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("actor with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get actor")
	}

	actor, err := decodeActor([]byte(doc))
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT doc FROM items WHERE actor_id = ? ORDER BY position, id`, input.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list items")
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var itemDoc string
		if err := rows.Scan(&itemDoc); err != nil {
			return nil, errors.Wrapf(err, "failed to scan item")
		}
		item, err := decodeItem([]byte(itemDoc))
		if err != nil {
			return nil, err
		}
		actor.Items = append(actor.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to list items")
	}

	return &GetActorOutput{Actor: actor}, nil
}

func (r *sqliteRepository) PutActor(ctx context.Context, input PutActorInput) (*PutActorOutput, error) {
	if err := validateActor(input.Actor); err != nil {
		return nil, err
	}

	actor := input.Actor
	doc, err := encodeActor(actor)
	if err != nil {
		return nil, err
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		now := r.now()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO actors (id, doc, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
			actor.ID, string(doc), now); err != nil {
			return errors.Wrapf(err, "failed to store actor")
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE actor_id = ?`, actor.ID); err != nil {
			return errors.Wrapf(err, "failed to clear items")
		}
		for i, item := range actor.Items {
			itemDoc, err := encodeItem(item)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO items (actor_id, id, position, doc, updated_at) VALUES (?, ?, ?, ?, ?)`,
				actor.ID, item.ID, i, string(itemDoc), now); err != nil {
				return errors.Wrapf(err, "failed to store item %s", item.ID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PutActorOutput{Actor: actor}, nil
}

func (r *sqliteRepository) PutItem(ctx context.Context, input PutItemInput) (*PutItemOutput, error) {
	if input.ActorID == "" {
		return nil, errors.InvalidArgument(errActorIDEmpty)
	}
	if err := validateItem(input.Item); err != nil {
		return nil, err
	}

	doc, err := encodeItem(input.Item)
	if err != nil {
		return nil, err
	}

	err = r.inTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM actors WHERE id = ?`, input.ActorID).Scan(&exists); err != nil {
			return errors.Wrapf(err, "failed to check existence")
		}
		if exists == 0 {
			return errors.NotFoundf("actor with ID %s not found", input.ActorID)
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO items (actor_id, id, position, doc, updated_at)
			 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM items WHERE actor_id = ?), ?, ?)
			 ON CONFLICT(actor_id, id) DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`,
			input.ActorID, input.Item.ID, input.ActorID, string(doc), r.now())
		if err != nil {
			return errors.Wrapf(err, "failed to store item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &PutItemOutput{Item: input.Item}, nil
}

// ApplyUsage reads, patches and writes every touched document inside one
// SQL transaction
func (r *sqliteRepository) ApplyUsage(ctx context.Context, input ApplyUsageInput) (*ApplyUsageOutput, error) {
	c := input.Consumption
	if err := validateConsumption(c); err != nil {
		return nil, err
	}

	err := r.inTx(ctx, func(tx *sql.Tx) error {
		now := r.now()

		actorDoc, err := selectDoc(ctx, tx, `SELECT doc FROM actors WHERE id = ?`, c.ActorID)
		if err != nil {
			return err
		}
		if actorDoc, err = applyUpdates(actorDoc, c.ActorUpdates); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE actors SET doc = ?, updated_at = ? WHERE id = ?`,
			string(actorDoc), now, c.ActorID); err != nil {
			return errors.Wrapf(err, "failed to update actor")
		}

		if err := patchItem(ctx, tx, c.ActorID, c.ItemID, c.ItemUpdates, now); err != nil {
			return err
		}
		if c.DeleteItem {
			if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE actor_id = ? AND id = ?`,
				c.ActorID, c.ItemID); err != nil {
				return errors.Wrapf(err, "failed to delete item")
			}
		}

		for _, ru := range c.ResourceUpdates {
			if err := patchItem(ctx, tx, c.ActorID, ru.ID, ru.Updates, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ApplyUsageOutput{DeletedItem: c.DeleteItem}, nil
}

func patchItem(ctx context.Context, tx *sql.Tx, actorID, itemID string, updates map[string]any, now int64) error {
	doc, err := selectDoc(ctx, tx, `SELECT doc FROM items WHERE actor_id = ? AND id = ?`, actorID, itemID)
	if err != nil {
		return err
	}
	if doc, err = applyUpdates(doc, updates); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE items SET doc = ?, updated_at = ? WHERE actor_id = ? AND id = ?`,
		string(doc), now, actorID, itemID); err != nil {
		return errors.Wrapf(err, "failed to update item %s", itemID)
	}
	return nil
}

func selectDoc(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]byte, error) {
	var doc string
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&doc); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFoundf("document %v not found", args)
		}
		return nil, errors.Wrapf(err, "failed to read document")
	}
	return []byte(doc), nil
}

func (r *sqliteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}
