// Package index persists extracted declarations and binding problems in a
// SQLite database so they can be queried across runs.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/funvibe/argmatch/internal/s4"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

const driverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS declarations (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	call_id        TEXT NOT NULL,
	position       INTEGER NOT NULL,
	kind           TEXT NOT NULL,
	name           TEXT NOT NULL,
	virtual        INTEGER NOT NULL DEFAULT 0,
	has_definition INTEGER NOT NULL DEFAULT 0,
	valid          INTEGER NOT NULL DEFAULT 1,
	signature      TEXT NOT NULL DEFAULT '',
	value_class    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS declarations_name ON declarations(kind, name);
CREATE INDEX IF NOT EXISTS declarations_source ON declarations(source);

CREATE TABLE IF NOT EXISTS slots (
	declaration_id TEXT NOT NULL REFERENCES declarations(id) ON DELETE CASCADE,
	ord            INTEGER NOT NULL,
	name           TEXT NOT NULL,
	type           TEXT NOT NULL,
	PRIMARY KEY (declaration_id, ord)
);

CREATE TABLE IF NOT EXISTS supers (
	declaration_id TEXT NOT NULL REFERENCES declarations(id) ON DELETE CASCADE,
	ord            INTEGER NOT NULL,
	class          TEXT NOT NULL,
	PRIMARY KEY (declaration_id, ord)
);

CREATE TABLE IF NOT EXISTS methods (
	declaration_id TEXT NOT NULL REFERENCES declarations(id) ON DELETE CASCADE,
	ord            INTEGER NOT NULL,
	name           TEXT NOT NULL,
	PRIMARY KEY (declaration_id, ord)
);

CREATE TABLE IF NOT EXISTS problems (
	source    TEXT NOT NULL,
	site      TEXT NOT NULL,
	arg_index INTEGER NOT NULL,
	kind      TEXT NOT NULL,
	name      TEXT NOT NULL,
	message   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS problems_source ON problems(source);
`

// listSep joins multi-valued columns. Class names never contain it.
const listSep = ","

// Store is an open index database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the index at path and ensures the schema exists.
// ":memory:" gives a private in-memory index.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	// A single connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("opening index %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating index schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveDeclarations replaces everything recorded for source with decls.
func (s *Store) SaveDeclarations(ctx context.Context, source string, decls []s4.Declaration) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM declarations WHERE source = ?`, source); err != nil {
			return err
		}
		for i, d := range decls {
			id := uuid.NewString()
			callID := ""
			if d.Call != nil && d.Call.ID != uuid.Nil {
				callID = d.Call.ID.String()
			}
			_, err := tx.ExecContext(ctx, `
				INSERT INTO declarations
					(id, source, call_id, position, kind, name, virtual, has_definition, valid, signature, value_class)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				id, source, callID, i, d.Kind.String(), d.Name, d.Virtual, d.HasDefinition, d.Valid,
				strings.Join(d.Signature, listSep), strings.Join(d.ValueClass, listSep))
			if err != nil {
				return fmt.Errorf("declaration %d (%s %s): %w", i, d.Kind, d.Name, err)
			}
			for j, slot := range d.Slots {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO slots (declaration_id, ord, name, type) VALUES (?, ?, ?, ?)`,
					id, j, slot.Name, slot.Type); err != nil {
					return fmt.Errorf("slot %s of %s: %w", slot.Name, d.Name, err)
				}
			}
			for j, class := range d.Contains {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO supers (declaration_id, ord, class) VALUES (?, ?, ?)`,
					id, j, class); err != nil {
					return fmt.Errorf("superclass %s of %s: %w", class, d.Name, err)
				}
			}
			for j, method := range d.Methods {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO methods (declaration_id, ord, name) VALUES (?, ?, ?)`,
					id, j, method); err != nil {
					return fmt.Errorf("method %s of %s: %w", method, d.Name, err)
				}
			}
		}
		return nil
	})
}

// SaveProblems records the problems of one call site, replacing what was
// recorded for that site before.
func (s *Store) SaveProblems(ctx context.Context, source, site string, problems []argmatch.Problem) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE source = ? AND site = ?`, source, site); err != nil {
			return err
		}
		for _, p := range problems {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO problems (source, site, arg_index, kind, name, message) VALUES (?, ?, ?, ?, ?, ?)`,
				source, site, p.Index, p.Kind.String(), p.Name, p.Message); err != nil {
				return fmt.Errorf("problem at argument %d: %w", p.Index, err)
			}
		}
		return nil
	})
}

// Forget removes everything recorded for source.
func (s *Store) Forget(ctx context.Context, source string) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM declarations WHERE source = ?`, source); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE source = ?`, source)
		return err
	})
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}
