package index

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/funvibe/argmatch/internal/s4"
)

// Class is a class or reference class as recorded in the index.
type Class struct {
	Name     string
	Kind     string
	Source   string
	Virtual  bool
	Slots    []s4.Slot
	Contains []string
	Methods  []string
}

// Method is one setMethod registration.
type Method struct {
	Generic       string
	Signature     []string
	Source        string
	HasDefinition bool
}

// Generic is one setGeneric registration.
type Generic struct {
	Name       string
	Signature  []string
	ValueClass []string
	Source     string
}

// ProblemRow is a recorded binding problem.
type ProblemRow struct {
	Source  string
	Site    string
	Index   int
	Kind    string
	Name    string
	Message string
}

// Classes returns every recorded class, ordered by name.
func (s *Store) Classes(ctx context.Context) ([]Class, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, kind, source, virtual FROM declarations
		WHERE kind IN (?, ?)
		ORDER BY name, source, position`,
		s4.ClassDecl.String(), s4.RefClassDecl.String())
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	type keyed struct {
		id string
		Class
	}
	var found []keyed
	for rows.Next() {
		var k keyed
		if err := rows.Scan(&k.id, &k.Name, &k.Kind, &k.Source, &k.Virtual); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		found = append(found, k)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Class, 0, len(found))
	for _, k := range found {
		c := k.Class
		if c.Slots, err = s.slots(ctx, k.id); err != nil {
			return nil, err
		}
		if c.Contains, err = s.strings(ctx, `SELECT class FROM supers WHERE declaration_id = ? ORDER BY ord`, k.id); err != nil {
			return nil, err
		}
		if c.Methods, err = s.strings(ctx, `SELECT name FROM methods WHERE declaration_id = ? ORDER BY ord`, k.id); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Class returns the class named name, or false when none is recorded.
// When several sources declare it, the first by source name wins.
func (s *Store) Class(ctx context.Context, name string) (Class, bool, error) {
	classes, err := s.Classes(ctx)
	if err != nil {
		return Class{}, false, err
	}
	for _, c := range classes {
		if c.Name == name {
			return c, true, nil
		}
	}
	return Class{}, false, nil
}

// Subclasses returns the names of the classes directly containing class.
func (s *Store) Subclasses(ctx context.Context, class string) ([]string, error) {
	return s.strings(ctx, `
		SELECT DISTINCT d.name FROM declarations d
		JOIN supers p ON p.declaration_id = d.id
		WHERE p.class = ?
		ORDER BY d.name`, class)
}

// Generics returns every recorded generic, ordered by name.
func (s *Store) Generics(ctx context.Context) ([]Generic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, signature, value_class, source FROM declarations
		WHERE kind = ?
		ORDER BY name, source, position`, s4.GenericDecl.String())
	if err != nil {
		return nil, fmt.Errorf("querying generics: %w", err)
	}
	defer rows.Close()

	var out []Generic
	for rows.Next() {
		var g Generic
		var sig, valueClass string
		if err := rows.Scan(&g.Name, &sig, &valueClass, &g.Source); err != nil {
			return nil, fmt.Errorf("scanning generic: %w", err)
		}
		g.Signature = splitList(sig)
		g.ValueClass = splitList(valueClass)
		out = append(out, g)
	}
	return out, rows.Err()
}

// Methods returns the methods registered for generic, in source order.
func (s *Store) Methods(ctx context.Context, generic string) ([]Method, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, signature, source, has_definition FROM declarations
		WHERE kind = ? AND name = ?
		ORDER BY source, position`, s4.MethodDecl.String(), generic)
	if err != nil {
		return nil, fmt.Errorf("querying methods of %s: %w", generic, err)
	}
	defer rows.Close()

	var out []Method
	for rows.Next() {
		var m Method
		var sig string
		if err := rows.Scan(&m.Generic, &sig, &m.Source, &m.HasDefinition); err != nil {
			return nil, fmt.Errorf("scanning method: %w", err)
		}
		m.Signature = splitList(sig)
		out = append(out, m)
	}
	return out, rows.Err()
}

// Problems returns the recorded problems of source, or of every source when
// source is empty.
func (s *Store) Problems(ctx context.Context, source string) ([]ProblemRow, error) {
	query := `SELECT source, site, arg_index, kind, name, message FROM problems`
	var args []any
	if source != "" {
		query += ` WHERE source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY source, site, arg_index`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying problems: %w", err)
	}
	defer rows.Close()

	var out []ProblemRow
	for rows.Next() {
		var p ProblemRow
		if err := rows.Scan(&p.Source, &p.Site, &p.Index, &p.Kind, &p.Name, &p.Message); err != nil {
			return nil, fmt.Errorf("scanning problem: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) slots(ctx context.Context, id string) ([]s4.Slot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, type FROM slots WHERE declaration_id = ? ORDER BY ord`, id)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var out []s4.Slot
	for rows.Next() {
		var slot s4.Slot
		if err := rows.Scan(&slot.Name, &slot.Type); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}

func (s *Store) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
