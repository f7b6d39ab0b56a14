package store

import (
	"context"
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// Breeding is one recorded composition event.
type Breeding struct {
	ID       string
	Operator string
	ParentA  string
	ParentB  string
	Child    string
	Seq      int64
}

// ReadWiring retrieves a stored wiring by content id.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadWiring(ctx context.Context, contentID string) (*wiring.Wiring, error) {
	var def string
	err := s.db.QueryRowContext(ctx, `
		SELECT definition FROM wirings WHERE content_id = ?
	`, contentID).Scan(&def)
	if err != nil {
		return nil, fmt.Errorf("read wiring %s: %w", contentID, err)
	}

	w, err := wiring.UnmarshalWiring([]byte(def))
	if err != nil {
		return nil, fmt.Errorf("read wiring %s: %w", contentID, err)
	}
	return w, nil
}

// ListBreedings returns all recorded breedings in write order.
// Ordering is seq ASC with a binary-collated id tiebreak.
//
// Returns an empty slice (not nil) if no breedings exist.
func (s *Store) ListBreedings(ctx context.Context) ([]Breeding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, operator, parent_a, parent_b, child, seq
		FROM breedings
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query breedings: %w", err)
	}
	defer rows.Close()

	return collectBreedings(rows)
}

// Lineage returns the full ancestry of a wiring: every breeding on a
// path from some root to the given child, deepest ancestors first.
//
// Returns an empty slice (not nil) if the wiring has no recorded
// parents.
func (s *Store) Lineage(ctx context.Context, childID string) ([]Breeding, error) {
	rows, err := s.db.QueryContext(ctx, `
		WITH RECURSIVE ancestry(id, operator, parent_a, parent_b, child, seq) AS (
			SELECT id, operator, parent_a, parent_b, child, seq
			FROM breedings WHERE child = ?
			UNION
			SELECT b.id, b.operator, b.parent_a, b.parent_b, b.child, b.seq
			FROM breedings b
			JOIN ancestry a ON b.child IN (a.parent_a, a.parent_b)
		)
		SELECT id, operator, parent_a, parent_b, child, seq
		FROM ancestry
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, childID)
	if err != nil {
		return nil, fmt.Errorf("query lineage: %w", err)
	}
	defer rows.Close()

	return collectBreedings(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectBreedings(rows rowScanner) ([]Breeding, error) {
	var breedings []Breeding
	for rows.Next() {
		var b Breeding
		if err := rows.Scan(&b.ID, &b.Operator, &b.ParentA, &b.ParentB, &b.Child, &b.Seq); err != nil {
			return nil, fmt.Errorf("scan breeding: %w", err)
		}
		breedings = append(breedings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate breedings: %w", err)
	}

	// Return empty slice instead of nil
	if breedings == nil {
		breedings = []Breeding{}
	}
	return breedings, nil
}
