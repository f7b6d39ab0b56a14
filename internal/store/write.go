package store

import (
	"context"
	"fmt"

	"github.com/tothedarktowercame/loom/internal/wiring"
)

// RecordWiring inserts a wiring record keyed by its content id.
// Uses ON CONFLICT(content_id) DO NOTHING for idempotency - the same
// structure recorded twice is a no-op regardless of its Meta.
//
// The definition is serialized to canonical JSON per RFC 8785 so the
// stored text is byte-stable for a given structure.
func (s *Store) RecordWiring(ctx context.Context, w *wiring.Wiring) (string, error) {
	contentID, err := wiring.WiringID(w.Diagram)
	if err != nil {
		return "", fmt.Errorf("record wiring: %w", err)
	}

	def, err := wiring.MarshalWiring(w)
	if err != nil {
		return "", fmt.Errorf("record wiring: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wirings (content_id, name, definition)
		VALUES (?, ?, ?)
		ON CONFLICT(content_id) DO NOTHING
	`, contentID, w.Meta.Name, string(def))
	if err != nil {
		return "", fmt.Errorf("record wiring: %w", err)
	}

	return contentID, nil
}

// RecordBreeding atomically records a composition event: both parents,
// the child, and the breeding edge, in a single transaction.
//
// The breeding id is content-derived from the operator and the three
// content ids, so recording the same event twice is idempotent at the
// row level too. The sequence number is assigned at write time from
// the current maximum; with the store's single-writer connection this
// is race-free.
//
// Returns the breeding id and whether a new row was inserted.
func (s *Store) RecordBreeding(ctx context.Context, operator string, parentA, parentB, child *wiring.Wiring) (id string, inserted bool, err error) {
	aID, err := wiring.WiringID(parentA.Diagram)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: %w", err)
	}
	bID, err := wiring.WiringID(parentB.Diagram)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: %w", err)
	}
	childID, err := wiring.WiringID(child.Diagram)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: %w", err)
	}

	id, err = wiring.BreedingID(operator, aID, bID, childID)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	for _, w := range []*wiring.Wiring{parentA, parentB, child} {
		wid, err := wiring.WiringID(w.Diagram)
		if err != nil {
			return "", false, fmt.Errorf("record breeding: %w", err)
		}
		def, err := wiring.MarshalWiring(w)
		if err != nil {
			return "", false, fmt.Errorf("record breeding: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO wirings (content_id, name, definition)
			VALUES (?, ?, ?)
			ON CONFLICT(content_id) DO NOTHING
		`, wid, w.Meta.Name, string(def)); err != nil {
			return "", false, fmt.Errorf("record breeding: insert wiring: %w", err)
		}
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) + 1 FROM breedings
	`).Scan(&seq); err != nil {
		return "", false, fmt.Errorf("record breeding: next seq: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO breedings (id, operator, parent_a, parent_b, child, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`, id, operator, aID, bID, childID, seq)
	if err != nil {
		return "", false, fmt.Errorf("record breeding: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("record breeding: rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("record breeding: commit: %w", err)
	}

	return id, rowsAffected > 0, nil
}
