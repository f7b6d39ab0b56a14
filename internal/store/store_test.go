package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tothedarktowercame/loom/internal/compose"
	"github.com/tothedarktowercame/loom/internal/wiring"
	"github.com/tothedarktowercame/loom/internal/wiringgen"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	tables := []string{"wirings", "breedings"}
	for _, table := range tables {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestRecordWiring_Idempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := wiringgen.FromRule(90)

	id1, err := s.RecordWiring(ctx, w)
	if err != nil {
		t.Fatalf("first RecordWiring failed: %v", err)
	}
	id2, err := s.RecordWiring(ctx, w)
	if err != nil {
		t.Fatalf("second RecordWiring failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("content id changed between writes: %s vs %s", id1, id2)
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM wirings").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 wiring row, got %d", count)
	}
}

func TestRecordBreeding_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := wiringgen.FromRule(90)
	b := wiringgen.FromRule(150)
	child, err := compose.Serial(a, b)
	if err != nil {
		t.Fatalf("Serial failed: %v", err)
	}

	id, inserted, err := s.RecordBreeding(ctx, compose.OpSerial, a, b, child)
	if err != nil {
		t.Fatalf("RecordBreeding failed: %v", err)
	}
	if !inserted {
		t.Error("expected first RecordBreeding to insert")
	}

	// Second write is a no-op with the same id
	id2, inserted2, err := s.RecordBreeding(ctx, compose.OpSerial, a, b, child)
	if err != nil {
		t.Fatalf("second RecordBreeding failed: %v", err)
	}
	if inserted2 {
		t.Error("expected second RecordBreeding to be a no-op")
	}
	if id != id2 {
		t.Errorf("breeding id changed: %s vs %s", id, id2)
	}

	breedings, err := s.ListBreedings(ctx)
	if err != nil {
		t.Fatalf("ListBreedings failed: %v", err)
	}
	if len(breedings) != 1 {
		t.Fatalf("expected 1 breeding, got %d", len(breedings))
	}
	got := breedings[0]
	if got.Operator != compose.OpSerial {
		t.Errorf("operator = %q, want %q", got.Operator, compose.OpSerial)
	}
	if got.ParentA != wiring.MustWiringID(a.Diagram) {
		t.Errorf("parent_a mismatch")
	}
	if got.Child != wiring.MustWiringID(child.Diagram) {
		t.Errorf("child mismatch")
	}
	if got.Seq != 1 {
		t.Errorf("seq = %d, want 1", got.Seq)
	}
}

func TestReadWiring_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	w := wiringgen.FromRule(110)
	id, err := s.RecordWiring(ctx, w)
	if err != nil {
		t.Fatalf("RecordWiring failed: %v", err)
	}

	got, err := s.ReadWiring(ctx, id)
	if err != nil {
		t.Fatalf("ReadWiring failed: %v", err)
	}
	if wiring.MustWiringID(got.Diagram) != id {
		t.Error("round-tripped wiring has different content id")
	}
	if got.Meta.Name != w.Meta.Name {
		t.Errorf("name = %q, want %q", got.Meta.Name, w.Meta.Name)
	}
}

func TestLineage_WalksAncestry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := wiringgen.FromRule(90)
	b := wiringgen.FromRule(150)
	child, err := compose.Serial(a, b)
	if err != nil {
		t.Fatalf("Serial failed: %v", err)
	}
	grandchild, err := compose.Serial(child, a)
	if err != nil {
		t.Fatalf("second Serial failed: %v", err)
	}

	if _, _, err := s.RecordBreeding(ctx, compose.OpSerial, a, b, child); err != nil {
		t.Fatalf("RecordBreeding failed: %v", err)
	}
	if _, _, err := s.RecordBreeding(ctx, compose.OpSerial, child, a, grandchild); err != nil {
		t.Fatalf("RecordBreeding failed: %v", err)
	}

	lineage, err := s.Lineage(ctx, wiring.MustWiringID(grandchild.Diagram))
	if err != nil {
		t.Fatalf("Lineage failed: %v", err)
	}
	if len(lineage) != 2 {
		t.Fatalf("expected 2 lineage rows, got %d", len(lineage))
	}
	// Deepest ancestor first
	if lineage[0].Child != wiring.MustWiringID(child.Diagram) {
		t.Errorf("first lineage row should be the intermediate breeding")
	}
	if lineage[1].Child != wiring.MustWiringID(grandchild.Diagram) {
		t.Errorf("second lineage row should be the final breeding")
	}

	// Lineage of an unbred wiring is empty, not an error
	empty, err := s.Lineage(ctx, wiring.MustWiringID(a.Diagram))
	if err != nil {
		t.Fatalf("Lineage for root failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty lineage for root, got %d rows", len(empty))
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
