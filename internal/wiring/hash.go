package wiring

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainWiring   = "loom/wiring/v1"
	DomainBreeding = "loom/breeding/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// WiringID computes the content-addressed id of a diagram. The id
// depends only on structure (nodes, edges, output), not on Meta, so a
// relabeled copy of a wiring hashes differently but the same diagram
// stored twice hashes identically.
func WiringID(d Diagram) (string, error) {
	canonical, err := MarshalCanonical(DiagramToMap(d))
	if err != nil {
		return "", fmt.Errorf("WiringID: marshal: %w", err)
	}
	return hashWithDomain(DomainWiring, canonical), nil
}

// BreedingID computes the content-addressed id of one composition
// event: the operator applied to an ordered parent pair yielding a
// child. Stable ids make lineage records idempotent.
func BreedingID(operator, parentA, parentB, childID string) (string, error) {
	obj := map[string]any{
		"operator": operator,
		"parent_a": parentA,
		"parent_b": parentB,
		"child":    childID,
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("BreedingID: marshal: %w", err)
	}
	return hashWithDomain(DomainBreeding, canonical), nil
}

// MustWiringID is WiringID but panics on error. Use only in tests or
// when the diagram is known to be encodable.
func MustWiringID(d Diagram) string {
	id, err := WiringID(d)
	if err != nil {
		panic(err)
	}
	return id
}
