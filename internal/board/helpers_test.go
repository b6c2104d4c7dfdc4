package board

import (
	"sort"
	"testing"
)

func mustSquare(t testing.TB, s string) Square {
	t.Helper()
	sq, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

func mustFEN(t testing.TB, fen string) *Board {
	t.Helper()
	b, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

// names returns the sorted algebraic names of sqs.
func names(sqs []Square) []string {
	out := make([]string, len(sqs))
	for i, sq := range sqs {
		out[i] = sq.String()
	}
	sort.Strings(out)
	return out
}

func sameNames(got []Square, want ...string) bool {
	g := names(got)
	w := append([]string(nil), want...)
	sort.Strings(w)
	if len(g) != len(w) {
		return false
	}
	for i := range g {
		if g[i] != w[i] {
			return false
		}
	}
	return true
}

func containsName(sqs []Square, name string) bool {
	for _, sq := range sqs {
		if sq.String() == name {
			return true
		}
	}
	return false
}
