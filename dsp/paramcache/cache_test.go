package paramcache

import (
	"math"
	"testing"
)

const (
	fieldA = iota
	fieldB
	fieldC
	numFields
)

type sum struct{ v float64 }

func sumAB(dst *sum, values []float64) { dst.v = values[fieldA] + values[fieldB] }

func TestNewGroupValidation(t *testing.T) {
	tests := []struct {
		name    string
		deps    []int
		compute ComputeFunc[sum]
	}{
		{"nil compute", []int{fieldA}, nil},
		{"no deps", nil, sumAB},
		{"negative dep", []int{-1}, sumAB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGroup(tt.name, tt.deps, tt.compute); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGroupRecomputesOnlyOnChange(t *testing.T) {
	g, err := NewGroup("ab", []int{fieldA, fieldB}, sumAB)
	if err != nil {
		t.Fatal(err)
	}
	if g.Valid() {
		t.Fatal("new group must be invalid")
	}

	values := []float64{1, 2, 3}
	if got := g.Get(values).v; got != 3 {
		t.Fatalf("got %v want 3", got)
	}
	if g.Recomputes() != 1 {
		t.Fatalf("recomputes: got %d want 1", g.Recomputes())
	}

	for range 10 {
		g.Get(values)
	}
	if g.Recomputes() != 1 {
		t.Fatalf("identical snapshot recomputed: got %d want 1", g.Recomputes())
	}

	// Non-dependency field.
	values[fieldC] = 99
	g.Get(values)
	if g.Recomputes() != 1 {
		t.Fatalf("unrelated field recomputed: got %d want 1", g.Recomputes())
	}

	values[fieldB] = 5
	if got := g.Get(values).v; got != 6 {
		t.Fatalf("got %v want 6", got)
	}
	if g.Recomputes() != 2 {
		t.Fatalf("recomputes: got %d want 2", g.Recomputes())
	}

	// Smallest representable change still counts.
	values[fieldA] = math.Nextafter(1, 2)
	g.Get(values)
	if g.Recomputes() != 3 {
		t.Fatalf("recomputes: got %d want 3", g.Recomputes())
	}
}

func TestGroupInvalidate(t *testing.T) {
	g, err := NewGroup("ab", []int{fieldA, fieldB}, sumAB)
	if err != nil {
		t.Fatal(err)
	}

	values := []float64{1, 2, 3}
	g.Get(values)
	g.Invalidate()
	if g.Valid() {
		t.Fatal("group must be invalid after Invalidate")
	}
	g.Get(values)
	if g.Recomputes() != 2 {
		t.Fatalf("recomputes: got %d want 2", g.Recomputes())
	}
}

func TestGroupDepsCopy(t *testing.T) {
	deps := []int{fieldA, fieldB}
	g, err := NewGroup("ab", deps, sumAB)
	if err != nil {
		t.Fatal(err)
	}
	deps[0] = fieldC
	got := g.Deps()
	if got[0] != fieldA {
		t.Fatalf("deps aliased caller slice: %v", got)
	}
}

func TestCacheStats(t *testing.T) {
	var c Cache

	ab, err := Add(&c, "ab", []int{fieldA, fieldB}, sumAB)
	if err != nil {
		t.Fatal(err)
	}
	cOnly, err := Add(&c, "c", []int{fieldC}, func(dst *float64, v []float64) { *dst = 2 * v[fieldC] })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Add(&c, "c", []int{fieldC}, func(dst *float64, v []float64) {}); err == nil {
		t.Fatal("expected duplicate name error")
	}
	if c.Len() != 2 {
		t.Fatalf("Len: got %d want 2", c.Len())
	}

	values := make([]float64, numFields)
	ab.Get(values)
	cOnly.Get(values)

	values[fieldC] = 4
	ab.Get(values)
	if got := *cOnly.Get(values); got != 8 {
		t.Fatalf("c: got %v want 8", got)
	}

	s := c.Stats()
	if s.Total != 3 || s.Count("ab") != 1 || s.Count("c") != 2 {
		t.Fatalf("stats: %+v", s)
	}
	if s.Count("missing") != 0 {
		t.Fatal("unknown group must report 0")
	}

	c.InvalidateAll()
	ab.Get(values)
	cOnly.Get(values)
	if got := c.Stats().Total; got != 5 {
		t.Fatalf("after InvalidateAll: total %d want 5", got)
	}

	c.ResetStats()
	if got := c.Stats().Total; got != 0 {
		t.Fatalf("after ResetStats: total %d want 0", got)
	}
}

func BenchmarkGroupGetHit(b *testing.B) {
	g, err := NewGroup("ab", []int{fieldA, fieldB}, sumAB)
	if err != nil {
		b.Fatal(err)
	}
	values := []float64{1, 2, 3}
	g.Get(values)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Get(values)
	}
}
