package theme

import "testing"

func TestLookup(t *testing.T) {
	for _, id := range Names() {
		got, ok := Lookup(id)
		if !ok || got.ID != id {
			t.Fatalf("Lookup(%q) = %q, %v", id, got.ID, ok)
		}
	}
	if _, ok := Lookup("solarized"); ok {
		t.Fatal("Lookup(solarized) ok = true, want false")
	}
}

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("nope"); got.ID != DefaultID {
		t.Fatalf("ByName(nope) = %q, want %q", got.ID, DefaultID)
	}
	if got := ByName("tokyo-night"); got.ID != "tokyo-night" {
		t.Fatalf("ByName(tokyo-night) = %q", got.ID)
	}
}

func TestNextCycles(t *testing.T) {
	id := DefaultID
	seen := map[string]bool{}
	for range All {
		seen[id] = true
		id = Next(id).ID
	}
	if id != DefaultID {
		t.Fatalf("cycle ended at %q, want %q", id, DefaultID)
	}
	if len(seen) != len(All) {
		t.Fatalf("visited %d themes, want %d", len(seen), len(All))
	}
}
