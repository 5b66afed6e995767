package runutil

import "testing"

func TestLRUSetEvictsOldest(t *testing.T) {
	s := NewLRUSet[int](2)
	if s.Add(1) || s.Add(2) {
		t.Fatal("fresh keys reported as present")
	}
	if !s.Add(1) { // 1 is now most recent
		t.Fatal("1 should be present")
	}
	s.Add(3) // evicts 2
	if s.Len() != 2 {
		t.Fatalf("Len = %d", s.Len())
	}
	if !s.Add(1) {
		t.Fatal("1 should have survived")
	}
	if s.Add(2) {
		t.Fatal("2 should have been evicted")
	}
}

func TestLRUSetDefaultCapacity(t *testing.T) {
	s := NewLRUSet[string](0)
	if s.cap != DefaultCapacity {
		t.Fatalf("cap = %d", s.cap)
	}
}

func TestKeyOf(t *testing.T) {
	a, b := KeyOf("CCO ethanol"), KeyOf("CCO ethanol")
	if a != b {
		t.Fatal("same record, different keys")
	}
	if KeyOf("CCO") == KeyOf("OCC") {
		t.Fatal("different records share a key")
	}
	if KeyOf("").Len != 0 {
		t.Fatal("empty record length")
	}
}

func TestDeduper(t *testing.T) {
	d := NewDeduper(10)
	in := []string{"CCO", "c1ccccc1", "CCO", "C", "c1ccccc1"}
	var kept []string
	for _, s := range in {
		if !d.Seen(s) {
			kept = append(kept, s)
		}
	}
	if len(kept) != 3 || kept[0] != "CCO" || kept[1] != "c1ccccc1" || kept[2] != "C" {
		t.Fatalf("kept %v", kept)
	}
	if d.Dropped() != 2 {
		t.Fatalf("Dropped = %d", d.Dropped())
	}
}
