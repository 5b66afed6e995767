package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

const sdfTwo = `ethanol
  test

  3  2  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
    0.0000    0.0000    0.0000 O   0  0  0  0  0  0  0  0  0  0  0  0
  1  2  1  0
  2  3  1  0
M  END
$$$$
methane
  test

  1  0  0  0  0  0  0  0  0  0999 V2000
    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0
M  END
$$$$
`

func TestCountAndVisitInOrder(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.smi", "CCO ethanol\nC( broken\nc1ccccc1 benzene\n")
	b := write(t, dir, "b.sdf", sdfTwo)
	files := []string{a, b}

	n, err := CountMolecules(context.Background(), Config{}, files)
	if err != nil || n != 5 {
		t.Fatalf("count = %d, %v; want 5", n, err)
	}

	var names []string
	var bad int
	err = ForEachMolecule(context.Background(), Config{}, files, func(it Item) error {
		if it.Err != nil {
			bad++
			if it.Path != a || it.Index != 1 {
				t.Errorf("bad record at %s #%d", it.Path, it.Index)
			}
			return nil
		}
		names = append(names, it.Mol.Name)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ethanol", "benzene", "ethanol", "methane"}
	if len(names) != len(want) || bad != 1 {
		t.Fatalf("names %v bad %d", names, bad)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names %v want %v", names, want)
		}
	}
}

func TestTitleLine(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.smi", "SMILES Name\nCCO ethanol\n")
	cfg := Config{TitleLine: true}
	n, err := CountMolecules(context.Background(), cfg, []string{a})
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
	seen := 0
	_ = ForEachMolecule(context.Background(), cfg, []string{a}, func(it Item) error {
		if it.Err != nil {
			t.Errorf("header parsed as a molecule: %v", it.Err)
		}
		seen++
		return nil
	})
	if seen != 1 {
		t.Fatalf("visited %d", seen)
	}
}

func TestStopsOnVisitError(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.smi", "C\nCC\nCCC\n")
	b := write(t, dir, "b.smi", "N\n")
	stop := errors.New("stop")
	calls := 0
	err := ForEachMolecule(context.Background(), Config{}, []string{a, b}, func(Item) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || calls != 2 {
		t.Fatalf("err=%v calls=%d", err, calls)
	}
}

func TestCancelled(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a.smi", "C\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CountMolecules(ctx, Config{}, []string{a}); !errors.Is(err, context.Canceled) {
		t.Fatalf("count: %v", err)
	}
	if err := ForEachMolecule(ctx, Config{}, []string{a}, func(Item) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("visit: %v", err)
	}
}

func TestMissingInput(t *testing.T) {
	if _, err := CountMolecules(context.Background(), Config{}, []string{filepath.Join(t.TempDir(), "none.smi")}); err == nil {
		t.Fatal("missing file should fail the count")
	}
}
