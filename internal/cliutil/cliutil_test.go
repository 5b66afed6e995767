package cliutil

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("C methane\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestResolveDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "b.sdf", "a.smi", "c.txt", "d.smi.gz", "e.SDF")
	if err := os.Mkdir(filepath.Join(dir, "sub.smi"), 0o755); err != nil {
		t.Fatal(err)
	}
	got, err := ResolveInputs(dir)
	if err != nil {
		t.Fatal(err)
	}
	var want []string
	for _, n := range []string{"a.smi", "b.sdf", "d.smi.gz", "e.SDF"} {
		want = append(want, filepath.Join(dir, n))
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestResolveDirectoryFollowsFileLinks(t *testing.T) {
	dir := t.TempDir()
	elsewhere := t.TempDir()
	touch(t, dir, "a.smi")
	touch(t, elsewhere, "real.smi")
	links := map[string]string{
		"b.smi": filepath.Join(elsewhere, "real.smi"),
		"c.smi": filepath.Join(elsewhere, "missing.smi"),
		"d.sdf": elsewhere,
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(dir, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}
	got, err := ResolveInputs(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.smi"), filepath.Join(dir, "b.smi")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v\nwant %v", got, want)
	}
}

func TestResolveEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "notes.txt")
	if _, err := ResolveInputs(dir); err == nil {
		t.Fatal("directory without molecule files should be an error")
	}
}

func TestResolveCommaList(t *testing.T) {
	got, err := ResolveInputs("x.smi, y.sdf")
	if err != nil {
		t.Fatal(err)
	}
	wd, _ := os.Getwd()
	want := []string{filepath.Join(wd, "x.smi"), filepath.Join(wd, "y.sdf")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestResolveRejectsBlank(t *testing.T) {
	for _, s := range []string{"", "  ", ",", " , "} {
		if _, err := ResolveInputs(s); err == nil {
			t.Errorf("ResolveInputs(%q) should fail", s)
		}
	}
}

func TestExpandPositionals(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.smi", "b.smi", "c.sdf")
	got, err := ResolveInputs(filepath.Join(dir, "*.smi") + "," + filepath.Join(dir, "c.sdf"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.smi"), filepath.Join(dir, "b.smi"), filepath.Join(dir, "c.sdf")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if _, err := ExpandPositionals([]string{filepath.Join(dir, "*.none")}); err == nil {
		t.Fatal("unmatched glob should be an error")
	}
}
