package cmdutil

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"meisenheimer/internal/pipeline"
)

func TestWarnf(t *testing.T) {
	var b bytes.Buffer
	Warnf(&b, false, "skipped %d", 2)
	if b.String() != "WARN: skipped 2\n" {
		t.Fatalf("got %q", b.String())
	}
	b.Reset()
	Warnf(&b, true, "hidden")
	if b.Len() != 0 {
		t.Fatalf("quiet wrote %q", b.String())
	}
}

func TestRunStreamCountsKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.smi")
	if err := os.WriteFile(path, []byte("C a\nCC b\nCCC c\nCCCC d\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	var sent []string
	n, err := RunStream(context.Background(), pipeline.Config{}, []string{path},
		func(it pipeline.Item) (bool, string, error) {
			return len(it.Mol.Atoms)%2 == 0, it.Mol.Name, nil
		},
		func(s string) error {
			sent = append(sent, s)
			return nil
		})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 || len(sent) != 2 || sent[0] != "b" || sent[1] != "d" {
		t.Fatalf("n=%d sent=%v", n, sent)
	}
}

func TestRunStreamPropagatesErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.smi")
	_ = os.WriteFile(path, []byte("C\nCC\n"), 0o644)
	boom := errors.New("boom")
	_, err := RunStream(context.Background(), pipeline.Config{}, []string{path},
		func(pipeline.Item) (bool, int, error) { return true, 0, nil },
		func(int) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}
