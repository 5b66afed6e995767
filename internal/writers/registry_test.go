package writers

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"meisenheimer-core/mol"
	"meisenheimer-core/molfile"
	"meisenheimer-core/smiles"
)

func molecules(t *testing.T, lines ...string) []*mol.Molecule {
	t.Helper()
	var out []*mol.Molecule
	for _, l := range lines {
		m, err := smiles.ParseLine(l)
		if err != nil {
			t.Fatalf("%q: %v", l, err)
		}
		out = append(out, m)
	}
	return out
}

func TestUnknownMoleculeFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartMoleculeWriter(&b, "nope-format", false, 1)
	close(in)
	err := <-done
	if err == nil || !strings.Contains(err.Error(), "unknown molecule format") {
		t.Fatalf("want 'unknown molecule format' error, got: %v", err)
	}
}

func TestSMILESWriterKeepsOrder(t *testing.T) {
	var b bytes.Buffer
	in, done := StartMoleculeWriter(&b, "smi", true, 1)
	for _, m := range molecules(t, "CCO ethanol", "c1ccccc1 benzene", "C") {
		in <- m
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	want := "SMILES Name\nCCO ethanol\nc1ccccc1 benzene\nC\n"
	if b.String() != want {
		t.Fatalf("got %q want %q", b.String(), want)
	}
}

func TestSDFWriterRecords(t *testing.T) {
	var b bytes.Buffer
	in, done := StartMoleculeWriter(&b, "sdf", true, 4)
	for _, m := range molecules(t, "CCO ethanol", "Clc1ccc(cc1)[N+](=O)[O-] pcnb") {
		in <- m
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(b.String(), "$$$$\n"); n != 2 {
		t.Fatalf("%d records in %q", n, b.String())
	}
	r := molfile.NewReader(&b)
	first, err := r.Next()
	if err != nil || first.Name != "ethanol" {
		t.Fatalf("read back: %v %+v", err, first)
	}
	second, err := r.Next()
	if err != nil || smiles.Write(second) != "Clc1ccc(cc1)[N+](=O)[O-]" {
		t.Fatalf("read back: %v %v", err, second)
	}
}

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, syscall.EPIPE
}

func TestWriterDrainsAfterError(t *testing.T) {
	fw := &failWriter{}
	in, done := StartMoleculeWriter(fw, "smi", false, 1)
	for _, m := range molecules(t, "C", "CC", "CCC", "CCCC") {
		in <- m // must not block after the first failure
	}
	close(in)
	err := <-done
	if !IsBrokenPipe(err) {
		t.Fatalf("want broken pipe, got %v", err)
	}
	if fw.n != 1 {
		t.Fatalf("writes after failure: %d", fw.n)
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(io.ErrClosedPipe) || IsBrokenPipe(errors.New("x")) || IsBrokenPipe(nil) {
		t.Fatal("IsBrokenPipe misclassifies")
	}
}

func TestCreateFileGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.smi.GZ")
	w, err := CreateFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, "CCO ethanol\n"); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	fh, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	gr, err := gzip.NewReader(fh)
	if err != nil {
		t.Fatal(err)
	}
	data, _ := io.ReadAll(gr)
	if string(data) != "CCO ethanol\n" {
		t.Fatalf("got %q", data)
	}
}
