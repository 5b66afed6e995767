package writers

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"

	"meisenheimer-core/chemio"
)

// fileOutput layers a buffer (and gzip for *.gz) over a created file.
type fileOutput struct {
	*bufio.Writer
	gz *gzip.Writer
	fh *os.File
}

// CreateFile opens path for writing, truncating it. Paths ending in .gz are
// gzip-compressed. Close flushes every layer and closes the file; it must
// be called even after a failed run so the partial output is kept.
func CreateFile(path string) (io.WriteCloser, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	o := &fileOutput{fh: fh}
	var w io.Writer = fh
	if chemio.IsCompressed(path) {
		o.gz = gzip.NewWriter(fh)
		w = o.gz
	}
	o.Writer = bufio.NewWriterSize(w, 64*1024)
	return o, nil
}

func (o *fileOutput) Close() error {
	err := o.Writer.Flush()
	if o.gz != nil {
		if cerr := o.gz.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if cerr := o.fh.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
