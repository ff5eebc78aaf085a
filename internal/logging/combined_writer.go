package logging

import (
	"io"

	"go.uber.org/multierr"
)

type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	cw.Writers = append(cw.Writers, writers...)
	return cw
}

// Write writes p to every writer; a failing writer does not stop the others.
// It reports len(p) once any writer took the data, and 0 otherwise.
func (cw CombinedWriter) Write(p []byte) (n int, err error) {
	delivered := false
	for _, w := range cw.Writers {
		if _, werr := w.Write(p); werr != nil {
			err = multierr.Combine(err, werr)
			continue
		}
		delivered = true
	}
	if delivered {
		n = len(p)
	}
	return n, err
}
