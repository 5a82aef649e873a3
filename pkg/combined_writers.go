package pkg

import (
	"io"

	"go.uber.org/multierr"
)

// CombinedWriter writes every chunk to all of its writers, e.g. logs going
// both to stdout and to a rotating file.
type CombinedWriter struct {
	Writers []io.Writer
}

func NewCombinedWriter(writers ...io.Writer) *CombinedWriter {
	cw := &CombinedWriter{}
	for _, w := range writers {
		if w != nil {
			cw.Writers = append(cw.Writers, w)
		}
	}
	return cw
}

// Write reports len(p) as long as one writer took the whole chunk; the errors
// of the failing writers are combined and returned.
func (cw *CombinedWriter) Write(p []byte) (int, error) {
	var err error
	okWrites := 0
	for _, w := range cw.Writers {
		written, werr := w.Write(p)
		if werr != nil {
			err = multierr.Append(err, werr)
			continue
		}
		if written == len(p) {
			okWrites++
		}
	}
	if okWrites == 0 {
		return 0, err
	}
	return len(p), err
}
