package ops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	lz4Ext   = ".lz4"
	dstPerms = 0600
	dstFlags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
)

// targetT wires a command's input and output files. A nil src reads
// from stdin; a nil dst writes to stdout.
type targetT struct {
	src   *os.File
	srcSz int64
	dst   *os.File
}

func newTarget(compress bool, name, output string, forceOverwrite bool) (t *targetT, err error) {

	t = &targetT{}

	defer func() {
		if err != nil {
			t.Close()
		}
	}()

	if name != "" && name != "-" {
		if t.src, err = os.Open(name); err != nil {
			return
		}

		var nfo os.FileInfo
		if nfo, err = t.src.Stat(); err != nil {
			return
		}
		t.srcSz = nfo.Size()
	}

	switch {
	case output == "-":
		// stdout
		return
	case output != "":
		// explicit name
	case t.src == nil:
		// stdin in, stdout out
		return
	case compress:
		output = name + lz4Ext
	default:
		if !strings.HasSuffix(name, lz4Ext) {
			err = fmt.Errorf("cannot infer output name from '%s'", name)
			return
		}
		output = strings.TrimSuffix(name, lz4Ext)
	}

	if !forceOverwrite && fileExists(output) {
		err = fmt.Errorf("output file '%s' exists; use --force to overwrite", output)
		return
	}

	t.dst, err = os.OpenFile(output, dstFlags, dstPerms)
	return
}

func fileExists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func (t *targetT) Reader() io.Reader {
	if t.src == nil {
		return os.Stdin
	}
	return t.src
}

func (t *targetT) Writer() io.WriteCloser {
	if t.dst == nil {
		return os.Stdout
	}
	return t.dst
}

func (t *targetT) Close() error {
	var errs []error

	if t.src != nil {
		errs = append(errs, t.src.Close())
		t.src = nil
	}

	if t.dst != nil {
		errs = append(errs, t.dst.Close())
		t.dst = nil
	}

	return errors.Join(errs...)
}
