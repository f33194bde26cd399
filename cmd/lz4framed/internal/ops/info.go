package ops

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Iotic-Labs/lz4framed"
)

const (
	strStdin  = "<STDIN>"
	strStdout = "<STDOUT>"
	strUnset  = "<UNSET>"
)

func RunInfo() error {

	rdwr, err := newTarget(false, CLI.Info.File, "-", false)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	opts, cleanup, err := engineOpts()
	if err != nil {
		return err
	}
	defer cleanup()

	return infoTarget(rdwr, opts...)
}

// infoTarget feeds the frame through a decompression context, discarding
// the output. Unless -H is given the whole frame is decoded, which
// validates every checksum it carries.
func infoTarget(rdwr *targetT, opts ...lz4framed.OptT) error {

	ctx := lz4framed.NewDecompressionContext()
	defer ctx.Close()

	var (
		start   = time.Now()
		rd      = rdwr.Reader()
		buf     = make([]byte, 64<<10)
		inCnt   uint64
		outCnt  uint64
		nfo     lz4framed.FrameInfoT
		haveNfo bool
		done    bool
	)

LOOP:
	for !done {

		n, rerr := rd.Read(buf)

		if n > 0 {
			inCnt += uint64(n)

			chunks, hint, err := ctx.Update(buf[:n], opts...)
			if err != nil {
				return err
			}
			for _, chunk := range chunks {
				outCnt += uint64(len(chunk))
			}
			done = hint == 0
		}

		if !haveNfo {
			if v, err := ctx.FrameInfo(); err == nil {
				nfo, haveNfo = v, true
				if CLI.Info.HeaderOnly {
					break LOOP
				}
			}
		}

		switch {
		case rerr == io.EOF:
			if !done {
				return lz4framed.ErrFrameIncomplete
			}
			break LOOP
		case rerr != nil:
			return rerr
		}
	}

	if !haveNfo {
		return lz4framed.ErrHeaderIncomplete
	}

	contentSz := strUnset
	if nfo.ContentSize > 0 {
		contentSz = fmt.Sprintf("%d", nfo.ContentSize)
	}

	t := table.NewWriter()
	t.SetTitle("Frame info")
	t.SetStyle(table.StyleColoredBright)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Key", "Value"})
	t.AppendRows([]table.Row{
		{"File", srcName(rdwr)},
		{"Content size", contentSz},
		{"Content checksum", nfo.ContentChecksum},
		{"Block size", nfo.BlockSizeId.Str()},
		{"Block linkage", nfo.BlockLinked},
	})

	if !CLI.Info.HeaderOnly {
		tdiff := time.Since(start)
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"InSize", inCnt},
			{"OutSize", outCnt},
			{"Duration", tdiff.Round(time.Microsecond)},
			{"Ratio", fmt.Sprintf("%.2f%%", ratio(inCnt, outCnt))},
		})
	}

	t.Render()
	return nil
}
