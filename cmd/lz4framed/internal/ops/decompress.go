package ops

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Iotic-Labs/lz4framed"
	"github.com/Iotic-Labs/lz4framed/pkg/sparse"
)

func RunDecompress() error {

	rdwr, err := newTarget(false, CLI.Decompress.File, CLI.Decompress.Output, CLI.Decompress.Force)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	opts, cleanup, err := engineOpts()
	if err != nil {
		return err
	}
	defer cleanup()

	return decompressTarget(rdwr, opts...)
}

func decompressTarget(rdwr *targetT, opts ...lz4framed.OptT) error {

	var (
		pw   progress.Writer
		tr   *progress.Tracker
		rcnt = &rdCnt{Reader: rdwr.Reader()}
	)

	if rdwr.dst != nil && !CLI.Decompress.Quiet {
		msg := "Decompressing"
		pw = newProgressWriter(1)
		pw.SetMessageLength(len(msg))

		tr = &progress.Tracker{
			Message: msg,
			Total:   rdwr.srcSz,
			Units:   progress.UnitsBytes,
		}
		pw.AppendTracker(tr)
		rcnt.tr = tr

		go pw.Render()
	}

	start := time.Now()

	var (
		wr io.Writer = rdwr.Writer()
		sw *sparse.Writer
	)

	// File outputs go through the sparse writer so zero runs become
	// holes instead of written blocks.
	if rdwr.dst != nil {
		sw = sparse.NewWriter(rdwr.dst)
		wr = sw
	}

	framer, err := lz4framed.NewDecompressor(rcnt, opts...)
	if err != nil {
		return err
	}

	n, err := io.Copy(wr, framer)
	if err != nil {
		framer.Close()
		return err
	}

	if err := framer.Close(); err != nil {
		return err
	}

	// Commit any trailing hole and close the file before reporting.
	outName := strStdout
	if sw != nil {
		outName = rdwr.dst.Name()
		if err := sw.Close(); err != nil {
			return err
		}
		rdwr.dst = nil
	}

	if pw != nil {
		tdiff := time.Since(start)

		tr.MarkAsDone()
		for pw.IsRenderInProgress() {
			time.Sleep(time.Millisecond * 100)
		}

		percent := ratio(rcnt.cnt, uint64(n))

		t := table.NewWriter()
		t.SetTitle("Decompress results")
		t.SetStyle(table.StyleColoredBright)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Value"})
		t.AppendRows([]table.Row{
			{"Input", srcName(rdwr)},
			{"Output", outName},
			{"InSize", rcnt.cnt},
			{"OutSize", n},
			{"Duration", tdiff.Round(time.Microsecond)},
			{"Ratio", fmt.Sprintf("%.2f%%", percent)},
		})
		t.Render()
	}

	return nil
}

type rdCnt struct {
	cnt uint64
	tr  *progress.Tracker
	io.Reader
}

func (r *rdCnt) Read(data []byte) (n int, err error) {
	n, err = r.Reader.Read(data)
	if n >= 0 {
		r.cnt += uint64(n)
		if r.tr != nil {
			r.tr.SetValue(int64(r.cnt))
		}
	}
	return
}
