package ops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Iotic-Labs/lz4framed"
)

func RunCompress() error {

	rdwr, err := newTarget(true, CLI.Compress.File, CLI.Compress.Output, CLI.Compress.Force)
	if err != nil {
		return err
	}
	defer rdwr.Close()

	opts, cleanup, err := engineOpts()
	if err != nil {
		return err
	}
	defer cleanup()

	bs, err := parseBlockSize(CLI.Compress.BS)
	if err != nil {
		return err
	}

	if CLI.Compress.CS {
		if rdwr.src == nil {
			return errors.New("cannot embed content size on stdin")
		}
		opts = append(opts, lz4framed.WithContentSize(uint64(rdwr.srcSz)))
	}

	opts = append(opts,
		lz4framed.WithLevel(lz4framed.LevelT(CLI.Compress.Level)),
		lz4framed.WithBlockSizeId(bs),
		lz4framed.WithBlockLinked(CLI.Compress.BD),
		lz4framed.WithBlockChecksum(CLI.Compress.BX),
		lz4framed.WithContentChecksum(CLI.Compress.CX),
	)

	return compressTarget(rdwr, opts...)
}

func compressTarget(rdwr *targetT, opts ...lz4framed.OptT) error {

	var (
		pw   progress.Writer
		tr   *progress.Tracker
		rcnt = &rdCnt{Reader: rdwr.Reader()}
	)

	if rdwr.dst != nil && !CLI.Compress.Quiet {
		msg := "Compressing"
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

	var (
		start = time.Now()
		wcnt  = &wrCnt{Writer: rdwr.Writer()}
	)

	framer, err := lz4framed.NewCompressor(wcnt, opts...)
	if err != nil {
		return err
	}

	n, err := io.Copy(framer, rcnt)
	if err != nil {
		framer.Close()
		return err
	}

	if err := framer.Close(); err != nil {
		return err
	}

	if pw != nil {
		tdiff := time.Since(start)

		tr.MarkAsDone()
		for pw.IsRenderInProgress() {
			time.Sleep(time.Millisecond * 100)
		}

		percent := ratio(wcnt.cnt, uint64(n))

		t := table.NewWriter()
		t.SetTitle("Compress results")
		t.SetStyle(table.StyleColoredBright)
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Key", "Value"})
		t.AppendRows([]table.Row{
			{"Input", srcName(rdwr)},
			{"Output", rdwr.dst.Name()},
			{"InSize", n},
			{"OutSize", wcnt.cnt},
			{"Duration", tdiff.Round(time.Microsecond)},
			{"Ratio", fmt.Sprintf("%.2f%%", percent)},
		})
		t.Render()
	}

	return nil
}

func srcName(rdwr *targetT) string {
	if rdwr.src == nil {
		return strStdin
	}
	return rdwr.src.Name()
}

func ratio(num, den uint64) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den) * 100.0
}

type wrCnt struct {
	cnt uint64
	io.Writer
}

func (w *wrCnt) Write(data []byte) (n int, err error) {
	n, err = w.Writer.Write(data)
	if n >= 0 {
		w.cnt += uint64(n)
	}
	return
}

func newProgressWriter(nTrackers int) progress.Writer {
	pw := progress.NewWriter()
	pw.SetAutoStop(true)
	pw.SetMessageLength(24)
	pw.SetNumTrackersExpected(nTrackers)
	pw.SetSortBy(progress.SortByPercentDsc)
	pw.SetStyle(progress.StyleDefault)
	pw.SetTrackerLength(25)
	pw.SetTrackerPosition(progress.PositionRight)
	pw.SetUpdateFrequency(time.Millisecond * 100)
	pw.Style().Colors = progress.StyleColorsExample
	pw.Style().Options.PercentFormat = "%4.1f%%"
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Percentage = true
	pw.Style().Visibility.Speed = true
	pw.Style().Visibility.Time = true
	return pw
}
