package ops

import (
	"fmt"

	"github.com/gammazero/workerpool"
	"go.uber.org/zap"

	"github.com/Iotic-Labs/lz4framed"
)

// engineOpts builds the options every command shares, along with a
// cleanup func that drains the worker pool and flushes the logger.
func engineOpts() ([]lz4framed.OptT, func(), error) {

	var (
		opts    []lz4framed.OptT
		cleanup = func() {}
	)

	if CLI.Workers > 0 {
		wp := workerpool.New(CLI.Workers)
		opts = append(opts, lz4framed.WithWorkerPool(wp))
		cleanup = wp.StopWait
	}

	if CLI.Verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			return nil, cleanup, err
		}
		opts = append(opts, lz4framed.WithLogger(log))

		poolStop := cleanup
		cleanup = func() {
			poolStop()
			_ = log.Sync()
		}
	}

	return opts, cleanup, nil
}

func parseBlockSize(bs string) (lz4framed.BlockSizeIdT, error) {
	switch bs {
	case "64KB", "64K":
		return lz4framed.BlockSizeMax64KB, nil
	case "256KB", "256K":
		return lz4framed.BlockSizeMax256KB, nil
	case "1MB", "1M":
		return lz4framed.BlockSizeMax1MB, nil
	case "4MB", "4M":
		return lz4framed.BlockSizeMax4MB, nil
	}
	return 0, fmt.Errorf("fail parse block size '%s'", bs)
}
