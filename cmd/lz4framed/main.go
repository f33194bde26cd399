package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/Iotic-Labs/lz4framed/cmd/lz4framed/internal/ops"
)

func main() {

	var (
		errS string
		kctx = kong.Parse(&ops.CLI)
	)

	switch kctx.Command() {
	case "compress", "compress <file>":
		if err := ops.RunCompress(); err != nil {
			errS = fmt.Sprintf("fail compress: %v", err)
		}
	case "decompress", "decompress <file>":
		if err := ops.RunDecompress(); err != nil {
			errS = fmt.Sprintf("fail decompress: %v", err)
		}
	case "info", "info <file>":
		if err := ops.RunInfo(); err != nil {
			errS = fmt.Sprintf("fail info: %v", err)
		}
	default:
		errS = fmt.Sprintf("unknown command '%s'", kctx.Command())
	}

	if errS != "" {
		fmt.Fprintf(os.Stderr, "lz4framed: %s\n", errS)
		os.Exit(1)
	}
}
