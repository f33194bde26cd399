package ops

var CLI struct {
	Compress struct {
		File   string `optional:"" arg:"" type:"existingfile" help:"File to compress; defaults to stdin"`
		Output string `help:"Output filename; use '-' for stdout" short:"o"`
		Level  int    `help:"Compression level (0-16) [0 Fastest]" default:"0" short:"l"`
		Force  bool   `help:"Force overwrite of existing file" short:"f"`
		Quiet  bool   `help:"Do not write progress to stdout" short:"q"`
		BS     string `help:"Block size [64KB, 256KB, 1MB, 4MB]" default:"64KB"`
		BD     bool   `help:"Enable linked blocks" default:"true" negatable:""`
		BX     bool   `help:"Enable block checksums"`
		CX     bool   `help:"Enable content checksum"`
		CS     bool   `help:"Embed content size; fails on stdin"`
	} `cmd:"" aliases:"c,comp" help:"Compress data into an lz4 frame"`

	Decompress struct {
		File   string `optional:"" arg:"" type:"existingfile" help:"File to decompress; defaults to stdin"`
		Output string `help:"Output filename; use '-' for stdout" short:"o"`
		Force  bool   `help:"Force overwrite of existing file" short:"f"`
		Quiet  bool   `help:"Do not write progress to stdout" short:"q"`
	} `cmd:"" aliases:"d,decomp" help:"Decompress an lz4 frame"`

	Info struct {
		File       string `optional:"" arg:"" type:"existingfile" help:"Frame to inspect; defaults to stdin"`
		HeaderOnly bool   `help:"Print header metadata without decoding the frame" short:"H"`
	} `cmd:"" aliases:"i" help:"Inspect and verify an lz4 frame"`

	Workers int  `help:"Worker pool size for large codec calls [0 inline]" default:"0" short:"w"`
	Verbose bool `help:"Log engine diagnostics to stderr" short:"v"`
}
