package lz4framed

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestOptionValidation(t *testing.T) {

	tests := map[string]struct {
		opt OptT
		ok  bool
	}{
		"block_id_default": {opt: WithBlockSizeId(BlockSizeDefault), ok: true},
		"block_id_64kb":    {opt: WithBlockSizeId(BlockSizeMax64KB), ok: true},
		"block_id_256kb":   {opt: WithBlockSizeId(BlockSizeMax256KB), ok: true},
		"block_id_1mb":     {opt: WithBlockSizeId(BlockSizeMax1MB), ok: true},
		"block_id_4mb":     {opt: WithBlockSizeId(BlockSizeMax4MB), ok: true},
		"block_id_low":     {opt: WithBlockSizeId(1)},
		"block_id_mid":     {opt: WithBlockSizeId(3)},
		"block_id_high":    {opt: WithBlockSizeId(8)},
		"level_min":        {opt: WithLevel(CompressionMin), ok: true},
		"level_one":        {opt: WithLevel(1), ok: true},
		"level_min_hc":     {opt: WithLevel(CompressionMinHC), ok: true},
		"level_max":        {opt: WithLevel(CompressionMax), ok: true},
		"level_negative":   {opt: WithLevel(-1)},
		"level_over":       {opt: WithLevel(CompressionMax + 1)},
		"buffer_size_one":  {opt: WithBufferSize(1), ok: true},
		"buffer_size_zero": {opt: WithBufferSize(0)},
		"buffer_size_neg":  {opt: WithBufferSize(-5)},
		"chunk_len_two":    {opt: WithChunkLen(2), ok: true},
		"chunk_len_zero":   {opt: WithChunkLen(0)},
		"chunk_len_neg":    {opt: WithChunkLen(-1)},
		"logger_set":       {opt: WithLogger(zap.NewNop()), ok: true},
		"logger_nil":       {opt: WithLogger(nil)},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Compress([]byte("validation payload"), tc.opt)
			if tc.ok && err != nil {
				t.Errorf("Expected option accepted, got:%v", err)
			}
			if !tc.ok && !errors.Is(err, ErrOption) {
				t.Errorf("Expected %v, got:%v", ErrOption, err)
			}
		})
	}
}

func TestGetBlockSize(t *testing.T) {

	tests := map[string]struct {
		id BlockSizeIdT
		sz int
		ok bool
	}{
		"default": {id: BlockSizeDefault, sz: 64 << 10, ok: true},
		"64kb":    {id: BlockSizeMax64KB, sz: 64 << 10, ok: true},
		"256kb":   {id: BlockSizeMax256KB, sz: 256 << 10, ok: true},
		"1mb":     {id: BlockSizeMax1MB, sz: 1 << 20, ok: true},
		"4mb":     {id: BlockSizeMax4MB, sz: 4 << 20, ok: true},
		"low":     {id: 2},
		"high":    {id: 9},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			sz, err := GetBlockSize(tc.id)
			switch {
			case tc.ok && err != nil:
				t.Errorf("Expected no error, got:%v", err)
			case tc.ok && sz != tc.sz:
				t.Errorf("Expected %d, got:%d", tc.sz, sz)
			case !tc.ok && !errors.Is(err, ErrOption):
				t.Errorf("Expected %v, got:%v", ErrOption, err)
			}
		})
	}
}
