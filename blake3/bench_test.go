package blake3

import (
	"crypto/sha256"
	"testing"
)

func benchmarkSum256(b *testing.B, size int) {
	data := testInput(size)
	b.SetBytes(int64(size))
	for i := 0; i < b.N; i++ {
		Sum256(data)
	}
}

func BenchmarkSum256_1K(b *testing.B)  { benchmarkSum256(b, 1024) }
func BenchmarkSum256_8K(b *testing.B)  { benchmarkSum256(b, 8*1024) }
func BenchmarkSum256_1M(b *testing.B)  { benchmarkSum256(b, 1024*1024) }
func BenchmarkSum256_16M(b *testing.B) { benchmarkSum256(b, 16*1024*1024) }

func BenchmarkHasherWrite_1M(b *testing.B) {
	data := testInput(1024 * 1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		h := New()
		_, _ = h.Write(data)
		h.Sum256()
	}
}

func BenchmarkSHA256_1M(b *testing.B) {
	data := testInput(1024 * 1024)
	b.SetBytes(int64(len(data)))
	for i := 0; i < b.N; i++ {
		sha256.Sum256(data)
	}
}

func BenchmarkCompress4(b *testing.B) {
	var cvs [4][8]uint32
	var blocks [4][16]uint32
	var counters [4]uint64
	var blockLens, flags [4]uint32
	for lane := 0; lane < 4; lane++ {
		blockLens[lane] = BlockLen
	}
	for i := 0; i < b.N; i++ {
		cvs = compress4(&cvs, &blocks, counters, blockLens, flags)
	}
}
