package blake3

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

func init() {
	if runtime.GOARCH == "arm64" {
		// ASIMD support requires an explicit probe on some platforms.
		cpuid.DetectARM()
	}
}

// haveSSE41 and haveAVX2 gate whether the portable compression backend
// uses its 4-wide batching kernel (see preferBatched). Every path produces
// a bit-identical digest; these only steer which batching code runs,
// never correctness.
var (
	haveSSE41 = cpuid.CPU.Supports(cpuid.SSSE3, cpuid.SSE4)
	haveAVX2  = cpuid.CPU.Supports(cpuid.AVX2)
)
