package protocol

import (
	"fmt"
	"testing"
)

func benchOps(n int) []Op {
	ops := make([]Op, 0, n*3)
	for i := 0; i < n; i++ {
		id := uint64(i*3 + 10)
		ops = append(ops,
			CreateElement(id, "tr"),
			CreateText(id+1, fmt.Sprintf("label %d", i)),
			Insert(3, id, 0),
		)
	}
	return ops
}

func BenchmarkEncodeOps(b *testing.B) {
	ops := benchOps(1000)
	e := NewEncoderWithCap(64 * 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Reset()
		EncodeOpsTo(e, ops)
	}
}

func BenchmarkDecodeOps(b *testing.B) {
	data := EncodeOps(benchOps(1000))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := DecodeOps(data); err != nil {
			b.Fatal(err)
		}
	}
}
