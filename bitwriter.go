package swfheader

import "bytes"

// bitWriter writes bits to a bytes.Buffer (msb-first in each byte).
type bitWriter struct {
	buf  *bytes.Buffer
	byte byte
	n    uint8 // number of bits written (0..8)
}

func newBitWriter(buf *bytes.Buffer) bitWriter {
	return bitWriter{buf: buf}
}

// writeBits writes the low n bits of bits, msb-first.
// For example, if n=4 and bits=0b1011, this writes: 1,0,1,1.
func (bw *bitWriter) writeBits(bits uint32, n uint8) {
	for n > 0 {
		k := min(8-bw.n, n)
		shift := n - k
		chunk := byte(bits>>shift) & byte(uint16(1)<<k-1)

		bw.byte = bw.byte<<k | chunk
		bw.n += k
		n -= k

		if bw.n == 8 {
			_ = bw.buf.WriteByte(bw.byte)
			bw.byte = 0
			bw.n = 0
		}
	}
}

// flush writes any remaining bits, padded with zeros on the right.
func (bw *bitWriter) flush() {
	if bw.n > 0 {
		bw.byte <<= 8 - bw.n
		_ = bw.buf.WriteByte(bw.byte)
		bw.byte = 0
		bw.n = 0
	}
}
