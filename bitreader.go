package swfheader

import (
	"io"

	"github.com/pkg/errors"
)

// BitReader reads bit fields from a byte stream (msb-first in each byte).
// It never holds more than the current partial byte, so after Align the
// underlying reader is positioned exactly at the next unread byte.
type BitReader struct {
	r   io.ByteReader
	cur byte
	n   uint8 // unread bits left in cur (0..8)
}

// NewBitReader returns a BitReader positioned at the next byte of r.
func NewBitReader(r io.ByteReader) *BitReader {
	return &BitReader{r: r}
}

// ReadBits reads n bits (0..32) and returns them in the low n bits of the
// result, msb-first within the n bits. ReadBits(0) consumes nothing.
func (br *BitReader) ReadBits(n uint8) (uint32, error) {
	if n > 32 {
		return 0, errors.Errorf("ReadBits: invalid bit count %d", n)
	}
	var out uint32
	for n > 0 {
		if br.n == 0 {
			b, err := br.r.ReadByte()
			if err != nil {
				if err == io.EOF {
					err = io.ErrUnexpectedEOF
				}
				return 0, err
			}
			br.cur = b
			br.n = 8
		}

		k := min(n, br.n)
		shift := br.n - k
		chunk := uint32(br.cur>>shift) & (uint32(1)<<k - 1)

		out = out<<k | chunk
		br.n -= k
		n -= k
	}
	return out, nil
}

// ReadSignedBits reads an n-bit two's complement value and sign-extends it.
func (br *BitReader) ReadSignedBits(n uint8) (int32, error) {
	v, err := br.ReadBits(n)
	if err != nil || n == 0 {
		return 0, err
	}
	shift := 32 - n
	return int32(v<<shift) >> shift, nil
}

// Align drops the unread bits of the current byte.
func (br *BitReader) Align() {
	br.cur = 0
	br.n = 0
}

// BitRange returns the bits [start, end) of data as an unsigned integer,
// counting bit 0 as the most significant bit of data[0]. At most 32 bits can
// be extracted at once.
func BitRange(data []byte, start, end uint32) (uint32, error) {
	if end < start || end-start > 32 {
		return 0, errors.Errorf("BitRange: invalid range %d..%d", start, end)
	}
	if uint64(end) > uint64(len(data))*8 {
		return 0, errors.Errorf("BitRange: range %d..%d overflows %d bytes", start, end, len(data))
	}
	var out uint32
	for i := start; i < end; i++ {
		bit := (data[i/8] >> (7 - i%8)) & 1
		out = out<<1 | uint32(bit)
	}
	return out, nil
}
