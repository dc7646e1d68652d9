package swfheader

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitReader_ReadBitsZero(t *testing.T) {
	r := bytes.NewReader([]byte{0xff})
	br := NewBitReader(r)

	v, err := br.ReadBits(0)
	require.NoError(t, err)
	require.Zero(t, v)
	require.Equal(t, 1, r.Len(), "ReadBits(0) must not consume input")
}

func TestBitReader_Read32MidByte(t *testing.T) {
	r := bytes.NewReader([]byte{0xab, 0x12, 0x34, 0x56, 0x78, 0x9c})
	br := NewBitReader(r)

	hi, err := br.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0xa), hi)

	v, err := br.ReadBits(32)
	require.NoError(t, err)
	require.Equal(t, uint32(0xb1234567), v)
	require.Equal(t, 1, r.Len(), "32 bits from mid-byte span five bytes")

	lo, err := br.ReadBits(4)
	require.NoError(t, err)
	require.Equal(t, uint32(0x8), lo)

	last, err := br.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0x9c), last)
}

func TestBitReader_ReadSignedBits(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		n    uint8
		want int32
	}{
		{name: "zero_width", data: nil, n: 0, want: 0},
		{name: "one_bit_set", data: []byte{0x80}, n: 1, want: -1},
		{name: "positive", data: []byte{0x3f}, n: 8, want: 63},
		{name: "negative", data: []byte{0xec}, n: 8, want: -20},
		{name: "five_bits_min", data: []byte{0x80}, n: 5, want: -16},
		{name: "full_width", data: []byte{0x80, 0, 0, 0}, n: 32, want: -1 << 31},
		{name: "31_bits_max", data: []byte{0x7f, 0xff, 0xff, 0xfe}, n: 31, want: 1<<30 - 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			br := NewBitReader(bytes.NewReader(tc.data))
			got, err := br.ReadSignedBits(tc.n)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestBitReader_Align(t *testing.T) {
	r := bytes.NewReader([]byte{0xf0, 0x55})
	br := NewBitReader(r)

	_, err := br.ReadBits(3)
	require.NoError(t, err)
	br.Align()

	v, err := br.ReadBits(8)
	require.NoError(t, err)
	require.Equal(t, uint32(0x55), v)

	// Aligning on a boundary is a no-op.
	br.Align()
	require.Zero(t, r.Len())
}

func TestBitReader_Errors(t *testing.T) {
	br := NewBitReader(bytes.NewReader([]byte{0x01}))
	_, err := br.ReadBits(33)
	require.Error(t, err)

	_, err = br.ReadBits(12)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = NewBitReader(bytes.NewReader(nil)).ReadBits(1)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestBitRange(t *testing.T) {
	data := []byte{0b0010_1100, 0b0111_0010}

	v, err := BitRange(data, 2, 12)
	require.NoError(t, err)
	require.Equal(t, uint32(0b1011000111), v)

	v, err = BitRange(data, 0, 0)
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = BitRange(data, 8, 17)
	require.Error(t, err)
	_, err = BitRange(data, 5, 4)
	require.Error(t, err)
	_, err = BitRange(make([]byte, 8), 0, 33)
	require.Error(t, err)
}
