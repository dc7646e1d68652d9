package swfheader

import (
	"bytes"
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// TwipsPerPixel is the SWF coordinate unit scale.
const TwipsPerPixel = 20

// rectBitsWidth is the size of the RECT bit-count prefix.
const rectBitsWidth = 5

// maxRectBits is the largest field width the 5-bit prefix can express.
const maxRectBits = 1<<rectBitsWidth - 1

// Rect is a SWF bounding rectangle in twips.
type Rect struct {
	XMin, XMax int32
	YMin, YMax int32
}

// Width returns XMax-XMin in twips.
func (r Rect) Width() int32 { return r.XMax - r.XMin }

// Height returns YMax-YMin in twips.
func (r Rect) Height() int32 { return r.YMax - r.YMin }

// readRect decodes a RECT and leaves br byte-aligned. It also returns the
// field width that was used so the record can be re-encoded verbatim.
func readRect(br *BitReader) (Rect, uint8, error) {
	nb, err := br.ReadBits(rectBitsWidth)
	if err != nil {
		return Rect{}, 0, err
	}
	n := uint8(nb)

	var fields [4]int32
	for i := range fields {
		if fields[i], err = br.ReadSignedBits(n); err != nil {
			return Rect{}, 0, err
		}
	}
	br.Align()

	return Rect{XMin: fields[0], XMax: fields[1], YMin: fields[2], YMax: fields[3]}, n, nil
}

// MinRectBits returns the smallest field width that holds every bound of r
// as a signed value.
func MinRectBits(r Rect) uint8 {
	var n uint8
	for _, v := range [...]int32{r.XMin, r.XMax, r.YMin, r.YMax} {
		n = max(n, signedBitLen(v))
	}
	return n
}

func signedBitLen(v int32) uint8 {
	if v == 0 {
		return 0
	}
	if v < 0 {
		v = ^v
	}
	return uint8(bits.Len32(uint32(v))) + 1
}

// EncodeRect writes r as a RECT record with fields nbits wide, padded to a
// byte boundary.
func EncodeRect(w io.Writer, r Rect, nbits uint8) error {
	if nbits > maxRectBits {
		return errors.Errorf("rect: field width %d exceeds %d bits", nbits, maxRectBits)
	}
	if need := MinRectBits(r); need > nbits {
		return errors.Errorf("rect: bounds need %d bits, have %d", need, nbits)
	}

	var buf bytes.Buffer
	bw := newBitWriter(&buf)
	bw.writeBits(uint32(nbits), rectBitsWidth)
	for _, v := range [...]int32{r.XMin, r.XMax, r.YMin, r.YMax} {
		bw.writeBits(uint32(v), nbits)
	}
	bw.flush()

	_, err := w.Write(buf.Bytes())
	return err
}
