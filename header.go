// Package swfheader reads the header of a SWF (ShockWave Flash) container.
// It recognizes the FWS, CWS (zlib) and ZWS (LZMA) signatures, decompresses
// the container on the fly and decodes version, declared file length, frame
// size, frame rate and frame count. The rest of the decompressed file is
// handed back as a Stream positioned at the first tag.
package swfheader

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// prefixLen is the part of the header that is never compressed:
// signature(3) + version(1) + file length(4).
const prefixLen = 8

// maxFrameHeaderLen is the longest possible frame header: a RECT with 31-bit
// fields followed by frame rate and frame count.
const maxFrameHeaderLen = (rectBitsWidth+4*maxRectBits+7)/8 + 4

// Header is the decoded SWF header. It is a plain value and safe to compare.
type Header struct {
	signature  Signature
	version    uint8
	fileLength uint32
	rect       Rect
	rectBits   uint8
	frameRate  uint16 // 8.8 fixed point
	frameCount uint16
}

// Signature returns the compression scheme of the container.
func (h Header) Signature() Signature { return h.signature }

// Version returns the SWF version byte as stored; it is not validated.
func (h Header) Version() uint8 { return h.version }

// FileLength returns the declared uncompressed length of the whole file.
// It is not checked against the actual stream.
func (h Header) FileLength() uint32 { return h.fileLength }

// Rect returns the frame size in twips.
func (h Header) Rect() Rect { return h.rect }

// RectBits returns the field width the frame size was encoded with.
func (h Header) RectBits() uint8 { return h.rectBits }

// DimensionsTwips returns the frame width and height in twips.
func (h Header) DimensionsTwips() (int32, int32) {
	return h.rect.Width(), h.rect.Height()
}

// Dimensions returns the frame width and height in pixels.
func (h Header) Dimensions() (float64, float64) {
	return float64(h.rect.Width()) / TwipsPerPixel, float64(h.rect.Height()) / TwipsPerPixel
}

// FrameRate returns the frame rate in frames per second.
func (h Header) FrameRate() float64 { return float64(h.frameRate) / 256 }

// FrameRateFixed returns the raw 8.8 fixed-point frame rate.
func (h Header) FrameRateFixed() uint16 { return h.frameRate }

// FrameCount returns the declared number of frames.
func (h Header) FrameCount() uint16 { return h.frameCount }

// Stream is the decompressed remainder of a SWF file, positioned right after
// the header. It is not safe for concurrent use.
type Stream struct {
	r    *bufio.Reader
	dec  io.Closer
	file io.Closer
}

func (s *Stream) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *Stream) ReadByte() (byte, error) { return s.r.ReadByte() }

// Close releases the decompressor and, for streams returned by Open, the
// underlying file.
func (s *Stream) Close() error {
	err := s.dec.Close()
	if s.file != nil {
		if ferr := s.file.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

// Decoder decodes SWF headers. Zlib and LZMA select the decompressors used for
// CWS and ZWS files; nil fields fall back to ZlibDecompressor and
// LZMADecompressor. A Decoder keeps no state between calls.
type Decoder struct {
	Zlib Decompressor
	LZMA Decompressor
}

// NewDecoder returns a Decoder using the default decompressors.
func NewDecoder() *Decoder {
	return &Decoder{Zlib: ZlibDecompressor, LZMA: LZMADecompressor}
}

var defaultDecoder = NewDecoder()

// Decode reads a SWF header from r with the default decompressors.
func Decode(r io.Reader) (Header, *Stream, error) {
	return defaultDecoder.Decode(r)
}

// Decode reads the header from r and returns it together with the stream of
// the remaining (decompressed) file. Errors are either ErrNotSWF or *IOError.
func (d *Decoder) Decode(r io.Reader) (Header, *Stream, error) {
	var pre [prefixLen]byte
	if _, err := io.ReadFull(r, pre[:signatureLen]); err != nil {
		return Header{}, nil, ioFailure("read signature", err)
	}
	sig, err := ClassifySignature(pre[:signatureLen])
	if err != nil {
		return Header{}, nil, err
	}
	if _, err := io.ReadFull(r, pre[signatureLen:]); err != nil {
		return Header{}, nil, ioFailure("read file length", shortRead(err))
	}

	h := Header{
		signature:  sig,
		version:    pre[3],
		fileLength: binary.LittleEndian.Uint32(pre[4:]),
	}

	// The declared length is only a hint for the decompressor. A value too
	// small to cover the frame header is treated as unknown.
	size := int64(h.fileLength) - prefixLen
	if size < maxFrameHeaderLen {
		size = -1
	}
	rc, err := d.decompress(sig, r, size)
	if err != nil {
		return Header{}, nil, ioFailure("open "+sig.String()+" stream", err)
	}
	s := &Stream{r: bufio.NewReader(rc), dec: rc}

	if err := h.readFrameHeader(s.r); err != nil {
		_ = rc.Close()
		return Header{}, nil, err
	}
	return h, s, nil
}

// readFrameHeader reads the fields that follow the prefix: RECT, frame rate
// and frame count.
func (h *Header) readFrameHeader(r *bufio.Reader) error {
	rect, n, err := readRect(NewBitReader(r))
	if err != nil {
		return ioFailure("read frame size", shortRead(err))
	}

	var tail [4]byte
	if _, err := io.ReadFull(r, tail[:]); err != nil {
		return ioFailure("read frame rate", shortRead(err))
	}

	h.rect = rect
	h.rectBits = n
	h.frameRate = binary.LittleEndian.Uint16(tail[0:])
	h.frameCount = binary.LittleEndian.Uint16(tail[2:])
	return nil
}

// shortRead maps a clean EOF in the middle of the header to ErrUnexpectedEOF.
func shortRead(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// Open decodes the header of the SWF file at path. The returned Stream owns
// the file and closes it on Close.
func Open(path string) (Header, *Stream, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, ioFailure("open", err)
	}
	h, s, err := Decode(f)
	if err != nil {
		_ = f.Close()
		return Header{}, nil, err
	}
	s.file = f
	return h, s, nil
}
