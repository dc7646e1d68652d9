package swfheader

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
	"github.com/ulikunitz/xz/lzma"
)

// A Decompressor wraps the compressed remainder of a SWF container (everything
// after the 8-byte prefix) and returns the decompressed bytes. size is the
// declared length of the decompressed remainder, or -1 if unknown.
// Decompression must be lazy: the returned reader is read well past the header.
type Decompressor func(r io.Reader, size int64) (io.ReadCloser, error)

// ZlibDecompressor handles CWS containers.
func ZlibDecompressor(r io.Reader, _ int64) (io.ReadCloser, error) {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "zlib header")
	}
	return zr, nil
}

// lzmaPropsLen is the LZMA properties block: props byte + LE32 dictionary size.
const lzmaPropsLen = 5

// LZMADecompressor handles ZWS containers. SWF stores a 4-byte compressed
// length and the 5 property bytes, but not the 8-byte uncompressed size of a
// classic .lzma header, so the header is rebuilt before decoding.
func LZMADecompressor(r io.Reader, size int64) (io.ReadCloser, error) {
	var pre [4 + lzmaPropsLen]byte
	if _, err := io.ReadFull(r, pre[:]); err != nil {
		return nil, errors.Wrap(err, "lzma header")
	}

	var hdr [lzmaPropsLen + 8]byte
	copy(hdr[:], pre[4:])
	if size < 0 {
		binary.LittleEndian.PutUint64(hdr[lzmaPropsLen:], ^uint64(0))
	} else {
		binary.LittleEndian.PutUint64(hdr[lzmaPropsLen:], uint64(size))
	}

	lr, err := lzma.NewReader(io.MultiReader(bytes.NewReader(hdr[:]), r))
	if err != nil {
		return nil, errors.Wrap(err, "lzma header")
	}
	return io.NopCloser(&lzmaStream{r: lr}), nil
}

// lzmaStream holds back an LZMA decoding error until every byte decoded
// before it has been read. The lzma reader reports a size mismatch or a
// missing end marker while decoded data is still buffered, so without this a
// wrong declared length would fail the header instead of the end of the body.
type lzmaStream struct {
	r       io.Reader
	pending error
}

func (s *lzmaStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := s.r.Read(p)
		switch {
		case err == nil:
			return n, nil
		case err == io.EOF:
			if n > 0 {
				return n, nil
			}
			if s.pending != nil {
				return 0, s.pending
			}
			return 0, io.EOF
		case s.pending != nil:
			return n, err
		}
		s.pending = err
		if n > 0 {
			return n, nil
		}
	}
}

// decompress builds the shim for sig over r. Uncompressed data is passed
// through unchanged.
func (d *Decoder) decompress(sig Signature, r io.Reader, size int64) (io.ReadCloser, error) {
	var fn Decompressor
	switch sig {
	case Uncompressed:
		return io.NopCloser(r), nil
	case ZlibCompressed:
		fn = d.Zlib
		if fn == nil {
			fn = ZlibDecompressor
		}
	case LZMACompressed:
		fn = d.LZMA
		if fn == nil {
			fn = LZMADecompressor
		}
	default:
		return nil, errors.Errorf("unknown signature %v", sig)
	}
	return fn(r, size)
}
