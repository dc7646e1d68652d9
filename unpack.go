package swfheader

import (
	"bytes"
	"encoding/binary"
	"io"
)

// AppendUncompressed appends the header as it is laid out in an FWS file,
// keeping the original RECT field width and declared file length.
func (h Header) AppendUncompressed(dst []byte) ([]byte, error) {
	magic := Uncompressed.Magic()
	dst = append(dst, magic[:]...)
	dst = append(dst, h.version)
	dst = binary.LittleEndian.AppendUint32(dst, h.fileLength)

	var rect bytes.Buffer
	if err := EncodeRect(&rect, h.rect, h.rectBits); err != nil {
		return dst, err
	}
	dst = append(dst, rect.Bytes()...)

	dst = binary.LittleEndian.AppendUint16(dst, h.frameRate)
	dst = binary.LittleEndian.AppendUint16(dst, h.frameCount)
	return dst, nil
}

// Unpack writes an uncompressed FWS copy of a file: the header h followed by
// everything left in body.
func Unpack(w io.Writer, h Header, body io.Reader) (int64, error) {
	hdr, err := h.AppendUncompressed(nil)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(hdr)
	if err != nil {
		return int64(n), err
	}
	m, err := io.Copy(w, body)
	return int64(n) + m, err
}
