package swfheader

import "fmt"

// Signature identifies the compression scheme of a SWF container.
type Signature uint8

const (
	// Uncompressed is the "FWS" signature.
	Uncompressed Signature = iota
	// ZlibCompressed is the "CWS" signature; everything after byte 8 is a zlib stream.
	ZlibCompressed
	// LZMACompressed is the "ZWS" signature; everything after byte 8 is LZMA data.
	LZMACompressed
)

const signatureLen = 3

var signatureMagic = [...][signatureLen]byte{
	Uncompressed:   {'F', 'W', 'S'},
	ZlibCompressed: {'C', 'W', 'S'},
	LZMACompressed: {'Z', 'W', 'S'},
}

// ClassifySignature matches the first three bytes of a container against the
// known signatures. Anything else is ErrNotSWF.
func ClassifySignature(b []byte) (Signature, error) {
	if len(b) < signatureLen {
		return 0, ErrNotSWF
	}
	var m [signatureLen]byte
	copy(m[:], b)
	for sig, magic := range signatureMagic {
		if m == magic {
			return Signature(sig), nil
		}
	}
	return 0, ErrNotSWF
}

// Magic returns the three signature bytes.
func (s Signature) Magic() [signatureLen]byte {
	if int(s) >= len(signatureMagic) {
		return [signatureLen]byte{}
	}
	return signatureMagic[s]
}

func (s Signature) String() string {
	switch s {
	case Uncompressed:
		return "FWS"
	case ZlibCompressed:
		return "CWS"
	case LZMACompressed:
		return "ZWS"
	}
	return fmt.Sprintf("Signature(%d)", uint8(s))
}
