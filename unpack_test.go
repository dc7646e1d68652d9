package swfheader

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnpack_MatchesUncompressed(t *testing.T) {
	f := defaultFixture()
	want := f.build(t, Uncompressed)

	for _, sig := range []Signature{Uncompressed, ZlibCompressed, LZMACompressed} {
		t.Run(sig.String(), func(t *testing.T) {
			h, s, err := Decode(bytes.NewReader(f.build(t, sig)))
			require.NoError(t, err)
			defer s.Close()

			var out bytes.Buffer
			n, err := Unpack(&out, h, s)
			require.NoError(t, err)
			require.Equal(t, int64(len(want)), n)
			require.Equal(t, want, out.Bytes())

			// The unpacked copy decodes to the same header, minus compression.
			h2, s2, err := Decode(&out)
			require.NoError(t, err)
			defer s2.Close()
			require.Equal(t, Uncompressed, h2.Signature())
			require.Equal(t, h.Rect(), h2.Rect())
			require.Equal(t, h.FileLength(), h2.FileLength())
			require.Equal(t, h.FrameRateFixed(), h2.FrameRateFixed())
			require.Equal(t, h.FrameCount(), h2.FrameCount())
		})
	}
}

func TestAppendUncompressed_KeepsRectWidth(t *testing.T) {
	f := defaultFixture()
	f.nbits = 20
	f.body = nil
	data := f.build(t, Uncompressed)

	h, s, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.Equal(t, uint8(20), h.RectBits())

	got, err := h.AppendUncompressed([]byte("prefix"))
	require.NoError(t, err)
	require.Equal(t, append([]byte("prefix"), data...), got)
}
