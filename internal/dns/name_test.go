package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNameAndString(t *testing.T) {
	n, err := NewName("www.example.com")
	require.NoError(t, err)
	assert.Equal(t, Name{"www", "example", "com"}, n)
	assert.Equal(t, "www.example.com", n.String())
}

func TestNewNameRoot(t *testing.T) {
	n, err := NewName("")
	require.NoError(t, err)
	assert.Empty(t, n)
	assert.Equal(t, rootLabel, n.String())

	n2, err := NewName("ROOT")
	require.NoError(t, err)
	assert.Empty(t, n2)
}

func TestNewNameRejectsOverlongLabel(t *testing.T) {
	overlong := make([]byte, 64)
	for i := range overlong {
		overlong[i] = 'a'
	}
	_, err := NewName(string(overlong) + ".com")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestNameEqual(t *testing.T) {
	a, _ := NewName("example.com")
	b, _ := NewName("example.com")
	c, _ := NewName("Example.com")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c), "names are compared byte-exact, case matters")
}

func TestEncodeDecodeNameNoCompression(t *testing.T) {
	n, err := NewName("example.com")
	require.NoError(t, err)

	table := make(CompressionTable)
	out, err := EncodeName(n, table, nil)
	require.NoError(t, err)

	off := 0
	got, err := DecodeName(out, &off)
	require.NoError(t, err)
	assert.True(t, n.Equal(got))
	assert.Equal(t, len(out), off)
}

func TestEncodeNameRoot(t *testing.T) {
	table := make(CompressionTable)
	out, err := EncodeName(Name{}, table, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, out)
	assert.Empty(t, table, "root is never inserted into the compression table")
}

func TestEncodeNameCompressesRepeatedSuffix(t *testing.T) {
	first, _ := NewName("www.example.com")
	second, _ := NewName("mail.example.com")

	table := make(CompressionTable)
	out, err := EncodeName(first, table, nil)
	require.NoError(t, err)
	firstLen := len(out)

	out, err = EncodeName(second, table, out)
	require.NoError(t, err)

	// "mail" label (1+4 bytes) followed by a 2-byte pointer back into the
	// first name's "example.com" tail, not another full encoding.
	assert.Equal(t, firstLen+1+4+2, len(out))
	assert.Equal(t, byte(0xC0), out[firstLen+5]&0xC0)
}

func TestDecodeNameFollowsPointer(t *testing.T) {
	// "example.com" at offset 0, then a second name at offset 13 that is
	// purely a pointer back to offset 0.
	base, _ := NewName("example.com")
	table := make(CompressionTable)
	msg, err := EncodeName(base, table, nil)
	require.NoError(t, err)
	baseLen := len(msg)

	pointerOff := baseLen
	msg = append(msg, byte(0xC0), 0x00)

	off := pointerOff
	got, err := DecodeName(msg, &off)
	require.NoError(t, err)
	assert.True(t, base.Equal(got))
	assert.Equal(t, pointerOff+2, off, "cursor advances only past the 2-byte pointer")
}

func TestDecodeNameRejectsPointerCycle(t *testing.T) {
	msg := []byte{0xC0, 0x00} // points to itself
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeNameRejectsTruncatedLabel(t *testing.T) {
	msg := []byte{5, 'a', 'b'} // claims 5 bytes, only 2 present
	off := 0
	_, err := DecodeName(msg, &off)
	require.ErrorIs(t, err, ErrMalformed)
}
