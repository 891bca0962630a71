package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderEncode(t *testing.T) {
	h := Header{
		ID:      0x1234,
		QR:      true,
		RD:      true,
		RA:      true,
		AD:      true,
		RCode:   0,
		QDCount: 1,
		ANCount: 2,
		NSCount: 3,
		ARCount: 4,
	}

	b := h.Encode()
	require.Len(t, b, HeaderSize)

	assert.Equal(t, byte(0x12), b[0])
	assert.Equal(t, byte(0x34), b[1])
	assert.Equal(t, byte(0x81), b[2], "QR + RD set")
	assert.Equal(t, byte(0xA0), b[3], "RA + AD set")
	assert.Equal(t, []byte{0, 1}, b[4:6])
	assert.Equal(t, []byte{0, 2}, b[6:8])
	assert.Equal(t, []byte{0, 3}, b[8:10])
	assert.Equal(t, []byte{0, 4}, b[10:12])
}

func TestDecodeHeader(t *testing.T) {
	msg := []byte{
		0x12, 0x34,
		0x81, 0xA0,
		0x00, 0x01,
		0x00, 0x02,
		0x00, 0x03,
		0x00, 0x04,
	}

	off := 0
	h, err := DecodeHeader(msg, &off)
	require.NoError(t, err)

	assert.Equal(t, 12, off)
	assert.Equal(t, uint16(0x1234), h.ID)
	assert.True(t, h.QR)
	assert.True(t, h.RD)
	assert.True(t, h.RA)
	assert.True(t, h.AD)
	assert.False(t, h.AA)
	assert.Equal(t, uint8(0), h.RCode)
	assert.Equal(t, uint16(1), h.QDCount)
	assert.Equal(t, uint16(2), h.ANCount)
	assert.Equal(t, uint16(3), h.NSCount)
	assert.Equal(t, uint16(4), h.ARCount)
}

func TestDecodeHeaderTruncated(t *testing.T) {
	msg := []byte{0x12, 0x34, 0x81}
	off := 0
	_, err := DecodeHeader(msg, &off)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestHeaderRoundTrip(t *testing.T) {
	h := Header{ID: 0xBEEF, QR: true, Opcode: 0, RD: true, RA: true, RCode: uint8(RCodeNXDomain), QDCount: 1}
	b := h.Encode()
	off := 0
	got, err := DecodeHeader(b, &off)
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestBuildResponseHeader(t *testing.T) {
	req := Header{ID: 0x4242, QR: false, RD: true, QDCount: 1}
	resp := BuildResponseHeader(req)
	assert.Equal(t, req.ID, resp.ID)
	assert.True(t, resp.QR)
	assert.Equal(t, req.QDCount, resp.QDCount)
	assert.Equal(t, uint16(1), resp.ANCount)
	assert.Equal(t, uint16(1), resp.ARCount)
	assert.Equal(t, uint16(0), resp.NSCount)
}
