package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeQuestion(t *testing.T) {
	name, err := NewName("example.com")
	require.NoError(t, err)
	q := Question{Name: name, Type: uint16(TypeA), Class: uint16(ClassIN)}

	table := make(CompressionTable)
	out, err := EncodeQuestion(q, table, nil)
	require.NoError(t, err)

	off := 0
	got, err := DecodeQuestion(out, &off)
	require.NoError(t, err)
	assert.True(t, q.Name.Equal(got.Name))
	assert.Equal(t, q.Type, got.Type)
	assert.Equal(t, q.Class, got.Class)
	assert.Equal(t, len(out), off)
}

func TestQuestionKeyDistinguishesNameAndType(t *testing.T) {
	a, _ := NewName("example.com")
	b, _ := NewName("example.org")

	q1 := Question{Name: a, Type: uint16(TypeA), Class: uint16(ClassIN)}
	q2 := Question{Name: a, Type: uint16(TypeOPT), Class: uint16(ClassIN)}
	q3 := Question{Name: b, Type: uint16(TypeA), Class: uint16(ClassIN)}

	assert.NotEqual(t, q1.Key(), q2.Key())
	assert.NotEqual(t, q1.Key(), q3.Key())

	q1Again := Question{Name: a, Type: uint16(TypeA), Class: uint16(ClassIN)}
	assert.Equal(t, q1.Key(), q1Again.Key())
}

func TestDecodeQuestionTruncated(t *testing.T) {
	msg := []byte{0} // root name, then nothing
	off := 0
	_, err := DecodeQuestion(msg, &off)
	require.ErrorIs(t, err, ErrMalformed)
}
