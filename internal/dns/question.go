package dns

import (
	"encoding/binary"
	"fmt"
)

// Question is a single DNS question-section entry (spec Section 3):
// the name being asked about, the record type (QTYPE) and class
// (QCLASS) requested. Questions are used as cache keys, so equality and
// hashing are structural over all three fields — Name is slice-backed
// and so not comparable, which Go map keys must be; QuestionKey (below)
// is what the cache actually indexes on.
type Question struct {
	Name  Name
	Type  uint16
	Class uint16
}

// QuestionKey is the comparable (map-key-safe) projection of a Question,
// used by internal/cache since a slice-valued Name cannot be a map key
// directly.
type QuestionKey struct {
	Name  string
	Type  uint16
	Class uint16
}

// Key returns the comparable cache key for q.
func (q Question) Key() QuestionKey {
	return QuestionKey{Name: q.Name.String(), Type: q.Type, Class: q.Class}
}

// DecodeQuestion decodes a question at *off, advancing past it.
func DecodeQuestion(msg []byte, off *int) (Question, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return Question{}, err
	}
	if *off+4 > len(msg) {
		return Question{}, fmt.Errorf("%w: unexpected EOF decoding question", ErrMalformed)
	}
	q := Question{
		Name:  name,
		Type:  binary.BigEndian.Uint16(msg[*off : *off+2]),
		Class: binary.BigEndian.Uint16(msg[*off+2 : *off+4]),
	}
	*off += 4
	return q, nil
}

// EncodeQuestion appends the wire-format encoding of q to out, sharing
// table with every other name written into the enclosing message.
func EncodeQuestion(q Question, table CompressionTable, out []byte) ([]byte, error) {
	out, err := EncodeName(q.Name, table, out)
	if err != nil {
		return nil, err
	}
	tail := make([]byte, 4)
	binary.BigEndian.PutUint16(tail[0:2], q.Type)
	binary.BigEndian.PutUint16(tail[2:4], q.Class)
	return append(out, tail...), nil
}
