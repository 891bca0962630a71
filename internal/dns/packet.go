package dns

import (
	"fmt"
	"time"
)

// Message is a complete decoded (or synthesized) DNS message (spec
// Section 3). RawBytes is the original datagram a decoded message was
// built from; it is what name decompression indexes into when a pointer
// is followed, and is retained for the lifetime of the Message even
// though individual fields have already been extracted from it.
type Message struct {
	RawBytes []byte

	Header     Header
	Questions  []Question
	Answers    []ResourceRecord
	Authority  []ResourceRecord
	Additional []ResourceRecord
}

// DecodeMessage decodes a full DNS message from raw: the header, then
// qdcount questions, ancount answers, nscount authority records, and
// arcount additional records, in that fixed order (spec Section 4.4).
// now stamps CreatedAt on every decoded record.
func DecodeMessage(raw []byte, now time.Time) (Message, error) {
	off := 0
	header, err := DecodeHeader(raw, &off)
	if err != nil {
		return Message{}, err
	}

	questions := make([]Question, 0, header.QDCount)
	for i := uint16(0); i < header.QDCount; i++ {
		q, err := DecodeQuestion(raw, &off)
		if err != nil {
			return Message{}, fmt.Errorf("question %d: %w", i, err)
		}
		questions = append(questions, q)
	}

	answers, err := decodeRecords(raw, &off, header.ANCount, now)
	if err != nil {
		return Message{}, fmt.Errorf("answer section: %w", err)
	}
	authority, err := decodeRecords(raw, &off, header.NSCount, now)
	if err != nil {
		return Message{}, fmt.Errorf("authority section: %w", err)
	}
	additional, err := decodeRecords(raw, &off, header.ARCount, now)
	if err != nil {
		return Message{}, fmt.Errorf("additional section: %w", err)
	}

	return Message{
		RawBytes:   raw,
		Header:     header,
		Questions:  questions,
		Answers:    answers,
		Authority:  authority,
		Additional: additional,
	}, nil
}

func decodeRecords(raw []byte, off *int, count uint16, now time.Time) ([]ResourceRecord, error) {
	records := make([]ResourceRecord, 0, count)
	for i := uint16(0); i < count; i++ {
		rr, err := DecodeRecord(raw, off, now)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rr)
	}
	return records, nil
}

// Encode serializes the message: header, then questions, answers,
// authority, and additional records in that order, sharing a single
// compression table across every name written (spec Section 4.4).
// Section counts in the encoded header are recomputed from the actual
// slice lengths, keeping the header-count/list-length invariant of
// spec Section 3 true by construction.
func (m Message) Encode() ([]byte, error) {
	h := m.Header
	h.QDCount = uint16(len(m.Questions))
	h.ANCount = uint16(len(m.Answers))
	h.NSCount = uint16(len(m.Authority))
	h.ARCount = uint16(len(m.Additional))

	out := make([]byte, 0, HeaderSize+64)
	out = append(out, h.Encode()...)

	table := make(CompressionTable)

	var err error
	for _, q := range m.Questions {
		if out, err = EncodeQuestion(q, table, out); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Answers {
		if out, err = EncodeRecord(rr, table, out); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Authority {
		if out, err = EncodeRecord(rr, table, out); err != nil {
			return nil, err
		}
	}
	for _, rr := range m.Additional {
		if out, err = EncodeRecord(rr, table, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BuildResponse constructs the resolver's response message to request,
// carrying answers as the sole answer section, the request's question
// list copied by reference, an empty authority section, and exactly one
// standard OPT pseudo-record as the additional section (spec Section
// 4.4). The response's wire bytes are computed eagerly and stored on
// RawBytes so callers never need to re-encode it.
func BuildResponse(request Message, answers []ResourceRecord) (Message, error) {
	resp := Message{
		Header:     BuildResponseHeader(request.Header),
		Questions:  request.Questions,
		Answers:    answers,
		Authority:  nil,
		Additional: []ResourceRecord{BuildStandardAdditionalRecord()},
	}
	raw, err := resp.Encode()
	if err != nil {
		return Message{}, err
	}
	resp.RawBytes = raw
	return resp, nil
}
