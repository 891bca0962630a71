package dns

import (
	"encoding/binary"
	"fmt"
	"time"
)

// RData is the parsed resource-record payload. It is one of ARecordData
// (rtype=1, rclass=1, spec Section 3) or OpaqueData (every other
// type/class pairing, carried as an uninterpreted byte string).
type RData interface {
	// Encode returns the wire-format rdata bytes.
	Encode() []byte
}

// ARecordData is the RDATA of an A/IN record: four octets, rendered
// textually as a dotted quad.
type ARecordData struct {
	Addr [4]byte
}

// Encode returns the four raw address octets.
func (a ARecordData) Encode() []byte {
	b := make([]byte, 4)
	copy(b, a.Addr[:])
	return b
}

// String renders the address as a dotted quad, e.g. "93.184.216.34".
func (a ARecordData) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a.Addr[0], a.Addr[1], a.Addr[2], a.Addr[3])
}

// ParseARecordData parses a dotted-quad string ("a.b.c.d") back into the
// four address octets.
func ParseARecordData(dottedQuad string) (ARecordData, error) {
	var a, b, c, d int
	n, err := fmt.Sscanf(dottedQuad, "%d.%d.%d.%d", &a, &b, &c, &d)
	if err != nil || n != 4 {
		return ARecordData{}, fmt.Errorf("%w: invalid dotted-quad address %q", ErrMalformed, dottedQuad)
	}
	for _, octet := range [4]int{a, b, c, d} {
		if octet < 0 || octet > 255 {
			return ARecordData{}, fmt.Errorf("%w: address octet out of range in %q", ErrMalformed, dottedQuad)
		}
	}
	return ARecordData{Addr: [4]byte{byte(a), byte(b), byte(c), byte(d)}}, nil
}

// OpaqueData is raw, uninterpreted RDATA for any record whose type/class
// is not A/IN.
type OpaqueData []byte

// Encode returns the raw bytes unchanged.
func (o OpaqueData) Encode() []byte {
	return []byte(o)
}

// ResourceRecord is a single decoded or synthesized resource record
// (spec Section 3), stamped with the wall-clock time it was created so
// the cache can later judge its freshness.
type ResourceRecord struct {
	Name      Name
	Type      uint16
	Class     uint16
	TTL       uint32
	RData     RData
	CreatedAt time.Time
}

// Fresh reports whether the record is still valid at time t: strictly
// before created_at + ttl_seconds (spec Section 3).
func (r ResourceRecord) Fresh(t time.Time) bool {
	return t.Before(r.CreatedAt.Add(time.Duration(r.TTL) * time.Second))
}

// DecodeRecord decodes a resource record at *off, advancing past it.
// now stamps the record's CreatedAt.
func DecodeRecord(msg []byte, off *int, now time.Time) (ResourceRecord, error) {
	name, err := DecodeName(msg, off)
	if err != nil {
		return ResourceRecord{}, err
	}
	if *off+10 > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF decoding record header", ErrMalformed)
	}
	rtype := binary.BigEndian.Uint16(msg[*off : *off+2])
	rclass := binary.BigEndian.Uint16(msg[*off+2 : *off+4])
	ttl := binary.BigEndian.Uint32(msg[*off+4 : *off+8])
	rdlength := int(binary.BigEndian.Uint16(msg[*off+8 : *off+10]))
	*off += 10

	if *off+rdlength > len(msg) {
		return ResourceRecord{}, fmt.Errorf("%w: unexpected EOF decoding rdata", ErrMalformed)
	}

	var rdata RData
	if rtype == uint16(TypeA) && rclass == uint16(ClassIN) {
		if rdlength != 4 {
			return ResourceRecord{}, fmt.Errorf("%w: A/IN record rdlength must be 4, got %d", ErrMalformed, rdlength)
		}
		var addr [4]byte
		copy(addr[:], msg[*off:*off+4])
		rdata = ARecordData{Addr: addr}
	} else {
		raw := make([]byte, rdlength)
		copy(raw, msg[*off:*off+rdlength])
		rdata = OpaqueData(raw)
	}
	*off += rdlength

	return ResourceRecord{
		Name:      name,
		Type:      rtype,
		Class:     rclass,
		TTL:       ttl,
		RData:     rdata,
		CreatedAt: now,
	}, nil
}

// EncodeRecord appends the wire-format encoding of r to out, sharing
// table with every other name written into the enclosing message.
func EncodeRecord(r ResourceRecord, table CompressionTable, out []byte) ([]byte, error) {
	out, err := EncodeName(r.Name, table, out)
	if err != nil {
		return nil, err
	}

	rdata := r.RData.Encode()
	if len(rdata) > 0xFFFF {
		return nil, fmt.Errorf("%w: rdata too long (%d bytes)", ErrMalformed, len(rdata))
	}

	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], r.Type)
	binary.BigEndian.PutUint16(fixed[2:4], r.Class)
	binary.BigEndian.PutUint32(fixed[4:8], r.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], uint16(len(rdata)))

	out = append(out, fixed...)
	out = append(out, rdata...)
	return out, nil
}
