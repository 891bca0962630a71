package dns

// BuildStandardAdditionalRecord returns the canonical OPT-like
// pseudo-record the resolver attaches to every response's additional
// section: name=ROOT, type=41 (OPT), class=512, ttl=0, empty RDATA
// (spec Section 4.3). It is a fixed constant — this resolver emits no
// real EDNS options and negotiates no EDNS buffer size.
func BuildStandardAdditionalRecord() ResourceRecord {
	return ResourceRecord{
		Name:  Name{},
		Type:  uint16(TypeOPT),
		Class: 512,
		TTL:   0,
		RData: OpaqueData{},
	}
}
