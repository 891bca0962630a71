// Command dnsquery is a small debugging client for sending a single
// query at a resolver or upstream server and printing the decoded
// response (spec Section 4.10).
package main

import (
	"flag"
	"fmt"
	"net"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jroosing/resolverd/internal/dns"
)

func main() {
	var (
		server  = flag.String("server", "127.0.0.1:8053", "DNS server HOST:PORT")
		name    = flag.String("name", "example.com", "Query name")
		qtype   = flag.Int("qtype", int(dns.TypeA), "Query type (numeric, A=1)")
		timeout = flag.Duration("timeout", 2*time.Second, "Timeout")
		quiet   = flag.Bool("quiet", false, "Suppress output (exit status indicates success)")
	)
	flag.Parse()

	resp, err := queryUDP(*server, *name, uint16(*qtype), *timeout)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "dnsquery error: %v\n", err)
		}
		os.Exit(1)
	}
	if *quiet {
		return
	}

	msg, err := dns.DecodeMessage(resp, time.Now())
	if err != nil {
		fmt.Printf("received %d bytes (unparseable: %v)\n", len(resp), err)
		return
	}

	fmt.Printf("id=%d rcode=%d answers=%d authorities=%d additionals=%d\n",
		msg.Header.ID,
		msg.Header.RCode,
		len(msg.Answers),
		len(msg.Authority),
		len(msg.Additional),
	)

	rows := make([]string, 0, len(msg.Answers))
	for _, rr := range msg.Answers {
		rows = append(rows, formatRR(rr))
	}
	sort.Strings(rows)
	for _, s := range rows {
		fmt.Println(s)
	}
}

func queryUDP(server, name string, qtype uint16, timeout time.Duration) ([]byte, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	reqBytes, err := buildQuery(name, qtype)
	if err != nil {
		return nil, err
	}
	if err := c.SetDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	if _, err := c.Write(reqBytes); err != nil {
		return nil, err
	}
	buf := make([]byte, 4096)
	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func buildQuery(name string, qtype uint16) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("name required")
	}
	qname, err := dns.NewName(strings.TrimSuffix(name, "."))
	if err != nil {
		return nil, err
	}

	msg := dns.Message{
		Header: dns.Header{
			ID:      uint16(time.Now().UnixNano()),
			RD:      true,
			QDCount: 1,
		},
		Questions: []dns.Question{{Name: qname, Type: qtype, Class: uint16(dns.ClassIN)}},
	}
	return msg.Encode()
}

func formatRR(rr dns.ResourceRecord) string {
	name := rr.Name.String()
	switch dns.RecordType(rr.Type) {
	case dns.TypeA:
		if a, ok := rr.RData.(dns.ARecordData); ok {
			return fmt.Sprintf("%s %d IN A %s", name, rr.TTL, a.String())
		}
	}
	return fmt.Sprintf("%s %d IN TYPE%d (unparsed)", name, rr.TTL, rr.Type)
}
