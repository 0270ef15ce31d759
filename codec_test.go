package main

import (
	"net"
	"testing"
)

func TestParseGreetingWellFormed(t *testing.T) {
	buf := []byte{0x05, 0x02, 0x00, 0x01}
	g, err := ParseGreeting(buf, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Version != 0x05 || g.NumMethods != 2 {
		t.Fatalf("unexpected greeting: %+v", g)
	}
	if len(g.Methods) != 2 || g.Methods[0] != 0x00 || g.Methods[1] != 0x01 {
		t.Fatalf("unexpected methods: %v", g.Methods)
	}
}

func TestParseGreetingTruncated(t *testing.T) {
	buf := []byte{0x05, 0x02, 0x00} // claims 2 methods, only 1 present
	if _, err := ParseGreeting(buf, len(buf)); err == nil {
		t.Fatal("expected error for truncated greeting")
	}
}

func TestEmitMethodSelection(t *testing.T) {
	var buf [2]byte
	n := EmitMethodSelection(buf[:])
	if n != 2 {
		t.Fatalf("expected length 2, got %d", n)
	}
	if buf[0] != 0x05 || buf[1] != 0x00 {
		t.Fatalf("unexpected method selection bytes: %v", buf)
	}
}

func TestParseRequestIPv4(t *testing.T) {
	buf := []byte{0x05, 0x01, 0x00, 0x01, 127, 0, 0, 1, 0x00, 0x50}
	req, err := ParseRequest(buf, len(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Destination != "127.0.0.1" || req.Port != 80 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestParseRequestDomain(t *testing.T) {
	host := "localhost"
	buf := append([]byte{0x05, 0x01, 0x00, 0x03, byte(len(host))}, host...)
	buf = append(buf, 0x00, 0x50)
	req, err := ParseRequest(buf, len(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Destination != host || req.Port != 80 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestParseRequestIPv6(t *testing.T) {
	ip := net.ParseIP("2001:db8::1").To16()
	buf := append([]byte{0x05, 0x01, 0x00, 0x04}, ip...)
	buf = append(buf, 0x01, 0xbb)
	req, err := ParseRequest(buf, len(buf))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Port != 443 {
		t.Fatalf("unexpected port: %d", req.Port)
	}
}

func TestParseRequestMalformed(t *testing.T) {
	buf := []byte{0x05, 0x01, 0x00, 0x09} // unknown address type
	if _, err := ParseRequest(buf, len(buf)); err == nil {
		t.Fatal("expected error for unknown address type")
	}
}

func TestEmitReplyLengths(t *testing.T) {
	var buf [22]byte

	n := EmitReply(buf[:], replySucceeded, net.ParseIP("10.0.0.5"), 1080)
	if n != 10 {
		t.Fatalf("expected IPv4 reply length 10, got %d", n)
	}

	n = EmitReply(buf[:], replySucceeded, net.ParseIP("2001:db8::1"), 1080)
	if n != 22 {
		t.Fatalf("expected IPv6 reply length 22, got %d", n)
	}
}

func TestPortRoundTrip(t *testing.T) {
	for p := 0; p <= 65535; p += 1013 { // sample across the full range
		hi, lo := PortToBytes(uint16(p))
		got, err := BytesToPort([]byte{hi, lo})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if int(got) != p {
			t.Fatalf("round trip mismatch: want %d got %d", p, got)
		}
	}
}

func TestBytesToPortRejectsWrongLength(t *testing.T) {
	if _, err := BytesToPort([]byte{0x01}); err == nil {
		t.Fatal("expected error for 1-byte input")
	}
	if _, err := BytesToPort([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected error for 3-byte input")
	}
}

func TestSliceToUint32(t *testing.T) {
	v, err := SliceToUint32([]byte{0x01, 0x02, 0x03, 0x04})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 0x01020304 {
		t.Fatalf("unexpected value: %#x", v)
	}
	if _, err := SliceToUint32([]byte{0x01, 0x02, 0x03}); err == nil {
		t.Fatal("expected error for 3-byte input")
	}
}

func TestSliceToUint128(t *testing.T) {
	data := make([]byte, 16)
	data[15] = 0x01
	hi, lo, err := SliceToUint128(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hi != 0 || lo != 1 {
		t.Fatalf("unexpected value: hi=%#x lo=%#x", hi, lo)
	}
	if _, _, err := SliceToUint128(data[:15]); err == nil {
		t.Fatal("expected error for 15-byte input")
	}
}
