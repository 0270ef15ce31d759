package main

import (
	"log"
	"math/rand/v2"
	"net"
	"strconv"
	"time"
)

const (
	handshakeTimeout = 10 * time.Second
	dialTimeout      = 15 * time.Second
)

var connIDAlphabet = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// newConnID returns a 4-character alphanumeric tag used only in logs, per
// spec.md §4.1. It need not be globally unique; collisions only affect log
// readability, so math/rand/v2 (not crypto/rand) is the grounded, no
// stronger-than-needed choice.
func newConnID() string {
	id := make([]byte, 4)
	for i := range id {
		id[i] = connIDAlphabet[rand.IntN(len(connIDAlphabet))]
	}
	return string(id)
}

// handleConnection runs the GREETING -> REQUEST -> CONNECT -> RELAY -> END
// state machine of spec.md §4.1 for one accepted socket. It never returns a
// value to the caller; failures are logged only. It releases the leased
// buffer and both sockets on every exit path, and is the direct
// generalization of the teacher's handleConnection in proxy.go.
func handleConnection(client net.Conn, cfg *Config, buf *LeasedBuffer, m *Metrics) {
	id := newConnID()
	defer buf.Release()
	defer client.Close()

	client.SetDeadline(time.Now().Add(handshakeTimeout))

	// Greeting and Request each fit within one direction's share of the
	// leased buffer (spec.md §3 invariant); the pump later splits the same
	// backing array in half again for the relay phase.
	full := buf.Bytes()
	scratch := full[:len(full)/2]

	// --- GREETING ---
	n, err := client.Read(scratch)
	if err != nil || n == 0 {
		return
	}
	greeting, err := ParseGreeting(scratch, n)
	if err != nil || greeting.Version != socks5Version {
		log.Printf("[socks5] [%s] bad greeting: %v", id, err)
		return
	}

	selLen := EmitMethodSelection(scratch)
	if _, err := client.Write(scratch[:selLen]); err != nil {
		return
	}

	// --- REQUEST ---
	n, err = client.Read(scratch)
	if err != nil || n == 0 {
		return
	}
	req, err := ParseRequest(scratch, n)
	if err != nil {
		log.Printf("[socks5] [%s] bad request: %v", id, err)
		return
	}

	switch req.Command {
	case cmdConnect:
		// fall through to CONNECT below
	case cmdBind:
		log.Printf("[socks5] [%s] BIND not supported", id)
		return
	case cmdUDPAssociate:
		log.Printf("[socks5] [%s] UDP ASSOCIATE not supported", id)
		return
	default:
		log.Printf("[socks5] [%s] unknown command 0x%02x", id, req.Command)
		return
	}

	// --- CONNECT ---
	egress, replyCode := dialDestination(id, cfg, req)
	if egress == nil {
		n := EmitReply(scratch, replyCode, net.IPv4zero, 0)
		client.Write(scratch[:n])
		if m != nil {
			m.DialFailures.WithLabelValues(strconv.Itoa(int(replyCode))).Inc()
		}
		return
	}
	defer egress.Close()

	boundAddr := egress.LocalAddr().(*net.TCPAddr)
	n = EmitReply(scratch, replySucceeded, boundAddr.IP, uint16(boundAddr.Port))
	if _, err := client.Write(scratch[:n]); err != nil {
		return
	}

	log.Printf("[socks5] [%s] %s => %s => %s => %s", id,
		client.RemoteAddr(), client.LocalAddr(), egress.LocalAddr(), egress.RemoteAddr())

	// --- RELAY ---
	client.SetDeadline(time.Time{})
	egress.SetDeadline(time.Time{})

	if m != nil {
		m.ConnectionsActive.Inc()
		defer m.ConnectionsActive.Dec()
	}

	runPump(id, client, egress, full, time.Duration(cfg.ReadTimeoutMs)*time.Millisecond, m)

	if tc, ok := client.(*net.TCPConn); ok {
		tc.CloseWrite()
	}
	if tc, ok := egress.(*net.TCPConn); ok {
		tc.CloseWrite()
	}

	log.Printf("[socks5] [%s] end", id)
}

// dialDestination resolves and dials the requested destination, binding the
// outbound socket to cfg.EndpointIP per spec.md §4.1's CONNECT state. It
// returns the dialed connection and replySucceeded on success, or a nil
// connection and a mapped SOCKS5 reply code on failure.
func dialDestination(id string, cfg *Config, req Request) (net.Conn, byte) {
	host := req.Destination

	if req.AddressType == atypDomain {
		ips, err := net.LookupIP(host)
		if err != nil {
			log.Printf("[socks5] [%s] dns lookup failed for %q: %v", id, host, err)
			return nil, replyHostUnreachable
		}
		var v4 net.IP
		for _, ip := range ips {
			if a := ip.To4(); a != nil {
				v4 = a
				break
			}
		}
		if v4 == nil {
			log.Printf("[socks5] [%s] no A record for %q", id, host)
			return nil, replyAddressTypeNotSupported
		}
		host = v4.String()
	} else if req.AddressType == atypIPv6 {
		// Egress is IPv4-only in this version (spec.md §1/§9).
		return nil, replyAddressTypeNotSupported
	}

	target := net.JoinHostPort(host, strconv.Itoa(int(req.Port)))

	dialer := net.Dialer{
		LocalAddr: &net.TCPAddr{IP: cfg.EndpointIP},
		Timeout:   dialTimeout,
		KeepAlive: 30 * time.Second,
		Control:   setSocketOptions,
	}

	conn, err := dialer.Dial("tcp", target)
	if err != nil {
		log.Printf("[socks5] [%s] dial %q failed: %v", id, target, err)
		return nil, socksReplyForError(err)
	}
	return conn, replySucceeded
}
