package main

import (
	"errors"
	"fmt"
	"log"
	"net"
)

// runAcceptor binds a listening TCP socket on cfg.ListenIP:cfg.Port and
// loops accepting clients, applying CIDR admission, leasing a buffer, and
// spawning a Connection Handler per client, per spec.md §4.6. Directly
// generalizes the teacher's StartProxy.
func runAcceptor(cfg *Config, pool *BufferPool, m *Metrics) error {
	listenAddr := net.JoinHostPort(cfg.ListenIP.String(), fmt.Sprint(cfg.Port))
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", listenAddr, err)
	}
	defer ln.Close()

	log.Printf("[acceptor] listening on tcp://%s (egress via %s)", listenAddr, cfg.EndpointIP)

	for {
		conn, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("[acceptor] accept error: %v", err)
			continue
		}

		remoteAddr, ok := conn.RemoteAddr().(*net.TCPAddr)
		if !ok {
			conn.Close()
			continue
		}

		if !cfg.AcceptCIDR.Trivial() {
			allowed, err := IsIn(remoteAddr.IP, cfg.AcceptCIDR)
			if err != nil || !allowed {
				log.Printf("[acceptor] %s does not match %s: dropping connection", remoteAddr.IP, cfg.AcceptCIDRText)
				shutdownAndClose(conn)
				if m != nil {
					m.ConnectionsRejected.Inc()
				}
				continue
			}
		}

		if m != nil {
			m.ConnectionsAccepted.Inc()
		}

		buf := pool.Lease()
		go handleConnection(conn, cfg, buf, m)
	}
}

// shutdownAndClose performs a full TCP shutdown before closing, so the
// rejected peer observes an immediate reset/close rather than a lingering
// half-open socket.
func shutdownAndClose(conn net.Conn) {
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.CloseWrite()
		tc.CloseRead()
	}
	conn.Close()
}
