package main

import (
	"log"
	"net"
	"time"
)

// runPump relays bytes bidirectionally between client and egress until
// either side closes or idleTimeout elapses on a direction, per spec.md
// §4.2. It is the "CustomPump" shape from the original source
// (custom_pump.rs): a manual per-direction read/write loop with its own
// idle timer and a one-shot cancellation signal polled non-blockingly by
// the opposite direction, chosen over the teacher's io.CopyBuffer-based
// relay because spec.md requires independently observable per-direction
// idle-timeout semantics (see DESIGN.md).
//
// buffer is split in half; each direction owns one half exclusively for
// the duration of the pump, so no byte from one direction is ever visible
// to the other.
func runPump(id string, client, egress net.Conn, buffer []byte, idleTimeout time.Duration, m *Metrics) {
	half := len(buffer) / 2
	bufUp := buffer[:half]
	bufDown := buffer[half:]

	upCancel := make(chan struct{}, 1)
	downCancel := make(chan struct{}, 1)

	done := make(chan struct{}, 2)

	go func() {
		pumpDirection(id, "up", client, egress, bufUp, idleTimeout, upCancel, downCancel, m)
		done <- struct{}{}
	}()
	go func() {
		pumpDirection(id, "down", egress, client, bufDown, idleTimeout, downCancel, upCancel, m)
		done <- struct{}{}
	}()

	<-done
	<-done
}

// pumpDirection copies from `from` to `to` until EOF, a write error, idle
// timeout, or the opposite direction's cancellation signal fires. On EOF
// it raises its own cancel signal (notifying the opposite direction) and
// returns; write errors and idle timeouts are logged and terminate without
// notifying the opposite direction (it will soon fail or idle out on its
// own), per spec.md §4.2.
func pumpDirection(id, direction string, from, to net.Conn, buf []byte, idleTimeout time.Duration, cancel chan<- struct{}, peerCancel <-chan struct{}, m *Metrics) {
	for {
		from.SetReadDeadline(time.Now().Add(idleTimeout))

		n, err := from.Read(buf)
		if n > 0 {
			if m != nil {
				m.PumpBytes.WithLabelValues(direction).Add(float64(n))
			}
			if _, werr := to.Write(buf[:n]); werr != nil {
				log.Printf("[socks5] [%s] %s: write failed, closing: %v", id, direction, werr)
				return
			}
		}

		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				log.Printf("[socks5] [%s] %s: idle timeout, closing", id, direction)
				return
			}
			// EOF or any other read error: treat as peer half-close and
			// notify the opposite direction, per spec.md §4.2 condition 1.
			select {
			case cancel <- struct{}{}:
			default:
			}
			return
		}

		select {
		case <-peerCancel:
			return
		default:
		}
	}
}
