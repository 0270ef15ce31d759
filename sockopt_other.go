//go:build !linux

package main

import "syscall"

// setSocketOptions is a no-op outside Linux; dialDestination's egress dial
// still works, just without the tuning sockopt_linux.go applies.
func setSocketOptions(network, address string, c syscall.RawConn) error {
	return nil
}
