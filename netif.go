package main

import (
	"fmt"
	"net"
)

// resolveInterfaceIPv4 resolves a network interface name to its first
// IPv4 address, the host-OS lookup spec.md §6 delegates RS_LISTEN_INTERFACE
// and RS_ENDPOINT_INTERFACE through. An empty name resolves to 0.0.0.0,
// matching spec.md's default.
//
// Adapted from the teacher's EnsureIPv6Addresses, which enumerates an
// interface's addresses to decide whether to provision a new IPv6 address
// onto it; this system only ever reads an existing address, so the
// provisioning half of that function ("ip addr add" shellout) has no role
// here (see DESIGN.md).
func resolveInterfaceIPv4(name string) (net.IP, error) {
	if name == "" {
		return net.IPv4zero, nil
	}

	ifi, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("interface %q: %w", name, err)
	}

	addrs, err := ifi.Addrs()
	if err != nil {
		return nil, fmt.Errorf("list addresses on %q: %w", name, err)
	}

	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4, nil
		}
	}

	return nil, fmt.Errorf("interface %q: no IPv4 address assigned", name)
}
