package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
)

const metricsAddr = ":9091"

func main() {
	// One optional positional argument: the path to a YAML config file.
	// Generalized from the original source's main.rs CLI shape rather than
	// the teacher's richer -config/-t flags, which don't match spec.md's
	// single-positional-argument contract (see SPEC_FULL.md §7).
	var configPath string
	if len(os.Args) == 2 {
		configPath = os.Args[1]
	} else if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [config-file]\n", os.Args[0])
		os.Exit(1)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("[main] %v", err)
	}

	log.Printf("[main] listen IP:    %s", cfg.ListenIP)
	log.Printf("[main] endpoint IP:  %s", cfg.EndpointIP)
	log.Printf("[main] port:         %d", cfg.Port)
	log.Printf("[main] buffer size:  %d", cfg.BufferSize)
	log.Printf("[main] read timeout: %d ms", cfg.ReadTimeoutMs)
	log.Printf("[main] accept CIDR:  %s", cfg.AcceptCIDRText)
	log.Printf("[main] GOMAXPROCS:   %d", runtime.GOMAXPROCS(0))

	// Buffer pool is doubled so each pump direction gets cfg.BufferSize
	// bytes, per spec.md §3.
	pool := NewBufferPool(2 * cfg.BufferSize)
	m := NewMetrics(pool)

	errCh := make(chan error, 2)

	go func() {
		log.Printf("[main] metrics on http://%s/metrics", metricsAddr)
		if err := ServeMetrics(metricsAddr); err != nil {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	go func() {
		if err := runAcceptor(cfg, pool, m); err != nil {
			errCh <- fmt.Errorf("acceptor: %w", err)
		}
	}()

	log.Println("[main] listening. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("[main] received signal %s, shutting down...", sig)
	case err := <-errCh:
		log.Fatalf("[main] fatal: %v", err)
	}
}
