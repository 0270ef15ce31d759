package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file shape, per spec.md §6. Every
// key is optional; unset keys fall through to the matching environment
// variable, then to the default.
type fileConfig struct {
	ListenInterface   *string `yaml:"listen_interface"`
	EndpointInterface *string `yaml:"endpoint_interface"`
	Port              *int    `yaml:"port"`
	BufferSize        *int    `yaml:"buffer_size"`
	ReadTimeout       *int    `yaml:"read_timeout"`
	AcceptCIDR        *string `yaml:"accept_cidr"`
}

// Config is the fully-resolved, validated runtime configuration.
type Config struct {
	ListenIP       net.IP
	EndpointIP     net.IP
	Port           int
	BufferSize     int
	ReadTimeoutMs  int
	AcceptCIDRText string
	AcceptCIDR     CIDR
}

const (
	defaultPort        = 1080
	defaultBufferSize  = 2048
	defaultReadTimeout = 5000
	defaultAcceptCIDR  = "0.0.0.0/0"
)

// LoadConfig resolves the runtime Config from an optional file path, the
// RS_* environment variables, and the defaults in spec.md §6, with
// precedence file > env > default, exactly as the original source's
// config.rs does. Interface names are resolved to IPv4 addresses via
// netif.go.
func LoadConfig(path string) (*Config, error) {
	var fc fileConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	listenInterface := stringOr(fc.ListenInterface, "RS_LISTEN_INTERFACE", "")
	endpointInterface := stringOr(fc.EndpointInterface, "RS_ENDPOINT_INTERFACE", "")
	port := intOr(fc.Port, "RS_PORT", defaultPort)
	bufferSize := intOr(fc.BufferSize, "RS_BUFFER_SIZE", defaultBufferSize)
	readTimeout := intOr(fc.ReadTimeout, "RS_READ_TIMEOUT", defaultReadTimeout)
	acceptCIDRText := stringOr(fc.AcceptCIDR, "RS_ACCEPT_CIDR", defaultAcceptCIDR)

	if port < 1 || port > 65535 {
		return nil, fmt.Errorf("config: port %d out of range (1-65535)", port)
	}
	if bufferSize < 1 {
		return nil, fmt.Errorf("config: buffer_size must be at least 1 byte")
	}
	if readTimeout < 0 {
		return nil, fmt.Errorf("config: read_timeout must not be negative")
	}

	listenIP, err := resolveInterfaceIPv4(listenInterface)
	if err != nil {
		return nil, fmt.Errorf("config: listen_interface: %w", err)
	}
	endpointIP, err := resolveInterfaceIPv4(endpointInterface)
	if err != nil {
		return nil, fmt.Errorf("config: endpoint_interface: %w", err)
	}

	cidr, err := ParseCIDR(acceptCIDRText)
	if err != nil {
		return nil, fmt.Errorf("config: accept_cidr: %w", err)
	}

	return &Config{
		ListenIP:       listenIP,
		EndpointIP:     endpointIP,
		Port:           port,
		BufferSize:     bufferSize,
		ReadTimeoutMs:  readTimeout,
		AcceptCIDRText: acceptCIDRText,
		AcceptCIDR:     cidr,
	}, nil
}

// stringOr resolves a config value: file value, else the named environment
// variable, else def.
func stringOr(fileValue *string, envName, def string) string {
	if fileValue != nil {
		return *fileValue
	}
	if v, ok := os.LookupEnv(envName); ok {
		return v
	}
	return def
}

// intOr resolves a config value: file value, else the named environment
// variable (parsed as int; falls back to def on parse failure), else def.
func intOr(fileValue *int, envName string, def int) int {
	if fileValue != nil {
		return *fileValue
	}
	if v, ok := os.LookupEnv(envName); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
