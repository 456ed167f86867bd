// Package client provides a ClickHouse connection wrapper that executes
// rendered queries and materializes result sets into tables.
package client

import (
	"crypto/tls"
	"net"
	"strconv"
	"time"

	ch "github.com/ClickHouse/clickhouse-go/v2"
)

// Default connection settings.
const (
	DefaultPort        = 9000
	DefaultHTTPPort    = 8123
	DefaultDatabase    = "default"
	DefaultUser        = "default"
	DefaultDialTimeout = 5 * time.Second
)

// Config holds connection settings for a ClickHouse server.
// Zero values fall back to the server defaults: port 9000,
// database "default", user "default".
type Config struct {
	Host        string
	Port        int
	Database    string
	User        string
	Password    string
	DialTimeout time.Duration
	Compression bool
	Secure      bool
	Settings    map[string]any
}

// withDefaults returns a copy with zero values replaced by defaults.
func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.User == "" {
		c.User = DefaultUser
	}
	if c.DialTimeout == 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	return c
}

// Addr returns the host:port address for the native protocol.
func (c Config) Addr() string {
	c = c.withDefaults()
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// options converts the config to driver options.
func (c Config) options() *ch.Options {
	c = c.withDefaults()

	opts := &ch.Options{
		Addr: []string{c.Addr()},
		Auth: ch.Auth{
			Database: c.Database,
			Username: c.User,
			Password: c.Password,
		},
		DialTimeout: c.DialTimeout,
	}

	if c.Compression {
		opts.Compression = &ch.Compression{Method: ch.CompressionLZ4}
	}
	if c.Secure {
		opts.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if len(c.Settings) > 0 {
		opts.Settings = ch.Settings{}
		for k, v := range c.Settings {
			opts.Settings[k] = v
		}
	}

	return opts
}
