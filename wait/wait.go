// Package wait implements a TCP readiness probe for ClickHouse servers.
//
// A probe target is written as tcp://host:port and is polled at a fixed
// interval until a connection succeeds or the overall timeout elapses.
package wait

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"
)

// Defaults for the probe schedule.
const (
	DefaultInterval = 1 * time.Second
	DefaultTimeout  = 30 * time.Second
)

// ErrTimeout indicates the target did not become reachable in time.
var ErrTimeout = errors.New("target not reachable before timeout")

// Probe polls a TCP target until it accepts connections.
type Probe struct {
	// Target is a tcp://host:port URL.
	Target string
	// Interval between connection attempts. Defaults to 1s.
	Interval time.Duration
	// Timeout bounds the whole wait. Defaults to 30s.
	Timeout time.Duration
}

// ParseTarget validates a tcp://host:port target and returns the host:port
// address to dial.
func ParseTarget(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target %q: %w", target, err)
	}
	if u.Scheme != "tcp" {
		return "", fmt.Errorf("invalid target %q: scheme must be tcp", target)
	}
	if u.Host == "" || u.Port() == "" {
		return "", fmt.Errorf("invalid target %q: host and port are required", target)
	}
	if u.Path != "" || u.RawQuery != "" {
		return "", fmt.Errorf("invalid target %q: only host and port are allowed", target)
	}
	return u.Host, nil
}

// Wait polls the target until it accepts a TCP connection, the timeout
// elapses, or the context is canceled. It returns the elapsed time on
// success and ErrTimeout when the deadline passes.
func (p Probe) Wait(ctx context.Context) (time.Duration, error) {
	addr, err := ParseTarget(p.Target)
	if err != nil {
		return 0, err
	}

	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	dialer := &net.Dialer{Timeout: interval}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err == nil {
			_ = conn.Close()
			return time.Since(start), nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return time.Since(start), fmt.Errorf("%w: %s after %s", ErrTimeout, addr, timeout)
			}
			return time.Since(start), ctx.Err()
		case <-ticker.C:
		}
	}
}

// Target builds a tcp:// target from host and port. Hosts with colons
// are bracketed so IPv6 literals parse.
func Target(host string, port int) string {
	if strings.Contains(host, ":") {
		return fmt.Sprintf("tcp://[%s]:%d", host, port)
	}
	return fmt.Sprintf("tcp://%s:%d", host, port)
}
