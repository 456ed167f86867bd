// clickql-wait blocks until a ClickHouse server accepts TCP connections.
//
// Usage:
//
//	clickql-wait -t tcp://localhost:9000 -timeout 30s
//
// Exits 0 when the target becomes reachable, 1 on timeout or bad arguments.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zoobzio/clickql/wait"
)

func main() {
	var (
		target   = flag.String("t", "", "probe target as tcp://host:port (required)")
		interval = flag.Duration("interval", wait.DefaultInterval, "delay between connection attempts")
		timeout  = flag.Duration("timeout", wait.DefaultTimeout, "overall deadline for the wait")
		quiet    = flag.Bool("q", false, "suppress output")
	)
	flag.Parse()

	if *target == "" {
		fmt.Fprintln(os.Stderr, "clickql-wait: -t target is required")
		flag.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	probe := wait.Probe{
		Target:   *target,
		Interval: *interval,
		Timeout:  *timeout,
	}

	elapsed, err := probe.Wait(ctx)
	if err != nil {
		if !*quiet {
			fmt.Fprintf(os.Stderr, "clickql-wait: %v\n", err)
		}
		os.Exit(1)
	}

	if !*quiet {
		fmt.Printf("clickql-wait: %s ready after %s\n", *target, elapsed.Round(time.Millisecond))
	}
}
