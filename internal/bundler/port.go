package bundler

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"
)

// portAttempts bounds the search for a free port.
const portAttempts = 50

// FreePort returns the first port starting at port that can be bound on
// host.
func FreePort(host string, port int) (int, error) {
	for candidate := port; candidate < port+portAttempts && candidate <= 65535; candidate++ {
		l, err := net.Listen("tcp", net.JoinHostPort(host, strconv.Itoa(candidate)))
		if err != nil {
			continue
		}
		_ = l.Close()
		return candidate, nil
	}
	return 0, fmt.Errorf("no free port on %s in %d-%d", host, port, port+portAttempts-1)
}

// waitForListener polls addr until it accepts connections or ctx ends.
func waitForListener(ctx context.Context, addr string, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var d net.Dialer
	for {
		dialCtx, cancel := context.WithTimeout(ctx, interval)
		conn, err := d.DialContext(dialCtx, "tcp", addr)
		cancel()
		if err == nil {
			_ = conn.Close()
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
