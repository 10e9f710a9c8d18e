package probe

import (
	"context"
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// Prober answers whether a terminal responds to a reachability probe.
type Prober interface {
	Probe(ctx context.Context, address string) bool
}

// ICMPProber pings a terminal up to `attempts` times per cycle; one
// reply is enough. Each attempt waits at most `timeout`, so no probe
// blocks indefinitely.
type ICMPProber struct {
	timeout  time.Duration
	attempts int
}

func NewICMPProber(timeout time.Duration, attempts int) *ICMPProber {
	if timeout <= 0 {
		timeout = time.Second
	}
	if attempts <= 0 {
		attempts = 3
	}

	return &ICMPProber{timeout: timeout, attempts: attempts}
}

func (p *ICMPProber) Probe(ctx context.Context, address string) bool {
	for i := 0; i < p.attempts; i++ {
		if ctx.Err() != nil {
			return false
		}
		if p.ping(ctx, address) {
			return true
		}
	}
	return false
}

func (p *ICMPProber) ping(ctx context.Context, address string) bool {
	pinger, err := probing.NewPinger(address)
	if err != nil {
		return false
	}

	// Unprivileged UDP mode, no raw-socket capability needed.
	pinger.SetPrivileged(false)
	pinger.Count = 1
	pinger.Timeout = p.timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return false
	}

	return pinger.Statistics().PacketsRecv > 0
}
