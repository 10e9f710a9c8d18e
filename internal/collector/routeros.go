package collector

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-routeros/routeros/v3"

	"ontwatch/internal/config"
	"ontwatch/internal/domain/occupancy"
)

const dialTimeout = 10 * time.Second

// RouterOS fetches active hotspot sessions from a MikroTik access
// controller over its API port. A fresh connection is dialed per fetch;
// the poll interval is long enough that holding one open buys nothing.
type RouterOS struct {
	address  string
	username string
	password string
}

func NewRouterOS(cfg config.MikrotikConfig) *RouterOS {
	return &RouterOS{
		address:  net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		username: cfg.Username,
		password: cfg.Password,
	}
}

func (r *RouterOS) FetchActiveSessions(ctx context.Context) ([]occupancy.Session, error) {
	client, err := routeros.DialTimeout(r.address, r.username, r.password, dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial access controller %s: %w", r.address, err)
	}
	defer client.Close()

	reply, err := client.RunContext(ctx, "/ip/hotspot/active/print")
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}

	sessions := make([]occupancy.Session, 0, len(reply.Re))
	for _, sentence := range reply.Re {
		sessions = append(sessions, occupancy.Session{
			Address:  valueOr(sentence.Map, "address", "-"),
			MAC:      valueOr(sentence.Map, "mac-address", "-"),
			Uptime:   valueOr(sentence.Map, "uptime", "0s"),
			BytesIn:  valueOr(sentence.Map, "bytes-in", "0"),
			BytesOut: valueOr(sentence.Map, "bytes-out", "0"),
		})
	}

	return sessions, nil
}

func valueOr(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return fallback
}
