// Package connectivity detects online/offline transitions by probing a
// well-known URL and notifies subscribers on every change.
package connectivity

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultProbeURL = "https://www.google.com/favicon.ico"
	probeTimeout    = 5 * time.Second
	onlineInterval  = 30 * time.Second
)

// ProbeFunc reports whether the network is reachable right now.
type ProbeFunc func(ctx context.Context) bool

// Monitor polls a probe and fans out state changes to subscribers. While
// offline it re-probes with exponential backoff instead of a fixed interval.
type Monitor struct {
	probe ProbeFunc

	mu     sync.Mutex
	online bool
	subs   map[int]func(online bool)
	nextID int
}

// NewMonitor builds a monitor using an HTTP HEAD probe against probeURL
// (empty means the default). The monitor starts out assuming it is online.
func NewMonitor(probeURL string) *Monitor {
	if probeURL == "" {
		probeURL = defaultProbeURL
	}
	client := &http.Client{Timeout: probeTimeout}
	probe := func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, probeURL, nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}
	return NewMonitorWithProbe(probe)
}

// NewMonitorWithProbe builds a monitor with an injected probe. Used by tests
// to drive synthetic connectivity states.
func NewMonitorWithProbe(probe ProbeFunc) *Monitor {
	return &Monitor{probe: probe, online: true, subs: make(map[int]func(bool))}
}

// Online returns the last observed state.
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Subscribe registers fn for state changes and returns an unsubscribe
// function. fn is invoked without the monitor lock held.
func (m *Monitor) Subscribe(fn func(online bool)) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Check runs one probe and publishes any state change. Returns the observed
// state.
func (m *Monitor) Check(ctx context.Context) bool {
	now := m.probe(ctx)

	m.mu.Lock()
	changed := now != m.online
	m.online = now
	var fns []func(bool)
	if changed {
		for _, fn := range m.subs {
			fns = append(fns, fn)
		}
	}
	m.mu.Unlock()

	if changed {
		if now {
			log.Println("connectivity: back online")
		} else {
			log.Println("connectivity: offline")
		}
		for _, fn := range fns {
			fn(now)
		}
	}
	return now
}

// Run probes until ctx is cancelled: a fixed interval while online, and
// exponential backoff while offline.
func (m *Monitor) Run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0 // keep probing for the life of the process

	for {
		online := m.Check(ctx)

		var wait time.Duration
		if online {
			bo.Reset()
			wait = onlineInterval
		} else {
			wait = bo.NextBackOff()
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}
