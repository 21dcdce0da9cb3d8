package proxy

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"resty.dev/v3"
)

const (
	probeTimeout     = 5 * time.Second
	probeConcurrency = 16
)

// Supplier hands out proxy URLs in round-robin order. Get returns "" when
// the pool is empty and requests should go direct.
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	proxies []string
	next    int
	mu      sync.Mutex
}

// NewSupplier probes every configured proxy against probeURL and keeps the
// ones that answer with a success status, in configuration order.
func NewSupplier(ctx context.Context, proxies []string, probeURL string) Supplier {
	if len(proxies) == 0 {
		return &supplier{}
	}

	log.Infof("🔄 Probing %d proxies against %s", len(proxies), probeURL)

	healthy := make([]bool, len(proxies))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)

	for i, proxyURL := range proxies {
		g.Go(func() error {
			healthy[i] = probe(ctx, proxyURL, probeURL)
			return nil
		})
	}
	_ = g.Wait()

	return newStaticSupplier(proxies, healthy)
}

func newStaticSupplier(proxies []string, healthy []bool) *supplier {
	s := &supplier{proxies: make([]string, 0, len(proxies))}
	for i, p := range proxies {
		if healthy[i] {
			s.proxies = append(s.proxies, p)
		}
	}

	log.Infof("✅ Proxy pool ready with %d of %d proxies", len(s.proxies), len(proxies))
	return s
}

func (s *supplier) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.proxies) == 0 {
		return ""
	}

	p := s.proxies[s.next]
	s.next = (s.next + 1) % len(s.proxies)
	return p
}

func (s *supplier) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.proxies)
}

func probe(ctx context.Context, proxyURL, probeURL string) bool {
	client := resty.New().
		SetTimeout(probeTimeout).
		SetRetryCount(0).
		SetProxy(proxyURL)
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(probeURL)
	if err != nil {
		log.Infof("❌ Proxy %s failed probe: %v", proxyURL, err)
		return false
	}
	if resp.IsError() {
		log.Infof("❌ Proxy %s failed probe with status %s", proxyURL, resp.Status())
		return false
	}

	log.Debugf("✅ Proxy %s is healthy", proxyURL)
	return true
}
