package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"dogceo/browser/internal/config"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/proxy"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const defaultCircuitBreakerDelay = 5 * time.Minute

// DogClient talks to the Dog CEO API.
type DogClient interface {
	ListBreeds(ctx context.Context) ([]domain.Group, error)
	RandomImages(ctx context.Context, breed domain.Breed, count int) ([]string, error)
	BreedInfo(ctx context.Context, breed domain.Breed) (domain.Metadata, error)
	Close() error
}

type dogClient struct {
	cfg           config.DogAPIConfig
	rl            ratelimit.Limiter
	baseURL       string
	httpClient    *resty.Client
	proxySupplier proxy.Supplier

	// Circuit breaker for 429 responses
	circuitBreakerMutex sync.RWMutex
	throttledUntil      time.Time
	circuitBreakerDelay time.Duration
}

func NewDogClient(cfg config.DogAPIConfig, proxySupplier proxy.Supplier) DogClient {
	client := newHTTPClient(cfg)

	if proxySupplier != nil {
		if proxyURL := proxySupplier.Get(); proxyURL != "" {
			client.SetProxy(proxyURL)
			log.Infof("🔗 Using initial proxy: %s", proxyURL)
		}
	}

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	return &dogClient{
		cfg:                 cfg,
		rl:                  rl,
		baseURL:             strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:          client,
		proxySupplier:       proxySupplier,
		circuitBreakerDelay: defaultCircuitBreakerDelay,
	}
}

func newHTTPClient(cfg config.DogAPIConfig) *resty.Client {
	return resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(500*time.Millisecond).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")
}

func (c *dogClient) ListBreeds(ctx context.Context) ([]domain.Group, error) {
	body, err := c.fetchJSON(ctx, c.baseURL+"/breeds/list/all")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch breed list: %w", err)
	}

	groups, err := parseBreedList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode breed list: %w", err)
	}

	log.Debugf("Fetched breed list with %d groups", len(groups))
	return groups, nil
}

func (c *dogClient) RandomImages(ctx context.Context, breed domain.Breed, count int) ([]string, error) {
	url := fmt.Sprintf("%s/images/random/%d", c.breedURL(breed), count)

	body, err := c.fetchJSON(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch images for %s: %w", breed, err)
	}

	images, err := parseImageList(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode images for %s: %w", breed, err)
	}

	log.Debugf("Fetched %d images for %s", len(images), breed)
	return images, nil
}

func (c *dogClient) BreedInfo(ctx context.Context, breed domain.Breed) (domain.Metadata, error) {
	body, err := c.fetchJSON(ctx, c.breedURL(breed))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch info for %s: %w", breed, err)
	}

	metadata, err := parseMetadata(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode info for %s: %w", breed, err)
	}

	return metadata, nil
}

func (c *dogClient) Close() error {
	return c.httpClient.Close()
}

func (c *dogClient) breedURL(breed domain.Breed) string {
	if breed.IsSubBreed() {
		return fmt.Sprintf("%s/breed/%s/%s", c.baseURL, breed.Main, breed.Sub)
	}
	return fmt.Sprintf("%s/breed/%s", c.baseURL, breed.Main)
}

func (c *dogClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.throttledUntil)
	wasTriggered := !c.throttledUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		if !c.throttledUntil.IsZero() && now.After(c.throttledUntil) {
			c.throttledUntil = time.Time{}
			log.Infof("✅ Circuit breaker closed - requests are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *dogClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.throttledUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker open until %v", c.throttledUntil.Format("15:04:05"))
}

func (c *dogClient) remainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.throttledUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// fetchJSON performs a GET and returns the raw body. Every failure is
// wrapped with domain.ErrNetwork.
func (c *dogClient) fetchJSON(ctx context.Context, url string) ([]byte, error) {
	if c.isCircuitBreakerOpen() {
		remaining := c.remainingCircuitBreakerTime()
		return nil, fmt.Errorf("%w: circuit breaker open for %v more", domain.ErrNetwork, remaining.Round(time.Second))
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: request cancelled: %w", domain.ErrNetwork, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}

	if resp.StatusCode() == http.StatusTooManyRequests {
		log.Warnf("🚫 Rate limited on %s", url)
		if body, ok := c.retryWithNextProxy(ctx, url); ok {
			return body, nil
		}
		c.triggerCircuitBreaker()
		return nil, fmt.Errorf("%w: rate limited", domain.ErrNetwork)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("%w: HTTP %s", domain.ErrNetwork, resp.Status())
	}

	return resp.Bytes(), nil
}

// retryWithNextProxy repeats a throttled request once through the next proxy
// in the pool, on a client of its own. The shared client's proxy is left
// as is.
func (c *dogClient) retryWithNextProxy(ctx context.Context, url string) ([]byte, bool) {
	if c.proxySupplier == nil {
		return nil, false
	}
	next := c.proxySupplier.Get()
	if next == "" {
		return nil, false
	}

	log.Infof("🔄 Retrying %s through proxy %s", url, next)

	retryClient := newHTTPClient(c.cfg).SetProxy(next)
	defer retryClient.Close()

	c.rl.Take()

	resp, err := retryClient.R().
		SetContext(ctx).
		Get(url)
	if err != nil || resp.IsError() {
		return nil, false
	}

	log.Infof("✅ Retry through proxy %s succeeded", next)
	return resp.Bytes(), true
}
