package harvest

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/webext"
	"golang.org/x/time/rate"
)

var _ webext.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces out page fetches with one token bucket per host, so
// harvest workers sharing a reference site take turns.
type DomainLimiter struct {
	rps float64

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter allowing rps fetches per second
// to each host, without bursts.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		rps:   rps,
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the host of pageURL may be fetched again or ctx is
// done. Returns EINVALID if pageURL has no host.
func (d *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	u, err := url.Parse(pageURL)
	if err != nil {
		return webext.Errorf(webext.EINVALID, "invalid URL %q: %v", pageURL, err)
	}
	if u.Host == "" {
		return webext.Errorf(webext.EINVALID, "URL %q has no host", pageURL)
	}
	return d.bucket(u.Host).Wait(ctx)
}

func (d *DomainLimiter) bucket(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(rate.Limit(d.rps), 1)
		d.hosts[host] = l
	}
	return l
}
