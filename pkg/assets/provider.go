package assets

import (
	"fmt"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/events"
	"github.com/seaward/blobtree/pkg/policy"
)

// MarkerName is the zero-byte sentinel object that holds an otherwise
// empty virtual folder open in listings.
const MarkerName = ".keep"

// DefaultTransferConcurrency bounds the per-object fan-out of Move, Copy
// and Remove when the config leaves it unset.
const DefaultTransferConcurrency = 8

// Config configures a Provider.
type Config struct {
	// BaseURL is the store's own base URL, e.g.
	// https://acct.blob.core.windows.net. Required.
	BaseURL string

	// CDNHost, when set, replaces the host in every absolute URL handed
	// back to callers. The base scheme is kept.
	CDNHost string

	// ContainerAccess is the public-access policy applied to containers
	// this provider creates.
	ContainerAccess blobstore.PublicAccess

	// CacheControl is attached to every uploaded object. Optional.
	CacheControl string

	// TransferConcurrency bounds concurrent per-object operations.
	// Zero means DefaultTransferConcurrency.
	TransferConcurrency int

	// TransferRatePerSecond throttles per-object backend calls during
	// transfers. Zero disables throttling.
	TransferRatePerSecond float64
}

// Provider binds one blobstore.Store and implements every capability
// interface in this package. Safe for concurrent use; it holds no mutable
// state between calls.
type Provider struct {
	store       blobstore.Store
	base        *url.URL
	cdnHost     string
	access      blobstore.PublicAccess
	cache       string
	concurrency int
	limiter     *rate.Limiter
	check       policy.Checker
	publisher   events.Publisher
	log         *zap.Logger
}

var (
	_ Reader      = (*Provider)(nil)
	_ Writer      = (*Provider)(nil)
	_ Resolver    = (*Provider)(nil)
	_ Hierarchy   = (*Provider)(nil)
	_ Transferrer = (*Provider)(nil)
)

// Option customizes a Provider beyond its Config.
type Option func(*Provider)

// WithPolicy installs the extension policy checker. Default allows
// everything.
func WithPolicy(c policy.Checker) Option {
	return func(p *Provider) {
		if c != nil {
			p.check = c
		}
	}
}

// WithEvents installs the deletion-event publisher. Default discards.
func WithEvents(pub events.Publisher) Option {
	return func(p *Provider) {
		if pub != nil {
			p.publisher = pub
		}
	}
}

// WithLogger installs the logger. Default is zap.NewNop.
func WithLogger(log *zap.Logger) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Provider over store.
func New(store blobstore.Store, cfg Config, opts ...Option) (*Provider, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("assets: parse base URL %q: %w", cfg.BaseURL, err)
	}
	if !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("assets: base URL %q must be absolute", cfg.BaseURL)
	}

	concurrency := cfg.TransferConcurrency
	if concurrency <= 0 {
		concurrency = DefaultTransferConcurrency
	}
	access := cfg.ContainerAccess
	if access == "" {
		access = blobstore.PublicAccessNone
	}

	p := &Provider{
		store:       store,
		base:        base,
		cdnHost:     cfg.CDNHost,
		access:      access,
		cache:       cfg.CacheControl,
		concurrency: concurrency,
		check:       policy.AllowAll{},
		publisher:   events.Nop{},
		log:         zap.NewNop(),
	}
	if cfg.TransferRatePerSecond > 0 {
		p.limiter = rate.NewLimiter(rate.Limit(cfg.TransferRatePerSecond), concurrency)
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Backend names the underlying store backend.
func (p *Provider) Backend() blobstore.Backend { return p.store.Backend() }
