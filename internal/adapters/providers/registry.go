package providers

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/im-vetri/Useful-APIs/internal/domain"
	"github.com/im-vetri/Useful-APIs/internal/ports"
)

// Client-side requests-per-second caps. Matrix fan-out must not burst past
// upstream per-second quotas.
const (
	googleRatePerSec = 10
	orsRatePerSec    = 5
	osrmRatePerSec   = 5
)

// Registry owns the long-lived plumbing shared by every adapter: one HTTP
// session and one rate limiter per upstream. The adapters themselves are
// cheap per-call values built from the caller's options, so concurrent
// calls never share mutable state beyond the limiters.
type Registry struct {
	google *client
	ors    *client
	osrm   *client
}

func NewRegistry() *Registry {
	session := &http.Client{Timeout: 10 * time.Second}
	return &Registry{
		google: &client{session: session, limiter: rate.NewLimiter(googleRatePerSec, googleRatePerSec)},
		ors:    &client{session: session, limiter: rate.NewLimiter(orsRatePerSec, orsRatePerSec)},
		osrm:   &client{session: session, limiter: rate.NewLimiter(osrmRatePerSec, osrmRatePerSec)},
	}
}

// Chain assembles the ordered provider chain for one call. Auto order is a
// fixed preference: credentialed providers first (google, then ors), the
// credential-less OSRM instance last. An explicit provider id selects just
// that adapter, and "haversine" yields an empty chain so resolution drops
// straight to the local formula.
func (r *Registry) Chain(opts domain.Options) ([]ports.Provider, error) {
	switch opts.Provider {
	case "", "auto":
		chain := make([]ports.Provider, 0, 3)
		if opts.GoogleAPIKey != "" {
			g, err := NewGoogleProvider(opts.GoogleAPIKey, r.google)
			if err != nil {
				return nil, err
			}
			chain = append(chain, g)
		}
		if opts.ORSAPIKey != "" {
			o, err := NewORSProvider(opts.ORSAPIKey, r.ors)
			if err != nil {
				return nil, err
			}
			chain = append(chain, o)
		}
		chain = append(chain, NewOSRMProvider(opts.OSRMBaseURL, r.osrm))
		return chain, nil

	case "google":
		if opts.GoogleAPIKey == "" {
			return nil, &domain.InvalidInputError{Reason: "provider google requires an api key"}
		}
		g, err := NewGoogleProvider(opts.GoogleAPIKey, r.google)
		if err != nil {
			return nil, err
		}
		return []ports.Provider{g}, nil

	case "ors":
		if opts.ORSAPIKey == "" {
			return nil, &domain.InvalidInputError{Reason: "provider ors requires an api key"}
		}
		o, err := NewORSProvider(opts.ORSAPIKey, r.ors)
		if err != nil {
			return nil, err
		}
		return []ports.Provider{o}, nil

	case "osrm":
		return []ports.Provider{NewOSRMProvider(opts.OSRMBaseURL, r.osrm)}, nil

	case "haversine":
		return []ports.Provider{}, nil
	}

	return nil, &domain.InvalidInputError{Reason: fmt.Sprintf("unknown provider %q", opts.Provider)}
}
