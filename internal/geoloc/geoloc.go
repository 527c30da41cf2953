// Package geoloc models the device geolocation request as a single-shot
// asynchronous operation: coordinates on success, a typed reason on
// failure, with a fixed deadline owned by the caller.
package geoloc

import (
	"context"
	"errors"
	"time"

	"github.com/northeast-trails/service-trip/internal/domain/catalog"
)

// Timeout is the fixed deadline for a locate request. A request still
// pending after this long is treated as a failure.
const Timeout = 10 * time.Second

var (
	// ErrPermissionDenied means the device refused to share its location.
	ErrPermissionDenied = errors.New("geolocation permission denied")

	// ErrUnavailable means the position could not be determined in time.
	ErrUnavailable = errors.New("geolocation unavailable")
)

// Status strings surfaced to the UI.
const (
	StatusLocating         = "Locating…"
	StatusPermissionDenied = "Location permission denied."
	StatusFailed           = "Could not determine your location."
)

// Provider produces device coordinates. Implementations must honor
// context cancellation; there is no way to cancel the underlying device
// request itself, so abandoned completions are simply dropped.
type Provider interface {
	Locate(ctx context.Context) (catalog.Coordinates, error)
}

// Locate runs one locate attempt against the provider under the fixed
// deadline. Deadline expiry and provider failures other than an explicit
// permission denial both map to ErrUnavailable.
func Locate(ctx context.Context, p Provider) (catalog.Coordinates, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	coords, err := p.Locate(ctx)
	if err != nil {
		if errors.Is(err, ErrPermissionDenied) {
			return catalog.Coordinates{}, ErrPermissionDenied
		}
		return catalog.Coordinates{}, ErrUnavailable
	}
	return coords, nil
}

// StatusFor maps a locate failure to its UI status string.
func StatusFor(err error) string {
	if errors.Is(err, ErrPermissionDenied) {
		return StatusPermissionDenied
	}
	return StatusFailed
}
