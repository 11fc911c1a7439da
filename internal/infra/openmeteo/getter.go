package openmeteo

import (
	"context"
	"net/url"
)

// JSONGetter is the slice of upstream.Client used by the adapters.
type JSONGetter interface {
	GetJSON(ctx context.Context, endpoint string, params url.Values, dst any) error
}
