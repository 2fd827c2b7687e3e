// Package session implements the fast metadata path: an anonymous query
// against the appinfo JSON API for a single app.
package session

import "context"

// Client is the metadata lookup capability. It may be unreachable, in
// which case callers are expected to fall back to SteamCMD.
type Client interface {
	// Connected reports whether the metadata service is currently
	// reachable. Callers re-check it before every lookup since
	// connectivity can change mid-run.
	Connected() bool

	// ProductInfo fetches product metadata for one app. A nil result with
	// a nil error means the service answered but has no entry for the app.
	ProductInfo(ctx context.Context, appID string) (*ProductInfo, error)
}

// ProductInfo is the subset of appinfo this tool cares about.
type ProductInfo struct {
	Common struct {
		ClientIcon string `json:"clienticon"`
	} `json:"common"`
}

// ClientIcon returns the icon filename stem, or "" when the app has none.
func (p *ProductInfo) ClientIcon() string {
	if p == nil {
		return ""
	}
	return p.Common.ClientIcon
}
