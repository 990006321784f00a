// Package visitor resolves a request's client IP, User-Agent, and Referer
// headers into the coarse metadata stored with each click event. Resolution
// is best-effort and never fails: anything unparseable degrades to the
// Unknown/default values.
package visitor

import (
	"strings"

	ua "github.com/mileusna/useragent"
)

// Fallback values for unresolvable metadata.
const (
	UnknownCountry = "Unknown"
	UnknownCity    = "Unknown"
	UnknownBrowser = "Unknown"
	DefaultDevice  = "desktop"

	// DirectReferrer marks visits that arrived without a Referer header.
	DirectReferrer = "Direct"
)

// Device type categories.
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// Visit holds the resolved metadata for a single redirect hit.
type Visit struct {
	IPAddress string
	Country   string
	City      string
	Device    string
	Browser   string
	Referer   string
}

// Resolve derives a Visit from the normalized client IP and the raw
// User-Agent and Referer header values. It is a pure function of its inputs
// (plus the read-only GeoLite2 database) and is safe for concurrent use.
func Resolve(clientIP, userAgentHeader, refererHeader string) Visit {
	country, city := lookupGeo(clientIP)

	referer := strings.TrimSpace(refererHeader)
	if referer == "" {
		referer = DirectReferrer
	}

	v := Visit{
		IPAddress: clientIP,
		Country:   country,
		City:      city,
		Device:    DefaultDevice,
		Browser:   UnknownBrowser,
		Referer:   referer,
	}

	if userAgentHeader == "" {
		return v
	}

	parsed := ua.Parse(userAgentHeader)
	switch {
	case parsed.Mobile:
		v.Device = DeviceMobile
	case parsed.Tablet:
		v.Device = DeviceTablet
	default:
		// Bots and unclassifiable agents count as desktop
		v.Device = DeviceDesktop
	}

	if parsed.Name != "" {
		v.Browser = parsed.Name
	}

	return v
}
