package visitor

import "strings"

// ClientIP selects the client address for a request: the first
// comma-separated value of X-Forwarded-For when present, otherwise the
// transport-layer peer address, otherwise the empty string. The selected
// value is normalized with NormalizeIP.
func ClientIP(forwardedFor, remoteAddr string) string {
	if forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" {
			return NormalizeIP(first)
		}
	}
	return NormalizeIP(remoteAddr)
}

// NormalizeIP strips the IPv4-mapped IPv6 prefix so "::ffff:192.0.2.1" is
// stored and looked up as "192.0.2.1".
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if strings.Contains(ip, "::ffff:") {
		ip = strings.Replace(ip, "::ffff:", "", 1)
	}
	return ip
}
