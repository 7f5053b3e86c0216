package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid checks that the address's domain actually receives
// mail before a staff account or vet record is created with it. An MX
// record wins; a plain A/AAAA record is accepted as the fallback delivery
// target.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
