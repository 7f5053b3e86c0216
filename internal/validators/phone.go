package validators

import "strings"

// IsPhoneValid accepts E.164-ish numbers: optional leading +, 7 to 15 digits.
func IsPhoneValid(phone string) bool {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")

	if len(p) < 7 || len(p) > 15 {
		return false
	}

	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
