package appointment

import "strings"

// NormalizePhone strips everything but digits. "+56 9 1234-5678" and
// "56912345678" dedupe to the same key.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
