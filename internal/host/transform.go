package host

import "strings"

// idSchemePrefixes lists URI-scheme prefixes some ingress paths attach to
// Host-native IDs; NormaliseID strips the first one found.
var idSchemePrefixes = []string{"x-apple-reminder://", "x-coredata://"}

// NormaliseID strips a known URI-scheme prefix from a Host-native ID so
// IDs compare and store canonically.
func NormaliseID(id string) string {
	for _, prefix := range idSchemePrefixes {
		if strings.HasPrefix(id, prefix) {
			return strings.TrimPrefix(id, prefix)
		}
	}

	return id
}
