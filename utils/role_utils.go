package utils

import (
	"strings"
)

var ValidUserRoles = map[string]bool{
	"ADMIN":   true,
	"MANAGER": true,
	"CASHIER": true,
	"STAFF":   true,
}

// ValidateAndNormalizeRole validates and normalizes a role string.
// Returns the normalized role (uppercase) and a boolean indicating if it's valid.
func ValidateAndNormalizeRole(role string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(role))
	return normalized, ValidUserRoles[normalized]
}
