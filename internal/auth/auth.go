package auth

import (
	"os"
	"strings"

	"github.com/markbates/goth"
	"github.com/markbates/goth/providers/google"
)

// InitGothProviders registers the OAuth providers used by the admin login.
func InitGothProviders() {
	callbackBase := os.Getenv("OAUTH_CALLBACK_BASE")
	if callbackBase == "" {
		callbackBase = "http://localhost:8080"
	}

	goth.UseProviders(
		google.New(
			os.Getenv("GOOGLE_CLIENT_ID"),
			os.Getenv("GOOGLE_CLIENT_SECRET"),
			callbackBase+"/auth/google/callback",
		),
	)
}

// AllowedAdmin reports whether an authenticated email may use the admin
// console. ADMIN_EMAILS is a comma-separated allowlist; empty means any
// authenticated user (local development).
func AllowedAdmin(email string) bool {
	allowlist := os.Getenv("ADMIN_EMAILS")
	if allowlist == "" {
		return true
	}
	for _, allowed := range strings.Split(allowlist, ",") {
		if strings.TrimSpace(allowed) == email {
			return true
		}
	}
	return false
}
