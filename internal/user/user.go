package user

import (
	"os"
	"os/user"
	"strings"
)

// EnvAnnotator overrides the annotator recorded on completed tasks
const EnvAnnotator = "NERLABEL_ANNOTATOR"

// GetCurrentUsername returns the current system username.
// It tries multiple methods with fallbacks:
// 1. user.Current() - most reliable, gets username from OS
// 2. USER environment variable - fallback for restricted environments
// 3. "unknown" - final fallback to ensure a non-empty value
func GetCurrentUsername() string {
	currentUser, err := user.Current()
	if err != nil {
		username := os.Getenv("USER")
		if username == "" {
			return "unknown"
		}
		return username
	}
	return currentUser.Username
}

// Annotator picks the annotator id for a completion: the explicit value when
// given, then NERLABEL_ANNOTATOR, then the system username.
func Annotator(explicit *string) *string {
	if explicit != nil && strings.TrimSpace(*explicit) != "" {
		v := strings.TrimSpace(*explicit)
		return &v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAnnotator)); v != "" {
		return &v
	}
	name := GetCurrentUsername()
	return &name
}
