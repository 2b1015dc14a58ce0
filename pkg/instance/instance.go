package instance

import (
	"os"

	"github.com/venuehub/venuehub-backend/pkg/env"
)

// GetID identifies the running process in logs. It prefers VENUEHUB_INSTANCE_ID,
// then the platform dyno name, then the host name.
func GetID(fallback string) string {
	if id := env.First("VENUEHUB_INSTANCE_ID", "DYNO"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return fallback
}
