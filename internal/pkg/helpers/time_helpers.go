package helpers

import (
	"time"

	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// ParseDuration parses s, falling back to def when s is empty or malformed.
func ParseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", s).Dur("fallback", def).Msg("Invalid duration, using fallback")
		return def
	}
	return d
}
