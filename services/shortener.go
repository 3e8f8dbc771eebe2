package services

import (
	"net/url"
	"os"
	"strings"
)

// Shortener turns a long claim URL into the public short link users
// follow. The real providers sit behind per-platform endpoints; tests
// substitute their own implementation.
type Shortener interface {
	Shorten(platform, longURL string) (string, error)
}

// EnvShortener builds short links from per-platform endpoint prefixes
// configured via SHORTENER_<PLATFORM>_API environment variables.
type EnvShortener struct {
	endpoints map[string]string
}

func NewEnvShortener() *EnvShortener {
	endpoints := make(map[string]string)
	for platform := range BaseCoins {
		key := "SHORTENER_" + strings.ToUpper(platform) + "_API"
		if v := os.Getenv(key); v != "" {
			endpoints[platform] = v
		}
	}
	return &EnvShortener{endpoints: endpoints}
}

// Shorten fails with ErrShortenerUnavailable when the platform has no
// configured endpoint; issuance surfaces that to the caller unchanged.
func (s *EnvShortener) Shorten(platform, longURL string) (string, error) {
	api, ok := s.endpoints[platform]
	if !ok {
		return "", ErrShortenerUnavailable
	}
	prefix := api
	if !strings.Contains(api, "=") {
		prefix = api + "?url="
	}
	return prefix + url.QueryEscape(longURL), nil
}
