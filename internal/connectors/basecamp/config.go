package basecamp

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/campsync-cli/internal/core/domain"
)

// Config holds the parsed configuration for a Basecamp source.
// All fields are required.
type Config struct {
	// URL is the account base URL, e.g. https://basecamp.example.com.
	URL string

	// Username and Password are the basic-auth credentials.
	Username string
	Password string
}

// ParseConfig parses a source's config map into a Config struct.
// Every field must be present and non-empty.
func ParseConfig(source domain.Source) (*Config, error) {
	cfg := &Config{
		URL:      strings.TrimRight(source.Config["url"], "/"),
		Username: source.Config["username"],
		Password: source.Config["password"],
	}

	var missing []string
	if cfg.URL == "" {
		missing = append(missing, "url")
	}
	if cfg.Username == "" {
		missing = append(missing, "username")
	}
	if cfg.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required config keys: %v", domain.ErrInvalidInput, missing)
	}

	return cfg, nil
}
