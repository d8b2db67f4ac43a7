package validation

import (
	"net/url"
	"strings"
)

var (
	postgresSchemes = map[string]bool{"postgres": true, "postgresql": true}
	redisSchemes    = map[string]bool{"redis": true, "rediss": true, "unix": true}
	originSchemes   = map[string]bool{"http": true, "https": true}
)

// ValidateDSN checks that raw is a Postgres connection URL.
func ValidateDSN(raw string) error {
	return validateEndpoint(raw, postgresSchemes)
}

// ValidateRedisURL checks that raw is a URL go-redis can dial.
func ValidateRedisURL(raw string) error {
	return validateEndpoint(raw, redisSchemes)
}

func validateEndpoint(raw string, allowed map[string]bool) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return ErrInvalidURLFormat
	}

	scheme := strings.ToLower(parsed.Scheme)
	if !allowed[scheme] {
		return ErrUnsupportedScheme
	}

	// unix sockets carry a path instead of a host
	if parsed.Host == "" && (scheme != "unix" || parsed.Path == "") {
		return ErrInvalidURLFormat
	}

	return nil
}

// ValidateOrigin accepts "*" or a bare scheme://host[:port] origin.
func ValidateOrigin(origin string) error {
	if origin == "*" {
		return nil
	}
	if strings.TrimSpace(origin) == "" {
		return ErrEmptyURL
	}

	parsed, err := url.Parse(origin)
	if err != nil {
		return ErrInvalidURLFormat
	}

	if !originSchemes[strings.ToLower(parsed.Scheme)] {
		return ErrUnsupportedScheme
	}
	if parsed.Host == "" {
		return ErrInvalidURLFormat
	}
	if (parsed.Path != "" && parsed.Path != "/") || parsed.RawQuery != "" || parsed.Fragment != "" {
		return ErrOriginHasPath
	}

	return nil
}

func ValidateOrigins(origins []string) error {
	if len(origins) == 0 {
		return ErrEmptyBatch
	}

	var batchErrors []IndexedError
	for i, o := range origins {
		if err := ValidateOrigin(o); err != nil {
			batchErrors = append(batchErrors, IndexedError{Index: i, Value: o, Err: err})
		}
	}

	if len(batchErrors) > 0 {
		return &BatchValidationError{Errors: batchErrors}
	}

	return nil
}
