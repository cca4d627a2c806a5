package domain

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// GitHub handle rules: alphanumeric and hyphens, no leading/trailing or
// consecutive hyphens, at most 39 characters.
const maxHandleLength = 39

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9](?:-?[a-zA-Z0-9])*$`)

// ParseHandle extracts a canonical GitHub username from free-form input:
// either a bare handle or a github.com profile URL (with or without scheme,
// with or without extra path segments). It is side-effect-free and returns
// an error wrapping ErrInvalidURL for anything it cannot canonicalize.
func ParseHandle(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("empty input: %w", ErrInvalidURL)
	}

	candidate := trimmed
	if strings.Contains(trimmed, "/") {
		raw := trimmed
		if !strings.Contains(raw, "://") {
			raw = "https://" + raw
		}
		parsed, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("malformed URL %q: %w", trimmed, ErrInvalidURL)
		}
		host := strings.ToLower(parsed.Hostname())
		if host != "github.com" && host != "www.github.com" {
			return "", fmt.Errorf("host %q is not github.com: %w", parsed.Hostname(), ErrInvalidURL)
		}
		segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
		if len(segments) == 0 || segments[0] == "" {
			return "", fmt.Errorf("no username in URL %q: %w", trimmed, ErrInvalidURL)
		}
		candidate = segments[0]
	}

	if len(candidate) > maxHandleLength || !handlePattern.MatchString(candidate) {
		return "", fmt.Errorf("invalid handle %q: %w", candidate, ErrInvalidURL)
	}
	return candidate, nil
}
