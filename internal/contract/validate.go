package contract

import (
	"strings"

	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

// ValidateUsername checks a GitHub username against GitHub's naming rules and
// returns the trimmed form. An empty username is allowed and means the
// authenticated user. The rules: at most 39 characters, alphanumeric and
// hyphens only, no leading or trailing hyphen, no consecutive hyphens.
func ValidateUsername(username string) (string, error) {
	trimmed := strings.TrimSpace(username)
	if trimmed == "" {
		return "", nil
	}
	if len(trimmed) > schema.MaxUsernameLength {
		return "", schema.NewValidationError(
			"username %q exceeds %d characters", trimmed, schema.MaxUsernameLength)
	}
	if strings.HasPrefix(trimmed, "-") || strings.HasSuffix(trimmed, "-") {
		return "", schema.NewValidationError(
			"username %q must not start or end with a hyphen", trimmed)
	}
	if strings.Contains(trimmed, "--") {
		return "", schema.NewValidationError(
			"username %q must not contain consecutive hyphens", trimmed)
	}
	for _, r := range trimmed {
		if !isUsernameRune(r) {
			return "", schema.NewValidationError(
				"username %q contains invalid character %q", trimmed, r)
		}
	}
	return trimmed, nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '-':
		return true
	}
	return false
}

// ValidateRepoIDs checks a batch identifier list: non-empty, at most max
// entries, every entry non-blank after trimming. Entries in "owner/name" form
// additionally get a shape check. Returns the trimmed list.
func ValidateRepoIDs(repoIDs []string, max int) ([]string, error) {
	if len(repoIDs) == 0 {
		return nil, schema.NewValidationError("repository id list must not be empty")
	}
	if len(repoIDs) > max {
		return nil, schema.NewValidationError(
			"repository id list has %d entries, maximum is %d", len(repoIDs), max)
	}
	trimmed := make([]string, 0, len(repoIDs))
	for i, id := range repoIDs {
		t := strings.TrimSpace(id)
		if t == "" {
			return nil, schema.NewValidationError("repository id at index %d is blank", i)
		}
		if strings.Contains(t, "/") {
			if _, _, err := schema.SplitNameWithOwner(t); err != nil {
				return nil, schema.NewValidationError("repository id %q: %v", t, err)
			}
		}
		trimmed = append(trimmed, t)
	}
	return trimmed, nil
}

// NormalizeConcurrency maps a caller-supplied concurrency value onto the
// accepted range. Zero means unspecified and resolves to the default; any
// other out-of-range value is rejected.
func NormalizeConcurrency(concurrency int) (int, error) {
	if concurrency == 0 {
		return schema.DefaultConcurrency, nil
	}
	if concurrency < 1 || concurrency > schema.MaxConcurrency {
		return 0, schema.NewValidationError(
			"concurrency must be between 1 and %d (received %d)", schema.MaxConcurrency, concurrency)
	}
	return concurrency, nil
}

// NormalizeMaxRepositories maps a caller-supplied repository cap onto the
// accepted range. Zero means unspecified and resolves to the default.
func NormalizeMaxRepositories(maxRepos int) (int, error) {
	if maxRepos == 0 {
		return schema.DefaultMaxRepositories, nil
	}
	if maxRepos < 1 || maxRepos > schema.MaxRepositoryCap {
		return 0, schema.NewValidationError(
			"max_repositories must be between 1 and %d (received %d)", schema.MaxRepositoryCap, maxRepos)
	}
	return maxRepos, nil
}
