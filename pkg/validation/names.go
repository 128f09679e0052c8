package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Repository name validation per Docker spec:
// - Lowercase letters, digits, and separators (., _, -)
// - Separators must not be adjacent and cannot start/end the name
// - Allows nested paths like "myorg/myapp"
var repoNameRegex = regexp.MustCompile(`^[a-z0-9]+(?:[._-][a-z0-9]+)*(?:/[a-z0-9]+(?:[._-][a-z0-9]+)*)*$`)

// Tag validation per Docker spec:
// - Must start with an alphanumeric character
// - Dots, underscores, and hyphens allowed after first character
// - Max 128 characters
var tagRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]{0,127}$`)

// ErrDigestReference is returned for references pinned by digest.
var ErrDigestReference = errors.New("digest references are not supported")

// MaxRepositoryNameLength is the maximum allowed length for repository names.
const MaxRepositoryNameLength = 256

// ValidateRepositoryName validates a Docker repository name (repo path and slug).
func ValidateRepositoryName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name cannot be empty")
	}

	if len(name) > MaxRepositoryNameLength {
		return fmt.Errorf("repository name too long: %d chars (max %d)", len(name), MaxRepositoryNameLength)
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("repository name contains path traversal sequence")
	}

	if !repoNameRegex.MatchString(name) {
		return fmt.Errorf("invalid repository name format: must contain only lowercase letters, digits, and separators (., _, -)")
	}

	return nil
}

// ValidateTag validates a Docker tag.
func ValidateTag(tag string) error {
	if tag == "" {
		return fmt.Errorf("tag cannot be empty")
	}

	if !tagRegex.MatchString(tag) {
		return fmt.Errorf("invalid tag format %q", tag)
	}

	return nil
}

// ValidateImageReference checks every component of an image reference string.
func ValidateImageReference(imageRef string) error {
	if HasDigest(imageRef) {
		return fmt.Errorf("image %q: %w", imageRef, ErrDigestReference)
	}

	parts := SplitImageReference(imageRef)

	name := parts.Slug
	if parts.RepoPath != "" {
		name = parts.RepoPath + "/" + parts.Slug
	}
	if err := ValidateRepositoryName(name); err != nil {
		return fmt.Errorf("image %q: %w", imageRef, err)
	}

	if parts.Tag != "" {
		if err := ValidateTag(parts.Tag); err != nil {
			return fmt.Errorf("image %q: %w", imageRef, err)
		}
	}

	return nil
}
