package domain

import (
	"fmt"
	"strings"

	"github.com/bnema/stevedore/pkg/validation"
)

const (
	// DefaultRegistry is the registry used when none is given.
	DefaultRegistry = "index.docker.io"
	// DefaultTag is applied when a reference carries no tag.
	DefaultTag = "latest"

	defaultRegistryMarker = "docker.io"
)

// Reference identifies one image. Registry, RepoPath, Slug and Tag are the
// inputs; Family and Canonical are filled in by ResolveReference.
type Reference struct {
	Registry  string
	RepoPath  string
	Slug      string
	Tag       string
	Family    string
	Canonical string
}

// String returns the canonical form.
func (r Reference) String() string {
	return r.Canonical
}

// IsDefaultRegistry reports whether the reference targets Docker Hub.
func (r Reference) IsDefaultRegistry() bool {
	return isDefaultRegistry(r.Registry)
}

// RefOverrides replaces parts of a base reference. Blank fields are absent.
type RefOverrides struct {
	Registry string
	RepoPath string
	Slug     string
	Tag      string
}

// IsZero reports whether no override is set.
func (o RefOverrides) IsZero() bool {
	return o == RefOverrides{}
}

// ResolveReference merges overrides onto base and rebuilds family and
// canonical name. It fails when the merged slug is blank.
func ResolveReference(overrides RefOverrides, base Reference) (Reference, error) {
	ref := Reference{
		Registry: pick(overrides.Registry, base.Registry),
		RepoPath: strings.Trim(pick(overrides.RepoPath, base.RepoPath), "/"),
		Slug:     pick(overrides.Slug, base.Slug),
		Tag:      pick(overrides.Tag, base.Tag),
	}

	if ref.Slug == "" {
		return Reference{}, &ValidationError{Field: "slug", Err: ErrSlugRequired}
	}
	if ref.Tag == "" {
		ref.Tag = DefaultTag
	}

	segments := make([]string, 0, 3)
	if isDefaultRegistry(ref.Registry) {
		ref.Registry = DefaultRegistry
	} else {
		segments = append(segments, ref.Registry)
	}
	if ref.RepoPath != "" {
		segments = append(segments, ref.RepoPath)
	}
	segments = append(segments, ref.Slug)

	ref.Family = strings.Join(segments, "/")
	ref.Canonical = ref.Family + ":" + ref.Tag

	return ref, nil
}

// ParseReference splits an image reference string and resolves it.
// Digest-pinned references are rejected since Reference carries no digest.
func ParseReference(s string) (Reference, error) {
	if validation.HasDigest(s) {
		return Reference{}, &ValidationError{
			Field: "reference",
			Err:   fmt.Errorf("%w %q: %w", ErrInvalidReference, s, validation.ErrDigestReference),
		}
	}
	parts := validation.SplitImageReference(s)
	return ResolveReference(RefOverrides{}, Reference{
		Registry: parts.Registry,
		RepoPath: parts.RepoPath,
		Slug:     parts.Slug,
		Tag:      parts.Tag,
	})
}

func isDefaultRegistry(registry string) bool {
	return registry == "" || strings.Contains(registry, defaultRegistryMarker)
}

func pick(override, base string) string {
	if v := strings.TrimSpace(override); v != "" {
		return v
	}
	return strings.TrimSpace(base)
}
