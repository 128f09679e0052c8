// Package validation parses and validates image reference strings.
package validation

import "strings"

// ParseImageReference parses an image reference into name and tag/digest.
// Supports formats:
//   - image:tag (default tag is "latest")
//   - image@sha256:... (digest)
//   - image (defaults to "latest")
//   - registry.example.com/image:tag
//   - registry.example.com:5000/image@sha256:...
//
// Returns:
//   - name: the image name (including registry if specified)
//   - reference: the tag (e.g., "latest") or digest (e.g., "sha256:...")
func ParseImageReference(imageRef string) (string, string) {
	if idx := strings.Index(imageRef, "@sha256:"); idx != -1 {
		return imageRef[:idx], imageRef[idx+1:]
	}

	if idx := strings.Index(imageRef, ":"); idx != -1 {
		// A slash after the first colon means the colon belongs to a registry port.
		if slashIdx := strings.Index(imageRef, "/"); slashIdx != -1 && slashIdx > idx {
			if tagIdx := strings.Index(imageRef[slashIdx:], ":"); tagIdx != -1 {
				actualTagIdx := slashIdx + tagIdx
				return imageRef[:actualTagIdx], imageRef[actualTagIdx+1:]
			}
			return imageRef, "latest"
		}
		return imageRef[:idx], imageRef[idx+1:]
	}

	return imageRef, "latest"
}

// ImageParts holds the components of an image reference string.
type ImageParts struct {
	Registry string
	RepoPath string
	Slug     string
	Tag      string
}

// SplitImageReference splits "registry/repo/path/slug:tag" into its parts.
// The first path component is treated as a registry host only when it looks
// like one (contains a dot or a port, or is "localhost"). Digest references
// yield an empty tag.
func SplitImageReference(imageRef string) ImageParts {
	name, ref := ParseImageReference(strings.TrimSpace(imageRef))

	var parts ImageParts
	if !strings.HasPrefix(ref, "sha256:") {
		parts.Tag = ref
	}

	components := strings.Split(strings.Trim(name, "/"), "/")
	if len(components) > 1 && isRegistryHost(components[0]) {
		parts.Registry = components[0]
		components = components[1:]
	}

	parts.Slug = components[len(components)-1]
	parts.RepoPath = strings.Join(components[:len(components)-1], "/")

	return parts
}

// HasDigest reports whether the reference pins a content digest.
func HasDigest(imageRef string) bool {
	return strings.Contains(imageRef, "@")
}

func isRegistryHost(component string) bool {
	return strings.ContainsAny(component, ".:") || component == "localhost"
}
