package domain

import (
	"slices"
	"time"
)

// ImageKind distinguishes regular images from data volume images.
type ImageKind string

const (
	ImageKindNormal     ImageKind = "normal"
	ImageKindDataVolume ImageKind = "data_volume"
)

// ParseImageKind maps a config value to an ImageKind. Blank means normal.
func ParseImageKind(s string) (ImageKind, error) {
	switch ImageKind(s) {
	case "", ImageKindNormal:
		return ImageKindNormal, nil
	case ImageKindDataVolume:
		return ImageKindDataVolume, nil
	default:
		return "", ErrUnknownKind
	}
}

// ImageState is the display form of an image's derived state.
type ImageState string

const (
	ImageStateAbsent        ImageState = "absent"
	ImageStateUp            ImageState = "up"
	ImageStateTransitioning ImageState = "transitioning"
)

// RemoteImage is a snapshot of what the daemon reports for one image.
type RemoteImage struct {
	ID      string
	Size    int64
	Created time.Time
	// References holds every repo:tag pointing at the same content.
	References []string
	Containers int64
}

// HasReference reports whether ref is one of the snapshot's references.
func (r *RemoteImage) HasReference(ref string) bool {
	return slices.Contains(r.References, ref)
}

// IsUntagged reports whether no usable reference points at the image anymore.
func (r *RemoteImage) IsUntagged() bool {
	for _, ref := range r.References {
		if ref != "" && ref != "<none>:<none>" {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the snapshot.
func (r *RemoteImage) Clone() *RemoteImage {
	if r == nil {
		return nil
	}
	c := *r
	c.References = slices.Clone(r.References)
	return &c
}

// ImageInfo is a display row for one declared image.
type ImageInfo struct {
	Name      string     `json:"name" yaml:"name"`
	Canonical string     `json:"canonical" yaml:"canonical"`
	Kind      ImageKind  `json:"kind" yaml:"kind"`
	External  bool       `json:"external" yaml:"external"`
	State     ImageState `json:"state" yaml:"state"`
	ID        string     `json:"id,omitempty" yaml:"id,omitempty"`
	// Size is reported in bytes.
	Size    int64     `json:"size,omitempty" yaml:"size,omitempty"`
	Created time.Time `json:"created,omitempty" yaml:"created,omitempty"`
}
