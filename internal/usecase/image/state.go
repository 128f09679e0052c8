package image

import "github.com/bnema/stevedore/internal/domain"

// State queries read the cached snapshot only. Without one they answer
// conservatively: the image is absent and down.

// Absent reports that no snapshot is known.
func (i *Image) Absent() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.observed == nil
}

// Exists reports that a snapshot is known.
func (i *Image) Exists() bool {
	return !i.Absent()
}

// Up reports that the image is present and tagged.
func (i *Image) Up() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.observed != nil && !i.observed.IsUntagged()
}

// Ready is Up.
func (i *Image) Ready() bool {
	return i.Up()
}

// Transitioning reports a snapshot that lost its tags and is on its way out.
func (i *Image) Transitioning() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.observed != nil && i.observed.IsUntagged()
}

// Down reports absent or transitioning toward absent.
func (i *Image) Down() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.observed == nil || i.observed.IsUntagged()
}

// Clear is Absent.
func (i *Image) Clear() bool {
	return i.Absent()
}

// State summarizes the queries above.
func (i *Image) State() domain.ImageState {
	i.mu.RLock()
	defer i.mu.RUnlock()
	switch {
	case i.observed == nil:
		return domain.ImageStateAbsent
	case i.observed.IsUntagged():
		return domain.ImageStateTransitioning
	default:
		return domain.ImageStateUp
	}
}
