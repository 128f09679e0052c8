package image

import (
	"context"
	"fmt"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// Pull pulls the declared image, with overrides applied, and makes sure the
// result carries the declared canonical reference.
func (i *Image) Pull(ctx context.Context, overrides domain.RefOverrides) error {
	ctx, log := usecaseCtx(ctx, "Pull", i.name)
	defer i.Forget()

	base, err := i.Reference()
	if err != nil {
		return err
	}
	ref, err := domain.ResolveReference(overrides, base)
	if err != nil {
		return err
	}

	i.notify(domain.ProgressEvent{Phase: domain.PhaseStart, Action: "pull", Reference: ref.Canonical})

	cred, err := i.deps.Credentials.Authenticate(ctx, ref.Registry)
	if err != nil {
		return i.fail(log, "pull", ref, err, "failed to authenticate registry")
	}

	remote, err := i.deps.Transport.PullByName(ctx, ref, cred, i.chunkFunc("pull", ref))
	if err != nil {
		return i.fail(log, "pull", ref, err, "failed to pull image")
	}

	if !remote.HasReference(base.Canonical) {
		log.Debug().Str(logging.FieldRef, base.Canonical).Msg("tagging pulled image with declared reference")
		if err := i.deps.Transport.Tag(ctx, remote, base); err != nil {
			return i.fail(log, "pull", ref, err, "failed to tag pulled image")
		}
	}

	log.Info().Str(logging.FieldRef, ref.Canonical).Msg("image pulled")
	i.notify(domain.ProgressEvent{Phase: domain.PhaseDone, Action: "pull", Reference: ref.Canonical})
	return nil
}

// Remove untags the canonical reference. An absent image is left alone.
func (i *Image) Remove(ctx context.Context) error {
	ctx, log := usecaseCtx(ctx, "Remove", i.name)
	defer i.Forget()

	ref, err := i.Reference()
	if err != nil {
		return err
	}
	if err := i.Load(ctx); err != nil {
		return log.WrapErr(err, "failed to inspect image")
	}

	remote := i.Observed()
	if remote == nil {
		log.Debug().Str(logging.FieldRef, ref.Canonical).Msg("image absent, nothing to remove")
		return nil
	}

	i.notify(domain.ProgressEvent{Phase: domain.PhaseStart, Action: "remove", Reference: ref.Canonical})

	if err := i.deps.Transport.Untag(ctx, remote, ref.Canonical); err != nil {
		return i.fail(log, "remove", ref, err, "failed to untag image")
	}

	log.Info().Str(logging.FieldRef, ref.Canonical).Msg("image removed")
	i.notify(domain.ProgressEvent{Phase: domain.PhaseDone, Action: "remove", Reference: ref.Canonical})
	return nil
}

// Push pushes the image to target, or to its own reference when target is
// nil. External images need an explicit target.
func (i *Image) Push(ctx context.Context, target *domain.RefOverrides) error {
	ctx, log := usecaseCtx(ctx, "Push", i.name)
	defer i.Forget()

	base, err := i.Reference()
	if err != nil {
		return err
	}

	dest := base
	if target != nil {
		if dest, err = domain.ResolveReference(*target, base); err != nil {
			return err
		}
	} else if i.external {
		return fmt.Errorf("image %s: %w", i.name, domain.ErrExternalImage)
	}

	if dest.Canonical != base.Canonical {
		if _, err := i.AddTag(ctx, *target); err != nil {
			return err
		}
	}

	i.notify(domain.ProgressEvent{Phase: domain.PhaseStart, Action: "push", Reference: dest.Canonical})

	cred, err := i.deps.Credentials.Authenticate(ctx, dest.Registry)
	if err != nil {
		return i.fail(log, "push", dest, err, "failed to authenticate registry")
	}

	if err := i.deps.Transport.Push(ctx, dest, cred, i.chunkFunc("push", dest)); err != nil {
		return i.fail(log, "push", dest, err, "failed to push image")
	}

	log.Info().Str(logging.FieldRef, dest.Canonical).Msg("image pushed")
	i.notify(domain.ProgressEvent{Phase: domain.PhaseDone, Action: "push", Reference: dest.Canonical})
	return nil
}

// AddTag adds the reference built from overrides to the local image. It
// returns false when the image already carries that reference.
func (i *Image) AddTag(ctx context.Context, overrides domain.RefOverrides) (bool, error) {
	ctx, log := usecaseCtx(ctx, "AddTag", i.name)
	defer i.Forget()

	base, err := i.Reference()
	if err != nil {
		return false, err
	}
	desired, err := domain.ResolveReference(overrides, base)
	if err != nil {
		return false, err
	}

	if err := i.Load(ctx); err != nil {
		return false, log.WrapErr(err, "failed to inspect image")
	}

	remote := i.Observed()
	if remote == nil {
		return false, fmt.Errorf("image %s (%s): %w", i.name, base.Canonical, domain.ErrImageNotFound)
	}

	if remote.HasReference(desired.Canonical) {
		log.Debug().Str(logging.FieldRef, desired.Canonical).Msg("tag already present, skipping")
		return false, nil
	}

	if err := i.deps.Transport.Tag(ctx, remote, desired); err != nil {
		return false, i.fail(log, "tag", desired, err, "failed to tag image")
	}

	log.Info().Str(logging.FieldRef, desired.Canonical).Msg("image tagged")
	i.notify(domain.ProgressEvent{Phase: domain.PhaseDone, Action: "tag", Reference: desired.Canonical})
	return true, nil
}

func (i *Image) fail(log logging.Logger, action string, ref domain.Reference, err error, msg string) error {
	i.notify(domain.ProgressEvent{Phase: domain.PhaseError, Action: action, Reference: ref.Canonical, Err: err})
	return log.WrapErr(err, msg)
}
