// Package docker implements the image transport adapter using the Docker API.
package docker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/registry"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/jsonmessage"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// Runtime implements out.ImageTransport using the Docker API.
type Runtime struct {
	client *client.Client
}

var _ out.ImageTransport = (*Runtime)(nil)

// NewRuntime creates a Docker runtime. An empty host falls back to the
// DOCKER_HOST environment.
func NewRuntime(host string) (*Runtime, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &Runtime{
		client: cli,
	}, nil
}

// NewRuntimeWithClient creates a new Docker runtime instance with a custom client (for testing).
func NewRuntimeWithClient(cli *client.Client) *Runtime {
	return &Runtime{
		client: cli,
	}
}

// Close releases the underlying client.
func (r *Runtime) Close() error {
	return r.client.Close()
}

func adapterCtx(ctx context.Context, action string, fields map[string]any) (context.Context, logging.Logger) {
	all := map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "docker",
		logging.FieldAction:  action,
	}
	for k, v := range fields {
		all[k] = v
	}
	ctx = logging.CtxWithFields(ctx, all)
	return ctx, logging.FromCtx(ctx)
}

// PullByName pulls ref, streaming progress to onChunk, and returns the
// pulled image.
func (r *Runtime) PullByName(ctx context.Context, ref domain.Reference, cred domain.Credential, onChunk out.ProgressFunc) (*domain.RemoteImage, error) {
	ctx, log := adapterCtx(ctx, "PullByName", map[string]any{logging.FieldRef: ref.Canonical})

	auth, err := encodeAuth(cred, false)
	if err != nil {
		return nil, log.WrapErr(transportErr("pull", ref.Canonical, err), "failed to encode auth config")
	}

	log.Debug().Bool("anonymous", cred.Anonymous()).Msg("pulling image")

	reader, err := r.client.ImagePull(ctx, ref.Canonical, image.PullOptions{
		RegistryAuth: auth,
	})
	if err != nil {
		return nil, log.WrapErr(transportErr("pull", ref.Canonical, err), "failed to pull image")
	}
	defer reader.Close()

	if err := streamProgress(reader, onChunk); err != nil {
		return nil, log.WrapErr(transportErr("pull", ref.Canonical, err), "failed to read pull response")
	}

	return r.Inspect(ctx, ref.Canonical)
}

// Push pushes ref, streaming progress to onChunk.
func (r *Runtime) Push(ctx context.Context, ref domain.Reference, cred domain.Credential, onChunk out.ProgressFunc) error {
	ctx, log := adapterCtx(ctx, "Push", map[string]any{logging.FieldRef: ref.Canonical})

	// The daemon rejects pushes without an auth header, anonymous or not.
	auth, err := encodeAuth(cred, true)
	if err != nil {
		return log.WrapErr(transportErr("push", ref.Canonical, err), "failed to encode auth config")
	}

	reader, err := r.client.ImagePush(ctx, ref.Canonical, image.PushOptions{
		RegistryAuth: auth,
	})
	if err != nil {
		return log.WrapErr(transportErr("push", ref.Canonical, err), "failed to push image")
	}
	defer reader.Close()

	if err := streamProgress(reader, onChunk); err != nil {
		return log.WrapErr(transportErr("push", ref.Canonical, err), "failed to read push response")
	}

	log.Debug().Msg("image pushed")
	return nil
}

// Tag adds ref to img.
func (r *Runtime) Tag(ctx context.Context, img *domain.RemoteImage, ref domain.Reference) error {
	ctx, log := adapterCtx(ctx, "Tag", map[string]any{
		logging.FieldEntityID: img.ID,
		logging.FieldRef:      ref.Canonical,
	})

	if err := r.client.ImageTag(ctx, img.ID, ref.Canonical); err != nil {
		return log.WrapErr(transportErr("tag", ref.Canonical, err), "failed to tag image")
	}
	return nil
}

// Untag removes canonical from img. The image itself goes away with its
// last reference.
func (r *Runtime) Untag(ctx context.Context, img *domain.RemoteImage, canonical string) error {
	ctx, log := adapterCtx(ctx, "Untag", map[string]any{
		logging.FieldEntityID: img.ID,
		logging.FieldRef:      canonical,
	})

	resp, err := r.client.ImageRemove(ctx, canonical, image.RemoveOptions{PruneChildren: true})
	if err != nil {
		return log.WrapErr(transportErr("untag", canonical, err), "failed to untag image")
	}

	untagged, deleted := 0, 0
	for _, item := range resp {
		if item.Untagged != "" {
			untagged++
		}
		if item.Deleted != "" {
			deleted++
		}
	}
	log.Debug().Int("untagged", untagged).Int("deleted", deleted).Msg("image untagged")
	return nil
}

// ListAll returns every tagged image known to the daemon.
func (r *Runtime) ListAll(ctx context.Context) ([]*domain.RemoteImage, error) {
	ctx, log := adapterCtx(ctx, "ListAll", nil)

	summaries, err := r.client.ImageList(ctx, image.ListOptions{
		Filters: filters.NewArgs(filters.Arg("dangling", "false")),
	})
	if err != nil {
		return nil, log.WrapErr(transportErr("list", "", err), "failed to list images")
	}

	images := make([]*domain.RemoteImage, 0, len(summaries))
	for _, s := range summaries {
		images = append(images, &domain.RemoteImage{
			ID:         s.ID,
			Size:       s.Size,
			Created:    time.Unix(s.Created, 0).UTC(),
			References: s.RepoTags,
			Containers: s.Containers,
		})
	}

	log.Debug().Int(logging.FieldCount, len(images)).Msg("images listed")
	return images, nil
}

// Inspect returns the image canonical points at. A reference the daemon
// does not know yields domain.ErrImageNotFound.
func (r *Runtime) Inspect(ctx context.Context, canonical string) (*domain.RemoteImage, error) {
	ctx, log := adapterCtx(ctx, "Inspect", map[string]any{logging.FieldRef: canonical})

	resp, err := r.client.ImageInspect(ctx, canonical)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			log.Debug().Msg("image not found")
			return nil, transportErr("inspect", canonical, fmt.Errorf("%w: %v", domain.ErrImageNotFound, err))
		}
		return nil, log.WrapErr(transportErr("inspect", canonical, err), "failed to inspect image")
	}

	created, err := time.Parse(time.RFC3339Nano, resp.Created)
	if err != nil {
		log.Debug().Str("created", resp.Created).Msg("unparseable creation time")
	}

	return &domain.RemoteImage{
		ID:         resp.ID,
		Size:       resp.Size,
		Created:    created,
		References: resp.RepoTags,
	}, nil
}

// Version returns the daemon version.
func (r *Runtime) Version(ctx context.Context) (string, error) {
	ctx, log := adapterCtx(ctx, "Version", nil)

	version, err := r.client.ServerVersion(ctx)
	if err != nil {
		return "", log.WrapErr(err, "failed to get Docker version")
	}
	return version.Version, nil
}

func encodeAuth(cred domain.Credential, always bool) (string, error) {
	if cred.Anonymous() && !always {
		return "", nil
	}
	return registry.EncodeAuthConfig(registry.AuthConfig{
		Username:      cred.Username,
		Password:      cred.Password,
		IdentityToken: cred.IdentityToken,
		ServerAddress: cred.ServerAddress,
	})
}

// streamProgress decodes the daemon's JSON message stream until EOF. An
// error message in the stream ends it.
func streamProgress(r io.Reader, onChunk out.ProgressFunc) error {
	dec := json.NewDecoder(r)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if msg.Error != nil {
			return msg.Error
		}
		if onChunk == nil || msg.Status == "" {
			continue
		}

		chunk := domain.ProgressChunk{ID: msg.ID, Status: msg.Status}
		if msg.Progress != nil {
			chunk.Current = msg.Progress.Current
			chunk.Total = msg.Progress.Total
		}
		onChunk(chunk)
	}
}

func transportErr(op, ref string, err error) error {
	return &domain.TransportError{Op: op, Ref: ref, Err: err}
}
