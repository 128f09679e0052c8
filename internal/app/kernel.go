package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/stevedore/internal/adapters/out/credentials"
	"github.com/bnema/stevedore/internal/adapters/out/docker"
	"github.com/bnema/stevedore/internal/adapters/out/eventbus"
	"github.com/bnema/stevedore/internal/adapters/out/progress"
	"github.com/bnema/stevedore/internal/adapters/out/secrets"
	"github.com/bnema/stevedore/internal/adapters/out/telemetry"
	"github.com/bnema/stevedore/internal/boundaries/in"
	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/logging"
	"github.com/bnema/stevedore/internal/usecase/batch"
	"github.com/bnema/stevedore/internal/usecase/collection"
	"github.com/bnema/stevedore/internal/usecase/image"
)

// versioner is implemented by transports that can report the daemon version.
type versioner interface {
	Version(ctx context.Context) (string, error)
}

// Kernel holds the wired application services for CLI commands.
type Kernel struct {
	cfg        Config
	log        logging.Logger
	logCleanup func()

	transport out.ImageTransport
	closers   []func() error
	bus       *eventbus.InMemory
	images    *collection.Service
}

// Option customizes kernel construction.
type Option func(*kernelOptions)

type kernelOptions struct {
	transport out.ImageTransport
	logger    *logging.Logger
}

// WithTransport replaces the docker runtime, mostly for tests.
func WithTransport(t out.ImageTransport) Option {
	return func(o *kernelOptions) { o.transport = t }
}

// WithLogger replaces the configured logger.
func WithLogger(log logging.Logger) Option {
	return func(o *kernelOptions) { o.logger = &log }
}

// NewKernel loads configuration and wires every service.
func NewKernel(configPath string, opts ...Option) (*Kernel, error) {
	var o kernelOptions
	for _, opt := range opts {
		opt(&o)
	}

	_, cfg, err := initConfig(configPath)
	if err != nil {
		return nil, err
	}

	k := &Kernel{cfg: cfg}

	if o.logger != nil {
		k.log = *o.logger
	} else {
		log, cleanup, err := initLogger(cfg)
		if err != nil {
			return nil, err
		}
		k.log = log
		k.logCleanup = cleanup
	}

	if err := k.wire(o); err != nil {
		_ = k.Close()
		return nil, err
	}

	return k, nil
}

func (k *Kernel) wire(o kernelOptions) error {
	ctx := logging.WithCtx(context.Background(), k.log)
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:     "app",
		logging.FieldComponent: "kernel",
		logging.FieldAction:    "wire",
	})
	log := logging.FromCtx(ctx)

	k.transport = o.transport
	if k.transport == nil {
		runtime, err := docker.NewRuntime(k.cfg.Docker.Host)
		if err != nil {
			return log.WrapErr(err, "failed to create docker runtime")
		}
		k.transport = runtime
		k.closers = append(k.closers, runtime.Close)
	}

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return log.WrapErr(err, "failed to create metrics")
	}

	k.bus = eventbus.NewInMemory(k.cfg.Events.BufferSize, k.log)
	k.bus.SetMetrics(metrics)
	if err := k.bus.Start(); err != nil {
		return log.WrapErr(err, "failed to start event bus")
	}
	k.closers = append(k.closers, k.bus.Stop)

	store := credentials.NewStore(
		k.cfg.RegistryAuths(),
		secrets.NewPassProvider(k.log),
		secrets.NewSopsProvider(k.log),
	)

	sink := progress.Tee{
		progress.NewLogSink(k.log),
		progress.NewThrottle(progress.NewBusSink(k.bus, k.log), k.cfg.Progress.Rate),
	}

	// Shared by every batch: bulk operations never interleave.
	runner := batch.NewRunner(&sync.Mutex{}, metrics)
	k.images = collection.NewService(k.transport, runner, k.cfg.BatchOptions())

	decls, err := k.cfg.Declarations()
	if err != nil {
		return err
	}
	deps := image.Deps{
		Transport:   k.transport,
		Credentials: store,
		Progress:    sink,
	}
	for _, decl := range decls {
		if err := k.images.Add(image.New(decl, deps)); err != nil {
			return fmt.Errorf("image %s: %w", decl.Name, err)
		}
	}

	log.Debug().Int("images", len(decls)).Int("registries", len(k.cfg.Registries)).Msg("kernel wired")
	return nil
}

// Context returns a background context carrying the kernel logger.
func (k *Kernel) Context(parent context.Context) context.Context {
	return logging.WithCtx(parent, k.log)
}

// Images returns the image collection service.
func (k *Kernel) Images() in.ImageService { return k.images }

// Config returns the loaded configuration.
func (k *Kernel) Config() Config { return k.cfg }

// Logger returns the kernel logger.
func (k *Kernel) Logger() logging.Logger { return k.log }

// Subscribe registers an event handler on the bus.
func (k *Kernel) Subscribe(handler out.EventHandler) error {
	return k.bus.Subscribe(handler)
}

// DockerVersion reports the daemon version when the transport supports it.
func (k *Kernel) DockerVersion(ctx context.Context) (string, error) {
	v, ok := k.transport.(versioner)
	if !ok {
		return "", errors.New("transport does not report a version")
	}
	return v.Version(ctx)
}

// Close stops the event bus and releases the docker client.
func (k *Kernel) Close() error {
	var errs []error
	for i := len(k.closers) - 1; i >= 0; i-- {
		if err := k.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	k.closers = nil

	if k.logCleanup != nil {
		k.logCleanup()
		k.logCleanup = nil
	}
	return errors.Join(errs...)
}
