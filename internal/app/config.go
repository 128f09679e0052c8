package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
	"github.com/bnema/stevedore/internal/usecase/batch"
	"github.com/bnema/stevedore/internal/usecase/image"
	"github.com/bnema/stevedore/pkg/validation"
)

// Config holds the application configuration.
type Config struct {
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format" validate:"omitempty,oneof=console json"`
		File   struct {
			Enabled    bool   `mapstructure:"enabled"`
			Path       string `mapstructure:"path"`
			MaxSize    int    `mapstructure:"max_size"`
			MaxBackups int    `mapstructure:"max_backups"`
			MaxAge     int    `mapstructure:"max_age"`
		} `mapstructure:"file"`
	} `mapstructure:"logging"`

	Docker struct {
		Host string `mapstructure:"host"`
	} `mapstructure:"docker"`

	Batch struct {
		Workers           int  `mapstructure:"workers" validate:"min=1"`
		IgnoreFailure     bool `mapstructure:"ignore_failure"`
		MaxTasksPerWorker int  `mapstructure:"max_tasks_per_worker" validate:"min=0"`
	} `mapstructure:"batch"`

	Progress struct {
		Rate float64 `mapstructure:"rate" validate:"gte=0"` // chunk events per second per image, 0 = unlimited
	} `mapstructure:"progress"`

	Events struct {
		BufferSize int `mapstructure:"buffer_size" validate:"gte=0"`
	} `mapstructure:"events"`

	Registries []RegistryConfig `mapstructure:"registries" validate:"dive"`
	Images     []ImageConfig    `mapstructure:"images" validate:"dive"`
}

// RegistryConfig declares credentials for one registry host.
type RegistryConfig struct {
	Host           string `mapstructure:"host" validate:"required"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	PasswordSecret string `mapstructure:"password_secret"` // key in secrets_backend
	SecretsBackend string `mapstructure:"secrets_backend" validate:"omitempty,oneof=pass sops"`
}

// ImageConfig declares one managed image.
type ImageConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Reference string `mapstructure:"reference" validate:"required"`
	External  bool   `mapstructure:"external"`
	Kind      string `mapstructure:"kind" validate:"omitempty,oneof=normal data_volume"`
}

// BatchOptions returns the configured batch defaults.
func (c Config) BatchOptions() batch.Options {
	return batch.Options{
		Concurrency:       c.Batch.Workers,
		IgnoreFailure:     c.Batch.IgnoreFailure,
		MaxTasksPerWorker: c.Batch.MaxTasksPerWorker,
	}
}

// RegistryAuths converts the registry entries to domain values.
func (c Config) RegistryAuths() []domain.RegistryAuth {
	auths := make([]domain.RegistryAuth, 0, len(c.Registries))
	for _, r := range c.Registries {
		auths = append(auths, domain.RegistryAuth{
			Host:           r.Host,
			Username:       r.Username,
			Password:       r.Password,
			PasswordSecret: r.PasswordSecret,
			SecretsBackend: r.SecretsBackend,
		})
	}
	return auths
}

// Declarations converts the image entries to image declarations.
func (c Config) Declarations() ([]image.Declaration, error) {
	decls := make([]image.Declaration, 0, len(c.Images))
	for _, img := range c.Images {
		kind, err := domain.ParseImageKind(img.Kind)
		if err != nil {
			return nil, fmt.Errorf("image %s: %w: %q", img.Name, err, img.Kind)
		}
		decls = append(decls, image.Declaration{
			Name:      img.Name,
			Reference: img.Reference,
			External:  img.External,
			Kind:      kind,
		})
	}
	return decls, nil
}

// Validate checks the configuration and reports every problem found.
// Field rules come from the validate tags; name uniqueness and reference
// syntax are checked here.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidConfig}, args...)...))
	}

	if err := configValidator.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		for _, fe := range fieldErrs {
			errs = append(errs, describeFieldError(fe))
		}
	}

	seen := make(map[string]bool, len(c.Images))
	for i, img := range c.Images {
		name := strings.TrimSpace(img.Name)
		if name == "" {
			if img.Name != "" {
				fail("images[%d].name is blank", i)
			}
			continue
		}
		if seen[name] {
			fail("images[%d]: duplicate name %q", i, name)
		}
		seen[name] = true

		if img.Reference == "" {
			continue
		}
		if _, err := domain.ParseReference(img.Reference); err != nil {
			fail("image %s: %w", name, err)
		} else if err := validation.ValidateImageReference(img.Reference); err != nil {
			fail("image %s: %w", name, err)
		}
	}

	return errors.Join(errs...)
}

var configValidator = newConfigValidator()

// newConfigValidator reports fields by their config key instead of the Go name.
func newConfigValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func describeFieldError(fe validator.FieldError) error {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")

	switch {
	case strings.HasSuffix(field, ".secrets_backend"):
		return fmt.Errorf("%w: %s: %w %q", domain.ErrInvalidConfig, field, domain.ErrUnknownBackend, fe.Value())
	case strings.HasSuffix(field, ".kind"):
		return fmt.Errorf("%w: %s: %w %q", domain.ErrInvalidConfig, field, domain.ErrUnknownKind, fe.Value())
	}

	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidConfig, field)
	case "min", "gte":
		return fmt.Errorf("%w: %s must be at least %s, got %v", domain.ErrInvalidConfig, field, fe.Param(), fe.Value())
	case "oneof":
		return fmt.Errorf("%w: %s must be one of [%s], got %q", domain.ErrInvalidConfig, field, fe.Param(), fe.Value())
	default:
		return fmt.Errorf("%w: %s fails %s", domain.ErrInvalidConfig, field, fe.Tag())
	}
}

// initConfig loads configuration from file, .env and environment.
func initConfig(configPath string) (*viper.Viper, Config, error) {
	v := viper.New()
	if err := loadConfig(v, configPath); err != nil {
		return nil, Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, Config{}, err
	}

	return v, cfg, nil
}

func loadConfig(v *viper.Viper, configPath string) error {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.enabled", false)
	v.SetDefault("logging.file.max_size", 100)
	v.SetDefault("logging.file.max_backups", 3)
	v.SetDefault("logging.file.max_age", 28)
	v.SetDefault("docker.host", "")
	v.SetDefault("batch.workers", batch.DefaultConcurrency)
	v.SetDefault("batch.ignore_failure", false)
	v.SetDefault("batch.max_tasks_per_worker", 0)
	v.SetDefault("progress.rate", 10)
	v.SetDefault("events.buffer_size", 256)

	// Existing environment variables win over .env entries.
	if files := dotEnvFiles(configPath); len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return fmt.Errorf("failed to load .env: %w", err)
		}
	}

	ConfigureViper(v, configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("STEVEDORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return nil
}

// initLogger initializes the logger.
func initLogger(cfg Config) (logging.Logger, func(), error) {
	logConfig := logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}

	if cfg.Logging.File.Enabled {
		logPath := cfg.Logging.File.Path
		if logPath == "" {
			logPath = filepath.Join(DefaultDataDir(), "logs", "stevedore.log")
		}

		logConfig.File = logging.FileConfig{
			Enabled:    true,
			Path:       logPath,
			MaxSize:    cfg.Logging.File.MaxSize,
			MaxBackups: cfg.Logging.File.MaxBackups,
			MaxAge:     cfg.Logging.File.MaxAge,
			Compress:   true,
		}
		log, cleanup, err := logging.NewWithFile(logConfig)
		if err != nil {
			return logging.Default(), nil, fmt.Errorf("failed to create logger with file: %w", err)
		}
		return log, cleanup, nil
	}

	return logging.New(logConfig), nil, nil
}
