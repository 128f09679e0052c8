// Package secrets implements secret provider adapters.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// passPathRegex limits pass entry names to characters that are safe on a command line.
var passPathRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-/]+$`)

// ValidatePath rejects pass entry names that could escape the store or the command line.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", domain.ErrInvalidSecretPath)
	}
	if strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: absolute path not allowed", domain.ErrInvalidSecretPath)
	}
	if !passPathRegex.MatchString(path) {
		return fmt.Errorf("%w: invalid path %q", domain.ErrInvalidSecretPath, path)
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return domain.ErrPathTraversal
		}
	}
	return nil
}

// PassProvider implements the SecretProvider interface using the pass password manager.
type PassProvider struct {
	bin     string
	timeout time.Duration
	log     logging.Logger
}

// NewPassProvider creates a new pass provider.
func NewPassProvider(log logging.Logger) *PassProvider {
	return &PassProvider{
		bin:     "pass",
		timeout: 10 * time.Second,
		log:     log,
	}
}

// Name returns the provider name.
func (p *PassProvider) Name() string {
	return "pass"
}

// GetSecret retrieves a secret from pass by path.
func (p *PassProvider) GetSecret(ctx context.Context, path string) (string, error) {
	if err := ValidatePath(path); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	// #nosec G204 - path is validated above
	cmd := exec.CommandContext(ctx, p.bin, "show", path)
	output, err := cmd.Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return "", fmt.Errorf("pass command failed: %s", string(exitError.Stderr))
		}
		return "", fmt.Errorf("failed to execute pass command: %w", err)
	}

	// pass keeps the secret on the first line; the rest is metadata.
	secret, _, _ := strings.Cut(string(output), "\n")
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", fmt.Errorf("empty secret returned from pass for path: %s", path)
	}

	p.log.Debug().
		Str(logging.FieldLayer, "adapter").
		Str(logging.FieldAdapter, "secrets").
		Str("provider", "pass").
		Str("path", path).
		Msg("successfully retrieved secret from pass")

	return secret, nil
}

// IsAvailable checks if pass is available in the system.
func (p *PassProvider) IsAvailable() bool {
	_, err := exec.LookPath(p.bin)
	return err == nil
}
