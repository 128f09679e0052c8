package secrets

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// sopsKeyPathRegex validates sops key paths (alphanumeric, dots, underscores, hyphens, brackets).
var sopsKeyPathRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-\[\]]+$`)

// SopsProvider implements the SecretProvider interface using sops.
type SopsProvider struct {
	bin     string
	timeout time.Duration
	log     logging.Logger
}

// NewSopsProvider creates a new sops provider.
func NewSopsProvider(log logging.Logger) *SopsProvider {
	return &SopsProvider{
		bin:     "sops",
		timeout: 10 * time.Second,
		log:     log,
	}
}

// Name returns the provider name.
func (s *SopsProvider) Name() string {
	return "sops"
}

// GetSecret retrieves a secret from a sops-encrypted file.
// The path format is "file.yaml:key.nested.path".
func (s *SopsProvider) GetSecret(ctx context.Context, path string) (string, error) {
	filePath, keyPath, ok := strings.Cut(path, ":")
	if !ok || filePath == "" || keyPath == "" {
		return "", fmt.Errorf("%w: sops path must be in format 'file:key', got: %s", domain.ErrInvalidSecretPath, path)
	}

	cleanPath := filepath.Clean(filePath)
	if strings.Contains(cleanPath, "..") {
		return "", domain.ErrPathTraversal
	}

	if !sopsKeyPathRegex.MatchString(keyPath) {
		return "", fmt.Errorf("%w: key path must contain only alphanumeric characters, dots, underscores, hyphens, and brackets", domain.ErrInvalidSecretPath)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// #nosec G204 - filePath and keyPath are validated above
	cmd := exec.CommandContext(ctx, s.bin, "-d", "--extract", convertToSopsExtractPath(keyPath), cleanPath)
	output, err := cmd.Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return "", fmt.Errorf("sops command failed: %s", string(exitError.Stderr))
		}
		return "", fmt.Errorf("failed to execute sops command: %w", err)
	}

	secret := strings.TrimSpace(string(output))
	if secret == "" {
		return "", fmt.Errorf("empty secret returned from sops for path: %s", path)
	}

	s.log.Debug().
		Str(logging.FieldLayer, "adapter").
		Str(logging.FieldAdapter, "secrets").
		Str("provider", "sops").
		Str("path", path).
		Msg("successfully retrieved secret from sops")

	return secret, nil
}

// IsAvailable checks if sops is available in the system.
func (s *SopsProvider) IsAvailable() bool {
	_, err := exec.LookPath(s.bin)
	return err == nil
}

// convertToSopsExtractPath turns "a.b[0].c" into sops' `["a"]["b"][0]["c"]`.
func convertToSopsExtractPath(keyPath string) string {
	var b strings.Builder
	for _, part := range strings.Split(keyPath, ".") {
		if part == "" {
			continue
		}
		name, rest, _ := strings.Cut(part, "[")
		if name != "" {
			fmt.Fprintf(&b, "[%q]", name)
		}
		if rest != "" {
			b.WriteString("[" + rest)
		}
	}
	return b.String()
}
