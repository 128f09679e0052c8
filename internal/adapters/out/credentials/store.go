// Package credentials implements registry authentication from declared
// registry entries, with passwords optionally kept in a secret backend.
package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/stevedore/internal/boundaries/out"
	"github.com/bnema/stevedore/internal/domain"
	"github.com/bnema/stevedore/internal/logging"
)

// DefaultBackend is the secret backend used when an entry names none.
const DefaultBackend = "pass"

// dockerHubAddress is the server address Docker expects for Hub logins.
const dockerHubAddress = "https://index.docker.io/v1/"

// Store implements out.CredentialProvider.
type Store struct {
	entries   map[string]domain.RegistryAuth
	providers map[string]out.SecretProvider

	mu    sync.Mutex
	cache map[string]domain.Credential
}

var _ out.CredentialProvider = (*Store)(nil)

// NewStore creates a store over the declared registry entries. Secret
// providers are looked up by their Name.
func NewStore(entries []domain.RegistryAuth, providers ...out.SecretProvider) *Store {
	s := &Store{
		entries:   make(map[string]domain.RegistryAuth, len(entries)),
		providers: make(map[string]out.SecretProvider, len(providers)),
		cache:     make(map[string]domain.Credential),
	}
	for _, e := range entries {
		s.entries[normalizeHost(e.Host)] = e
	}
	for _, p := range providers {
		s.providers[p.Name()] = p
	}
	return s
}

// Authenticate returns the credential for registry. Registries without an
// entry get anonymous access.
func (s *Store) Authenticate(ctx context.Context, registry string) (domain.Credential, error) {
	host := normalizeHost(registry)
	ctx = logging.CtxWithFields(ctx, map[string]any{
		logging.FieldLayer:   "adapter",
		logging.FieldAdapter: "credentials",
		logging.FieldAction:  "Authenticate",
		"registry":           host,
	})
	log := logging.FromCtx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if cred, ok := s.cache[host]; ok {
		return cred, nil
	}

	entry, ok := s.entries[host]
	if !ok {
		log.Debug().Msg("no credentials declared, using anonymous access")
		return domain.Credential{ServerAddress: serverAddress(host)}, nil
	}

	password := entry.Password
	if password == "" && entry.PasswordSecret != "" {
		secret, err := s.lookupSecret(ctx, entry)
		if err != nil {
			return domain.Credential{}, log.WrapErr(err, "failed to resolve registry password")
		}
		password = secret
	}

	cred := domain.Credential{
		ServerAddress: serverAddress(host),
		Username:      entry.Username,
		Password:      password,
	}
	s.cache[host] = cred

	log.Debug().Str("username", entry.Username).Msg("registry credentials resolved")
	return cred, nil
}

func (s *Store) lookupSecret(ctx context.Context, entry domain.RegistryAuth) (string, error) {
	backend := entry.SecretsBackend
	if backend == "" {
		backend = DefaultBackend
	}

	provider, ok := s.providers[backend]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownBackend, backend)
	}
	if !provider.IsAvailable() {
		return "", fmt.Errorf("secrets backend %s is not available", backend)
	}

	return provider.GetSecret(ctx, entry.PasswordSecret)
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	if (domain.Reference{Registry: host}).IsDefaultRegistry() {
		return domain.DefaultRegistry
	}
	return host
}

func serverAddress(host string) string {
	if host == domain.DefaultRegistry {
		return dockerHubAddress
	}
	return host
}
