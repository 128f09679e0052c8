package out

import (
	"context"

	"github.com/bnema/stevedore/internal/domain"
)

// CredentialProvider returns the credentials to use against a registry host.
type CredentialProvider interface {
	Authenticate(ctx context.Context, registry string) (domain.Credential, error)
}
