package domain

// Credential carries registry authentication for one registry host.
// A zero Credential means anonymous access.
type Credential struct {
	ServerAddress string
	Username      string
	Password      string
	IdentityToken string
}

// Anonymous reports whether the credential carries no secret material.
func (c Credential) Anonymous() bool {
	return c.Username == "" && c.Password == "" && c.IdentityToken == ""
}

// RegistryAuth is the declared authentication for a registry host.
type RegistryAuth struct {
	Host     string
	Username string
	Password string
	// PasswordSecret is a key looked up in SecretsBackend when Password is empty.
	PasswordSecret string
	SecretsBackend string
}
