package entities

import (
	"encoding/base64"
)

// SecretKind identifies the authentication scheme carried by a RepoSecret.
type SecretKind string

const (
	SecretKindBasic SecretKind = "basic"
	SecretKindToken SecretKind = "token"
	SecretKindNone  SecretKind = ""
)

// Secret field names, matching the data block of a Kubernetes secret.
const (
	secretFieldUsername = "username"
	secretFieldPassword = "password"
	secretFieldToken    = "token"
)

// RepoSecret holds credential material for a Git hosting provider.
// Field values are stored base64-encoded, mirroring how they arrive from
// a Kubernetes secret. The struct is read-only after construction.
type RepoSecret struct {
	Kind SecretKind
	Data map[string]string
}

// AnonymousSecret returns a secret carrying no credentials.
func AnonymousSecret() RepoSecret {
	return RepoSecret{Kind: SecretKindNone}
}

// NewBasicSecret builds a basic-auth secret from plaintext credentials.
func NewBasicSecret(username, password string) RepoSecret {
	return RepoSecret{
		Kind: SecretKindBasic,
		Data: map[string]string{
			secretFieldUsername: base64.StdEncoding.EncodeToString([]byte(username)),
			secretFieldPassword: base64.StdEncoding.EncodeToString([]byte(password)),
		},
	}
}

// NewTokenSecret builds a token secret from a plaintext access token.
func NewTokenSecret(token string) RepoSecret {
	return RepoSecret{
		Kind: SecretKindToken,
		Data: map[string]string{
			secretFieldToken: base64.StdEncoding.EncodeToString([]byte(token)),
		},
	}
}

// BasicCredentials decodes the stored username and password. The second
// return value is false when the secret is not a usable basic-auth secret.
func (s RepoSecret) BasicCredentials() (string, string, bool) {
	if s.Kind != SecretKindBasic {
		return "", "", false
	}
	username, userOK := s.decodedField(secretFieldUsername)
	password, passOK := s.decodedField(secretFieldPassword)
	if !userOK || !passOK {
		return "", "", false
	}
	return username, password, true
}

// Token decodes the stored access token. The second return value is false
// when the secret is not a usable token secret.
func (s RepoSecret) Token() (string, bool) {
	if s.Kind != SecretKindToken {
		return "", false
	}
	return s.decodedField(secretFieldToken)
}

func (s RepoSecret) decodedField(name string) (string, bool) {
	encoded, ok := s.Data[name]
	if !ok || encoded == "" {
		return "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}
