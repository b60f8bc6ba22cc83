// Package viper reads application secrets with spf13/viper.
package viper

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"github.com/fwojciec/hcprofile"
	"github.com/spf13/viper"
)

// DefaultEnvPrefix prefixes environment variables that override the file,
// e.g. HCPROFILE_OPENAI_API_KEY.
const DefaultEnvPrefix = "HCPROFILE"

// Ensure SecretStore implements hcprofile.SecretStore at compile time.
var _ hcprofile.SecretStore = (*SecretStore)(nil)

// SecretStore reads secrets from a TOML file such as
//
//	openai_api_key = "sk-..."
//
// Environment variables take precedence over the file. The file is read on
// every lookup and may be missing.
type SecretStore struct {
	Path      string
	EnvPrefix string
}

// NewSecretStore creates a SecretStore for the file at path.
func NewSecretStore(path string) *SecretStore {
	return &SecretStore{Path: path, EnvPrefix: DefaultEnvPrefix}
}

// Secret returns the named secret, or ENOTFOUND when it is not set or blank.
func (s *SecretStore) Secret(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	v := viper.New()
	v.SetEnvPrefix(s.EnvPrefix)
	v.AutomaticEnv()

	if s.Path != "" {
		v.SetConfigFile(s.Path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", hcprofile.Errorf(hcprofile.EINVALID, "invalid secrets file %s: %v", s.Path, err)
		}
	}

	value := strings.TrimSpace(v.GetString(name))
	if value == "" {
		return "", hcprofile.Errorf(hcprofile.ENOTFOUND, "secret %q not found", name)
	}
	return value, nil
}
