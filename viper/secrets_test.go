package viper_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/hcprofile"
	"github.com/fwojciec/hcprofile/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secrets.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSecretStore_Secret(t *testing.T) {
	t.Parallel()

	t.Run("reads a key from the TOML file", func(t *testing.T) {
		t.Parallel()

		path := writeSecrets(t, `openai_api_key = "sk-from-file"`+"\n")
		store := viper.NewSecretStore(path)

		got, err := store.Secret(context.Background(), "openai_api_key")

		require.NoError(t, err)
		assert.Equal(t, "sk-from-file", got)
	})

	t.Run("returns ENOTFOUND for a missing key", func(t *testing.T) {
		t.Parallel()

		path := writeSecrets(t, `gemini_api_key = "g-key"`+"\n")
		store := &viper.SecretStore{Path: path, EnvPrefix: "HCPROFILE_TEST_MISSING"}

		_, err := store.Secret(context.Background(), "openai_api_key")

		require.Error(t, err)
		assert.Equal(t, hcprofile.ENOTFOUND, hcprofile.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for a blank key", func(t *testing.T) {
		t.Parallel()

		path := writeSecrets(t, `openai_api_key = "   "`+"\n")
		store := &viper.SecretStore{Path: path, EnvPrefix: "HCPROFILE_TEST_BLANK"}

		_, err := store.Secret(context.Background(), "openai_api_key")

		assert.Equal(t, hcprofile.ENOTFOUND, hcprofile.ErrorCode(err))
	})

	t.Run("treats a missing file as empty", func(t *testing.T) {
		t.Parallel()

		store := &viper.SecretStore{
			Path:      filepath.Join(t.TempDir(), "nope.toml"),
			EnvPrefix: "HCPROFILE_TEST_NOFILE",
		}

		_, err := store.Secret(context.Background(), "openai_api_key")

		assert.Equal(t, hcprofile.ENOTFOUND, hcprofile.ErrorCode(err))
	})

	t.Run("rejects a malformed file", func(t *testing.T) {
		t.Parallel()

		path := writeSecrets(t, "openai_api_key = \n[[[")
		store := viper.NewSecretStore(path)

		_, err := store.Secret(context.Background(), "openai_api_key")

		require.Error(t, err)
		assert.Equal(t, hcprofile.EINVALID, hcprofile.ErrorCode(err))
	})

	t.Run("picks up changes to the file", func(t *testing.T) {
		t.Parallel()

		path := writeSecrets(t, "")
		store := &viper.SecretStore{Path: path, EnvPrefix: "HCPROFILE_TEST_RELOAD"}

		_, err := store.Secret(context.Background(), "openai_api_key")
		assert.Equal(t, hcprofile.ENOTFOUND, hcprofile.ErrorCode(err))

		require.NoError(t, os.WriteFile(path, []byte(`openai_api_key = "sk-new"`), 0o600))
		got, err := store.Secret(context.Background(), "openai_api_key")

		require.NoError(t, err)
		assert.Equal(t, "sk-new", got)
	})
}

func TestSecretStore_Secret_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("HCPROFILE_ENVTEST_OPENAI_API_KEY", "sk-from-env")

	path := writeSecrets(t, `openai_api_key = "sk-from-file"`+"\n")
	store := &viper.SecretStore{Path: path, EnvPrefix: "HCPROFILE_ENVTEST"}

	got, err := store.Secret(context.Background(), "openai_api_key")

	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", got)
}

func TestSecretStore_Secret_EnvironmentWithoutFile(t *testing.T) {
	t.Setenv("HCPROFILE_GEMINI_API_KEY", "g-from-env")

	store := viper.NewSecretStore("")

	got, err := store.Secret(context.Background(), "gemini_api_key")

	require.NoError(t, err)
	assert.Equal(t, "g-from-env", got)
}
