package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/hcprofile"
	"github.com/fwojciec/hcprofile/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig(t *testing.T) {
	t.Parallel()

	cfg := gemini.BuildConfig()

	require.NotNil(t, cfg.Temperature)
	assert.Zero(t, *cfg.Temperature)
	assert.Equal(t, "application/json", cfg.ResponseMIMEType)
}

func TestCompleter_Complete_RejectsEmptyPrompt(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, "")
	_, err := c.Complete(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, hcprofile.EINVALID, hcprofile.ErrorCode(err))
}

func TestCompleter_Complete_ReturnsModelText(t *testing.T) {
	t.Parallel()

	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"role":  "model",
					"parts": []any{map[string]any{"text": `{"overview": "Cardiologist"}`}},
				},
			}},
		})
	}))
	defer srv.Close()

	client, err := gemini.NewClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	c := gemini.NewCompleter(client, "")
	text, err := c.Complete(context.Background(), "extract the profile")

	require.NoError(t, err)
	assert.Equal(t, `{"overview": "Cardiologist"}`, text)
	assert.True(t, strings.HasSuffix(gotPath, "models/"+gemini.DefaultModel+":generateContent"), gotPath)
	assert.Contains(t, gotBody, "extract the profile")
	assert.Contains(t, gotBody, "application/json")
}

func TestCompleter_Complete_ErrorsWithoutCandidates(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer srv.Close()

	client, err := gemini.NewClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	_, err = gemini.NewCompleter(client, "gemini-test").Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.Equal(t, hcprofile.EINTERNAL, hcprofile.ErrorCode(err))
}

func TestCompleter_Complete_PropagatesAPIErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	client, err := gemini.NewClient(context.Background(), "bad-key", srv.URL)
	require.NoError(t, err)

	_, err = gemini.NewCompleter(client, "").Complete(context.Background(), "prompt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
