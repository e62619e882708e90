package cmd

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarket/pm/internal/clierror"
	"github.com/pmarket/pm/internal/config"
	"github.com/pmarket/pm/internal/prompt"
)

func configureOpts(t *testing.T, answers string) *configureOptions {
	t.Helper()

	return &configureOptions{
		configPath: filepath.Join(t.TempDir(), "pm", "config.yaml"),
		prompt:     prompt.NewLinePrompter(strings.NewReader(answers), io.Discard),
	}
}

func TestConfigureCmd_Flags(t *testing.T) {
	opts := configureOpts(t, "")

	out, err := execute(t, newConfigureCmd(opts), "--server", "https://market.example.com/", "--timeout", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "Configuration saved")

	cfg, err := config.Load(opts.configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://market.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5, cfg.TimeoutSeconds)
}

func TestConfigureCmd_InvalidServer(t *testing.T) {
	opts := configureOpts(t, "")

	_, err := execute(t, newConfigureCmd(opts), "--server", "ftp://market.example.com")

	require.Error(t, err)
	assert.Equal(t, clierror.KindUser, clierror.Classify(err))
}

func TestConfigureCmd_Interactive(t *testing.T) {
	opts := configureOpts(t, "not a url\nhttp://localhost:9000\n\n")

	_, err := execute(t, newConfigureCmd(opts))

	require.NoError(t, err)
	cfg, err := config.Load(opts.configPath)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9000", cfg.APIBaseURL)
	assert.Equal(t, config.DefaultTimeoutSeconds, cfg.TimeoutSeconds)
}

func TestConfigureCmd_InteractiveKeepsValues(t *testing.T) {
	opts := configureOpts(t, "\n7\n")

	_, err := execute(t, newConfigureCmd(opts))

	require.NoError(t, err)
	cfg, err := config.Load(opts.configPath)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 7, cfg.TimeoutSeconds)
}

func TestConfigureCmd_ShowJSON(t *testing.T) {
	opts := configureOpts(t, "")
	opts.jsonMode = true

	out, err := execute(t, newConfigureCmd(opts), "--show")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, config.DefaultAPIBaseURL, got["api_base_url"])
	assert.Equal(t, opts.configPath, got["config_file"])
	assert.EqualValues(t, config.DefaultTimeoutSeconds, got["timeout_seconds"])
}

func TestConfigureCmd_ShowTable(t *testing.T) {
	opts := configureOpts(t, "")

	out, err := execute(t, newConfigureCmd(opts), "--show")

	require.NoError(t, err)
	assert.Contains(t, out, "API base URL")
	assert.Contains(t, out, config.DefaultAPIBaseURL)
}
