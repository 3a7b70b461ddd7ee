package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"capsule/internal/api"
	"capsule/internal/slogger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// resetRootState restores the package-level command state mutated by a test:
// flag values, the loaded configuration, and the logger setup.
func resetRootState() {
	cfg = nil
	cfgFile = ""
	for _, name := range []string{"config", "api-url", "timeout", "log-level", "log-format"} {
		f := rootCmd.PersistentFlags().Lookup(name)
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
	slogger.Configure(slogger.Config{Level: "info", Format: "json"})
}

// writeConfigFile marshals the given document to YAML in a temporary
// directory and returns the file path.
func writeConfigFile(t *testing.T, doc map[string]any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

// TestNewRootCmd_GlobalFlags verifies that the root command declares the
// shared flags with their documented defaults.
func TestNewRootCmd_GlobalFlags(t *testing.T) {
	cmd := newRootCmd()

	assert.Equal(t, "capsule", cmd.Use)

	tests := []struct {
		flag     string
		defValue string
	}{
		{flag: "config", defValue: ""},
		{flag: "api-url", defValue: api.DefaultBaseURL},
		{flag: "timeout", defValue: api.DefaultTimeout.String()},
		{flag: "log-level", defValue: "info"},
		{flag: "log-format", defValue: "json"},
	}
	for _, tt := range tests {
		f := cmd.PersistentFlags().Lookup(tt.flag)
		require.NotNil(t, f, "flag --%s should be declared", tt.flag)
		assert.Equal(t, tt.defValue, f.DefValue, "flag --%s default", tt.flag)
	}
}

// TestRootCommand_ShowsHelp verifies that running without a subcommand prints
// the command overview instead of doing anything else.
func TestRootCommand_ShowsHelp(t *testing.T) {
	cmd := newRootCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "command-line client for the Capsule application platform")
}

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	assert.Equal(t, api.DefaultBaseURL, v.GetString("api.url"))
	assert.Equal(t, api.DefaultTimeout, v.GetDuration("api.timeout"))
	assert.Equal(t, "info", v.GetString("log.level"))
	assert.Equal(t, "json", v.GetString("log.format"))
}

// TestInitConfig_Defaults loads an empty config file and expects the
// documented defaults to come through.
func TestInitConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	t.Cleanup(resetRootState)
	cfgFile = path

	initConfig()

	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, api.DefaultBaseURL, loaded.API.URL)
	assert.Equal(t, api.DefaultTimeout, loaded.API.Timeout)
	assert.Equal(t, "info", loaded.Log.Level)
	assert.Equal(t, "json", loaded.Log.Format)
}

func TestInitConfig_FromFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"api": map[string]any{
			"url":     "https://api.test.capsuleapp.cyou",
			"timeout": "10s",
		},
		"log": map[string]any{
			"level":  "debug",
			"format": "text",
		},
	})

	t.Cleanup(resetRootState)
	cfgFile = path

	initConfig()

	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "https://api.test.capsuleapp.cyou", loaded.API.URL)
	assert.Equal(t, 10*time.Second, loaded.API.Timeout)
	assert.Equal(t, "debug", loaded.Log.Level)
	assert.Equal(t, "text", loaded.Log.Format)
}

// TestInitConfig_EnvOverridesFile verifies the precedence between the
// environment and the config file.
func TestInitConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"api": map[string]any{
			"url":     "https://file.capsuleapp.cyou",
			"timeout": "10s",
		},
	})

	t.Setenv("CAPSULE_API_URL", "https://env.capsuleapp.cyou")
	t.Setenv("CAPSULE_API_TIMEOUT", "30s")

	t.Cleanup(resetRootState)
	cfgFile = path

	initConfig()

	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "https://env.capsuleapp.cyou", loaded.API.URL)
	assert.Equal(t, 30*time.Second, loaded.API.Timeout)
}

// TestInitConfig_FlagOverridesEnv verifies that an explicitly set flag beats
// both the environment and the config file.
func TestInitConfig_FlagOverridesEnv(t *testing.T) {
	path := writeConfigFile(t, map[string]any{
		"api": map[string]any{"url": "https://file.capsuleapp.cyou"},
	})

	t.Setenv("CAPSULE_API_URL", "https://env.capsuleapp.cyou")

	t.Cleanup(resetRootState)
	cfgFile = path
	require.NoError(t, rootCmd.PersistentFlags().Set("api-url", "https://flag.capsuleapp.cyou"))

	initConfig()

	loaded := GetConfig()
	require.NotNil(t, loaded)
	assert.Equal(t, "https://flag.capsuleapp.cyou", loaded.API.URL)
}
