package profile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	dir := t.TempDir()
	p := &Profile{Mode: "bogus", Data: dir}
	require.NoError(t, p.Validate())
	require.Equal(t, "demo", p.Mode)
	require.Equal(t, "sqlite", p.Driver)
	require.Equal(t, filepath.Join(dir, "sarojaillam_demo.db"), p.DSN)
}

func TestValidatePostgresRequiresDSN(t *testing.T) {
	p := &Profile{Mode: "prod", Driver: "postgres", Data: t.TempDir()}
	require.Error(t, p.Validate())

	p.DSN = "postgresql://saroja@localhost/sarojaillam"
	require.NoError(t, p.Validate())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("SAROJA_AI_API_KEY", "sk-test")
	t.Setenv("SAROJA_AI_MODEL", "gpt-4o")
	t.Setenv("SAROJA_AI_MAX_TOKENS", "256")
	t.Setenv("SAROJA_AI_TEMPERATURE", "0.2")

	p := &Profile{}
	p.FromEnv()
	require.True(t, p.IsAIEnabled())
	require.Equal(t, "gpt-4o", p.AIModel)
	require.Equal(t, 256, p.AIMaxTokens)
	require.InDelta(t, 0.2, p.AITemperature, 0.001)
	require.Equal(t, "https://api.openai.com/v1", p.AIBaseURL)
}

func TestFromEnvMissingKey(t *testing.T) {
	t.Setenv("SAROJA_AI_API_KEY", "")
	p := &Profile{}
	p.FromEnv()
	require.False(t, p.IsAIEnabled())
}
