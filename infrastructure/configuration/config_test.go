package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	ApplyDefaults(&c)

	assert.Equal(t, DefaultUpstreamEndpoint, c.TikWM.Endpoint)
	assert.Equal(t, DefaultUserAgent, c.TikWM.Header.UserAgent)
	assert.Equal(t, DefaultReferer, c.TikWM.Header.Referer)
	assert.Equal(t, DefaultAccept, c.TikWM.Header.Accept)
	assert.Equal(t, 15, c.TikWM.TimeoutSeconds)
	assert.Equal(t, "12", c.Search.DefaultCount)
	assert.Equal(t, "0", c.Search.DefaultCursor)
	assert.Equal(t, "18", c.Client.PageSize)
	assert.Equal(t, "tiktok-queue", c.Queue.Key)
	assert.Equal(t, "file", c.Queue.Backend)
	assert.Equal(t, 60, c.RateLimit.RequestsPerMinute)
	assert.Len(t, c.Client.PresetKeywords, 3)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := Config{
		Search:    Search{DefaultCount: "30"},
		Queue:     Queue{Backend: "redis", Key: "mine"},
		RateLimit: RateLimit{RequestsPerMinute: -1, Burst: 3},
	}
	ApplyDefaults(&c)

	assert.Equal(t, "30", c.Search.DefaultCount)
	assert.Equal(t, "redis", c.Queue.Backend)
	assert.Equal(t, "mine", c.Queue.Key)
	assert.Equal(t, -1, c.RateLimit.RequestsPerMinute)
	assert.Equal(t, 3, c.RateLimit.Burst)
}

func TestInitApp_PortFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "8088")
	var c Config
	initApp(&c)
	assert.Equal(t, 8088, c.App.Port)
}

func TestInitApp_DefaultPort(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("PORT", "")
	var c Config
	initApp(&c)
	assert.Equal(t, 10001, c.App.Port)
}

func TestLoadEnvFromFile_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PLANNER_TEST_A=from-file\nPLANNER_TEST_B=from-file\n"), 0o600))

	t.Setenv("PLANNER_TEST_A", "from-env")
	os.Unsetenv("PLANNER_TEST_B")
	t.Cleanup(func() { os.Unsetenv("PLANNER_TEST_B") })

	LoadEnvFromFile(path, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "from-env", os.Getenv("PLANNER_TEST_A"))
	assert.Equal(t, "from-file", os.Getenv("PLANNER_TEST_B"))
}
