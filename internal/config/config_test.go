package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	fpath := filepath.Join(t.TempDir(), "sdpcheck.yaml")
	err := os.WriteFile(fpath, []byte(content), 0o644)
	require.NoError(t, err)
	return fpath
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, &Config{
		Dir:         ".",
		Pattern:     "*.sdp",
		Output:      OutputText,
		Color:       true,
		Reconstruct: true,
		LogLevel:    "info",
	}, cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Setenv("SDPCHECK_TEST_DIR", "/srv/sdp")

	cfg, err := Load(writeConfig(t, "dir: ${SDPCHECK_TEST_DIR}/captures\n"+
		"output: yaml\n"+
		"color: false\n"+
		"log_level: debug\n"+
		"content_base: rtsp://10.0.0.1/stream/\n"))
	require.NoError(t, err)

	require.Equal(t, &Config{
		Dir:         "/srv/sdp/captures",
		Pattern:     "*.sdp",
		Output:      OutputYAML,
		Color:       false,
		Reconstruct: true,
		LogLevel:    "debug",
		ContentBase: "rtsp://10.0.0.1/stream/",
	}, cfg)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadEmpty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "colour: true\n"))
	require.ErrorContains(t, err, "field colour not found")

	_, err = Load(writeConfig(t, "reconstruct: [\n"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Pattern = ""
	cfg.Output = "json"
	cfg.LogLevel = "trace"
	cfg.ContentBase = "/relative/path"

	err := cfg.Validate()
	require.EqualError(t, err, "pattern is required\n"+
		"output must be one of: [text yaml]\n"+
		"invalid log_level: trace\n"+
		"invalid content_base: /relative/path")
}

func TestContentBaseURL(t *testing.T) {
	cfg := Default()

	u, err := cfg.ContentBaseURL()
	require.NoError(t, err)
	require.Nil(t, u)

	cfg.ContentBase = "rtsp://10.0.0.1:554/stream/"
	u, err = cfg.ContentBaseURL()
	require.NoError(t, err)
	require.Equal(t, "10.0.0.1:554", u.Host)
	require.Equal(t, "/stream/", u.Path)

	cfg.ContentBase = "rtsp://[::1"
	_, err = cfg.ContentBaseURL()
	require.EqualError(t, err, "invalid content_base: rtsp://[::1")
}
