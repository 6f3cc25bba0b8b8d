package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localserve/internal/config"
)

// execute はrunを差し替えたコマンドを実行し、渡された設定を返す
func execute(t *testing.T, args ...string) (*config.Config, string, string, error) {
	t.Helper()

	var got *config.Config
	cmd := newRootCommand(func(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
		got = cfg
		return nil
	})

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	// nilのままだとos.Argsのテスト用フラグを読んでしまう
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return got, stdout.String(), stderr.String(), err
}

func TestNoArgumentsUsesDefaults(t *testing.T) {
	cfg, _, _, err := execute(t)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, config.DefaultPort, cfg.Server.Port)
	assert.Equal(t, config.DefaultMaxTries, cfg.Server.MaxTries)
	assert.Equal(t, "", cfg.Server.Host)
	assert.True(t, cfg.Browser.Open)
	assert.Equal(t, "auto", cfg.Log.Color)
	assert.NotEmpty(t, cfg.Static.Root)
}

func TestFlagsOverrideConfig(t *testing.T) {
	root := t.TempDir()

	cfg, _, _, err := execute(t,
		"--port", "9000",
		"--tries", "3",
		"--host", "127.0.0.1",
		"--root", root,
		"--no-browser",
		"--log-level", "debug",
		"--color", "never",
	)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Server.MaxTries)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, root, cfg.Static.Root)
	assert.False(t, cfg.Browser.Open)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "never", cfg.Log.Color)
}

func TestPrintConfig(t *testing.T) {
	cfg, stdout, _, err := execute(t, "--print-config", "--port", "8123")
	require.NoError(t, err)

	assert.Nil(t, cfg, "--print-config では配信しない")
	assert.Contains(t, stdout, "port: 8123")
	assert.Contains(t, stdout, "default_entry: index-mejorado.html")
}

func TestInvalidFlagValueIsRejected(t *testing.T) {
	cfg, _, stderr, err := execute(t, "--port", "70000")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, stderr, "設定の検証に失敗")
}

func TestUnknownFlag(t *testing.T) {
	_, _, stderr, err := execute(t, "--bogus")
	assert.Error(t, err)
	assert.Contains(t, stderr, "bogus")
}

func TestPositionalArgumentsRejected(t *testing.T) {
	cfg, _, stderr, err := execute(t, "extra")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.NotEmpty(t, stderr)
}

func TestRunErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	cmd := newRootCommand(func(context.Context, *cobra.Command, *config.Config) error { return boom })
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.ErrorIs(t, cmd.ExecuteContext(context.Background()), boom)
}
