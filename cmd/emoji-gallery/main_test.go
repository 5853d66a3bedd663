package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emoji-gallery/internal/config"
	"emoji-gallery/internal/files"
)

func newInitCmd(out *bytes.Buffer, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "init"}
	cmd.Flags().Bool("debug", false, "")
	cmd.SetOut(out)
	_ = cmd.Flags().Parse(args)
	return cmd
}

func TestRunInitWritesConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "emoji-gallery", "config.yaml")
	opts := options{configPath: p, emojiDir: "/srv/emoji", listen: "0.0.0.0:8080", debug: true}

	var out bytes.Buffer
	require.NoError(t, runInit(newInitCmd(&out, "--debug"), opts, false))
	assert.Contains(t, out.String(), p)

	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/srv/emoji", cfg.EmojiDir)
	assert.Equal(t, "0.0.0.0:8080", cfg.APIListen)
	assert.True(t, cfg.Debug)
	assert.Equal(t, config.DefaultScanTimeout, cfg.ScanTimeout)
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	var out bytes.Buffer

	require.NoError(t, runInit(newInitCmd(&out), options{configPath: p, emojiDir: "/first"}, false))

	err := runInit(newInitCmd(&out), options{configPath: p, emojiDir: "/second"}, false)
	require.ErrorIs(t, err, config.ErrExists)
	cfg, err := config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/first", cfg.EmojiDir)

	require.NoError(t, runInit(newInitCmd(&out), options{configPath: p, emojiDir: "/second"}, true))
	cfg, err = config.Load(p)
	require.NoError(t, err)
	assert.Equal(t, "/second", cfg.EmojiDir)
}

func TestScanSummary(t *testing.T) {
	idx := files.Group([]files.ImageEntry{
		{Name: "a.png", Path: "a.png", Size: 1000},
		{Name: "b.jpg", Path: "sub/b.jpg", Size: 1500},
		{Name: "c.gif", Path: "sub/c.gif", Size: 500},
	})

	assert.Equal(t, "3 images in 2 groups, 3.0 kB", scanSummary(idx))
	assert.Equal(t, "0 images in 0 groups, 0 B", scanSummary(files.Group(nil)))
}
