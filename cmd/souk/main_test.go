package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newFlagContext(t *testing.T, set func(*flag.FlagSet)) *cli.Context {
	t.Helper()
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	set(flags)
	return cli.NewContext(cli.NewApp(), flags, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	tests := []struct {
		level   string
		wantErr bool
	}{
		{"debug", false},
		{"info", false},
		{"warn", false},
		{"error", false},
		{"WARN", false},
		{"verbose", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			c := newFlagContext(t, func(flags *flag.FlagSet) {
				flags.String("log-level", tt.level, "")
			})
			err := setupLogger(c)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildFuserPresets(t *testing.T) {
	for _, category := range []string{"product", "service", "mutual"} {
		c := newFlagContext(t, func(flags *flag.FlagSet) {
			flags.String("category", category, "")
			flags.String("weights", "", "")
			flags.Float64("k", 60, "")
		})
		fuser, err := buildFuser(c)
		require.NoError(t, err, category)
		assert.NotNil(t, fuser)
	}

	c := newFlagContext(t, func(flags *flag.FlagSet) {
		flags.String("category", "barter", "")
		flags.String("weights", "", "")
		flags.Float64("k", 60, "")
	})
	_, err := buildFuser(c)
	assert.ErrorContains(t, err, "unknown category")
}

func TestBuildFuserFromWeightsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  product:\n    dense: 1.0\n"), 0o644))

	c := newFlagContext(t, func(flags *flag.FlagSet) {
		flags.String("category", "product", "")
		flags.String("weights", path, "")
		flags.Float64("k", 60, "")
	})
	fuser, err := buildFuser(c)
	require.NoError(t, err)
	assert.NotNil(t, fuser)
}

func TestLoadListing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"intent": 1, "subintent": 1, "items": [{"type": "phone"}]}`), 0o644))

	listing, err := loadListing(path)
	require.NoError(t, err)
	assert.Len(t, listing.Items, 1)

	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	_, err = loadListing(path)
	assert.Error(t, err)

	_, err = loadListing(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
