package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type detectFunc func(ctx context.Context, repository selfupdate.Repository) (*selfupdate.Release, bool, error)

// stubUpdate pins the running version and replaces the release lookup for one test.
func stubUpdate(t *testing.T, version, slug string, detect detectFunc) {
	t.Helper()
	originalVersion, originalSlug, originalDetect := rootCmd.Version, githubRepoSlug, detectLatest
	rootCmd.Version, githubRepoSlug, detectLatest = version, slug, detect
	t.Cleanup(func() {
		rootCmd.Version, githubRepoSlug, detectLatest = originalVersion, originalSlug, originalDetect
	})
}

func TestSelfUpdateCommand_Definition(t *testing.T) {
	c := newSelfUpdateCmd()

	assert.Equal(t, "self-update", c.Use)
	assert.NotEmpty(t, c.Short)
	assert.NotNil(t, c.RunE)
	assert.Error(t, c.Args(c, []string{"extra"}))
	assert.Equal(t, "fixturectl/fixturectl", githubRepoSlug)
}

func TestRunSelfUpdate_RefusesDevelopmentVersions(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{name: "dev build", version: "dev"},
		{name: "unset version", version: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			stubUpdate(t, tt.version, githubRepoSlug, func(context.Context, selfupdate.Repository) (*selfupdate.Release, bool, error) {
				called = true
				return nil, false, nil
			})

			err := runSelfUpdate(nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "cannot self-update a development version")
			assert.False(t, called, "no release lookup for development versions")
		})
	}
}

func TestRunSelfUpdate_LookupFailures(t *testing.T) {
	lookupErr := errors.New("rate limited")

	tests := []struct {
		name      string
		slug      string
		found     bool
		err       error
		wantErrIs error
		wantText  string
	}{
		{
			name:     "no release published",
			slug:     "example/missing",
			wantText: "latest version for example/missing could not be found",
		},
		{
			name:      "lookup error",
			slug:      "example/broken",
			err:       lookupErr,
			wantErrIs: lookupErr,
			wantText:  "error occurred while detecting version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubUpdate(t, "v1.2.3", tt.slug, func(context.Context, selfupdate.Repository) (*selfupdate.Release, bool, error) {
				return nil, tt.found, tt.err
			})

			var buf bytes.Buffer
			c := newSelfUpdateCmd()
			c.SetOut(&buf)

			err := runSelfUpdate(c, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantText)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			}
			assert.Contains(t, buf.String(), "Current version: v1.2.3")
			assert.Contains(t, buf.String(), "Checking for updates...")
		})
	}
}

func TestRunSelfUpdate_ContextFallback(t *testing.T) {
	type ctxKey struct{}

	tests := []struct {
		name    string
		cmd     func() *cobra.Command
		wantKey bool
	}{
		{name: "nil command", cmd: func() *cobra.Command { return nil }},
		{name: "command without context", cmd: func() *cobra.Command {
			c := newSelfUpdateCmd()
			c.SetOut(&bytes.Buffer{})
			return c
		}},
		{name: "command context", wantKey: true, cmd: func() *cobra.Command {
			c := newSelfUpdateCmd()
			c.SetOut(&bytes.Buffer{})
			c.SetContext(context.WithValue(context.Background(), ctxKey{}, true))
			return c
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got context.Context
			stubUpdate(t, "v1.2.3", githubRepoSlug, func(ctx context.Context, _ selfupdate.Repository) (*selfupdate.Release, bool, error) {
				got = ctx
				return nil, false, nil
			})

			_ = runSelfUpdate(tt.cmd(), nil)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantKey, got.Value(ctxKey{}) != nil)
		})
	}
}

func TestSelfUpdateCommand_HelpUsesCommandOutput(t *testing.T) {
	out, err := execute(t, []string{"--help"}, newSelfUpdateCmd)
	require.NoError(t, err)

	assert.Contains(t, out, "Checks for the latest release of fixturectl")
	assert.Contains(t, out, "self-update")
}
