package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCmd_Use(t *testing.T) {
	assert.Equal(t, "build [source]", buildCmd.Use)
}

func TestBuildCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"build"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestBuildCmd_HasMaxDFFlag(t *testing.T) {
	flag := buildCmd.Flags().Lookup("max-df")
	require.NotNil(t, flag)
}

func TestBuildCmd_PrintsBuildSummary(t *testing.T) {
	stubs, cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"build", "gdpr.txt"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "gdpr.txt", stubs.build.lastSource)
	assert.Contains(t, buf.String(), "Build build-1 complete.")
	assert.Contains(t, buf.String(), "Articles:    3")
	assert.Contains(t, buf.String(), "Chunks:      5")
	assert.Contains(t, buf.String(), "Vocabulary:  42 terms")
}

func TestBuildCmd_BuildFailure(t *testing.T) {
	stubs, cleanup := setupTestServices()
	defer cleanup()
	stubs.build.err = errors.New("no extractor for \".docx\"")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"build", "document.docx"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "build failed")
}
