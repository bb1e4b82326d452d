package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/litedoc/litedoc/config"
	"github.com/litedoc/litedoc/extractor/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emitterConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig
	cfg.InputRoot = t.TempDir()
	cfg.OutputRoot = t.TempDir()
	cfg.Symbols = map[string]bool{"NETFRAMEWORK": false, "DOCS": true}
	cfg.Workers = 2
	return &cfg
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

const documented = "/*md\n * A documented sample.\n */\nvar x = 1;\n"

func TestEmitter_MirrorsTreeAndWritesDocuments(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Basics/Intro.cs", documented)
	writeSource(t, cfg.InputRoot, "Advanced/Nested/Deep.cs", documented)
	writeSource(t, cfg.InputRoot, "Empty/Marker.cs", "/*md*/\n")

	report, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Written())
	assert.Equal(t, 0, report.Errors())

	content, err := os.ReadFile(filepath.Join(cfg.OutputRoot, "Basics/Intro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "A documented sample.")
	assert.Contains(t, string(content), "```csharp\nvar x = 1;\n```")

	_, err = os.Stat(filepath.Join(cfg.OutputRoot, "Advanced/Nested/Deep.md"))
	assert.NoError(t, err)

	// An empty documentation block still forces a document.
	_, err = os.Stat(filepath.Join(cfg.OutputRoot, "Empty/Marker.md"))
	assert.NoError(t, err)
}

func TestEmitter_SkipsFilesWithoutDocBlocks(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Inert.cs", "var x = 1;\nvar y = 2;\n")

	report, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Written())
	assert.Equal(t, 1, report.NoDocs())

	_, err = os.Stat(filepath.Join(cfg.OutputRoot, "Inert.md"))
	assert.True(t, os.IsNotExist(err))
}

func TestEmitter_StructuralErrorIsIsolated(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Good.cs", documented)
	writeSource(t, cfg.InputRoot, "Bad.cs", "/*md\n * never closed\n")

	report, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written())
	assert.Equal(t, 1, report.Errors())

	var bad *models.FileReport
	for _, f := range report.Files() {
		if f.RelativePath == "Bad.cs" {
			bad = &f
			break
		}
	}
	require.NotNil(t, bad)
	require.NotNil(t, bad.Err)
	assert.Contains(t, bad.Err.Reason, "unterminated")
}

func TestEmitter_UnknownSymbolAbortsBeforeProcessing(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Good.cs", documented)
	writeSource(t, cfg.InputRoot, "Gated.cs", "/*md gated */\n#if MYSTERY\nx();\n#endif\n")

	_, err := NewEmitter(cfg).Run(context.Background())
	require.Error(t, err)
	_, ok := err.(*models.ConfigError)
	assert.True(t, ok)
	assert.Contains(t, err.Error(), "MYSTERY")

	// Nothing may be written when configuration is rejected.
	entries, readErr := os.ReadDir(cfg.OutputRoot)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestEmitter_UnreadableInputRootIsConfigError(t *testing.T) {
	cfg := emitterConfig(t)
	cfg.InputRoot = filepath.Join(cfg.InputRoot, "does-not-exist")

	_, err := NewEmitter(cfg).Run(context.Background())
	require.Error(t, err)
	_, ok := err.(*models.ConfigError)
	assert.True(t, ok)
}

func TestEmitter_IdempotentAcrossRuns(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Basics/Intro.cs", documented)
	writeSource(t, cfg.InputRoot, "Callouts.cs", strings.Join([]string{
		"/*md Calls. */",
		"Connect(); // <1>",
		"/*md",
		" * 1. opens the connection",
		" */",
	}, "\n")+"\n")

	first, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)
	second, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)

	digests := func(r *models.RunReport) map[string]uint64 {
		out := map[string]uint64{}
		for _, f := range r.Files() {
			out[f.RelativePath] = f.Digest
		}
		return out
	}
	assert.Equal(t, digests(first), digests(second))
}

func TestEmitter_OverwritesStaleOutput(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Intro.cs", documented)

	stale := filepath.Join(cfg.OutputRoot, "Intro.md")
	require.NoError(t, os.WriteFile(stale, []byte("stale content\n"), 0644))

	_, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)

	content, err := os.ReadFile(stale)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "stale content")
	assert.Contains(t, string(content), "A documented sample.")
}

func TestEmitter_DryRunWritesNothing(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, "Intro.cs", documented)

	em := NewEmitter(cfg)
	em.DryRun = true
	report, err := em.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written())
	assert.NotZero(t, report.Files()[0].Digest)

	entries, err := os.ReadDir(cfg.OutputRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEmitter_HonorsIgnorePatterns(t *testing.T) {
	cfg := emitterConfig(t)
	writeSource(t, cfg.InputRoot, ".litedoc-ignore", "Generated/*\n")
	writeSource(t, cfg.InputRoot, "Generated/Skipped.cs", documented)
	writeSource(t, cfg.InputRoot, "Kept.cs", documented)

	report, err := NewEmitter(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.Written())

	_, err = os.Stat(filepath.Join(cfg.OutputRoot, "Generated/Skipped.md"))
	assert.True(t, os.IsNotExist(err))
}
