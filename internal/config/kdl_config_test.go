package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKDLDefaultsOnEmptyInput(t *testing.T) {
	cfg, err := parseKDL("")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default().Completion, cfg.Completion)
}

func TestParseKDLCompletionThresholds(t *testing.T) {
	cfg, err := parseKDL(`
completion {
    min_num_chars 2
    max_num_candidates 25
}
`)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Completion.MinNumChars)
	assert.Equal(t, 25, cfg.Completion.MaxNumCandidates)
}

func TestParseKDLFilenameCompleterBlock(t *testing.T) {
	cfg, err := parseKDL(`
filename_completer {
    use_working_dir true
    blacklist "rust" "markdown"
}
`)
	require.NoError(t, err)
	assert.True(t, cfg.FilenameCompleter.UseWorkingDir)
	assert.True(t, cfg.FilenameCompleter.Blacklist["rust"])
	assert.True(t, cfg.FilenameCompleter.Blacklist["markdown"])
}

func TestParseKDLTriggerOverrides(t *testing.T) {
	cfg, err := parseKDL(`
triggers {
    "c,cpp" "." "->"
    rust "."
}
`)
	require.NoError(t, err)
	assert.Equal(t, []string{".", "->"}, cfg.TriggerOverrides["c,cpp"])
	assert.Equal(t, []string{"."}, cfg.TriggerOverrides["rust"])
}

func TestParseKDLIdentifierOverrides(t *testing.T) {
	cfg, err := parseKDL(`
identifier_overrides {
    mylang "[a-z]+"
}
`)
	require.NoError(t, err)
	assert.Equal(t, "[a-z]+", cfg.IdentifierOverrides["mylang"])
}

func TestParseKDLLSPServers(t *testing.T) {
	cfg, err := parseKDL(`
lsp_servers {
    go {
        command "gopls"
        args "serve"
    }
    rust {
        command "rust-analyzer"
    }
}
`)
	require.NoError(t, err)
	require.Contains(t, cfg.LSPServers, "go")
	assert.Equal(t, "gopls", cfg.LSPServers["go"].Command)
	assert.Equal(t, []string{"serve"}, cfg.LSPServers["go"].Args)
	assert.Equal(t, "rust-analyzer", cfg.LSPServers["rust"].Command)
}

func TestLoadFallsBackToDefaultWhenNoConfigFilePresent(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Completion, cfg.Completion)
}

func TestLoadReadsDotYcmdKDL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".ycmd.kdl"), []byte(`
completion {
    min_num_chars 3
}
`), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Completion.MinNumChars)
}
