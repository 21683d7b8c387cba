package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0, cfg.Completion.MinNumChars)
	assert.Equal(t, 50, cfg.Completion.MaxNumCandidates)
	assert.False(t, cfg.FilenameCompleter.UseWorkingDir)
	assert.Empty(t, cfg.FilenameCompleter.Blacklist)
	assert.Empty(t, cfg.TriggerOverrides)
	assert.Empty(t, cfg.IdentifierOverrides)
	assert.Empty(t, cfg.LSPServers)
}
