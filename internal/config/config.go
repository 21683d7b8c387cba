// Package config implements the project configuration the completion
// backend loads at startup: completer thresholds, the filename
// completer's blacklist and working-directory policy, per-filetype
// trigger and identifier-grammar overrides, and the LSP subserver
// command line to spawn for each filetype it covers.
package config

// Completion holds the thresholds every Completer's default algorithms
// read (internal/completer.Settings is built from these).
type Completion struct {
	MinNumChars      int
	MaxNumCandidates int
}

// FilenameCompleter holds the C10 filename completer's own policy knobs.
type FilenameCompleter struct {
	Blacklist     map[string]bool
	UseWorkingDir bool
}

// LSPServer is one filetype's language server command line.
type LSPServer struct {
	Command string
	Args    []string
}

// Config is the fully resolved project configuration: defaults merged
// with whatever a project's ycmd.kdl / .ycmd.kdl overrides.
type Config struct {
	Completion        Completion
	FilenameCompleter FilenameCompleter

	// TriggerOverrides maps a comma-separated filetype key to its list of
	// trigger strings, the same input shape trigger.ParseTriggers expects.
	TriggerOverrides map[string][]string

	// IdentifierOverrides maps a filetype to a replacement identifier
	// grammar regex, installed via identifier.RegisterOverride at startup.
	IdentifierOverrides map[string]string

	// LSPServers maps a filetype to the language server command line to
	// spawn for it.
	LSPServers map[string]LSPServer
}

// Default returns the configuration used when no project config file is
// present.
func Default() *Config {
	return &Config{
		Completion: Completion{
			MinNumChars:      0,
			MaxNumCandidates: 50,
		},
		FilenameCompleter: FilenameCompleter{
			Blacklist:     map[string]bool{},
			UseWorkingDir: false,
		},
		TriggerOverrides:    map[string][]string{},
		IdentifierOverrides: map[string]string{},
		LSPServers:          map[string]LSPServer{},
	}
}
