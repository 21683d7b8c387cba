package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// configFileNames are tried in order in projectRoot; the leading-dot form
// matches ycmd's other per-project dotfiles, the bare form matches the
// teacher's own `.lci.kdl` precedent of keeping config visible.
var configFileNames = []string{".ycmd.kdl", "ycmd.kdl"}

// Load looks for a project config file in projectRoot and parses it,
// falling back to Default() if none of configFileNames exists.
func Load(projectRoot string) (*Config, error) {
	for _, name := range configFileNames {
		path := filepath.Join(projectRoot, name)
		content, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return parseKDL(string(content))
	}
	return Default(), nil
}

func parseKDL(content string) (*Config, error) {
	cfg := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "completion":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "min_num_chars":
					if v, ok := firstIntArg(cn); ok {
						cfg.Completion.MinNumChars = v
					}
				case "max_num_candidates":
					if v, ok := firstIntArg(cn); ok {
						cfg.Completion.MaxNumCandidates = v
					}
				}
			}
		case "filename_completer":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "use_working_dir":
					if b, ok := firstBoolArg(cn); ok {
						cfg.FilenameCompleter.UseWorkingDir = b
					}
				case "blacklist":
					for _, entry := range collectStringArgs(cn) {
						cfg.FilenameCompleter.Blacklist[entry] = true
					}
				}
			}
		case "triggers":
			for _, cn := range n.Children {
				key := nodeName(cn)
				if key == "" {
					continue
				}
				cfg.TriggerOverrides[key] = append(cfg.TriggerOverrides[key], collectStringArgs(cn)...)
			}
		case "identifier_overrides":
			for _, cn := range n.Children {
				filetype := nodeName(cn)
				if s, ok := firstStringArg(cn); ok {
					cfg.IdentifierOverrides[filetype] = s
				}
			}
		case "lsp_servers":
			for _, cn := range n.Children {
				filetype := nodeName(cn)
				if filetype == "" {
					continue
				}
				server := LSPServer{}
				for _, sn := range cn.Children {
					switch nodeName(sn) {
					case "command":
						if s, ok := firstStringArg(sn); ok {
							server.Command = s
						}
					case "args":
						server.Args = collectStringArgs(sn)
					}
				}
				if server.Command != "" {
					cfg.LSPServers[filetype] = server
				}
			}
		}
	}

	return cfg, nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

// collectStringArgs gathers a node's string values, whether given inline
// (`blacklist "a" "b"`) or as a block of child nodes whose own names are
// the string values (`blacklist { "a"; "b" }`).
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}

	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				out = append(out, child.Name.NodeNameString())
			}
		}
	}

	return out
}
