// Package filenamecompleter implements the path-walking completer: it
// recognizes when the cursor sits inside a filesystem path fragment,
// resolves that fragment against the working directory or the buffer's
// own directory, and produces one candidate per directory entry.
package filenamecompleter

import (
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/standardbeagle/ycmd-go/internal/candidate"
	"github.com/standardbeagle/ycmd-go/internal/completer"
	"github.com/standardbeagle/ycmd-go/internal/errors"
)

// separatorRun and headPattern are platform-dependent: POSIX only treats
// '/' as a path separator, while Windows accepts both '/' and '\', and
// recognizes drive letters and %VAR% expansion in addition to POSIX's
// "./", "../", "~" and "$VAR" heads.
var (
	separatorRun *regexp.Regexp
	headPattern  string
)

func init() {
	if runtime.GOOS == "windows" {
		separatorRun = regexp.MustCompile(`[/\\]+`)
		headPattern = `\.{1,2}|~|\$[^$]+|[A-Za-z]:|%[^%]+%`
	} else {
		separatorRun = regexp.MustCompile(`/+`)
		headPattern = `\.{1,2}|~|\$[^$]+`
	}
}

func rootSeparator() string {
	if runtime.GOOS == "windows" {
		return `\`
	}
	return "/"
}

// Completer is the C10 filename completer: a filetype blacklist plus a
// flag selecting whether paths resolve against the request's working_dir
// or the directory containing the edited file.
type Completer struct {
	Blacklist     map[string]bool
	UseWorkingDir bool
	settings      completer.Settings
}

// New constructs a filename completer. blacklist maps a filetype (or "*"
// for every filetype) to true when filename completion should never fire
// for it.
func New(blacklist map[string]bool, useWorkingDir bool, settings completer.Settings) *Completer {
	return &Completer{Blacklist: blacklist, UseWorkingDir: useWorkingDir, settings: settings}
}

// SupportedFiletypes is empty: the filename completer applies to every
// filetype except the ones its blacklist excludes.
func (c *Completer) SupportedFiletypes() []string { return nil }

// Settings returns the completer's shared thresholds.
func (c *Completer) Settings() completer.Settings { return c.settings }

// OnEvent is a no-op: the filename completer has no cross-request state.
func (c *Completer) OnEvent(completer.Event) {}

// currentFiletypeCompletionDisabled reports whether the blacklist excludes
// the request, either by naming any one of filetypes directly or via the
// wildcard "*" entry.
func (c *Completer) currentFiletypeCompletionDisabled(filetypes []string) bool {
	if c.Blacklist["*"] {
		return true
	}
	for _, ft := range filetypes {
		if c.Blacklist[ft] {
			return true
		}
	}
	return false
}

// workingDirectory resolves the directory search_path results are relative
// to: the request's own working_dir when UseWorkingDir is set, else the
// parent directory of the edited file; the process's current directory is
// the last-resort fallback either way.
func (c *Completer) workingDirectory(req completer.Request) string {
	if c.UseWorkingDir {
		if req.WorkingDir != "" {
			return req.WorkingDir
		}
	} else if req.FilePath != "" {
		if dir := filepath.Dir(req.FilePath); dir != "" {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// ShouldUseNow fires whenever the current filetype isn't blacklisted and
// the cursor sits inside a recognizable path fragment.
func (c *Completer) ShouldUseNow(req completer.Request) bool {
	if c.currentFiletypeCompletionDisabled(req.Filetypes) {
		return false
	}
	_, _, ok := c.searchPath(req.Prefix(), c.workingDirectory(req))
	return ok
}

// searchPath scans prefix for path-separator runs and returns the
// filesystem path the identifier-completion prefix names, plus the 0-based
// byte offset (just past the last separator) completions should be
// inserted at.
func (c *Completer) searchPath(prefix, workingDir string) (path string, startColumn int, ok bool) {
	seps := separatorRun.FindAllStringIndex(prefix, -1)
	if len(seps) == 0 {
		return "", 0, false
	}

	last := seps[len(seps)-1]
	start := last[0]

	headRegex := c.headRegex(workingDir)

	for i := len(seps) - 2; i >= 0; i-- {
		m := seps[i]

		if loc := headRegex.FindStringIndex(prefix[:m[0]]); loc != nil {
			candidatePath := prefix[loc[0]:start]
			if resolved, ok := c.resolveIfExists(candidatePath, workingDir); ok {
				return resolved, start + 1, true
			}
		}

		rooted := strings.Trim(prefix[m[0]:start], "/\\")
		if rooted != "" {
			if resolved, ok := c.resolveIfExists(rooted, workingDir); ok {
				return resolved, start + 1, true
			}
		}
	}

	if len(seps) == 1 {
		return rootSeparator(), start + 1, true
	}

	return "", 0, false
}

// headRegex builds "(HEAD|entry1|entry2|...)$" from headPattern and the
// working directory's own entries, so a bare directory name standing
// alone in the prefix (e.g. "src" before "src/main") is recognized as the
// start of a path even though it isn't one of the HEAD_PATTERN forms.
func (c *Completer) headRegex(workingDir string) *regexp.Regexp {
	alternatives := []string{headPattern}
	entries, err := os.ReadDir(workingDir)
	if err == nil {
		for _, e := range entries {
			alternatives = append(alternatives, regexp.QuoteMeta(e.Name()))
		}
	}
	return regexp.MustCompile("(?:" + strings.Join(alternatives, "|") + ")$")
}

// resolveIfExists expands environment variables and "~" in candidatePath,
// joins it to workingDir when relative, and reports whether the result
// exists on disk.
func (c *Completer) resolveIfExists(candidatePath, workingDir string) (string, bool) {
	expanded := expandPath(candidatePath)
	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(workingDir, expanded)
	}
	if _, err := os.Stat(expanded); err != nil {
		return "", false
	}
	return expanded, true
}

// expandPath expands a leading "~" to the user's home directory and any
// $NAME (POSIX) or %NAME% (Windows) environment references.
func expandPath(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = home + p[1:]
		}
	}
	if runtime.GOOS == "windows" {
		p = os.Expand(p, func(name string) string { return os.Getenv(name) })
	}
	return os.ExpandEnv(p)
}

// menuInfo classifies dirEntry for the candidate's ExtraMenuInfo tag. The
// filesystem can only ever report one of File/Dir for a single directory
// entry (no symlink-to-both case arises from os.ReadDir), so the
// "&Framework"/"File&Dir" combinations spec.md documents for other ycmd
// completer backends (which probe additional OS-level framework bundle
// conventions) never arise here; this backend has no framework-bundle
// probe, so only the plain File/Dir tags are ever produced.
func menuInfo(entry os.DirEntry) string {
	if entry.IsDir() {
		return "[Dir]"
	}
	return "[File]"
}

// generatePathCandidates lists dir and returns one candidate per entry.
// A read error degrades to an empty candidate list rather than failing
// the whole request, per the TransientFilesystemError taxonomy.
func (c *Completer) generatePathCandidates(dir string) []candidate.Candidate {
	entries, err := os.ReadDir(dir)
	if err != nil {
		_ = errors.NewTransientFilesystem(dir, err)
		return nil
	}

	candidates := make([]candidate.Candidate, 0, len(entries))
	for _, e := range entries {
		if c.entryBlacklistedByGlob(dir, e.Name()) {
			continue
		}
		candidates = append(candidates, candidate.NewWithMenuInfo(e.Name(), menuInfo(e)))
	}
	return candidates
}

// ResolveStartColumn resolves the path fragment at the cursor and returns
// the byte column (within req.CurrentLine) completions for it should be
// inserted at, implementing completer.StartColumnResolver: the path
// fragment's start column need not equal the identifier-grammar start
// column req.StartColumn carries.
func (c *Completer) ResolveStartColumn(req completer.Request) (int, bool) {
	_, startColumn, ok := c.searchPath(req.Prefix(), c.workingDirectory(req))
	return startColumn, ok
}

// ComputeCandidates resolves the path fragment at the cursor and funnels
// the target directory's entries through the generic filter-and-sort
// keyed on the query text remaining after the resolved path fragment.
func (c *Completer) ComputeCandidates(req completer.Request) ([]candidate.Candidate, error) {
	dir, startColumn, ok := c.searchPath(req.Prefix(), c.workingDirectory(req))
	if !ok {
		return nil, nil
	}
	req.StartColumn = startColumn

	raw := c.generatePathCandidates(dir)
	return completer.DefaultComputeCandidates(req.Query(), c.settings.MaxCandidates, func() ([]candidate.Candidate, error) {
		return raw, nil
	})
}

// glob-matches a blacklist pattern shaped like a path glob (e.g.
// "**/vendor/**") against an entry's would-be path under dir. Kept
// separate from currentFiletypeCompletionDisabled's plain filetype-name
// lookup: a blacklist entry containing a glob metacharacter is tested as
// a path pattern instead of an exact filetype match.
func (c *Completer) entryBlacklistedByGlob(dir, name string) bool {
	full := filepath.ToSlash(filepath.Join(dir, name))
	for pattern := range c.Blacklist {
		if !strings.ContainsAny(pattern, "*?[") {
			continue
		}
		if matched, err := doublestar.Match(pattern, full); err == nil && matched {
			return true
		}
	}
	return false
}
