// Package request implements SimpleRequest, the per-call editor state
// (buffer contents, cursor position, filetypes) and the accessors derived
// from it that the rest of the completion pipeline consumes.
package request

import (
	"github.com/standardbeagle/ycmd-go/internal/errors"
	"github.com/standardbeagle/ycmd-go/internal/identifier"
)

// FileData is the editor's view of one open buffer: its filetypes (most
// specific first) and its full contents.
type FileData struct {
	Filetypes []string `json:"filetypes"`
	Contents  string   `json:"contents"`
}

// SimpleRequest is the parsed form of one editor completion call.
// LineNum and ColumnNum are both 1-based, matching the wire protocol; every
// derived accessor below converts to the 0-based byte offsets the rest of
// the pipeline works in.
type SimpleRequest struct {
	LineNum         int                 `json:"line_num"`
	ColumnNum       int                 `json:"column_num"`
	FilePath        string              `json:"filepath"`
	FileData        map[string]FileData `json:"file_data"`
	WorkingDir      string              `json:"working_dir,omitempty"`
	CompleterTarget string              `json:"completer_target,omitempty"`
	ExtraConfData   map[string]any      `json:"extra_conf_data,omitempty"`
}

// file returns the FileData entry for r.FilePath, or a MalformedRequest
// error if the editor never sent it.
func (r SimpleRequest) file() (FileData, error) {
	fd, ok := r.FileData[r.FilePath]
	if !ok {
		return FileData{}, errors.NewMalformedRequest("filepath not present in file_data: " + r.FilePath)
	}
	return fd, nil
}

// Lines splits the current file's contents into lines using the same rule
// as a line-oriented text API: \n and \r\n both terminate a line, a
// trailing newline does not produce a trailing empty line, and a lone
// trailing partial line without a newline is still returned.
func Lines(contents string) []string {
	if contents == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(contents); i++ {
		if contents[i] != '\n' {
			continue
		}
		line := contents[start:i]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		lines = append(lines, line)
		start = i + 1
	}
	if start < len(contents) {
		lines = append(lines, contents[start:])
	}
	return lines
}

// LineValue returns the text of r.LineNum (1-based).
func (r SimpleRequest) LineValue() (string, error) {
	fd, err := r.file()
	if err != nil {
		return "", err
	}

	lines := Lines(fd.Contents)
	if r.LineNum < 1 || r.LineNum > len(lines) {
		return "", errors.NewMalformedRequest("line_num out of range")
	}
	return lines[r.LineNum-1], nil
}

// Filetypes returns the current file's filetype list, or nil if unknown.
func (r SimpleRequest) Filetypes() []string {
	fd, err := r.file()
	if err != nil {
		return nil
	}
	return fd.Filetypes
}

// FirstFiletype returns the first entry of Filetypes, or "" if there is
// none.
func (r SimpleRequest) FirstFiletype() string {
	ft := r.Filetypes()
	if len(ft) == 0 {
		return ""
	}
	return ft[0]
}

// StartColumn returns the byte offset of the start of the identifier
// ending at the cursor, under the current file's effective filetype
// grammar.
func (r SimpleRequest) StartColumn() (int, error) {
	line, err := r.LineValue()
	if err != nil {
		return 0, err
	}
	if r.ColumnNum < 1 || r.ColumnNum > len(line)+1 {
		return 0, errors.NewMalformedRequest("column_num out of range")
	}
	return identifier.StartOfLongestIdentifierEndingAtIndex(line, r.ColumnNum-1, r.FirstFiletype()), nil
}

// Query returns the text between StartColumn and the cursor: the partial
// identifier the editor is asking completions for.
func (r SimpleRequest) Query() (string, error) {
	line, err := r.LineValue()
	if err != nil {
		return "", err
	}
	start, err := r.StartColumn()
	if err != nil {
		return "", err
	}
	return line[start : r.ColumnNum-1], nil
}

// Prefix returns the text of the current line before StartColumn.
func (r SimpleRequest) Prefix() (string, error) {
	line, err := r.LineValue()
	if err != nil {
		return "", err
	}
	start, err := r.StartColumn()
	if err != nil {
		return "", err
	}
	return line[:start], nil
}
