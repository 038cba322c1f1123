package sink

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Alia5/synthgen/internal/codegen/common"
)

// FileStatus is the outcome of syncing one artifact to disk.
type FileStatus int

const (
	FileStatusInvalid FileStatus = iota
	FileStatusUnchanged
	FileStatusCreated
	FileStatusUpdated
)

var fileStatusValueMap = map[FileStatus]string{
	FileStatusUnchanged: "unchanged",
	FileStatusCreated:   "created",
	FileStatusUpdated:   "updated",
}

func (s FileStatus) String() string {
	v, ok := fileStatusValueMap[s]
	if !ok {
		return fmt.Sprintf("invalid(%d)", s)
	}
	return v
}

// FileResult describes one synced artifact.
type FileResult struct {
	Path   string
	Status FileStatus
	Sum    string
}

// Stale reports whether the file on disk differs from the artifact.
func (r FileResult) Stale() bool {
	return r.Status == FileStatusCreated || r.Status == FileStatusUpdated
}

// Path returns where an artifact is written: next to its declaration, or in
// fallbackDir when the declaration file is unknown.
func Path(a Artifact, fallbackDir string) string {
	dir := fallbackDir
	if a.File != "" {
		dir = filepath.Dir(a.File)
	}
	return filepath.Join(dir, a.FileName())
}

// Sync writes artifacts whose content differs from what is on disk. With
// dryRun set nothing is written and the results report what would change.
func Sync(artifacts []Artifact, fallbackDir string, dryRun bool) ([]FileResult, error) {
	results := make([]FileResult, 0, len(artifacts))
	for _, a := range artifacts {
		res, err := syncOne(a, Path(a, fallbackDir), dryRun)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func syncOne(a Artifact, path string, dryRun bool) (FileResult, error) {
	res := FileResult{Path: path, Sum: a.Sum()}

	existing, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		res.Status = FileStatusCreated
	case err != nil:
		return res, fmt.Errorf("read %s: %w", path, err)
	case bytes.Equal(existing, a.Source):
		res.Status = FileStatusUnchanged
		return res, nil
	default:
		res.Status = FileStatusUpdated
	}

	if dryRun {
		return res, nil
	}
	if err := os.WriteFile(path, a.Source, 0o644); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	return res, nil
}

// WriteLog writes the log artifacts of several passes to path, ordered by
// pass name and each preceded by a "== <name> ==" heading.
func WriteLog(path string, outs map[string]Output) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}

	var buf bytes.Buffer
	for _, name := range common.SortedStringKeys(outs) {
		fmt.Fprintf(&buf, "== %s ==\n", name)
		if src := outs[name].Log.Source; len(src) > 0 {
			buf.Write(src)
			buf.WriteByte('\n')
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
