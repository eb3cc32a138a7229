package corpus

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/slok/navcorpus/internal/model"
)

// FileInfo is the structured result of parsing a task filename. Filenames
// follow `<type>_<sibling-key>_<descriptive-suffix>.<ext>`.
type FileInfo struct {
	Type       model.TaskType
	SiblingKey string
	Stem       string
}

// ParseFilename parses a task filename into its type, sibling key and stem.
// This is the single filename-grammar parser shared by every component.
func ParseFilename(name string) (FileInfo, error) {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	parts := strings.SplitN(stem, "_", 3)
	if len(parts) < 2 {
		return FileInfo{}, fmt.Errorf("filename %q does not follow the task grammar: %w", base, model.ErrNotValid)
	}

	taskType := model.TaskType(parts[0])
	if !taskType.Valid() {
		return FileInfo{}, fmt.Errorf("filename %q has unknown task type prefix %q: %w", base, parts[0], model.ErrNotValid)
	}

	if parts[1] == "" {
		return FileInfo{}, fmt.Errorf("filename %q has empty sibling key: %w", base, model.ErrNotValid)
	}

	return FileInfo{
		Type:       taskType,
		SiblingKey: parts[1],
		Stem:       stem,
	}, nil
}

// SiblingFilename rewrites a task filename's type prefix, keeping the rest of
// the name identical. This is the pairing convention between type families
// (e.g. dis_0007_x.json -> angle_0007_x.json).
func SiblingFilename(name string, to model.TaskType) (string, error) {
	base := filepath.Base(name)

	if _, err := ParseFilename(base); err != nil {
		return "", err
	}

	idx := strings.Index(base, "_")
	return string(to) + base[idx:], nil
}
