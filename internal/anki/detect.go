package anki

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/flashdeck/flashdeck/internal/errors"
)

// Format classifies an import source.
type Format int

const (
	// FormatPackage is a .apkg binary package.
	FormatPackage Format = iota
	// FormatCSV is a comma-separated text file.
	FormatCSV
	// FormatAnkiText is a tab- or semicolon-separated text export.
	FormatAnkiText
)

// DetectFormat inspects a file's extension first, then falls back to
// sniffing the content for a tab or semicolon delimiter. A file matching
// neither fails with UNKNOWN_FORMAT.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".apkg":
		return FormatPackage, nil
	case ".csv":
		return FormatCSV, nil
	case ".txt", ".tsv":
		return FormatAnkiText, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.NewIOError("read import file", err)
	}
	if strings.ContainsAny(string(content), "\t;") {
		return FormatAnkiText, nil
	}
	return 0, errors.NewUnknownFormatError(path)
}
