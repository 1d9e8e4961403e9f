// Package export writes collected repository statistics to local snapshot files.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
)

// Supported snapshot formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// filePrefix is prepended to the run date in snapshot file names.
const filePrefix = "dockerhub-repositories-"

// Header is the fixed header row of every snapshot.
var Header = []string{"Repository Name", "Pull Count", "Overview"}

// Writer writes a snapshot of repositories to path.
type Writer interface {
	Write(path string, repositories []*domain.Repository) error
}

// NewWriter returns the Writer for format.
func NewWriter(format string) (Writer, error) {
	switch format {
	case FormatCSV:
		return CSVWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use %q or %q", format, FormatCSV, FormatXLSX)
	}
}

// FileName returns the snapshot path for a run on date, e.g.
// dir/dockerhub-repositories-2024-01-02.csv.
func FileName(dir, format string, date time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s%s.%s", filePrefix, date.Format("2006-01-02"), format))
}
