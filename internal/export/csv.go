package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
)

// CSVWriter writes UTF-8 CSV snapshots, replacing any existing file.
type CSVWriter struct{}

func (CSVWriter) Write(path string, repositories []*domain.Repository) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("failed to write header to %s: %w", path, err)
	}
	for _, repo := range repositories {
		if err := w.Write([]string{repo.Name, strconv.Itoa(repo.PullCount), repo.Overview}); err != nil {
			return fmt.Errorf("failed to write %s to %s: %w", repo.Name, path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return file.Close()
}
