package usecase

import (
	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/dockerhub-pulls/internal/domain"
)

// Summary describes the pull counts of one collection run.
type Summary struct {
	Repositories int
	TotalPulls   int
	MedianPulls  float64
	MaxPulls     int
}

// Summarize computes the pull count summary of repositories.
func Summarize(repositories []*domain.Repository) Summary {
	if len(repositories) == 0 {
		return Summary{}
	}
	counts := make([]int, 0, len(repositories))
	for _, repo := range repositories {
		counts = append(counts, repo.PullCount)
	}
	data := stats.LoadRawData(counts)

	// stats only fails on empty input, which is excluded above.
	total, _ := data.Sum()
	median, _ := data.Median()
	highest, _ := data.Max()

	return Summary{
		Repositories: len(repositories),
		TotalPulls:   int(total),
		MedianPulls:  median,
		MaxPulls:     int(highest),
	}
}
