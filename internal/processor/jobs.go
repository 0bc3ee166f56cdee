// Package processor runs batches of configured conversions.
package processor

import (
	"fmt"

	"github.com/woozymasta/geojson2poly/internal/config"
	"github.com/woozymasta/geojson2poly/internal/converter"

	"github.com/rs/zerolog/log"
)

// Result counts the outcome of a batch.
type Result struct {
	Succeeded int
	Failed    int
}

// ProcessJobs converts every job in order. A failing job is logged and
// does not stop the following ones; the returned error reports how many failed.
func ProcessJobs(jobs []config.Job) (Result, error) {
	var res Result

	for _, job := range jobs {
		format := converter.Format(job.Format)
		if format == "" {
			format = converter.FormatFromPath(job.Input)
		}

		log.Debug().
			Str("job", job.Name).
			Str("input", job.Input).
			Str("format", string(format)).
			Msg("Processing job")

		if _, err := converter.ConvertFile(job.Input, job.Output, format); err != nil {
			log.Error().Err(err).Str("job", job.Name).Msg("Failed to convert")
			res.Failed++
			continue
		}
		res.Succeeded++
	}

	if res.Failed > 0 {
		return res, fmt.Errorf("%d of %d jobs failed", res.Failed, len(jobs))
	}

	return res, nil
}

// FilterJobs keeps the jobs named in names, in the order requested.
// Unknown and repeated names are skipped; an empty list keeps all jobs.
func FilterJobs(jobs []config.Job, names []string) []config.Job {
	if len(names) == 0 {
		return jobs
	}

	available := make(map[string]config.Job, len(jobs))
	for _, j := range jobs {
		available[j.Name] = j
	}

	seen := make(map[string]bool)
	filtered := make([]config.Job, 0, len(names))

	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if j, ok := available[name]; ok {
			filtered = append(filtered, j)
		} else {
			log.Error().
				Str("name", name).
				Msg("Job specified in --limit not found in configuration")
		}
	}

	return filtered
}
