// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be surfaced
	// to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation/lint finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "split.test_year"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// ValidatePipeline performs static validation / linting of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values.
// Callers may decide whether to treat warnings as fatal or not.
//
// Example:
//
//	p, err := config.Load(path)
//	if err != nil { ... }
//	issues := config.ValidatePipeline(p)
//	for _, iss := range issues {
//	    fmt.Printf("%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	// Top-level pipeline checks.
	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateInputs(p.Inputs)...)
	issues = append(issues, validateFilter(p.Filter)...)
	issues = append(issues, validateDates(p.Dates)...)
	issues = append(issues, validateSplit(p.Split)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateMetrics(p.Metrics)...)
	issues = append(issues, validateRuntime(p.Runtime)...)

	return issues
}

// validateInputs validates the input file locations.
func validateInputs(in Inputs) []Issue {
	var issues []Issue

	if strings.TrimSpace(in.Matches) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "inputs.matches",
			Message:  "inputs.matches must not be empty",
		})
	}
	if strings.TrimSpace(in.Tournaments) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "inputs.tournaments",
			Message:  "inputs.tournaments must not be empty",
		})
	}

	return issues
}

// validateFilter validates the tournament qualification rule.
func validateFilter(f Filter) []Issue {
	var issues []Issue

	// An empty substring matches every tournament name; that is a legal
	// Contains call but almost certainly a misconfiguration.
	if f.NameContains == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "filter.name_contains",
			Message:  "empty name_contains matches every tournament; no filtering will occur",
		})
	}

	return issues
}

// validateDates validates date-coercion settings.
func validateDates(d Dates) []Issue {
	var issues []Issue

	if strings.TrimSpace(d.Layout) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "dates.layout",
			Message:  "dates.layout must not be empty; match_date cannot be parsed without a layout",
		})
	}

	return issues
}

// validateSplit validates the partition year boundaries.
func validateSplit(s Split) []Issue {
	var issues []Issue

	if s.TrainFromYear > s.TrainToYear {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "split.train_from_year",
			Message: fmt.Sprintf("train range is empty: from=%d > to=%d",
				s.TrainFromYear, s.TrainToYear),
		})
	}
	if s.TestYear >= s.TrainFromYear && s.TestYear <= s.TrainToYear {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "split.test_year",
			Message: fmt.Sprintf("test_year=%d falls inside the train range [%d, %d]; partitions must be disjoint",
				s.TestYear, s.TrainFromYear, s.TrainToYear),
		})
	}

	return issues
}

// validateStorage validates storage configuration for the selected kind.
func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.kind",
			Message:  "storage.kind must not be empty",
		})
		return issues
	}

	known := map[string]struct{}{
		"csv":      {},
		"sqlite":   {},
		"postgres": {},
		"mssql":    {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	switch s.Kind {
	case "csv":
		if strings.TrimSpace(s.Train.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.train.path",
				Message:  "csv storage requires a non-empty train path",
			})
		}
		if strings.TrimSpace(s.Test.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.test.path",
				Message:  "csv storage requires a non-empty test path",
			})
		}
		if s.Train.Path != "" && s.Train.Path == s.Test.Path {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.test.path",
				Message:  "train and test paths are identical; the partitions would overwrite each other",
			})
		}

	case "sqlite", "postgres", "mssql":
		if strings.TrimSpace(s.DB.DSN) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.db.dsn",
				Message:  fmt.Sprintf("%s storage requires storage.db.dsn", s.Kind),
			})
		}
		if strings.TrimSpace(s.Train.Table) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.train.table",
				Message:  fmt.Sprintf("%s storage requires a non-empty train table", s.Kind),
			})
		}
		if strings.TrimSpace(s.Test.Table) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.test.table",
				Message:  fmt.Sprintf("%s storage requires a non-empty test table", s.Kind),
			})
		}
		if s.Train.Table != "" && s.Train.Table == s.Test.Table {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "storage.test.table",
				Message:  "train and test tables are identical; the partitions would overwrite each other",
			})
		}
	}

	return issues
}

// validateMetrics validates the metrics backend selection.
func validateMetrics(m Metrics) []Issue {
	var issues []Issue

	switch m.Backend {
	case "", "none":
		// metrics disabled
	case "pushgateway":
		if strings.TrimSpace(m.PushgatewayURL) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.pushgateway_url",
				Message:  "pushgateway backend requires metrics.pushgateway_url",
			})
		}
	case "datadog":
		if strings.TrimSpace(m.StatsdAddr) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "metrics.statsd_addr",
				Message:  "datadog backend requires metrics.statsd_addr",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "metrics.backend",
			Message:  fmt.Sprintf("unknown metrics backend %q; metrics will be disabled", m.Backend),
		})
	}

	return issues
}

// validateRuntime validates Runtime for obvious misconfigurations.
func validateRuntime(r Runtime) []Issue {
	var issues []Issue

	if r.BatchSize <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; the loader falls back to the default batch size", r.BatchSize),
		})
	}

	return issues
}
