// Package config defines the canonical, JSON-serializable configuration model
// for the cleaning pipeline. It is intentionally small and explicit so that
// pipelines can be loaded from disk (or defaulted entirely) and passed through
// the program without additional glue code.
//
// Design goals:
//
//  1. Zero-config default: Default() reproduces the canonical no-argument run
//     (read files_needed/, write data_clean/) without any file or env input.
//  2. Clarity: Field names in Go mirror the JSON structure used in pipeline
//     files under configs/*.json.
//  3. Layering: file values overlay the defaults, WCETL_* environment
//     variables overlay the file, and command-line flags overlay everything.
//
// Example (trimmed):
//
//	{
//	  "job":    "wcclean",
//	  "inputs": { "matches": "files_needed/matches.csv" },
//	  "split":  { "train_from_year": 1930, "train_to_year": 2018, "test_year": 2022 },
//	  "storage":{ "kind": "csv", "train": { "path": "data_clean/matches_train.csv" } }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"wcetl/internal/worldcup"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is the prefix for environment overrides, e.g. WCETL_INPUTS_MATCHES.
const envPrefix = "wcetl"

// Pipeline describes the full cleaning pipeline in JSON. It is the top-level
// object decoded from a pipeline file.
type Pipeline struct {
	// Job names the run for metrics labeling and log lines.
	Job string `json:"job" envconfig:"JOB"`

	// Inputs locates the two raw CSV files.
	Inputs Inputs `json:"inputs" envconfig:"INPUTS"`

	// Filter selects which tournaments qualify.
	Filter Filter `json:"filter" envconfig:"FILTER"`

	// Dates configures date parsing during coercion.
	Dates Dates `json:"dates" envconfig:"DATES"`

	// Split sets the year boundaries of the train and test partitions.
	Split Split `json:"split" envconfig:"SPLIT"`

	// Storage describes where the partitions are written.
	Storage Storage `json:"storage" envconfig:"STORAGE"`

	// Metrics selects an optional metrics backend.
	Metrics Metrics `json:"metrics" envconfig:"METRICS"`

	Runtime Runtime `json:"runtime" envconfig:"RUNTIME"`
}

// Inputs holds the paths of the raw input files. Both are read-only.
type Inputs struct {
	Matches     string `json:"matches" envconfig:"MATCHES"`
	Tournaments string `json:"tournaments" envconfig:"TOURNAMENTS"`
}

// Filter holds the tournament qualification rule.
type Filter struct {
	// NameContains is matched against tournament_name as a case-sensitive
	// substring. Rows whose name contains it qualify.
	NameContains string `json:"name_contains" envconfig:"NAME_CONTAINS"`
}

// Dates holds date-coercion settings.
type Dates struct {
	// Layout is the Go reference layout used to parse match_date.
	Layout string `json:"layout" envconfig:"LAYOUT"`
}

// Split holds the partition year boundaries. Train is the inclusive range
// [TrainFromYear, TrainToYear]; test is the single TestYear. Years outside
// both are dropped.
type Split struct {
	TrainFromYear int `json:"train_from_year" envconfig:"TRAIN_FROM_YEAR"`
	TrainToYear   int `json:"train_to_year" envconfig:"TRAIN_TO_YEAR"`
	TestYear      int `json:"test_year" envconfig:"TEST_YEAR"`
}

// Storage selects the sink used to persist the two partitions.
type Storage struct {
	// Kind selects the storage implementation registered with the factory:
	// "csv" (default), "sqlite", "postgres", "mssql".
	Kind string `json:"kind" envconfig:"KIND"`

	// Train and Test name the per-partition destinations. Path is used by
	// file-backed kinds, Table by database kinds.
	Train Target `json:"train" envconfig:"TRAIN"`
	Test  Target `json:"test" envconfig:"TEST"`

	// DB carries options shared by the database kinds.
	DB DBConfig `json:"db" envconfig:"DB"`
}

// Target names one partition's destination.
type Target struct {
	Path  string `json:"path" envconfig:"PATH"`
	Table string `json:"table" envconfig:"TABLE"`
}

// DBConfig configures the database sinks.
type DBConfig struct {
	// DSN is the connection string (pgx URL, sqlite path, sqlserver URL).
	DSN string `json:"dsn" envconfig:"DSN"`

	// AutoCreateTable creates the destination table from the coerced data's
	// inferred schema before loading.
	AutoCreateTable bool `json:"auto_create_table" envconfig:"AUTO_CREATE_TABLE"`
}

// Metrics selects the metrics backend.
type Metrics struct {
	// Backend is "none" (default), "pushgateway", or "datadog".
	Backend        string `json:"backend" envconfig:"BACKEND"`
	PushgatewayURL string `json:"pushgateway_url" envconfig:"PUSHGATEWAY_URL"`
	StatsdAddr     string `json:"statsd_addr" envconfig:"STATSD_ADDR"`
}

// Runtime controls batching.
type Runtime struct {
	BatchSize int `json:"batch_size" envconfig:"BATCH_SIZE"`
}

// Default returns the pipeline that a bare `wcclean` invocation runs: the
// canonical inputs, marker, era boundaries, and CSV outputs.
func Default() Pipeline {
	return Pipeline{
		Job: "wcclean",
		Inputs: Inputs{
			Matches:     "files_needed/matches.csv",
			Tournaments: "files_needed/tournaments.csv",
		},
		Filter: Filter{NameContains: worldcup.Marker},
		Dates:  Dates{Layout: "2006-01-02"},
		Split: Split{
			TrainFromYear: worldcup.TrainStartYear,
			TrainToYear:   worldcup.TrainEndYear,
			TestYear:      worldcup.TestYear,
		},
		Storage: Storage{
			Kind:  "csv",
			Train: Target{Path: "data_clean/matches_train.csv", Table: "matches_train"},
			Test:  Target{Path: "data_clean/matches_test.csv", Table: "matches_test"},
		},
		Metrics: Metrics{
			Backend:        "none",
			PushgatewayURL: "http://localhost:9091",
			StatsdAddr:     "127.0.0.1:8125",
		},
		Runtime: Runtime{BatchSize: 5000},
	}
}

// Load builds the effective pipeline: Default(), overlaid with the JSON file
// at path when path is non-empty, overlaid with WCETL_* environment
// variables. Flag handling on top of this is the caller's concern.
func Load(path string) (Pipeline, error) {
	p := Default()

	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return p, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()

		// Decoding over the default struct keeps defaults for absent fields.
		if err := json.NewDecoder(f).Decode(&p); err != nil {
			return p, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}

	if err := FromEnv(&p); err != nil {
		return p, err
	}
	return p, nil
}

// FromEnv applies WCETL_* environment overrides in place. Only variables that
// are actually set override; everything else keeps its current value.
func FromEnv(p *Pipeline) error {
	if err := envconfig.Process(envPrefix, p); err != nil {
		return fmt.Errorf("config: env overrides: %w", err)
	}
	return nil
}
