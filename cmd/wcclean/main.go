package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wcetl/internal/config"
	"wcetl/internal/metrics"
	"wcetl/internal/metrics/datadog"
	"wcetl/internal/metrics/prompush"

	"github.com/google/uuid"

	// register all backends with the storage factory.
	// config selects which one to use but support for all of them is built in.
	_ "wcetl/internal/storage/all"
)

// main is the entry point for the wcclean binary. It resolves the pipeline
// config (defaults, optional JSON file, WCETL_* env, flags), optionally
// initializes a metrics backend, and executes the cleaning run. Invoked with
// no arguments it reads files_needed/ and writes data_clean/.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "", "pipeline config JSON path (empty: built-in defaults)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none; empty: config value)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides config and env)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	p, err := config.Load(cfgPath)
	if err != nil {
		fatalf("load config: %v", err)
	}

	// Flags overlay file and env values.
	if metricsBackendFlg != "" {
		p.Metrics.Backend = metricsBackendFlg
	}
	if pushGatewayURLFlg != "" {
		p.Metrics.PushgatewayURL = pushGatewayURLFlg
	}

	cfgName := cfgPath
	if cfgName == "" {
		cfgName = "built-in defaults"
	}

	// Validate pipeline config.
	issues := config.ValidatePipeline(p)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgName)
		os.Exit(1)
	}

	// If validate flag is set, only validate the configuration and exit
	if validate {
		log.Printf("Configuration is valid: %v", cfgName)
		os.Exit(0)
	}

	// One id per run; it labels pushed metrics and the summary log lines so
	// overlapping reruns stay distinguishable.
	runID := uuid.NewString()

	switch p.Metrics.Backend {
	case "pushgateway":
		gwURL := p.Metrics.PushgatewayURL
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := p.Job
		if jobName == "" {
			jobName = "wcclean"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, p.Metrics.Backend, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       p.Metrics.StatsdAddr,
			GlobalTags: []string{"run_id:" + runID},
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: addr=%v, backend=%v", p.Metrics.StatsdAddr, p.Metrics.Backend)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "", "none":
		// metrics disabled; nop backend remains
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", p.Metrics.Backend)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", p.Metrics.Backend)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("pipeline: matches=%s tournaments=%s marker=%q storage=%s",
			p.Inputs.Matches, p.Inputs.Tournaments, p.Filter.NameContains, p.Storage.Kind)
	}

	if err := run(ctx, p, runID); err != nil {
		log.Fatalf("%v", err)
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
