package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"surveygen/internal/config"
	"surveygen/internal/metrics"
	"surveygen/internal/metrics/datadog"
	"surveygen/internal/metrics/prompush"

	// register all backends with the answers factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "surveygen/internal/answers/all"
)

// main is the entry point for the survey compiler binary. It loads the job
// config, optionally initializes a metrics backend, and executes the compile
// (or validate-only) run.
func main() {
	var (
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		dogstatsdAddrFlg  string
		sessionFlg        string
		languageFlg       string
		outDirFlg         string
		seedFlg           string
		validateOnly      bool
		messagesOnly      bool
		lint              bool
	)

	flag.StringVar(&cfgPath, "config", "configs/jobs/sample.json", "job config JSON path")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "http://localhost:9091", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&dogstatsdAddrFlg, "dogstatsd-addr", "127.0.0.1:8125", "DogStatsD address for the datadog backend")
	flag.StringVar(&sessionFlg, "session", "", "compile a single session selector instead of the configured list")
	flag.StringVar(&languageFlg, "language", "", "compile a single language instead of the configured list")
	flag.StringVar(&outDirFlg, "out", "", "output directory (overrides output.dir)")
	flag.StringVar(&seedFlg, "seed", "", "stable shuffle seed; empty means a fresh random order per run")
	flag.BoolVar(&validateOnly, "validate", false, "check translation consistency and exit without writing documents")
	flag.BoolVar(&messagesOnly, "messages", false, "write only the per-language message maps")
	flag.BoolVar(&lint, "lint", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	f, err := os.Open(cfgPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	cfg, err := config.Load(f)
	f.Close()
	if err != nil {
		fatalf("load config: %v", err)
	}

	// Validate job config.
	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}

	// If lint flag is set, only validate the configuration and exit
	if lint {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	if sessionFlg != "" {
		cfg.Sessions = []string{sessionFlg}
	}
	// The language flag narrows which documents are emitted. The full
	// language list stays in effect for parsing and consistency checks.
	targets := cfg.Languages
	if languageFlg != "" {
		targets = filterLanguage(cfg.Languages, languageFlg)
		if len(targets) == 0 {
			fatalf("language %q is not in the configured languages", languageFlg)
		}
	}
	if outDirFlg != "" {
		cfg.Output.Dir = outDirFlg
	}

	// Decide metrics backend: flag → env → default.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "pushgateway":
		// Decide Pushgateway URL: flag → env → default.
		gwURL := pushGatewayURLFlg
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}

		jobName := cfg.Job
		if jobName == "" {
			jobName = "surveygen_job"
		}

		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
		} else {
			log.Printf("metrics: url=%v, backend=%v, job_name=%v", gwURL, backendName, jobName)
			metrics.SetBackend(b)
			defer func() {
				if err := metrics.Flush(); err != nil {
					log.Printf("metrics: flush error: %v", err)
				}
			}()
		}

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{
			Addr:      dogstatsdAddrFlg,
			Namespace: "surveygen.",
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: addr=%v, backend=%v", dogstatsdAddrFlg, backendName)
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
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	ctx := context.Background()
	start := time.Now()

	if *verbose {
		log.Printf("job: source=%s sessions=%v languages=%v out=%s",
			cfg.Source.Kind, cfg.Sessions, cfg.Languages, cfg.Output.Dir)
	}

	switch {
	case validateOnly:
		if err := runValidate(ctx, cfg); err != nil {
			log.Fatalf("%v", err)
		}
	case messagesOnly:
		if err := runMessages(ctx, cfg, targets); err != nil {
			log.Fatalf("%v", err)
		}
	default:
		if err := runCompile(ctx, cfg, targets, seedFlg); err != nil {
			log.Fatalf("%v", err)
		}
	}

	if *verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
}

func filterLanguage(languages []string, want string) []string {
	for _, l := range languages {
		if l == want {
			return []string{l}
		}
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
