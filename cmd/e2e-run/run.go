package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/thesyncim/dmapp-e2e/pkg/config"
	"github.com/thesyncim/dmapp-e2e/pkg/scenario"
	"github.com/thesyncim/dmapp-e2e/pkg/uidriver"
)

// Result is the outcome of one scenario run.
type Result struct {
	Name     string
	Duration time.Duration
	Err      error
}

// Passed reports whether the scenario succeeded.
func (r Result) Passed() bool { return r.Err == nil }

type step struct {
	name string
	run  func(r *scenario.Runner, cfg config.Config) error
}

func steps(c scenario.Campaign) []step {
	return []step{
		{"homepage-title", func(r *scenario.Runner, _ config.Config) error {
			return r.CheckHomepageTitle()
		}},
		{"login", func(r *scenario.Runner, cfg config.Config) error {
			return r.Login(cfg.Credentials)
		}},
		{"create-campaign", func(r *scenario.Runner, cfg config.Config) error {
			if err := r.Login(cfg.Credentials); err != nil {
				return err
			}
			return r.CreateCampaign(c)
		}},
	}
}

// launchFunc starts a browser session for one scenario.
type launchFunc func(ctx context.Context, cfg uidriver.Config) (scenario.Driver, error)

func launchChrome(ctx context.Context, cfg uidriver.Config) (scenario.Driver, error) {
	s, err := uidriver.Launch(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// runAll runs every scenario in its own browser session. A session is
// always closed, whether its scenario passed or not.
func runAll(ctx context.Context, cfg config.Config, c scenario.Campaign, launch launchFunc, log *zap.Logger) []Result {
	var results []Result
	for _, s := range steps(c) {
		if ctx.Err() != nil {
			results = append(results, Result{Name: s.name, Err: ctx.Err()})
			continue
		}
		results = append(results, runOne(ctx, cfg, s, launch, log))
	}
	return results
}

func runOne(ctx context.Context, cfg config.Config, s step, launch launchFunc, log *zap.Logger) (res Result) {
	res.Name = s.name
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	log = log.With(zap.String("scenario", s.name))
	log.Info("starting")

	d, err := launch(ctx, cfg.Browser)
	if err != nil {
		res.Err = err
		return res
	}
	r := scenario.NewRunner(d, cfg, log)
	defer func() {
		if err := r.Close(); err != nil {
			log.Warn("close session", zap.Error(err))
		}
	}()

	res.Err = s.run(r, cfg)
	if res.Err != nil {
		log.Error("failed", zap.Stringer("stage", r.Stage()), zap.Error(res.Err))
	} else {
		log.Info("passed")
	}
	return res
}

func printSummary(w io.Writer, results []Result) bool {
	pass := true
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "E2E Run Complete\n")
	fmt.Fprintf(w, "================\n")
	for _, r := range results {
		fmt.Fprintf(w, "  %-16s %s  (%v)\n", r.Name, checkMark(r.Passed()), r.Duration.Round(time.Millisecond))
		if !r.Passed() {
			pass = false
			fmt.Fprintf(w, "      %v\n", r.Err)
		}
	}
	fmt.Fprintf(w, "Status: %s\n", checkMark(pass))
	return pass
}

func checkMark(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}
