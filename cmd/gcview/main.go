package main

import (
	"bufio"
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	"github.com/kpango/glg"
	"golang.org/x/sync/errgroup"

	"github.com/leftmike/gctrace"
)

type CLI struct {
	Config  string        `help:"Configuration file (YAML)." short:"c" type:"existingfile"`
	Format  string        `help:"Output format." enum:"html,yaml" default:"html" short:"f"`
	Output  string        `help:"Output directory." type:"existingdir" default:"." short:"o"`
	Tick    time.Duration `help:"Clock tick; overrides the configuration."`
	Verbose bool          `help:"Log modal codes as they are applied." short:"v"`
	Quiet   bool          `help:"Do not log while tracing." short:"q"`
	Files   []string      `arg:"" help:"G-code files to trace." type:"existingfile"`
}

func (cli *CLI) Run() error {
	cfg := gctrace.DefaultConfig()
	if cli.Config != "" {
		var err error
		cfg, err = gctrace.LoadConfig(cli.Config)
		if err != nil {
			return err
		}
	}
	if cli.Tick > 0 {
		cfg.Tick = cli.Tick
	}

	log := glg.Get()
	if cli.Quiet {
		log.SetMode(glg.NONE)
	} else if !cli.Verbose {
		log.SetLevelMode(glg.DEBG, glg.NONE)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	traces := make([]*trace, len(cli.Files))
	g, ctx := errgroup.WithContext(ctx)
	for fdx, name := range cli.Files {
		g.Go(func() error {
			tr, err := traceFile(ctx, cfg, log, name)
			if err != nil {
				return err
			}
			traces[fdx] = tr
			return cli.write(tr)
		})
	}
	err := g.Wait()

	for _, tr := range traces {
		if tr != nil && !cli.Quiet {
			report(tr)
		}
	}
	return err
}

func traceFile(ctx context.Context, cfg gctrace.Config, log *glg.Glg,
	name string) (*trace, error) {

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rec := recorder{display: cfg.Display, tick: cfg.Tick}
	in := gctrace.NewInterpreter(cfg, gctrace.WithLogger(log))
	results, err := in.Evaluate(ctx, bufio.NewReader(f), &rec)
	if err != nil {
		return nil, err
	}
	return newTrace(name, &rec, results), nil
}

func (cli *CLI) write(tr *trace) error {
	base := strings.TrimSuffix(filepath.Base(tr.Source), filepath.Ext(tr.Source))
	f, err := os.Create(filepath.Join(cli.Output, base+"."+cli.Format))
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if cli.Format == "yaml" {
		err = tr.writeYAML(w)
	} else {
		err = tr.writeHTML(w)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

func report(tr *trace) {
	var skipped, failed int
	for _, res := range tr.Results {
		switch res.Status {
		case gctrace.Skipped.String():
			skipped += 1
			color.Yellow("%s: line %d: %s", tr.Source, res.Line, res.Error)
		case gctrace.Failed.String(), gctrace.Abandoned.String():
			failed += 1
			color.Red("%s: line %d: %s %s", tr.Source, res.Line, res.Status, res.Error)
		}
	}

	if skipped == 0 && failed == 0 {
		color.Green("%s: %d lines traced in %.2fs", tr.Source, len(tr.Results), tr.Duration)
	} else {
		color.Cyan("%s: %d lines traced in %.2fs; %d skipped, %d failed", tr.Source,
			len(tr.Results), tr.Duration, skipped, failed)
	}
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("gcview"),
		kong.Description("Trace the toolpath of G-code programs."),
		kong.UsageOnError())
	ctx.FatalIfErrorf(ctx.Run())
}
