package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/melodrama/melodrama/internal/bundler"
	"github.com/melodrama/melodrama/internal/logger"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// ThemeFetcher lists the available themes. It never fails.
type ThemeFetcher interface {
	FetchThemes(ctx context.Context) ThemeList
}

// ToolProber selects the package manager.
type ToolProber interface {
	Probe(verbose bool) InstallTool
}

// DirectoryMaterializer writes the project files into a directory.
type DirectoryMaterializer interface {
	Materialize(ctx context.Context, dir string) error
}

// DependencyInstaller runs an install plan in a directory.
type DependencyInstaller interface {
	Install(ctx context.Context, plan InstallPlan, dir string, verbose bool) error
}

var (
	_ ThemeFetcher          = (*ThemeClient)(nil)
	_ ToolProber            = (*Prober)(nil)
	_ DirectoryMaterializer = (*Materializer)(nil)
	_ DependencyInstaller   = (*Installer)(nil)
)

// Result describes a finished bootstrap run.
type Result struct {
	TargetDir string
	State     State
	Themes    ThemeList
	Choices   Choices
	Plan      InstallPlan
}

// Orchestrator sequences one bootstrap run:
// FetchingThemes, Prompting, Preparing, Installing, then Done or Failed.
type Orchestrator struct {
	Themes       ThemeFetcher
	Prompter     Prompter
	Prober       ToolProber
	Materializer DirectoryMaterializer
	Installer    DependencyInstaller
	ThemePrefix  string
	Logger       *logger.Logger

	// OnTransition, when set, is called for every state change.
	OnTransition func(from, to State)
}

type run struct {
	o      *Orchestrator
	state  State
	result *Result
}

// Run bootstraps req.TargetDir. A failure is returned as a *StageError naming
// the state the run was in; files already written are not removed.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Result, error) {
	r := &run{o: o, state: StateIdle, result: &Result{State: StateIdle}}

	dir, err := filepath.Abs(req.TargetDir)
	if err != nil {
		return r.fail(err)
	}
	r.result.TargetDir = dir

	r.transition(StateFetchingThemes)
	r.result.Themes = o.Themes.FetchThemes(ctx)

	r.transition(StatePrompting)
	choices, err := Ask(ctx, o.Prompter, r.result.Themes)
	if err != nil {
		return r.fail(err)
	}
	r.result.Choices = choices

	r.transition(StatePreparing)
	plan, err := o.prepare(ctx, dir, req.Verbose, choices)
	if err != nil {
		return r.fail(err)
	}
	r.result.Plan = plan

	r.transition(StateInstalling)
	if err := o.Installer.Install(ctx, plan, dir, req.Verbose); err != nil {
		return r.fail(err)
	}

	r.transition(StateDone)
	return r.result, nil
}

// prepare probes the package manager, builds the dependency list and
// materializes the directory concurrently. The plan always carries the
// bundler toolchain. The first failure cancels the
// shared context; siblings already running finish and their results are
// dropped.
func (o *Orchestrator) prepare(ctx context.Context, dir string, verbose bool, choices Choices) (InstallPlan, error) {
	var (
		tool InstallTool
		deps []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		tool = o.Prober.Probe(verbose)
		return nil
	})
	g.Go(func() error {
		deps = PrepareDependencies(choices, o.ThemePrefix)
		return nil
	})
	g.Go(func() error {
		return o.Materializer.Materialize(gctx, dir)
	})

	if err := g.Wait(); err != nil {
		return InstallPlan{}, err
	}
	return NewInstallPlan(tool, deps).WithToolchain(bundler.Toolchain), nil
}

func (r *run) transition(to State) {
	from := r.state
	if !canTransition(from, to) {
		panic(fmt.Sprintf("bootstrap: illegal transition %s -> %s", from, to))
	}

	r.state = to
	r.result.State = to
	r.o.Logger.WithFields(map[string]any{"from": from.String(), "to": to.String()}).Debug("bootstrap state changed")
	if r.o.OnTransition != nil {
		r.o.OnTransition(from, to)
	}
}

func (r *run) fail(err error) (*Result, error) {
	stage := r.state
	r.transition(StateFailed)
	r.o.Logger.WithFields(map[string]any{"stage": stage.String()}).Error(err, "bootstrap failed")
	return r.result, melodramaerrors.NewStageError(stage.String(), err)
}
