package bootstrap

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/melodrama/melodrama/internal/bundler"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

type staticThemes ThemeList

func (s staticThemes) FetchThemes(context.Context) ThemeList { return ThemeList(s) }

type fakeInstaller struct {
	mu    sync.Mutex
	calls []InstallPlan
	dirs  []string
	err   error
}

func (f *fakeInstaller) Install(_ context.Context, plan InstallPlan, dir string, _ bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, plan)
	f.dirs = append(f.dirs, dir)
	return f.err
}

type failingMaterializer struct{ err error }

func (f failingMaterializer) Materialize(context.Context, string) error { return f.err }

func newOrchestrator(themes ThemeList, prompter Prompter, inst DependencyInstaller) *Orchestrator {
	return &Orchestrator{
		Themes:       staticThemes(themes),
		Prompter:     prompter,
		Prober:       &Prober{LookPath: lookPathWith()},
		Materializer: NewMaterializer(nil),
		Installer:    inst,
	}
}

func TestOrchestrator_BootstrapsFreshDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deck")
	inst := &fakeInstaller{}
	var transitions []State

	o := newOrchestrator(ThemeList{NoTheme}, StaticPrompter{Theme: NoTheme, Syntax: true}, inst)
	o.OnTransition = func(_, to State) { transitions = append(transitions, to) }

	result, err := o.Run(context.Background(), Request{TargetDir: dir})
	require.NoError(t, err)
	require.Equal(t, StateDone, result.State)
	require.Equal(t, Choices{Theme: NoTheme, Syntax: true}, result.Choices)
	require.Equal(t, []State{StateFetchingThemes, StatePrompting, StatePreparing, StateInstalling, StateDone}, transitions)

	require.FileExists(t, filepath.Join(dir, ManifestFile))
	require.FileExists(t, filepath.Join(dir, "index.js"))
	require.FileExists(t, filepath.Join(dir, IgnoreFile))

	manifest := readJSON(t, filepath.Join(dir, ManifestFile))
	scripts := manifest["scripts"].(map[string]any)
	require.Regexp(t, regexp.MustCompile(`^melodrama start \S+\.js$`), scripts["start"])

	require.Len(t, inst.calls, 1)
	require.Equal(t, dir, inst.dirs[0])
	require.Equal(t, "npm", inst.calls[0].Command)
	require.Equal(t, []string{"react", "react-dom", "spectacle", "prismjs"}, inst.calls[0].Dependencies)
	want := append([]string{"install", "--save-exact", "react", "react-dom", "spectacle", "prismjs"}, bundler.Toolchain...)
	require.Equal(t, want, inst.calls[0].Args())
}

func TestOrchestrator_ThemeChoiceReachesInstallPlan(t *testing.T) {
	inst := &fakeInstaller{}
	o := newOrchestrator(ThemeList{NoTheme, "unicorn"}, StaticPrompter{Theme: "unicorn"}, inst)
	o.Prober = &Prober{LookPath: lookPathWith("yarn")}

	result, err := o.Run(context.Background(), Request{TargetDir: t.TempDir(), Verbose: true})
	require.NoError(t, err)
	want := append([]string{"add", "--exact", "react", "react-dom", "spectacle", "spectacle-theme-unicorn"}, bundler.Toolchain...)
	require.Equal(t, want, result.Plan.Args())
}

func TestOrchestrator_PlanInstallsEverythingStartNeeds(t *testing.T) {
	for _, syntax := range []bool{false, true} {
		inst := &fakeInstaller{}
		prompter := StaticPrompter{Theme: NoTheme, Syntax: syntax}
		result, err := newOrchestrator(ThemeList{NoTheme}, prompter, inst).Run(context.Background(), Request{TargetDir: t.TempDir()})
		require.NoError(t, err)

		pkgs := result.Plan.Packages()
		require.Subset(t, pkgs, bundler.Toolchain)
		require.Subset(t, pkgs, bundler.RuntimePackages)
	}
}

func TestOrchestrator_RelativeTargetIsResolved(t *testing.T) {
	t.Chdir(t.TempDir())
	inst := &fakeInstaller{}

	result, err := newOrchestrator(ThemeList{NoTheme}, StaticPrompter{}, inst).Run(context.Background(), Request{TargetDir: "talk"})
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(result.TargetDir))
	require.Equal(t, "talk", filepath.Base(inst.dirs[0]))
}

func TestOrchestrator_MaterializeFailureSkipsInstall(t *testing.T) {
	inst := &fakeInstaller{}
	cause := melodramaerrors.NewMaterializeError(StepCopy, errors.New("permission denied"))

	o := newOrchestrator(ThemeList{NoTheme}, StaticPrompter{}, inst)
	o.Materializer = failingMaterializer{err: cause}

	result, err := o.Run(context.Background(), Request{TargetDir: t.TempDir()})
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)
	require.Empty(t, inst.calls)

	var stageErr *melodramaerrors.StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, "preparing", stageErr.Stage)

	var matErr *melodramaerrors.MaterializeError
	require.True(t, errors.As(err, &matErr))
	require.Equal(t, StepCopy, matErr.Step)
	require.Contains(t, err.Error(), "bootstrap failed while preparing")
}

func TestOrchestrator_InstallFailure(t *testing.T) {
	dir := t.TempDir()
	inst := &fakeInstaller{err: melodramaerrors.NewInstallError("npm", 1, "ERR! 404", errors.New("exit status 1"))}

	result, err := newOrchestrator(ThemeList{NoTheme}, StaticPrompter{}, inst).Run(context.Background(), Request{TargetDir: dir})
	require.Error(t, err)
	require.Equal(t, StateFailed, result.State)

	var stageErr *melodramaerrors.StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, "installing", stageErr.Stage)

	var installErr *melodramaerrors.InstallError
	require.True(t, errors.As(err, &installErr))
	require.Equal(t, 1, installErr.ExitCode)

	// partial scaffolding is kept
	require.FileExists(t, filepath.Join(dir, ManifestFile))
}

func TestOrchestrator_PromptAbort(t *testing.T) {
	inst := &fakeInstaller{}
	p := &scriptedPrompter{themeErr: ErrPromptAborted}

	_, err := newOrchestrator(ThemeList{NoTheme, "unicorn"}, p, inst).Run(context.Background(), Request{TargetDir: t.TempDir()})
	require.ErrorIs(t, err, ErrPromptAborted)

	var stageErr *melodramaerrors.StageError
	require.True(t, errors.As(err, &stageErr))
	require.Equal(t, "prompting", stageErr.Stage)
	require.Empty(t, inst.calls)
}

func TestState(t *testing.T) {
	require.Equal(t, "fetching themes", StateFetchingThemes.String())
	require.Equal(t, "unknown", State(42).String())
	require.True(t, StateDone.Terminal())
	require.True(t, StateFailed.Terminal())
	require.False(t, StateInstalling.Terminal())

	require.True(t, canTransition(StateIdle, StateFetchingThemes))
	require.True(t, canTransition(StatePreparing, StateFailed))
	require.False(t, canTransition(StateIdle, StateInstalling))
	require.False(t, canTransition(StateDone, StateFailed))
}
