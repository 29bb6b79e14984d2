package bundler

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	units "github.com/docker/go-units"

	"github.com/melodrama/melodrama/internal/internalexec"
	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/internal/progress"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// BuildReport summarizes a production build.
type BuildReport struct {
	Output   string
	Duration time.Duration
	Size     int64
}

// String renders the report the way the build command prints it.
func (r BuildReport) String() string {
	return fmt.Sprintf("Time: %s | Size: %s", units.HumanDuration(r.Duration), units.HumanSize(float64(r.Size)))
}

// Builder produces a minified bundle.
type Builder struct {
	Command  string
	Stdout   io.Writer
	Stderr   io.Writer
	Reporter progress.Reporter
	Logger   *logger.Logger
	Verbose  bool
}

// Build empties outDir and bundles p into it.
func (b *Builder) Build(ctx context.Context, p Project, outDir string) (*BuildReport, error) {
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(p.Dir, outDir)
	}

	reporter := b.Reporter
	if reporter == nil {
		reporter = progress.Nop{}
	}
	reporter.Start("Building presentation...")

	report, err := b.build(ctx, p, outDir)
	if err != nil {
		reporter.Fail("Build failed because of the following reasons:")
		return nil, err
	}

	reporter.Succeed(fmt.Sprintf("Successfully built presentation into %s!", report.Output))
	return report, nil
}

func (b *Builder) build(ctx context.Context, p Project, outDir string) (*BuildReport, error) {
	wrap := func(err error) error {
		return melodramaerrors.NewBundleError(string(ModeProduction), err)
	}

	if within(outDir, p.Dir) {
		return nil, wrap(fmt.Errorf("build directory %s contains the project", outDir))
	}
	if err := emptyDir(outDir); err != nil {
		return nil, wrap(err)
	}

	configPath, err := WriteConfig(p, ConfigOptions{Mode: ModeProduction, OutputDir: outDir})
	if err != nil {
		return nil, wrap(err)
	}

	name, args, err := splitCommand(b.Command)
	if err != nil {
		return nil, wrap(err)
	}
	args = append(args, "--config", configPath)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = p.Dir
	cmd.WaitDelay = stopGracePeriod

	b.Logger.WithFields(map[string]any{"command": name, "args": strings.Join(args, " ")}).Debug("running bundler")

	start := time.Now()
	var res internalexec.Result
	if b.Verbose {
		cmd.Stdout = b.Stdout
		cmd.Stderr = b.Stderr
		res, err = internalexec.RunStreaming(cmd)
	} else {
		res, err = internalexec.RunQuiet(cmd)
	}
	elapsed := time.Since(start)

	if err != nil {
		if out := internalexec.PrimaryOutput(res); out != "" {
			err = fmt.Errorf("%w: %s", err, out)
		}
		return nil, wrap(err)
	}

	size, err := dirSize(outDir)
	if err != nil {
		return nil, wrap(err)
	}

	return &BuildReport{Output: outDir, Duration: elapsed, Size: size}, nil
}

// emptyDir removes the contents of dir, creating it when missing.
func emptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(dir, 0o755)
		}
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

func dirSize(dir string) (int64, error) {
	var total int64
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
