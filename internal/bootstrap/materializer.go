package bootstrap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/pkg/diff"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// Materialization sub-step names reported in MaterializeError.
const (
	StepCopy     = "copy"
	StepManifest = "manifest"
	StepIgnore   = "ignore-file"
	StepGit      = "git"
)

// Materializer writes the template, manifest and ignore file into a target
// directory. The sub-steps touch disjoint files and run concurrently.
type Materializer struct {
	Template fs.FS
	Patch    ManifestPatch
	// InitGit also creates a git repository in the target directory.
	InitGit bool
	Logger  *logger.Logger
}

// NewMaterializer returns a Materializer using the embedded template.
func NewMaterializer(log *logger.Logger) *Materializer {
	return &Materializer{
		Template: Template(),
		Patch:    DefaultManifestPatch(),
		Logger:   log,
	}
}

// Materialize runs every sub-step and returns the first failure as a
// *MaterializeError. Files already written are left in place.
func (m *Materializer) Materialize(ctx context.Context, dir string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.step(gctx, StepCopy, func() error {
			return copyTemplate(m.template(), dir)
		})
	})
	g.Go(func() error {
		return m.step(gctx, StepManifest, func() error {
			return m.updateManifest(dir)
		})
	})
	g.Go(func() error {
		return m.step(gctx, StepIgnore, func() error {
			return writeIgnoreFile(dir)
		})
	})
	if m.InitGit {
		g.Go(func() error {
			return m.step(gctx, StepGit, func() error {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
				created, err := initRepository(dir)
				if err == nil && created {
					m.Logger.Debug("initialized git repository")
				}
				return err
			})
		})
	}

	return g.Wait()
}

func (m *Materializer) step(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return melodramaerrors.NewMaterializeError(name, err)
	}
	if err := fn(); err != nil {
		return melodramaerrors.NewMaterializeError(name, err)
	}
	m.Logger.WithFields(map[string]any{"step": name}).Debug("materialized")
	return nil
}

func (m *Materializer) template() fs.FS {
	if m.Template == nil {
		return Template()
	}
	return m.Template
}

func (m *Materializer) updateManifest(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	manifest, original, existed, err := readManifest(dir)
	if err != nil {
		return err
	}

	patch := m.Patch
	if patch == (ManifestPatch{}) {
		patch = DefaultManifestPatch()
	}
	if err := patch.apply(manifest); err != nil {
		return err
	}

	data, err := encodeManifest(manifest)
	if err != nil {
		return err
	}

	if existed {
		if changes := diff.Lines(original, data, ManifestFile+" (before)", ManifestFile); changes != "" {
			m.Logger.Debug("updated existing manifest\n" + changes)
		}
	}

	return writeFileAtomic(filepath.Join(dir, ManifestFile), data, 0o644)
}
