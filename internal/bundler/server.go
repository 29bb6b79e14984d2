package bundler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/melodrama/melodrama/internal/logger"
	"github.com/melodrama/melodrama/internal/progress"
	melodramaerrors "github.com/melodrama/melodrama/pkg/errors"
)

// DefaultCommand is the bundler CLI used when none is configured.
const DefaultCommand = "npx webpack"

// WatchedFiles trigger a dev server restart when they change.
var WatchedFiles = []string{"package.json", "melodrama.yaml"}

const (
	readyPollInterval = 250 * time.Millisecond
	restartDebounce   = 200 * time.Millisecond
	stopGracePeriod   = 2 * time.Second
)

// ServeOptions configure a dev server run.
type ServeOptions struct {
	Host string
	Port int
	Open bool
}

// DevServer runs the bundler's development server and restarts it when the
// project settings change.
type DevServer struct {
	// Command is the bundler CLI, split on spaces. "serve --config <file>"
	// is appended.
	Command  string
	Stdout   io.Writer
	Stderr   io.Writer
	Reporter progress.Reporter
	Logger   *logger.Logger
	// Open is called with the server URL once it accepts connections.
	// It defaults to OpenBrowser.
	Open func(url string) error
}

// Run serves p until ctx is cancelled or the bundler exits on its own.
func (s *DevServer) Run(ctx context.Context, p Project, opts ServeOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(p.Dir); err != nil {
		return err
	}

	changes := make(chan struct{}, 1)
	go s.watch(ctx, watcher, changes)

	url := fmt.Sprintf("http://%s/", net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)))
	var openOnce sync.Once

	for {
		configPath, err := WriteConfig(p, ConfigOptions{
			Mode:      ModeDevelopment,
			OutputDir: filepath.Join(p.Dir, WorkDir, "dev"),
			Host:      opts.Host,
			Port:      opts.Port,
		})
		if err != nil {
			return melodramaerrors.NewBundleError(string(ModeDevelopment), err)
		}

		restart, err := s.serveOnce(ctx, p, configPath, url, opts, &openOnce, changes)
		if err != nil || !restart {
			return err
		}

		s.reporter().Update("Settings changed, restarting dev server...")
		s.Logger.Info("restarting dev server")

		if reloaded, err := LoadProject(p.Dir, p.Entry, p.Include); err == nil {
			p = reloaded
		} else {
			s.Logger.Warn(fmt.Sprintf("keeping previous project settings: %v", err))
		}
	}
}

// serveOnce runs one bundler process. It reports restart when a watched file
// changed and the process was stopped for that reason.
func (s *DevServer) serveOnce(ctx context.Context, p Project, configPath, url string, opts ServeOptions, openOnce *sync.Once, changes <-chan struct{}) (bool, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	name, args, err := splitCommand(s.Command)
	if err != nil {
		return false, err
	}
	args = append(args, "serve", "--config", configPath)

	cmd := exec.CommandContext(runCtx, name, args...)
	cmd.Dir = p.Dir
	cmd.Stdout = writerOr(s.Stdout, os.Stdout)
	cmd.Stderr = writerOr(s.Stderr, os.Stderr)
	cmd.WaitDelay = stopGracePeriod

	s.Logger.WithFields(map[string]any{"command": name, "args": strings.Join(args, " ")}).Debug("starting dev server")
	if err := cmd.Start(); err != nil {
		return false, melodramaerrors.NewBundleError(string(ModeDevelopment), err)
	}

	s.reporter().Start(fmt.Sprintf("Starting server @ %s", url))

	exited := make(chan error, 1)
	go func() { exited <- cmd.Wait() }()

	go func() {
		if err := waitForListener(runCtx, net.JoinHostPort(opts.Host, strconv.Itoa(opts.Port)), readyPollInterval); err != nil {
			return
		}
		s.reporter().Succeed(fmt.Sprintf("Serving presentation @ %s", url))
		if opts.Open {
			openOnce.Do(func() {
				if err := s.open(url); err != nil {
					s.Logger.Warn(fmt.Sprintf("could not open browser: %v", err))
				}
			})
		}
	}()

	select {
	case <-ctx.Done():
		cancel()
		<-exited
		return false, nil
	case <-changes:
		cancel()
		<-exited
		return true, nil
	case err := <-exited:
		if err != nil && ctx.Err() == nil {
			s.reporter().Fail("Dev server stopped.")
			return false, melodramaerrors.NewBundleError(string(ModeDevelopment), err)
		}
		return false, nil
	}
}

func (s *DevServer) watch(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- struct{}) {
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !isWatched(event) {
				continue
			}
			s.Logger.WithFields(map[string]any{"file": event.Name, "op": event.Op.String()}).Debug("settings changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(restartDebounce, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.Logger.Error(err, "file watcher failed")
		}
	}
}

func isWatched(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(event.Name)
	for _, name := range WatchedFiles {
		if base == name {
			return true
		}
	}
	return false
}

func (s *DevServer) reporter() progress.Reporter {
	if s.Reporter == nil {
		return progress.Nop{}
	}
	return s.Reporter
}

func (s *DevServer) open(url string) error {
	if s.Open != nil {
		return s.Open(url)
	}
	return OpenBrowser(url)
}

func splitCommand(command string) (string, []string, error) {
	if command == "" {
		command = DefaultCommand
	}
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, errors.New("bundler command is empty")
	}
	return fields[0], fields[1:], nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
