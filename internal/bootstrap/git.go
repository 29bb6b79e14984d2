package bootstrap

import (
	"errors"

	git "github.com/go-git/go-git/v5"
)

// initRepository creates a git repository in dir unless one already exists.
// It reports whether a repository was created.
func initRepository(dir string) (bool, error) {
	if _, err := git.PlainOpen(dir); err == nil {
		return false, nil
	} else if !errors.Is(err, git.ErrRepositoryNotExists) {
		return false, err
	}

	if _, err := git.PlainInit(dir, false); err != nil {
		return false, err
	}
	return true, nil
}
