// Package gitremote manages the local git remote the capsule CLI keeps
// pointing at an application's hosted repository.
package gitremote

import (
	"capsule/internal/slogger"
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// RemoteName is the reserved name of the remote this CLI manages.
const RemoteName = "capsule"

// IsRepository reports whether dir contains a .git entry. The check is a
// pure existence test; a .git that cannot actually be opened surfaces as
// an error from EnsureRemote instead.
func IsRepository(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// EnsureRemote makes sure the repository at dir has a remote named
// "capsule" pointing at remoteURL.
//
// When dir is not a git repository the call is a successful no-op. When a
// remote named "capsule" already exists it is left untouched, whatever
// URL it carries. The operation is idempotent: running it repeatedly
// never creates duplicates or rewrites configuration.
func EnsureRemote(ctx context.Context, dir, remoteURL string) error {
	if !IsRepository(dir) {
		slogger.Debug(ctx, "Not a git repository, skipping remote setup", slogger.Fields{
			"dir": dir,
		})
		return nil
	}

	repo, err := git.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("open repository: %w", err)
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return fmt.Errorf("list remotes: %w", err)
	}

	for _, remote := range remotes {
		if remote.Config().Name == RemoteName {
			slogger.Debug(ctx, "Remote already configured, leaving untouched", slogger.Fields{
				"remote": RemoteName,
			})
			return nil
		}
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: RemoteName,
		URLs: []string{remoteURL},
	}); err != nil {
		return fmt.Errorf("create remote %q: %w", RemoteName, err)
	}

	slogger.Debug(ctx, "Remote added", slogger.Fields{
		"remote": RemoteName,
		"url":    remoteURL,
	})
	return nil
}
