package builder

import (
	"context"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/StreamMUSE/streammuse/pkg/catalogs"
	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// WriteIndex persists groups at path. The encoding follows the file
// extension. The index is written to a temporary sibling and renamed into
// place while holding <path>.lock, so readers never observe a partial file
// and two builders never interleave.
func (b *Builder) WriteIndex(ctx context.Context, path string, groups []catalogs.CardGroup) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("mkdir", dir, err)
	}

	unlock, err := acquireLock(ctx, path+constants.LockSuffix)
	if err != nil {
		return err
	}
	defer unlock()

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.WrapIO("create", dir, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if err := catalogs.EncodeIndex(tmp, catalogs.FormatFromPath(path), groups); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errors.WrapIO("sync", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.WrapIO("close", tmpName, err)
	}
	if err := os.Chmod(tmpName, constants.FilePermissions); err != nil {
		cleanup()
		return errors.WrapIO("chmod", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return errors.WrapIO("rename", path, err)
	}

	b.logger.Info().Str("path", path).Int("groups", len(groups)).Msg("Wrote catalog index")
	return nil
}

// BuildIndex builds the catalog under root and writes it to indexPath.
// Nothing is written if the build fails.
func (b *Builder) BuildIndex(ctx context.Context, root, indexPath string) (*Result, error) {
	result, err := b.Build(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := b.WriteIndex(ctx, indexPath, result.Groups); err != nil {
		return nil, err
	}
	return result, nil
}

// acquireLock takes the builder lock, retrying until LockTimeout elapses or
// ctx is done.
func acquireLock(ctx context.Context, lockPath string) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, constants.LockTimeout)
	defer cancel()

	l := flock.New(lockPath)
	locked, err := l.TryLockContext(ctx, constants.LockRetryInterval)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewIOError("lock", lockPath, errors.ErrLocked)
		}
		return nil, errors.WrapIO("lock", lockPath, err)
	}
	if !locked {
		return nil, errors.NewIOError("lock", lockPath, errors.ErrLocked)
	}
	return func() { _ = l.Unlock() }, nil
}
