package builder

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/StreamMUSE/streammuse/pkg/constants"
	"github.com/StreamMUSE/streammuse/pkg/errors"
)

// SourcePath is a content file located by its position in the tree.
type SourcePath struct {
	Rel       string // slash-separated, relative to the content root
	Model     string
	RawParams string
	Dataset   string
	Mode      string
	Filename  string
}

// ParseSourcePath splits a slash-separated relative path into its layout
// segments. Paths that are not exactly four directories deep are rejected
// with a *errors.LayoutError.
func ParseSourcePath(rel string) (SourcePath, error) {
	parts := strings.Split(rel, "/")
	if len(parts) != constants.LayoutDepth {
		return SourcePath{}, errors.NewLayoutError(rel, len(parts), constants.LayoutDepth)
	}
	return SourcePath{
		Rel:       rel,
		Model:     parts[0],
		RawParams: parts[1],
		Dataset:   parts[2],
		Mode:      parts[3],
		Filename:  parts[4],
	}, nil
}

// Scan walks root in lexical order and returns the slash-separated relative
// path of every file ending in .mid. An unreadable root or subtree aborts
// the scan.
func (b *Builder) Scan(ctx context.Context, root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapIO("walk", p, err)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), constants.MIDIExtension) {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return errors.WrapIO("walk", p, err)
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debug().Str("root", root).Int("files", len(files)).Msg("Scan complete")
	return files, nil
}
