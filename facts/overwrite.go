package facts

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"os"
)

// FileMode is the mode of written artifacts
const FileMode os.FileMode = 0644

// Overwrite replaces the content at URL with data, any prior file is removed first
func Overwrite(ctx context.Context, fs afs.Service, URL string, data []byte) error {
	exists, err := fs.Exists(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to check %v: %w", URL, err)
	}
	if exists {
		if err = fs.Delete(ctx, URL); err != nil {
			return fmt.Errorf("failed to remove %v: %w", URL, err)
		}
	}
	if err = fs.Upload(ctx, URL, FileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", URL, err)
	}
	return nil
}
