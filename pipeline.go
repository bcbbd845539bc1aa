package tileassist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/tileassist/tile"
	"go.uber.org/zap"
)

// TileFile is a tile image stored on disk
type TileFile struct {
	Key  tile.Key
	Path string
}

// ParseTileName extracts the tile coordinate from a filename of the form
// "X_Y.png" or "X-Y.png"
func ParseTileName(name string) (tile.Key, bool) {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	var k tile.Key
	for _, format := range []string{"%d_%d", "%d-%d"} {
		if n, err := fmt.Sscanf(base, format, &k.X, &k.Y); err == nil && n == 2 && fmt.Sprintf(format, k.X, k.Y) == base {
			return k, true
		}
	}
	return tile.Key{}, false
}

func (a *Assist) findTiles(ctx context.Context, dir string) (<-chan TileFile, <-chan error, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, err
	}

	out := make(chan TileFile)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for _, entry := range entries {
			// Ignore any hidden files or directories
			if entry.Name()[0] == '.' || !entry.Type().IsRegular() {
				continue
			}

			key, ok := ParseTileName(entry.Name())
			if !ok {
				a.logger.Debug("ignoring file", zap.String("name", entry.Name()))
				continue
			}

			select {
			case out <- TileFile{Key: key, Path: filepath.Join(dir, entry.Name())}:
			case <-ctx.Done():
				errc <- errors.New("walk cancelled")
				return
			}
		}
	}()
	return out, errc, nil
}

func (a *Assist) tileWorker(ctx context.Context, in <-chan TileFile, outDir string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for tf := range in {
			raw, err := os.ReadFile(tf.Path)
			if err != nil {
				errc <- err
				return
			}

			b := a.RenderTile(tf.Key.X, tf.Key.Y, raw)

			if outDir != "" {
				if err := os.WriteFile(filepath.Join(outDir, filepath.Base(tf.Path)), b, 0o644); err != nil {
					errc <- err
					return
				}
			}

			if err := ctx.Err(); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// RenderDir runs every tile image in dir through RenderTile using the given
// number of workers. If outDir isn't empty the composited tiles are written
// there under the same names.
func (a *Assist) RenderDir(dir, outDir string, workers int) error {
	if workers < 1 {
		workers = 1
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	tiles, errc, err := a.findTiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errcList = append(errcList, a.tileWorker(ctx, tiles, outDir))
	}

	if err := waitForPipeline(errcList...); err != nil {
		cancelFunc()
		return err
	}
	return nil
}
