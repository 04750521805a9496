package catalog

import (
	"context"
	"crypto/sha1"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/bmpfile"
)

const workers = 10

// Indexer populates a Catalog from the filesystem.
type Indexer struct {
	catalog *Catalog
	logger  *log.Logger
}

// NewIndexer returns an Indexer storing into c and logging skipped files to
// logger.
func NewIndexer(c *Catalog, logger *log.Logger) *Indexer {
	return &Indexer{
		catalog: c,
		logger:  logger,
	}
}

func hashFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%X", h.Sum(nil)), nil
}

func (ix *Indexer) findFiles(ctx context.Context, base string) (<-chan string, <-chan error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !strings.EqualFold(filepath.Ext(file), ".bmp") {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("catalog: walk cancelled")
			}

			return nil
		})
	}()
	return out, errc
}

func (ix *Indexer) fileWorker(in <-chan string) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			var p bmpfile.ImageProperties
			if err := bmpfile.LoadProperties(file, &p); err != nil {
				ix.logger.Printf("Skipping \"%s\": %s\n", file, bmpfile.ResultOf(err))
				continue
			}

			sha, err := hashFile(file)
			if err != nil {
				errc <- err
				return
			}

			if _, err := ix.catalog.Add(file, sha, p); err != nil {
				errc <- err
				return
			}
			ix.logger.Printf("Indexed \"%s\", %dx%d %s\n", file, p.Width, p.Height, p.PixelFormat)
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

// Scan indexes every BMP file found below path.
func (ix *Indexer) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc := ix.findFiles(ctx, dir)
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errcList = append(errcList, ix.fileWorker(files))
	}

	return waitForPipeline(errcList...)
}
