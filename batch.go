package dicom

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of decoding one file in ReadFiles.
type Result struct {
	Path    string
	DataSet *DataSet
	Err     error
}

// ReadFiles decodes files concurrently with at most workers decodes in
// flight; workers <= 0 uses Config.Workers. Results are sent in completion
// order and the channel is closed when every dispatched file is done.
// Cancelling ctx stops dispatching files that have not started, and results
// of files still in flight are dropped, so callers may stop draining the
// channel once they cancel.
func ReadFiles(ctx context.Context, paths []string, options ReadOptions, workers int) <-chan Result {
	if workers <= 0 {
		workers = GetConfig().Workers
	}
	if workers < 1 {
		workers = 1
	}
	results := make(chan Result, workers)
	go func() {
		defer close(results)
		guard := make(chan struct{}, workers) // limits number of concurrently open files
		wg := sync.WaitGroup{}
	dispatch:
		for _, path := range paths {
			if ctx.Err() != nil {
				break
			}
			select {
			case <-ctx.Done():
				break dispatch
			case guard <- struct{}{}:
			}
			wg.Add(1)
			go func(path string) {
				defer wg.Done()
				defer func() { <-guard }()
				ds, err := ReadDataSetFromFile(path, options)
				if err != nil {
					logrus.WithField("file", path).Debugf("dicom.ReadFiles: %v", err)
				}
				select {
				case results <- Result{Path: path, DataSet: ds, Err: err}:
				case <-ctx.Done():
				}
			}(path)
		}
		wg.Wait()
	}()
	return results
}

// WalkDir lists the regular files under dir, in lexical order.
func WalkDir(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		files = append(files, filePath)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
