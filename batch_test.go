package dicom_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStudy(t *testing.T, dir string, ids ...string) []string {
	t.Helper()
	var paths []string
	for _, id := range ids {
		path := filepath.Join(dir, id+".dcm")
		require.NoError(t, os.WriteFile(path, explicitFile(patientModule(id)...).Bytes(), 0644))
		paths = append(paths, path)
	}
	return paths
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	paths := writeStudy(t, dir, "P1", "P2", "P3", "P4", "P5")
	junk := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(junk, []byte("not a dicom file"), 0644))
	paths = append(paths, junk)

	for _, workers := range []int{1, 2, 0} {
		got := map[string]dicom.Result{}
		for r := range dicom.ReadFiles(context.Background(), paths, dicom.ReadOptions{}, workers) {
			got[r.Path] = r
		}
		require.Len(t, got, len(paths), "workers=%d", workers)
		for _, path := range paths[:5] {
			r := got[path]
			require.NoError(t, r.Err, path)
			id, err := r.DataSet.GetString(dicomtag.PatientID)
			require.NoError(t, err)
			assert.Equal(t, filepath.Base(path), id+".dcm")
		}
		assert.True(t, errors.Is(got[junk].Err, dicom.ErrNotDICOM))
		assert.Nil(t, got[junk].DataSet)
	}
}

func TestReadFilesCancelled(t *testing.T) {
	paths := writeStudy(t, t.TempDir(), "P1", "P2", "P3")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var n int
	for range dicom.ReadFiles(ctx, paths, dicom.ReadOptions{}, 1) {
		n++
	}
	assert.Equal(t, 0, n)
}

func TestReadFilesZeroConfigWorkers(t *testing.T) {
	defer dicom.OverrideConfig(dicom.GetConfig())
	dicom.OverrideConfig(dicom.Config{})

	paths := writeStudy(t, t.TempDir(), "P1", "P2")
	results := dicom.ReadFiles(context.Background(), paths, dicom.ReadOptions{}, 0)
	var n int
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				assert.Equal(t, 2, n)
				return
			}
			n++
		case <-timeout:
			t.Fatalf("ReadFiles delivered %d of 2 results", n)
		}
	}
}

func TestReadFilesStopDraining(t *testing.T) {
	paths := writeStudy(t, t.TempDir(), "P1", "P2", "P3", "P4", "P5", "P6")
	ctx, cancel := context.WithCancel(context.Background())
	results := dicom.ReadFiles(ctx, paths, dicom.ReadOptions{}, 2)
	<-results
	cancel()

	// Workers give up on undelivered results, so the channel still closes.
	time.Sleep(50 * time.Millisecond)
	timeout := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-results:
			if !ok {
				return
			}
		case <-timeout:
			t.Fatal("results channel not closed after cancel")
		}
	}
}

func TestReadFilesMissing(t *testing.T) {
	results := dicom.ReadFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.dcm")}, dicom.ReadOptions{}, 1)
	r, ok := <-results
	require.True(t, ok)
	assert.True(t, errors.Is(r.Err, os.ErrNotExist), "%v", r.Err)
	_, ok = <-results
	assert.False(t, ok)
}

func TestWalkDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deeper"), 0755))
	for _, name := range []string{"b.dcm", "a.dcm", filepath.Join("sub", "c.dcm"), filepath.Join("sub", "deeper", "d.dcm")} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0644))
	}

	files, err := dicom.WalkDir(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.dcm"),
		filepath.Join(dir, "b.dcm"),
		filepath.Join(dir, "sub", "c.dcm"),
		filepath.Join(dir, "sub", "deeper", "d.dcm"),
	}, files)

	_, err = dicom.WalkDir(filepath.Join(dir, "nope"))
	assert.Error(t, err)
}
