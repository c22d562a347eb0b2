package dicom_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/internal/dcmtest"
	"github.com/stretchr/testify/require"
)

func mustRead(t *testing.T, f dcmtest.File, options dicom.ReadOptions) *dicom.DataSet {
	t.Helper()
	ds, err := dicom.ReadDataSetInBytes(f.Bytes(), options)
	require.NoError(t, err)
	require.NotNil(t, ds)
	return ds
}

// writeFile writes an encoded file under t.TempDir and returns its path.
func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// imageModule is the image pixel module of a MONOCHROME2 image.
func imageModule(rows, columns, bitsAllocated uint16, frames int) []dcmtest.Element {
	elems := []dcmtest.Element{
		dcmtest.US(dicomtag.SamplesPerPixel, 1),
		dcmtest.Str(dicomtag.PhotometricInterpretation, "CS", "MONOCHROME2"),
	}
	if frames > 0 {
		elems = append(elems, dcmtest.Str(dicomtag.NumberOfFrames, "IS", strconv.Itoa(frames)))
	}
	return append(elems,
		dcmtest.US(dicomtag.Rows, rows),
		dcmtest.US(dicomtag.Columns, columns),
		dcmtest.US(dicomtag.BitsAllocated, bitsAllocated),
		dcmtest.US(dicomtag.BitsStored, bitsAllocated),
		dcmtest.US(dicomtag.HighBit, bitsAllocated-1),
		dcmtest.US(dicomtag.PixelRepresentation, 0),
	)
}

// findWarning returns the first warning that matches target.
func findWarning(ds *dicom.DataSet, target error) *dicom.ElementError {
	for _, w := range ds.Warnings {
		var ee *dicom.ElementError
		if errors.Is(w, target) && errors.As(w, &ee) {
			return ee
		}
	}
	return nil
}
