package dicom_test

import (
	"errors"
	"testing"

	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
	"github.com/odincare/dcmview/internal/dcmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roiItem(number, name string) dcmtest.Item {
	return dcmtest.NewItem(
		dcmtest.Str(dicomtag.ROINumber, "IS", number),
		dcmtest.Str(dicomtag.ReferencedFrameOfReferenceUID, "UI", "1.2.3"),
		dcmtest.Str(dicomtag.ROIName, "LO", name),
		dcmtest.Str(dicomtag.ROIGenerationAlgorithm, "CS", "MANUAL"),
	)
}

func contour(points string, data ...string) dcmtest.Item {
	return dcmtest.NewItem(
		dcmtest.Seq(dicomtag.ContourImageSequence, dcmtest.NewItem(
			dcmtest.Str(dicomtag.ReferencedSOPClassUID, "UI", dicomuid.CTImageStorage),
			dcmtest.Str(dicomtag.ReferencedSOPInstanceUID, "UI", "1.2.3.9"),
		)),
		dcmtest.Str(dicomtag.ContourGeometricType, "CS", "CLOSED_PLANAR"),
		dcmtest.Str(dicomtag.NumberOfContourPoints, "IS", points),
		dcmtest.Str(dicomtag.ContourNumber, "IS", "1"),
		dcmtest.Str(dicomtag.ContourData, "DS", data...),
	)
}

func rtStructureSet() []dcmtest.Element {
	return []dcmtest.Element{
		dcmtest.Str(dicomtag.SOPClassUID, "UI", dicomuid.RTStructureSetStorage),
		dcmtest.Str(dicomtag.Modality, "CS", "RTSTRUCT"),
		dcmtest.Str(dicomtag.StructureSetLabel, "SH", "Plan1"),
		dcmtest.Str(dicomtag.StructureSetName, "LO", "Head"),
		dcmtest.Str(dicomtag.StructureSetDate, "DA", "20200101"),
		dcmtest.Seq(dicomtag.ReferencedFrameOfReferenceSequence, dcmtest.NewItem(
			dcmtest.Str(dicomtag.FrameOfReferenceUID, "UI", "1.2.3"),
		)),
		dcmtest.Seq(dicomtag.StructureSetROISequence,
			roiItem("1", "PTV"),
			roiItem("2", "Brainstem"),
			// Duplicate number.
			roiItem("2", "Brainstem copy"),
		),
		dcmtest.Seq(dicomtag.ROIContourSequence,
			dcmtest.NewItem(
				dcmtest.Str(dicomtag.ROIDisplayColor, "IS", "255", "0", "0"),
				dcmtest.Seq(dicomtag.ContourSequence,
					contour("2", "0", "0", "10", "5", "5", "10"),
					// 4 coordinates.
					contour("1", "0", "0", "10", "5"),
				),
				dcmtest.Str(dicomtag.ReferencedROINumber, "IS", "1"),
			),
			dcmtest.NewItem(
				dcmtest.Seq(dicomtag.ContourSequence,
					// NumberOfContourPoints disagrees with the data.
					contour("3", "1", "1", "1"),
				),
				dcmtest.Str(dicomtag.ReferencedROINumber, "IS", "2"),
			),
			dcmtest.NewItem(
				dcmtest.Str(dicomtag.ReferencedROINumber, "IS", "7"),
			),
		),
		dcmtest.Seq(dicomtag.RTROIObservationsSequence,
			dcmtest.NewItem(
				dcmtest.Str(dicomtag.ObservationNumber, "IS", "1"),
				dcmtest.Str(dicomtag.ReferencedROINumber, "IS", "1"),
				dcmtest.Str(dicomtag.RTROIInterpretedType, "CS", "PTV"),
			),
			dcmtest.NewItem(
				dcmtest.Str(dicomtag.ObservationNumber, "IS", "2"),
				dcmtest.Str(dicomtag.ReferencedROINumber, "IS", "2"),
				dcmtest.Str(dicomtag.RTROIInterpretedType, "CS", "ORGAN"),
			),
		),
	}
}

func TestExtractRTStructureSet(t *testing.T) {
	ds := mustRead(t, explicitFile(rtStructureSet()...), dicom.ReadOptions{})

	s, err := dicom.ExtractRTStructureSet(ds)
	require.NoError(t, err)
	assert.Equal(t, "Plan1", s.Label)
	assert.Equal(t, "Head", s.Name)
	assert.Equal(t, "20200101", s.Date)
	assert.Equal(t, []string{"1.2.3"}, s.FrameOfReferenceUIDs)
	require.Len(t, s.ROIs, 2)

	ptv, ok := s.ROI(1)
	require.True(t, ok)
	assert.Equal(t, "PTV", ptv.Name)
	assert.Equal(t, "MANUAL", ptv.GenerationAlgorithm)
	assert.Equal(t, "1.2.3", ptv.FrameOfReferenceUID)
	assert.Equal(t, []int{255, 0, 0}, ptv.Color)
	assert.Equal(t, "PTV", ptv.InterpretedType)
	require.Len(t, ptv.Contours, 1)
	c := ptv.Contours[0]
	assert.Equal(t, 1, c.Number)
	assert.Equal(t, "CLOSED_PLANAR", c.GeometricType)
	assert.Equal(t, [][3]float64{{0, 0, 10}, {5, 5, 10}}, c.Points)
	assert.Equal(t, []string{"1.2.3.9"}, c.ReferencedSOPInstanceUIDs)

	brainstem, ok := s.ROI(2)
	require.True(t, ok)
	assert.Equal(t, "Brainstem", brainstem.Name)
	assert.Nil(t, brainstem.Color)
	assert.Equal(t, "ORGAN", brainstem.InterpretedType)
	// Kept despite the point count mismatch.
	require.Len(t, brainstem.Contours, 1)
	assert.Equal(t, [][3]float64{{1, 1, 1}}, brainstem.Contours[0].Points)

	_, ok = s.ROI(7)
	assert.False(t, ok)

	// Duplicate ROI, odd ContourData, point count, undefined ROI 7.
	require.Len(t, s.Warnings, 4)
	assert.True(t, errors.Is(s.Warnings[0], dicom.ErrMalformedElement))
	assert.True(t, errors.Is(s.Warnings[1], dicom.ErrMalformedElement))
	assert.True(t, errors.Is(s.Warnings[3], dicom.ErrMalformedElement))
	var ee *dicom.ElementError
	require.True(t, errors.As(s.Warnings[3], &ee))
	assert.Equal(t, dicomtag.ROIContourSequence, ee.Tag)
}

func TestExtractRTStructureSetMissingROIs(t *testing.T) {
	ds := mustRead(t, explicitFile(
		dcmtest.Str(dicomtag.StructureSetLabel, "SH", "Empty"),
	), dicom.ReadOptions{})
	_, err := dicom.ExtractRTStructureSet(ds)
	assert.True(t, errors.Is(err, dicom.ErrRequiredTagMissing))
}

func TestExtractRTStructureSetImplicit(t *testing.T) {
	f := explicitFile(rtStructureSet()...)
	f.TransferSyntaxUID = dicomuid.ImplicitVRLittleEndian
	ds := mustRead(t, f, dicom.ReadOptions{})

	s, err := dicom.ExtractRTStructureSet(ds)
	require.NoError(t, err)
	assert.Len(t, s.ROIs, 2)
	ptv, _ := s.ROI(1)
	require.NotNil(t, ptv)
	assert.Len(t, ptv.Contours, 1)
}
