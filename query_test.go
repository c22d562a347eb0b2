package dicom_test

import (
	"testing"

	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/internal/dcmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryDataSet(t *testing.T) *dicom.DataSet {
	elems := append(patientModule("P001"),
		dcmtest.Str(dicomtag.StudyDate, "DA", "20200315"),
		dcmtest.Str(dicomtag.Modality, "CS", "CT"),
		dcmtest.Str(dicomtag.StudyInstanceUID, "UI", "1.2.3"),
		dcmtest.Seq(dicomtag.ReferencedSeriesSequence,
			dcmtest.NewItem(dcmtest.Str(dicomtag.SeriesInstanceUID, "UI", "1.2.3.1")),
			dcmtest.NewItem(dcmtest.Str(dicomtag.SeriesInstanceUID, "UI", "1.2.3.4")),
		),
		dcmtest.US(dicomtag.Rows, 512),
	)
	return mustRead(t, explicitFile(elems...), dicom.ReadOptions{})
}

func seriesFilter(uid string) *dicom.Element {
	item := &dicom.Item{DataSet: dicom.DataSet{Elements: []*dicom.Element{
		dicom.MustNewElement(dicomtag.SeriesInstanceUID, uid),
	}}}
	return dicom.MustNewElement(dicomtag.ReferencedSeriesSequence, item)
}

func TestQuery(t *testing.T) {
	ds := queryDataSet(t)
	tests := []struct {
		name   string
		filter *dicom.Element
		match  bool
	}{
		{"glob", dicom.MustNewElement(dicomtag.PatientName, "Doe*"), true},
		{"glob mismatch", dicom.MustNewElement(dicomtag.PatientName, "Smith*"), false},
		{"exact", dicom.MustNewElement(dicomtag.PatientID, "P001"), true},
		{"single character", dicom.MustNewElement(dicomtag.Modality, "C?"), true},
		{"empty value", dicom.MustNewElement(dicomtag.PatientName), true},
		{"universal glob", dicom.MustNewElement(dicomtag.PatientName, "**"), true},
		{"absent element", dicom.MustNewElement(dicomtag.BodyPartExamined, "CHEST"), false},
		{"absent element universal", dicom.MustNewElement(dicomtag.StudyDescription), true},
		{"uid list", dicom.MustNewElement(dicomtag.StudyInstanceUID, "9.9", "1.2.3"), true},
		{"uid list mismatch", dicom.MustNewElement(dicomtag.StudyInstanceUID, "9.9", "1.2"), false},
		{"numeric", dicom.MustNewElement(dicomtag.Rows, uint16(512)), true},
		{"numeric mismatch", dicom.MustNewElement(dicomtag.Rows, uint16(256)), false},
		{"date range", dicom.MustNewElement(dicomtag.StudyDate, "20200101-20201231"), true},
		{"date upper bound", dicom.MustNewElement(dicomtag.StudyDate, "-20191231"), false},
		{"date lower bound", dicom.MustNewElement(dicomtag.StudyDate, "20200315-"), true},
		{"date exact", dicom.MustNewElement(dicomtag.StudyDate, "20200315"), true},
		{"query level", dicom.MustNewElement(dicomtag.QueryRetrieveLevel, "STUDY"), true},
		{"sequence", seriesFilter("1.2.3.4"), true},
		{"sequence mismatch", seriesFilter("5.6"), false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			match, elem, err := dicom.Query(ds, test.filter)
			require.NoError(t, err)
			assert.Equal(t, test.match, match)
			if !match {
				assert.Nil(t, elem)
			}
		})
	}
}

func TestQueryMatchedElement(t *testing.T) {
	ds := queryDataSet(t)
	match, elem, err := dicom.Query(ds, dicom.MustNewElement(dicomtag.PatientName, "*John"))
	require.NoError(t, err)
	assert.True(t, match)
	require.NotNil(t, elem)
	assert.Equal(t, "Doe^John", elem.MustGetString())

	// A universal match of an absent element has no matched element.
	match, elem, err = dicom.Query(ds, dicom.MustNewElement(dicomtag.StudyDescription))
	require.NoError(t, err)
	assert.True(t, match)
	assert.Nil(t, elem)
}

func TestQueryMalformedFilter(t *testing.T) {
	ds := queryDataSet(t)
	_, _, err := dicom.Query(ds, dicom.MustNewElement(dicomtag.PatientName, "Doe", "Roe"))
	assert.Error(t, err)

	_, _, err = dicom.Query(ds, dicom.MustNewElement(dicomtag.PatientName, "[Doe"))
	assert.Error(t, err)
}

func TestQueryAll(t *testing.T) {
	ds := queryDataSet(t)
	ok, err := dicom.QueryAll(ds, []*dicom.Element{
		dicom.MustNewElement(dicomtag.PatientID, "P001"),
		dicom.MustNewElement(dicomtag.Modality, "CT"),
		seriesFilter("1.2.3.1"),
	})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dicom.QueryAll(ds, []*dicom.Element{
		dicom.MustNewElement(dicomtag.PatientID, "P001"),
		dicom.MustNewElement(dicomtag.Modality, "MR"),
	})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = dicom.QueryAll(ds, nil)
	require.NoError(t, err)
	assert.True(t, ok)
}
