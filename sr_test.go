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

func codeSeq(tag dicomtag.Tag, value, scheme, meaning string) dcmtest.Element {
	return dcmtest.Seq(tag, dcmtest.NewItem(
		dcmtest.Str(dicomtag.CodeValue, "SH", value),
		dcmtest.Str(dicomtag.CodingSchemeDesignator, "SH", scheme),
		dcmtest.Str(dicomtag.CodeMeaning, "LO", meaning),
	))
}

func contentItem(relationship, valueType string, elems ...dcmtest.Element) dcmtest.Item {
	head := []dcmtest.Element{
		dcmtest.Str(dicomtag.RelationshipType, "CS", relationship),
	}
	if valueType != "" {
		head = append(head, dcmtest.Str(dicomtag.ValueType, "CS", valueType))
	}
	return dcmtest.NewItem(append(head, elems...)...)
}

func structuredReport() []dcmtest.Element {
	return []dcmtest.Element{
		dcmtest.Str(dicomtag.SOPClassUID, "UI", dicomuid.ComprehensiveSRStorage),
		dcmtest.Str(dicomtag.ValueType, "CS", "CONTAINER"),
		codeSeq(dicomtag.ConceptNameCodeSequence, "126000", "DCM", "Imaging Measurement Report"),
		dcmtest.Str(dicomtag.ContinuityOfContent, "CS", "SEPARATE"),
		dcmtest.Seq(dicomtag.ContentTemplateSequence, dcmtest.NewItem(
			dcmtest.Str(dicomtag.TemplateIdentifier, "CS", "1500"),
		)),
		dcmtest.Str(dicomtag.CompletionFlag, "CS", "COMPLETE"),
		dcmtest.Str(dicomtag.VerificationFlag, "CS", "UNVERIFIED"),
		dcmtest.Seq(dicomtag.ContentSequence,
			contentItem("CONTAINS", "TEXT",
				codeSeq(dicomtag.ConceptNameCodeSequence, "121071", "DCM", "Finding"),
				dcmtest.Str(dicomtag.TextValue, "UT", "Nodule in left lobe"),
			),
			contentItem("CONTAINS", "NUM",
				codeSeq(dicomtag.ConceptNameCodeSequence, "410668003", "SCT", "Length"),
				dcmtest.Seq(dicomtag.MeasuredValueSequence, dcmtest.NewItem(
					codeSeq(dicomtag.MeasurementUnitsCodeSequence, "mm", "UCUM", "millimeter"),
					dcmtest.Str(dicomtag.NumericValue, "DS", "12.5"),
				)),
				dcmtest.Seq(dicomtag.ContentSequence,
					contentItem("HAS PROPERTIES", "CODE",
						codeSeq(dicomtag.ConceptNameCodeSequence, "363698007", "SCT", "Finding Site"),
						codeSeq(dicomtag.ConceptCodeSequence, "44029006", "SCT", "Left lung"),
					),
				),
			),
			// No ValueType: skipped along with its children.
			contentItem("CONTAINS", "",
				dcmtest.Seq(dicomtag.ContentSequence, contentItem("CONTAINS", "TEXT",
					dcmtest.Str(dicomtag.TextValue, "UT", "orphan"),
				)),
			),
			contentItem("CONTAINS", "IMAGE",
				dcmtest.Seq(dicomtag.ReferencedSOPSequence, dcmtest.NewItem(
					dcmtest.Str(dicomtag.ReferencedSOPClassUID, "UI", dicomuid.CTImageStorage),
					dcmtest.Str(dicomtag.ReferencedSOPInstanceUID, "UI", "1.2.3.4.5"),
					dcmtest.Str(dicomtag.ReferencedFrameNumber, "IS", "1", "2"),
				)),
			),
			contentItem("CONTAINS", "SCOORD",
				dcmtest.Str(dicomtag.GraphicType, "CS", "POINT"),
				dcmtest.Values(dicomtag.GraphicData, "FL", float32(10.5), float32(20.25)),
			),
		),
	}
}

func TestExtractStructuredReport(t *testing.T) {
	ds := mustRead(t, explicitFile(structuredReport()...), dicom.ReadOptions{})

	sr, err := dicom.ExtractStructuredReport(ds)
	require.NoError(t, err)
	assert.Equal(t, dicomuid.ComprehensiveSRStorage, sr.SOPClassUID)
	assert.Equal(t, &dicom.Code{Value: "126000", Scheme: "DCM", Meaning: "Imaging Measurement Report"}, sr.Title)
	assert.Equal(t, "CONTAINER", sr.ValueType)
	assert.Equal(t, "COMPLETE", sr.CompletionFlag)
	assert.Equal(t, "UNVERIFIED", sr.VerificationFlag)
	assert.Equal(t, "1500", sr.TemplateID)

	require.Len(t, sr.Content, 4)
	text := sr.Content[0]
	assert.Equal(t, "CONTAINS", text.RelationshipType)
	assert.Equal(t, "TEXT", text.ValueType)
	assert.Equal(t, "Finding", text.ConceptName.Meaning)
	assert.Equal(t, "Nodule in left lobe", text.Text)
	assert.Empty(t, text.Children)

	num := sr.Content[1]
	require.NotNil(t, num.Numeric)
	assert.Equal(t, 12.5, *num.Numeric)
	assert.Equal(t, "mm", num.Units.Value)
	require.Len(t, num.Children, 1)
	site := num.Children[0]
	assert.Equal(t, "HAS PROPERTIES", site.RelationshipType)
	assert.Equal(t, &dicom.Code{Value: "44029006", Scheme: "SCT", Meaning: "Left lung"}, site.Code)

	image := sr.Content[2]
	assert.Equal(t, []dicom.Reference{{
		SOPClassUID:    dicomuid.CTImageStorage,
		SOPInstanceUID: "1.2.3.4.5",
		Frames:         []int{1, 2},
	}}, image.References)

	point := sr.Content[3]
	assert.Equal(t, "POINT", point.GraphicType)
	assert.Equal(t, []float64{10.5, 20.25}, point.GraphicData)

	require.Len(t, sr.Warnings, 1)
	assert.True(t, errors.Is(sr.Warnings[0], dicom.ErrRequiredTagMissing))
	var ee *dicom.ElementError
	require.True(t, errors.As(sr.Warnings[0], &ee))
	assert.Equal(t, dicomtag.ContentSequence, ee.Tag)
	assert.Greater(t, ee.Offset, int64(132))
}

func TestStructuredReportWalk(t *testing.T) {
	ds := mustRead(t, explicitFile(structuredReport()...), dicom.ReadOptions{})
	sr, err := dicom.ExtractStructuredReport(ds)
	require.NoError(t, err)

	type visit struct {
		valueType string
		depth     int
	}
	var visits []visit
	sr.Walk(func(node *dicom.ContentItem, depth int) bool {
		visits = append(visits, visit{node.ValueType, depth})
		return true
	})
	assert.Equal(t, []visit{{"TEXT", 0}, {"NUM", 0}, {"CODE", 1}, {"IMAGE", 0}, {"SCOORD", 0}}, visits)

	visits = nil
	sr.Walk(func(node *dicom.ContentItem, depth int) bool {
		visits = append(visits, visit{node.ValueType, depth})
		return node.ValueType != "NUM"
	})
	assert.Len(t, visits, 4)
}

func TestExtractStructuredReportNotSR(t *testing.T) {
	ds := mustRead(t, explicitFile(imageModule(2, 2, 8, 0)...), dicom.ReadOptions{})
	_, err := dicom.ExtractStructuredReport(ds)
	assert.True(t, errors.Is(err, dicom.ErrRequiredTagMissing))
}

func TestCodeString(t *testing.T) {
	var c *dicom.Code
	assert.Equal(t, "", c.String())
	c = &dicom.Code{Value: "mm", Scheme: "UCUM", Meaning: "millimeter"}
	assert.Equal(t, `(mm, UCUM, "millimeter")`, c.String())
}
