package dicomtag_test

import (
	"testing"

	"github.com/odincare/dcmview/dicomtag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	a := dicomtag.Tag{Group: 0x0008, Element: 0x0018}
	b := dicomtag.Tag{Group: 0x0010, Element: 0x0010}
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, -1, dicomtag.Rows.Compare(dicomtag.Columns))
}

func TestFind(t *testing.T) {
	e, err := dicomtag.Find(dicomtag.PatientName)
	require.NoError(t, err)
	assert.Equal(t, "PN", e.VR)
	assert.Equal(t, "PatientName", e.Name)

	// Group length of any even group is generic.
	e, err = dicomtag.Find(dicomtag.Tag{Group: 0x0028, Element: 0x0000})
	require.NoError(t, err)
	assert.Equal(t, "UL", e.VR)

	_, err = dicomtag.Find(dicomtag.Tag{Group: 0x0009, Element: 0x1001})
	require.Error(t, err)
}

func TestFindByName(t *testing.T) {
	e, err := dicomtag.FindByName("TransferSyntaxUID")
	require.NoError(t, err)
	assert.Equal(t, dicomtag.TransferSyntaxUID, e.Tag)

	_, err = dicomtag.FindByName("NoSuchTag")
	require.Error(t, err)
}

func TestDebugString(t *testing.T) {
	assert.Equal(t, "(0010,0010)[PatientName]", dicomtag.DebugString(dicomtag.PatientName))
	assert.Equal(t, "(0009,0010)[private]", dicomtag.DebugString(dicomtag.Tag{Group: 0x0009, Element: 0x0010}))
	assert.Equal(t, "(0010,9999)[??]", dicomtag.DebugString(dicomtag.Tag{Group: 0x0010, Element: 0x9999}))
}

func TestParse(t *testing.T) {
	for _, s := range []string{"PatientID", "(0010,0020)", "0010,0020", "(0010, 0020)"} {
		tag, err := dicomtag.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, dicomtag.PatientID, tag, s)
	}
	_, err := dicomtag.Parse("(0010)")
	require.Error(t, err)
	_, err = dicomtag.Parse("(zzzz,0010)")
	require.Error(t, err)
}

func TestGetVRKind(t *testing.T) {
	assert.Equal(t, dicomtag.VRItem, dicomtag.GetVRKind(dicomtag.Item, "NA"))
	assert.Equal(t, dicomtag.VRPixelData, dicomtag.GetVRKind(dicomtag.PixelData, "OW"))
	assert.Equal(t, dicomtag.VRSequence, dicomtag.GetVRKind(dicomtag.ContentSequence, "SQ"))
	assert.Equal(t, dicomtag.VRUInt16List, dicomtag.GetVRKind(dicomtag.Rows, "US"))
	assert.Equal(t, dicomtag.VRStringList, dicomtag.GetVRKind(dicomtag.WindowCenter, "DS"))
	assert.Equal(t, dicomtag.VRFloat32List, dicomtag.GetVRKind(dicomtag.GraphicData, "FL"))
	assert.Equal(t, "Sequence", dicomtag.VRSequence.String())
}

func TestHasLongLength(t *testing.T) {
	for _, vr := range []string{"OB", "OW", "SQ", "UN", "UT", "UC", "UR"} {
		assert.True(t, dicomtag.HasLongLength(vr), vr)
	}
	for _, vr := range []string{"US", "UL", "CS", "DS", "PN", "FD"} {
		assert.False(t, dicomtag.HasLongLength(vr), vr)
	}
	assert.True(t, dicomtag.IsKnownVR("LO"))
	assert.False(t, dicomtag.IsKnownVR("ZZ"))
}
