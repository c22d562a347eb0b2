package dicomuid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	info, err := Lookup(ExplicitVRLittleEndian + "\x00")
	require.NoError(t, err)
	assert.Equal(t, "Explicit VR Little Endian", info.Name)
	assert.Equal(t, TypeTransferSyntax, info.Type)

	info, err = Lookup(SegmentationStorage)
	require.NoError(t, err)
	assert.Equal(t, TypeSOPClass, info.Type)

	_, err = Lookup("1.2.3")
	assert.Error(t, err)
	assert.Equal(t, "1.2.3", UIDString("1.2.3"))
	assert.Equal(t, "RLE Lossless", UIDString(RLELossless))
}

func TestIsStructuredReport(t *testing.T) {
	assert.True(t, IsStructuredReport(ComprehensiveSRStorage))
	assert.True(t, IsStructuredReport(KeyObjectSelectionDocumentStorage))
	assert.False(t, IsStructuredReport(CTImageStorage))
}
