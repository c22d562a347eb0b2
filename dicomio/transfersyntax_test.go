package dicomio_test

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/odincare/dcmview/dicomio"
	"github.com/odincare/dcmview/dicomuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTransferSyntax(t *testing.T) {
	tests := []struct {
		uid          string
		order        binary.ByteOrder
		implicit     dicomio.IsImplicitVR
		deflated     bool
		encapsulated bool
		codec        dicomio.CodecID
	}{
		{dicomuid.ImplicitVRLittleEndian, binary.LittleEndian, dicomio.ImplicitVR, false, false, dicomio.CodecNone},
		{dicomuid.ExplicitVRLittleEndian, binary.LittleEndian, dicomio.ExplicitVR, false, false, dicomio.CodecNone},
		{dicomuid.ExplicitVRBigEndian, binary.BigEndian, dicomio.ExplicitVR, false, false, dicomio.CodecNone},
		{dicomuid.DeflatedExplicitVRLittleEndian, binary.LittleEndian, dicomio.ExplicitVR, true, false, dicomio.CodecNone},
		{dicomuid.JPEGBaseline8Bit, binary.LittleEndian, dicomio.ExplicitVR, false, true, dicomio.CodecJPEGBaseline},
		{dicomuid.JPEG2000Lossless, binary.LittleEndian, dicomio.ExplicitVR, false, true, dicomio.CodecJPEG2000},
		{dicomuid.RLELossless, binary.LittleEndian, dicomio.ExplicitVR, false, true, dicomio.CodecRLE},
	}
	for _, test := range tests {
		t.Run(test.uid, func(t *testing.T) {
			ts, err := dicomio.LookupTransferSyntax(test.uid + "\x00")
			require.NoError(t, err)
			assert.Equal(t, test.uid, ts.UID)
			assert.Equal(t, test.order, ts.ByteOrder)
			assert.Equal(t, test.implicit, ts.Implicit)
			assert.Equal(t, test.deflated, ts.Deflated)
			assert.Equal(t, test.encapsulated, ts.Encapsulated)
			assert.Equal(t, test.codec, ts.Codec)
			assert.NotEmpty(t, ts.Name)
		})
	}
}

func TestLookupUnknownTransferSyntax(t *testing.T) {
	_, err := dicomio.LookupTransferSyntax("1.2.3.4.5")
	require.Error(t, err)
	assert.True(t, errors.Is(err, dicomio.ErrUnsupportedTransferSyntax))

	_, _, err = dicomio.ParseTransferSyntaxUID("1.2.3.4.5")
	assert.True(t, errors.Is(err, dicomio.ErrUnsupportedTransferSyntax))
}

func TestCanonicalTransferSyntaxUID(t *testing.T) {
	uid, err := dicomio.CanonicalTransferSyntaxUID(dicomuid.JPEGLossless)
	require.NoError(t, err)
	assert.Equal(t, dicomuid.ExplicitVRLittleEndian, uid)

	uid, err = dicomio.CanonicalTransferSyntaxUID(dicomuid.ExplicitVRBigEndian)
	require.NoError(t, err)
	assert.Equal(t, dicomuid.ExplicitVRBigEndian, uid)
}

func TestParseSpecificCharacterSet(t *testing.T) {
	cs, err := dicomio.ParseSpecificCharacterSet([]string{"ISO_IR 100"})
	require.NoError(t, err)
	require.NotNil(t, cs.Ideographic)

	// 0xe9 is "é" in Latin-1.
	d := dicomio.NewBytesDecoder([]byte{'C', 'a', 'f', 0xe9}, binary.LittleEndian, dicomio.ExplicitVR)
	d.SetCodingSystem(cs)
	assert.Equal(t, "Café", d.ReadString(4))

	cs, err = dicomio.ParseSpecificCharacterSet([]string{"", "ISO 2022 IR 87"})
	require.NoError(t, err)
	assert.Nil(t, cs.Alphabetic)
	assert.NotNil(t, cs.Ideographic)
	assert.NotNil(t, cs.Phonetic)

	// Alphabetic stays ASCII, the other components are Latin-1.
	cs, err = dicomio.ParseSpecificCharacterSet([]string{"", "ISO_IR 100"})
	require.NoError(t, err)
	data := []byte{'C', 'a', 'f', 0xe9, 'C', 'a', 'f', 0xe9}
	d = dicomio.NewBytesDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)
	d.SetCodingSystem(cs)
	assert.Equal(t, "Caf\xe9", d.ReadStringWithCodingSystem(dicomio.AlphabeticCodingSystem, 4))
	assert.Equal(t, "Café", d.ReadStringWithCodingSystem(dicomio.PhoneticCodingSystem, 4))
	require.NoError(t, d.Error())

	_, err = dicomio.ParseSpecificCharacterSet([]string{"KLINGON"})
	require.Error(t, err)
}
