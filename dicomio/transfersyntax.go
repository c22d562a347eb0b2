package dicomio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/odincare/dcmview/dicomuid"
)

// ErrUnsupportedTransferSyntax is returned for transfer syntax UIDs that are
// not in the table below, and for encapsulated syntaxes whose codec is not
// registered.
var ErrUnsupportedTransferSyntax = errors.New("dicom: unsupported transfer syntax")

// CodecID names the compression family of an encapsulated transfer syntax.
type CodecID string

const (
	CodecNone         CodecID = ""
	CodecJPEGBaseline CodecID = "jpeg-baseline"
	CodecJPEGExtended CodecID = "jpeg-extended"
	CodecJPEGLossless CodecID = "jpeg-lossless"
	CodecJPEGLS       CodecID = "jpeg-ls"
	CodecJPEG2000     CodecID = "jpeg-2000"
	CodecHTJ2K        CodecID = "htj2k"
	CodecRLE          CodecID = "rle"
)

// TransferSyntax is the resolved encoding of a dataset. It is a value type
// and is never modified after lookup.
type TransferSyntax struct {
	UID       string
	Name      string
	ByteOrder binary.ByteOrder
	Implicit  IsImplicitVR
	// Deflated is true when the dataset following the file meta group is
	// compressed with raw deflate.
	Deflated bool
	// Encapsulated is true when the pixel data is stored as fragments.
	Encapsulated bool
	Codec        CodecID
}

func (ts TransferSyntax) String() string {
	order := "little endian"
	if ts.ByteOrder == binary.BigEndian {
		order = "big endian"
	}
	s := fmt.Sprintf("%s [%s, %s VR, %s", ts.UID, ts.Name, ts.Implicit, order)
	if ts.Codec != CodecNone {
		s += ", codec " + string(ts.Codec)
	}
	return s + "]"
}

var transferSyntaxes = map[string]TransferSyntax{}

func init() {
	add := func(uid string, order binary.ByteOrder, implicit IsImplicitVR, deflated bool, codec CodecID) {
		transferSyntaxes[uid] = TransferSyntax{
			UID:          uid,
			Name:         dicomuid.UIDString(uid),
			ByteOrder:    order,
			Implicit:     implicit,
			Deflated:     deflated,
			Encapsulated: codec != CodecNone,
			Codec:        codec,
		}
	}
	le := binary.LittleEndian
	add(dicomuid.ImplicitVRLittleEndian, le, ImplicitVR, false, CodecNone)
	add(dicomuid.ExplicitVRLittleEndian, le, ExplicitVR, false, CodecNone)
	add(dicomuid.DeflatedExplicitVRLittleEndian, le, ExplicitVR, true, CodecNone)
	add(dicomuid.ExplicitVRBigEndian, binary.BigEndian, ExplicitVR, false, CodecNone)
	add(dicomuid.JPEGBaseline8Bit, le, ExplicitVR, false, CodecJPEGBaseline)
	add(dicomuid.JPEGExtended12Bit, le, ExplicitVR, false, CodecJPEGExtended)
	add(dicomuid.JPEGLossless, le, ExplicitVR, false, CodecJPEGLossless)
	add(dicomuid.JPEGLosslessSV1, le, ExplicitVR, false, CodecJPEGLossless)
	add(dicomuid.JPEGLSLossless, le, ExplicitVR, false, CodecJPEGLS)
	add(dicomuid.JPEGLSNearLossless, le, ExplicitVR, false, CodecJPEGLS)
	add(dicomuid.JPEG2000Lossless, le, ExplicitVR, false, CodecJPEG2000)
	add(dicomuid.JPEG2000, le, ExplicitVR, false, CodecJPEG2000)
	add(dicomuid.HTJ2KLossless, le, ExplicitVR, false, CodecHTJ2K)
	add(dicomuid.HTJ2KLosslessRPCL, le, ExplicitVR, false, CodecHTJ2K)
	add(dicomuid.HTJ2K, le, ExplicitVR, false, CodecHTJ2K)
	add(dicomuid.RLELossless, le, ExplicitVR, false, CodecRLE)
}

// LookupTransferSyntax resolves a transfer syntax UID. Trailing NUL/space
// padding is ignored. Unknown UIDs fail with ErrUnsupportedTransferSyntax.
func LookupTransferSyntax(uid string) (TransferSyntax, error) {
	uid = strings.TrimRight(uid, " \x00")
	ts, ok := transferSyntaxes[uid]
	if !ok {
		return TransferSyntax{}, fmt.Errorf("%w: '%s'", ErrUnsupportedTransferSyntax, uid)
	}
	return ts, nil
}

// CanonicalTransferSyntaxUID return the canonical transfer syntax UID
// (e.g. uid.ExplicitVRLittleEndian or uid.ImplicitVrLittleEndian),
// given an UID that represents any transfer syntax. Returns an error if
// the uid is not a known transfer syntax.
func CanonicalTransferSyntaxUID(uid string) (string, error) {
	ts, err := LookupTransferSyntax(uid)
	if err != nil {
		return "", err
	}
	switch ts.UID {
	case dicomuid.ImplicitVRLittleEndian,
		dicomuid.ExplicitVRLittleEndian,
		dicomuid.ExplicitVRBigEndian,
		dicomuid.DeflatedExplicitVRLittleEndian:
		return ts.UID, nil
	default:
		// the default is ExplicitVRLittleEndian
		return dicomuid.ExplicitVRLittleEndian, nil
	}
}

// ParseTransferSyntaxUID parses a transfer syntax uid and returns its byteorder
// and implicitVR/explicitVR type. TransferSyntaxUID can be any UID that refers to
// a transfer syntax. It can be, e.g.
// 1.2.840.10008.1.2(it will return (LittleEndian, ImplicitVR))
// or 1.2.840.10008.1.2.4.50(it will return (LittleEndian, ExplicitVR))
func ParseTransferSyntaxUID(uid string) (byteorder binary.ByteOrder, implicit IsImplicitVR, err error) {
	ts, err := LookupTransferSyntax(uid)
	if err != nil {
		return nil, UnknownVR, err
	}
	return ts.ByteOrder, ts.Implicit, nil
}
