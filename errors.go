package dicom

import (
	"errors"
	"fmt"

	"github.com/odincare/dcmview/dicomio"
	"github.com/odincare/dcmview/dicomtag"
)

// Error kinds. Every error returned by this package wraps one of these, so
// callers classify failures with errors.Is.
var (
	// ErrNotDICOM: the 128-byte preamble + "DICM" magic is absent.
	ErrNotDICOM = errors.New("dicom: not a DICOM file")
	// ErrUnsupportedTransferSyntax: unknown transfer syntax UID, or no codec
	// registered for an encapsulated one.
	ErrUnsupportedTransferSyntax = dicomio.ErrUnsupportedTransferSyntax
	// ErrTruncatedInput: the input ended in the middle of an element.
	ErrTruncatedInput = dicomio.ErrTruncatedInput
	// ErrMalformedElement: an invalid VR/length combination or structure.
	ErrMalformedElement = errors.New("dicom: malformed element")
	// ErrUnparsableFile: the file failed before any dataset element could be
	// read, e.g. a truncated file meta group.
	ErrUnparsableFile = errors.New("dicom: unparsable file")
	// ErrElementNotFound: the dataset has no element with the requested tag.
	ErrElementNotFound = errors.New("dicom: element not found")

	ErrMissingPixelData     = errors.New("dicom: missing pixel data")
	ErrDimensionMismatch    = errors.New("dicom: pixel data length does not match the image dimensions")
	ErrFrameIndexOutOfRange = errors.New("dicom: frame index out of range")
	ErrRequiredTagMissing   = errors.New("dicom: required tag missing")
)

// ElementError locates an element-level failure recovered during decoding.
type ElementError struct {
	Tag    dicomtag.Tag
	Offset int64
	Err    error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%s at offset %d: %v", dicomtag.DebugString(e.Tag), e.Offset, e.Err)
}

func (e *ElementError) Unwrap() error { return e.Err }

// RequiredTagError reports an extractor field that has no sensible default.
type RequiredTagError struct {
	Tag   dicomtag.Tag
	Field string
	// Err is set when the element is present but could not be interpreted.
	Err error
}

func (e *RequiredTagError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dicom: required tag %s for %s is unusable: %v", dicomtag.DebugString(e.Tag), e.Field, e.Err)
	}
	return fmt.Sprintf("dicom: required tag %s for %s missing", dicomtag.DebugString(e.Tag), e.Field)
}

func (e *RequiredTagError) Unwrap() error { return ErrRequiredTagMissing }
