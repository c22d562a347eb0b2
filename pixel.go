package dicom

import (
	"errors"
	"fmt"
	"math"

	"github.com/odincare/dcmview/dicomtag"
	"github.com/sirupsen/logrus"
)

// PixelDescriptor describes the layout of the decoded pixel buffer. It is
// derived from the dataset and does not own the pixel bytes.
type PixelDescriptor struct {
	Rows    int
	Columns int

	BitsAllocated int
	BitsStored    int
	HighBit       int
	// Signed is PixelRepresentation == 1.
	Signed bool

	NumberOfFrames      int
	SamplesPerPixel     int
	PlanarConfiguration int

	PhotometricInterpretation string

	// WindowCenter and WindowWidth are the first values of (0028,1050) and
	// (0028,1051), or the full stored-value range when either is absent.
	WindowCenter      float64
	WindowWidth       float64
	WindowFromDataset bool

	RescaleSlope     float64
	RescaleIntercept float64
}

// BytesPerSample is ceil(BitsAllocated/8).
func (p PixelDescriptor) BytesPerSample() int {
	return (p.BitsAllocated + 7) / 8
}

// ValueRange returns the smallest and largest stored value representable
// with BitsStored bits and the signedness.
func (p PixelDescriptor) ValueRange() (min, max float64) {
	bits := p.BitsStored
	if bits <= 0 {
		bits = p.BitsAllocated
	}
	if p.Signed {
		return -math.Exp2(float64(bits - 1)), math.Exp2(float64(bits-1)) - 1
	}
	return 0, math.Exp2(float64(bits)) - 1
}

// DefaultWindow is the window covering the whole stored-value range.
func (p PixelDescriptor) DefaultWindow() (center, width float64) {
	min, max := p.ValueRange()
	return min + (max-min)/2, max - min + 1
}

// Validate checks the fields the frame layout depends on.
func (p PixelDescriptor) Validate() error {
	switch {
	case p.Rows <= 0 || p.Columns <= 0:
		return fmt.Errorf("%w: %dx%d image", ErrDimensionMismatch, p.Columns, p.Rows)
	case p.BitsAllocated <= 0 || p.BitsAllocated > 64:
		return fmt.Errorf("%w: bits allocated %d", ErrDimensionMismatch, p.BitsAllocated)
	case p.BitsStored <= 0 || p.BitsStored > p.BitsAllocated:
		return fmt.Errorf("%w: bits stored %d with %d allocated", ErrDimensionMismatch, p.BitsStored, p.BitsAllocated)
	case p.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrDimensionMismatch, p.SamplesPerPixel)
	case p.NumberOfFrames <= 0:
		return fmt.Errorf("%w: number of frames %d", ErrDimensionMismatch, p.NumberOfFrames)
	}
	return nil
}

// PixelData is decoded pixel data: frame-major, row-major samples in little
// endian, interleaved or planar per Descriptor.PlanarConfiguration.
type PixelData struct {
	Descriptor        PixelDescriptor
	Data              []byte
	TransferSyntaxUID string
}

// Frame returns frame i of the buffer.
func (p *PixelData) Frame(i int) ([]byte, error) {
	return SliceFrame(p.Data, p.Descriptor, i)
}

func requiredInt(ds *DataSet, tag dicomtag.Tag, field string) (int, error) {
	v, err := ds.GetInt(tag)
	if err != nil {
		if errors.Is(err, ErrElementNotFound) {
			return 0, &RequiredTagError{Tag: tag, Field: field}
		}
		return 0, &RequiredTagError{Tag: tag, Field: field, Err: err}
	}
	return v, nil
}

// intOrDefault returns def when the element is absent or unusable.
func intOrDefault(ds *DataSet, tag dicomtag.Tag, def int) int {
	v, err := ds.GetInt(tag)
	if err != nil {
		return def
	}
	return v
}

func floatOrDefault(ds *DataSet, tag dicomtag.Tag, def float64) float64 {
	v, err := ds.GetFloat64(tag)
	if err != nil {
		return def
	}
	return v
}

func stringOrDefault(ds *DataSet, tag dicomtag.Tag, def string) string {
	v, err := ds.GetFirstString(tag)
	if err != nil || v == "" {
		return def
	}
	return v
}

// ExtractPixelDescriptor reads the image pixel module. Rows, Columns and
// BitsAllocated are required; the other fields have defaults.
func ExtractPixelDescriptor(ds *DataSet) (PixelDescriptor, error) {
	var p PixelDescriptor
	var err error
	if p.Rows, err = requiredInt(ds, dicomtag.Rows, "Rows"); err != nil {
		return p, err
	}
	if p.Columns, err = requiredInt(ds, dicomtag.Columns, "Columns"); err != nil {
		return p, err
	}
	if p.BitsAllocated, err = requiredInt(ds, dicomtag.BitsAllocated, "BitsAllocated"); err != nil {
		return p, err
	}
	p.BitsStored = intOrDefault(ds, dicomtag.BitsStored, p.BitsAllocated)
	p.HighBit = intOrDefault(ds, dicomtag.HighBit, p.BitsStored-1)
	p.Signed = intOrDefault(ds, dicomtag.PixelRepresentation, 0) == 1
	p.SamplesPerPixel = intOrDefault(ds, dicomtag.SamplesPerPixel, 1)
	p.PlanarConfiguration = intOrDefault(ds, dicomtag.PlanarConfiguration, 0)
	p.NumberOfFrames = intOrDefault(ds, dicomtag.NumberOfFrames, 1)
	p.PhotometricInterpretation = stringOrDefault(ds, dicomtag.PhotometricInterpretation, "MONOCHROME2")
	p.RescaleSlope = floatOrDefault(ds, dicomtag.RescaleSlope, 1)
	p.RescaleIntercept = floatOrDefault(ds, dicomtag.RescaleIntercept, 0)

	center, cerr := ds.GetFloat64(dicomtag.WindowCenter)
	width, werr := ds.GetFloat64(dicomtag.WindowWidth)
	if cerr == nil && werr == nil {
		p.WindowCenter, p.WindowWidth, p.WindowFromDataset = center, width, true
	} else {
		p.WindowCenter, p.WindowWidth = p.DefaultWindow()
	}
	return p, p.Validate()
}

// ExtractPixelData returns the pixel buffer and its descriptor. Encapsulated
// pixel data is decoded with the Codec registered for the transfer syntax.
//
// Fails with ErrMissingPixelData when the dataset has no pixel data,
// ErrDimensionMismatch when the buffer length disagrees with the
// descriptor, and ErrUnsupportedTransferSyntax when no codec is registered.
func ExtractPixelData(ds *DataSet) (*PixelData, error) {
	elem, err := ds.FindElementByTag(dicomtag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingPixelData, err)
	}
	if elem.Err != nil {
		return nil, fmt.Errorf("dicom: pixel data is undecodable: %w", elem.Err)
	}
	info, err := elem.GetPixelDataInfo()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingPixelData, err)
	}
	desc, err := ExtractPixelDescriptor(ds)
	if err != nil {
		return nil, err
	}
	pd := &PixelData{Descriptor: desc}
	if ds.TransferSyntax != nil {
		pd.TransferSyntaxUID = ds.TransferSyntax.UID
	}
	if info.Encapsulated {
		pd.Data, err = decodeEncapsulated(ds, info, desc)
	} else {
		pd.Data, err = nativePixels(info, desc)
	}
	if err != nil {
		return nil, err
	}
	return pd, nil
}

func nativePixels(info PixelDataInfo, desc PixelDescriptor) ([]byte, error) {
	if len(info.Fragments) != 1 {
		return nil, fmt.Errorf("%w: native pixel data with %d fragments", ErrMissingPixelData, len(info.Fragments))
	}
	data := info.Fragments[0]
	if desc.BitsAllocated == 1 {
		return unpackBits(data, desc)
	}
	expected := int64(FrameByteLength(desc)) * int64(desc.NumberOfFrames)
	n := int64(len(data))
	switch {
	case n == expected:
		return data, nil
	case n == expected+1 && expected%2 == 1:
		// Odd totals are padded to an even element length.
		return data[:expected], nil
	}
	return nil, fmt.Errorf("%w: %d bytes of pixel data, expected %d (%dx%d, %d sample(s), %d bits, %d frame(s))",
		ErrDimensionMismatch, n, expected, desc.Columns, desc.Rows, desc.SamplesPerPixel, desc.BitsAllocated, desc.NumberOfFrames)
}

// unpackBits expands 1-bit samples (least significant bit first, P3.5 8.1.1)
// to one byte per sample.
func unpackBits(data []byte, desc PixelDescriptor) ([]byte, error) {
	samples := int64(desc.Rows) * int64(desc.Columns) * int64(desc.SamplesPerPixel) * int64(desc.NumberOfFrames)
	packed := (samples + 7) / 8
	n := int64(len(data))
	if n != packed && !(n == packed+1 && packed%2 == 1) {
		return nil, fmt.Errorf("%w: %d bytes of 1-bit pixel data, expected %d", ErrDimensionMismatch, n, packed)
	}
	out := make([]byte, samples)
	for i := range out {
		out[i] = (data[i/8] >> (uint(i) % 8)) & 1
	}
	return out, nil
}

func decodeEncapsulated(ds *DataSet, info PixelDataInfo, desc PixelDescriptor) ([]byte, error) {
	if ds.TransferSyntax == nil || !ds.TransferSyntax.Encapsulated {
		return nil, fmt.Errorf("%w: encapsulated pixel data in a native transfer syntax", ErrUnsupportedTransferSyntax)
	}
	codec, err := LookupCodec(*ds.TransferSyntax)
	if err != nil {
		return nil, err
	}
	frames, err := groupFragments(info, desc.NumberOfFrames)
	if err != nil {
		return nil, err
	}
	frameLen := FrameByteLength(desc)
	out := make([]byte, 0, frameLen*len(frames))
	for i, frame := range frames {
		decoded, err := codec.Decode(frame, desc)
		if err != nil {
			return nil, fmt.Errorf("dicom: %s codec, frame %d: %w", codec.Name(), i, err)
		}
		if len(decoded) != frameLen {
			return nil, fmt.Errorf("%w: %s codec returned %d bytes for frame %d, expected %d",
				ErrDimensionMismatch, codec.Name(), len(decoded), i, frameLen)
		}
		out = append(out, decoded...)
	}
	logrus.Debugf("dicom: decoded %d frame(s) with the %s codec", len(frames), codec.Name())
	return out, nil
}

// groupFragments assigns fragments to frames using, in order, a single
// frame (all fragments), the basic offset table, or one fragment per frame.
func groupFragments(info PixelDataInfo, numFrames int) ([][]byte, error) {
	if len(info.Fragments) == 0 {
		return nil, fmt.Errorf("%w: encapsulated pixel data has no fragments", ErrMissingPixelData)
	}
	if numFrames == 1 {
		return [][]byte{concatFragments(info.Fragments)}, nil
	}
	if len(info.Offsets) == numFrames {
		return groupByOffsets(info, numFrames)
	}
	if len(info.Fragments) == numFrames {
		return info.Fragments, nil
	}
	return nil, fmt.Errorf("%w: cannot map %d fragment(s) to %d frames without an offset table",
		ErrDimensionMismatch, len(info.Fragments), numFrames)
}

// groupByOffsets uses offsets measured from the first byte of the first
// fragment item tag; every item adds an 8-byte header.
func groupByOffsets(info PixelDataInfo, numFrames int) ([][]byte, error) {
	frames := make([][]byte, numFrames)
	frame := -1
	var pos uint32
	for _, fragment := range info.Fragments {
		for frame+1 < numFrames && info.Offsets[frame+1] <= pos {
			if info.Offsets[frame+1] != pos {
				return nil, fmt.Errorf("%w: offset table entry %d (%d) is not at a fragment boundary",
					ErrDimensionMismatch, frame+1, info.Offsets[frame+1])
			}
			frame++
		}
		if frame < 0 {
			return nil, fmt.Errorf("%w: offset table does not start at 0", ErrDimensionMismatch)
		}
		frames[frame] = append(frames[frame], fragment...)
		pos += 8 + uint32(len(fragment))
	}
	if frame != numFrames-1 {
		return nil, fmt.Errorf("%w: offset table points past the last fragment", ErrDimensionMismatch)
	}
	return frames, nil
}

func concatFragments(fragments [][]byte) []byte {
	if len(fragments) == 1 {
		return fragments[0]
	}
	n := 0
	for _, f := range fragments {
		n += len(f)
	}
	out := make([]byte, 0, n)
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}
