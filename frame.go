package dicom

import "fmt"

// FrameByteLength is rows * columns * samplesPerPixel * ceil(bitsAllocated/8).
func FrameByteLength(desc PixelDescriptor) int {
	return desc.Rows * desc.Columns * desc.SamplesPerPixel * desc.BytesPerSample()
}

// FrameRange returns the byte range [start, end) of frame index in a buffer
// of bufLen bytes.
func FrameRange(desc PixelDescriptor, bufLen int, index int) (start, end int, err error) {
	if desc.NumberOfFrames <= 0 {
		return 0, 0, fmt.Errorf("%w: number of frames %d", ErrDimensionMismatch, desc.NumberOfFrames)
	}
	frameLen := int64(FrameByteLength(desc))
	if frameLen <= 0 {
		return 0, 0, fmt.Errorf("%w: empty frame (%dx%d)", ErrDimensionMismatch, desc.Columns, desc.Rows)
	}
	if index < 0 || index >= desc.NumberOfFrames {
		return 0, 0, fmt.Errorf("%w: frame %d of %d", ErrFrameIndexOutOfRange, index, desc.NumberOfFrames)
	}
	s := int64(index) * frameLen
	e := s + frameLen
	if e > int64(bufLen) {
		// NumberOfFrames claims more data than the buffer holds.
		return 0, 0, fmt.Errorf("%w: frame %d ends at byte %d, buffer has %d", ErrFrameIndexOutOfRange, index, e, bufLen)
	}
	return int(s), int(e), nil
}

// SliceFrame returns frame index of buf. The result aliases buf and has no
// spare capacity.
func SliceFrame(buf []byte, desc PixelDescriptor, index int) ([]byte, error) {
	start, end, err := FrameRange(desc, len(buf), index)
	if err != nil {
		return nil, err
	}
	return buf[start:end:end], nil
}
