package dicomcodec

import (
	"encoding/binary"
	"fmt"

	"github.com/odincare/dcmview"
)

const rleHeaderSize = 64

// RLE decodes RLE Lossless frames, P3.5 Annex G. Each byte plane of each
// sample is one segment, most significant byte first.
type RLE struct{}

func (RLE) Name() string { return "rle" }

func (RLE) Decode(frame []byte, desc dicom.PixelDescriptor) ([]byte, error) {
	if len(frame) < rleHeaderSize {
		return nil, fmt.Errorf("%w: rle: frame of %d bytes has no header", dicom.ErrMalformedElement, len(frame))
	}
	bps := desc.BytesPerSample()
	spp := desc.SamplesPerPixel
	if spp < 1 {
		spp = 1
	}
	n := int(binary.LittleEndian.Uint32(frame))
	if n < 1 || n > 15 {
		return nil, fmt.Errorf("%w: rle: %d segments", dicom.ErrMalformedElement, n)
	}
	if n != spp*bps {
		return nil, fmt.Errorf("%w: rle: %d segments for %d sample(s) of %d byte(s)", dicom.ErrDimensionMismatch, n, spp, bps)
	}
	offsets := make([]int, n+1)
	for i := 0; i < n; i++ {
		offsets[i] = int(binary.LittleEndian.Uint32(frame[4+4*i:]))
	}
	offsets[n] = len(frame)

	pixels := desc.Rows * desc.Columns
	out := make([]byte, pixels*spp*bps)
	for seg := 0; seg < n; seg++ {
		start, end := offsets[seg], offsets[seg+1]
		if start < rleHeaderSize || start > end || end > len(frame) {
			return nil, fmt.Errorf("%w: rle: segment %d spans [%d, %d) of %d bytes", dicom.ErrMalformedElement, seg, start, end, len(frame))
		}
		plane, err := unpackBits(frame[start:end], pixels)
		if err != nil {
			return nil, fmt.Errorf("rle: segment %d: %w", seg, err)
		}
		sample := seg / bps
		// Segments are most significant byte first, output is little endian.
		k := bps - 1 - seg%bps
		for p, b := range plane {
			var i int
			if desc.PlanarConfiguration == 1 {
				i = (sample*pixels+p)*bps + k
			} else {
				i = (p*spp+sample)*bps + k
			}
			out[i] = b
		}
	}
	return out, nil
}

// unpackBits expands one PackBits segment to exactly size bytes. Bytes
// after the last complete run are padding and are ignored.
func unpackBits(seg []byte, size int) ([]byte, error) {
	out := make([]byte, 0, size)
	for i := 0; i < len(seg) && len(out) < size; {
		c := int8(seg[i])
		i++
		switch {
		case c >= 0:
			count := int(c) + 1
			if i+count > len(seg) {
				return nil, fmt.Errorf("%w: literal run of %d bytes past the end", dicom.ErrMalformedElement, count)
			}
			out = append(out, seg[i:i+count]...)
			i += count
		case c != -128:
			if i >= len(seg) {
				return nil, fmt.Errorf("%w: replicate run past the end", dicom.ErrMalformedElement)
			}
			for count := 1 - int(c); count > 0; count-- {
				out = append(out, seg[i])
			}
			i++
		}
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: decoded %d bytes, expected %d", dicom.ErrDimensionMismatch, len(out), size)
	}
	return out, nil
}
