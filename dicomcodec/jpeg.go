package dicomcodec

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"

	"github.com/odincare/dcmview"
)

// JPEGBaseline decodes 8-bit baseline JPEG frames, the process 1 subset of
// 1.2.840.10008.1.2.4.50. Color frames come out as RGB whatever their
// photometric interpretation says.
type JPEGBaseline struct{}

func (JPEGBaseline) Name() string { return "jpeg-baseline" }

func (JPEGBaseline) Decode(frame []byte, desc dicom.PixelDescriptor) ([]byte, error) {
	if desc.BitsAllocated != 8 {
		return nil, fmt.Errorf("%w: jpeg-baseline: BitsAllocated %d", dicom.ErrUnsupportedTransferSyntax, desc.BitsAllocated)
	}
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("%w: jpeg-baseline: %v", dicom.ErrMalformedElement, err)
	}
	b := img.Bounds()
	if b.Dx() != desc.Columns || b.Dy() != desc.Rows {
		return nil, fmt.Errorf("%w: jpeg-baseline: image is %dx%d, dataset says %dx%d",
			dicom.ErrDimensionMismatch, b.Dx(), b.Dy(), desc.Columns, desc.Rows)
	}

	pixels := desc.Rows * desc.Columns
	switch desc.SamplesPerPixel {
	case 0, 1:
		if g, ok := img.(*image.Gray); ok && g.Stride == b.Dx() {
			return g.Pix[:pixels], nil
		}
		out := make([]byte, 0, pixels)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				out = append(out, color.GrayModel.Convert(img.At(x, y)).(color.Gray).Y)
			}
		}
		return out, nil
	case 3:
		out := make([]byte, 3*pixels)
		p := 0
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				if desc.PlanarConfiguration == 1 {
					out[p], out[pixels+p], out[2*pixels+p] = c.R, c.G, c.B
				} else {
					out[3*p], out[3*p+1], out[3*p+2] = c.R, c.G, c.B
				}
				p++
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: jpeg-baseline: %d samples per pixel", dicom.ErrUnsupportedTransferSyntax, desc.SamplesPerPixel)
	}
}
