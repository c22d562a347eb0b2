// Package dicomcodec registers pixel data codecs with package dicom.
// Import it for its side effect:
//
//	import _ "github.com/odincare/dcmview/dicomcodec"
package dicomcodec

import (
	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomio"
)

func init() {
	dicom.RegisterCodec(dicomio.CodecRLE, RLE{})
	dicom.RegisterCodec(dicomio.CodecJPEGBaseline, JPEGBaseline{})
}
