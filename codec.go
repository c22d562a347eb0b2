package dicom

import (
	"fmt"
	"sort"
	"sync"

	"github.com/odincare/dcmview/dicomio"
)

// Codec decodes one compressed frame of encapsulated pixel data. The result
// must use the native layout of ExtractPixelData: row-major samples,
// interleaved or planar per the descriptor's PlanarConfiguration, little
// endian, ceil(BitsAllocated/8) bytes per sample.
type Codec interface {
	// Decode decodes the bytes of one frame (its fragments concatenated).
	Decode(frame []byte, desc PixelDescriptor) ([]byte, error)
	// Name returns a human-readable name
	Name() string
}

var (
	codecMu sync.RWMutex
	codecs  = map[dicomio.CodecID]Codec{}
)

// RegisterCodec makes a codec available for every transfer syntax of the
// family id, replacing a previous registration. It is safe for concurrent
// use; codecs are normally registered from an init function.
func RegisterCodec(id dicomio.CodecID, c Codec) {
	codecMu.Lock()
	defer codecMu.Unlock()
	if c == nil {
		delete(codecs, id)
		return
	}
	codecs[id] = c
}

// LookupCodec returns the codec registered for a transfer syntax.
func LookupCodec(ts dicomio.TransferSyntax) (Codec, error) {
	if !ts.Encapsulated {
		return nil, fmt.Errorf("dicom: %s is not encapsulated", ts.UID)
	}
	codecMu.RLock()
	c, ok := codecs[ts.Codec]
	codecMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no %s codec registered for %s", ErrUnsupportedTransferSyntax, ts.Codec, ts.Name)
	}
	return c, nil
}

// RegisteredCodecs lists the registered codec families in sorted order.
func RegisteredCodecs() []dicomio.CodecID {
	codecMu.RLock()
	defer codecMu.RUnlock()
	ids := make([]dicomio.CodecID, 0, len(codecs))
	for id := range codecs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
