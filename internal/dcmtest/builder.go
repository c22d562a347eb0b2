// Package dcmtest builds DICOM byte streams for tests. It writes just
// enough of the format to exercise the decoder, including deliberately
// malformed input, and is not a conforming DICOM writer.
package dcmtest

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
)

// UndefinedLength is the VL of a delimited sequence, item or pixel data.
const UndefinedLength uint32 = 0xffffffff

// Element is one element to encode. Construct it with the helpers below.
type Element struct {
	Tag dicomtag.Tag
	// VR is written for explicit transfer syntaxes. Empty means the
	// dictionary VR.
	VR     string
	Values []interface{}
	// Items is the value of an SQ element.
	Items []Item
	// Undefined writes an undefined length. For SQ the sequence is closed
	// with a delimitation item unless NoDelimiter is set.
	Undefined   bool
	NoDelimiter bool

	// VL overrides the written length when non-nil.
	VL *uint32
	// Raw, when non-nil, is written instead of the encoded values.
	Raw []byte
	// Verbatim is written as is, with no element header at all.
	Verbatim []byte
}

// Item is a nested dataset of a sequence.
type Item struct {
	Elements  []Element
	Undefined bool
	// NoDelimiter omits the item delimitation item of an undefined-length
	// item.
	NoDelimiter bool
}

// Str is an element with string values.
func Str(tag dicomtag.Tag, vr string, values ...string) Element {
	e := Element{Tag: tag, VR: vr}
	for _, v := range values {
		e.Values = append(e.Values, v)
	}
	return e
}

// Values is an element with binary values; each value must match the VR.
func Values(tag dicomtag.Tag, vr string, values ...interface{}) Element {
	return Element{Tag: tag, VR: vr, Values: values}
}

// US is an element with uint16 values.
func US(tag dicomtag.Tag, values ...uint16) Element {
	e := Element{Tag: tag, VR: "US"}
	for _, v := range values {
		e.Values = append(e.Values, v)
	}
	return e
}

// UL is an element with uint32 values.
func UL(tag dicomtag.Tag, values ...uint32) Element {
	e := Element{Tag: tag, VR: "UL"}
	for _, v := range values {
		e.Values = append(e.Values, v)
	}
	return e
}

// FD is an element with float64 values.
func FD(tag dicomtag.Tag, values ...float64) Element {
	e := Element{Tag: tag, VR: "FD"}
	for _, v := range values {
		e.Values = append(e.Values, v)
	}
	return e
}

// Bytes is an OB, OW or UN element. OW data is given in little endian.
func Bytes(tag dicomtag.Tag, vr string, data []byte) Element {
	return Element{Tag: tag, VR: vr, Values: []interface{}{data}}
}

// Seq is a sequence with defined length.
func Seq(tag dicomtag.Tag, items ...Item) Element {
	return Element{Tag: tag, VR: "SQ", Items: items}
}

// UndefinedSeq is a sequence with undefined length.
func UndefinedSeq(tag dicomtag.Tag, items ...Item) Element {
	return Element{Tag: tag, VR: "SQ", Items: items, Undefined: true}
}

// NewItem is an item with defined length.
func NewItem(elements ...Element) Item {
	return Item{Elements: elements}
}

// UndefinedItem is an item with undefined length.
func UndefinedItem(elements ...Element) Item {
	return Item{Elements: elements, Undefined: true}
}

// Encapsulated is undefined-length pixel data: a basic offset table item
// followed by one item per fragment and a sequence delimiter.
func Encapsulated(offsets []uint32, fragments ...[]byte) Element {
	items := []Item{{Elements: []Element{{Verbatim: offsetTable(offsets)}}}}
	for _, f := range fragments {
		items = append(items, Item{Elements: []Element{{Verbatim: f}}})
	}
	return Element{Tag: dicomtag.PixelData, VR: "OB", Items: items, Undefined: true}
}

// offsetTable is encoded little endian; Encoder.items swaps it for big
// endian streams.
func offsetTable(offsets []uint32) []byte {
	b := make([]byte, 4*len(offsets))
	for i, o := range offsets {
		binary.LittleEndian.PutUint32(b[4*i:], o)
	}
	return b
}

// Header is an element header with no value; the VL is written as given.
func Header(tag dicomtag.Tag, vr string, vl uint32) Element {
	return Element{Tag: tag, VR: vr, VL: &vl, Raw: []byte{}}
}

// Verbatim writes data with no element header.
func Verbatim(data []byte) Element {
	return Element{Verbatim: data}
}

// Encoder writes elements in one transfer syntax.
type Encoder struct {
	ByteOrder binary.ByteOrder
	Implicit  bool
	buf       bytes.Buffer
}

// NewEncoder returns an encoder for a byte order and VR encoding.
func NewEncoder(bo binary.ByteOrder, implicit bool) *Encoder {
	return &Encoder{ByteOrder: bo, Implicit: implicit}
}

// Bytes returns what was written.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

func (e *Encoder) sub() *Encoder { return NewEncoder(e.ByteOrder, e.Implicit) }

func (e *Encoder) writeUInt16(v uint16) {
	var b [2]byte
	e.ByteOrder.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) writeUInt32(v uint32) {
	var b [4]byte
	e.ByteOrder.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) writeUInt64(v uint64) {
	var b [8]byte
	e.ByteOrder.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// writeHeader writes tag, VR and VL. Item-group headers are always
// implicit.
func (e *Encoder) writeHeader(tag dicomtag.Tag, vr string, vl uint32) {
	e.writeUInt16(tag.Group)
	e.writeUInt16(tag.Element)
	if e.Implicit || tag.Group == dicomtag.ItemSeqGroup {
		e.writeUInt32(vl)
		return
	}
	if len(vr) != 2 {
		panic(fmt.Sprintf("dcmtest: bad VR %q for %s", vr, dicomtag.DebugString(tag)))
	}
	e.buf.WriteString(vr)
	if dicomtag.HasLongLength(vr) || !dicomtag.IsKnownVR(vr) {
		e.buf.Write([]byte{0, 0}) // 2 bytes for "future use" (0000H)
		e.writeUInt32(vl)
		return
	}
	e.writeUInt16(uint16(vl))
}

// Write encodes elements in order.
func (e *Encoder) Write(elems ...Element) {
	for _, elem := range elems {
		e.writeElement(elem)
	}
}

func (e *Encoder) writeElement(elem Element) {
	if elem.Verbatim != nil {
		e.buf.Write(elem.Verbatim)
		return
	}
	vr := elem.VR
	if vr == "" {
		vr = "UN"
		if entry, err := dicomtag.Find(elem.Tag); err == nil {
			vr = entry.VR
		}
	}
	var value []byte
	switch {
	case elem.Raw != nil:
		value = elem.Raw
	case elem.Items != nil || vr == "SQ":
		value = e.items(elem)
	default:
		value = e.values(vr, elem.Values)
	}
	vl := uint32(len(value))
	if elem.Undefined {
		vl = UndefinedLength
	}
	if elem.VL != nil {
		vl = *elem.VL
	}
	e.writeHeader(elem.Tag, vr, vl)
	e.buf.Write(value)
	if elem.Undefined && !elem.NoDelimiter && elem.Raw == nil {
		e.writeHeader(dicomtag.SequenceDelimitationItem, "", 0)
	}
}

func (e *Encoder) items(elem Element) []byte {
	sube := e.sub()
	if elem.VR == "UN" {
		// <UN, undefined length> content is implicit VR little endian.
		sube = NewEncoder(binary.LittleEndian, true)
	}
	for i, item := range elem.Items {
		content := sube.sub()
		if elem.Tag == dicomtag.PixelData && i == 0 && sube.ByteOrder == binary.BigEndian {
			// The offset table follows the dataset byte order.
			table := item.Elements[0].Verbatim
			swapped := make([]byte, len(table))
			for j := 0; j+4 <= len(table); j += 4 {
				binary.BigEndian.PutUint32(swapped[j:], binary.LittleEndian.Uint32(table[j:]))
			}
			content.buf.Write(swapped)
		} else {
			content.Write(item.Elements...)
		}
		if item.Undefined {
			sube.writeHeader(dicomtag.Item, "", UndefinedLength)
			sube.buf.Write(content.Bytes())
			if !item.NoDelimiter {
				sube.writeHeader(dicomtag.ItemDelimitationItem, "", 0)
			}
			continue
		}
		sube.writeHeader(dicomtag.Item, "", uint32(content.buf.Len()))
		sube.buf.Write(content.Bytes())
	}
	return sube.Bytes()
}

// values encodes a value list, padded to an even length.
func (e *Encoder) values(vr string, values []interface{}) []byte {
	sube := e.sub()
	var strs []string
	for _, value := range values {
		switch v := value.(type) {
		case string:
			strs = append(strs, v)
		case uint16:
			sube.writeUInt16(v)
		case int16:
			sube.writeUInt16(uint16(v))
		case uint32:
			sube.writeUInt32(v)
		case int32:
			sube.writeUInt32(uint32(v))
		case uint64:
			sube.writeUInt64(v)
		case int64:
			sube.writeUInt64(uint64(v))
		case float32:
			sube.writeUInt32(math.Float32bits(v))
		case float64:
			sube.writeUInt64(math.Float64bits(v))
		case dicomtag.Tag:
			sube.writeUInt16(v.Group)
			sube.writeUInt16(v.Element)
		case []byte:
			if vr == "OW" && e.ByteOrder == binary.BigEndian {
				for i := 0; i+1 < len(v); i += 2 {
					sube.writeUInt16(binary.LittleEndian.Uint16(v[i:]))
				}
			} else {
				sube.buf.Write(v)
			}
		default:
			panic(fmt.Sprintf("dcmtest: unsupported value %v (%T)", value, value))
		}
	}
	if strs != nil {
		sube.buf.WriteString(strings.Join(strs, "\\"))
	}
	if sube.buf.Len()%2 == 1 {
		if vr == "UI" || vr == "OB" || vr == "UN" {
			sube.buf.WriteByte(0)
		} else {
			sube.buf.WriteByte(' ')
		}
	}
	return sube.Bytes()
}

// File is a DICOM Part 10 file.
type File struct {
	// TransferSyntaxUID selects the dataset encoding. Empty omits the
	// TransferSyntaxUID element and encodes the dataset as implicit VR
	// little endian.
	TransferSyntaxUID string
	// Meta elements follow the standard ones.
	Meta []Element
	// DataSet is the body.
	DataSet []Element

	NoGroupLength bool
	NoMagic       bool
}

// SOPClassUID and SOPInstanceUID are written to the file meta group.
const (
	SOPClassUID    = dicomuid.CTImageStorage
	SOPInstanceUID = "1.2.826.0.1.3680043.2.1125.1"
)

// Bytes encodes the file.
func (f File) Bytes() []byte {
	meta := NewEncoder(binary.LittleEndian, false)
	meta.Write(
		Bytes(dicomtag.FileMetaInformationVersion, "OB", []byte{0, 1}),
		Str(dicomtag.MediaStorageSOPClassUID, "UI", SOPClassUID),
		Str(dicomtag.MediaStorageSOPInstanceUID, "UI", SOPInstanceUID),
	)
	if f.TransferSyntaxUID != "" {
		meta.Write(Str(dicomtag.TransferSyntaxUID, "UI", f.TransferSyntaxUID))
	}
	meta.Write(Str(dicomtag.ImplementationClassUID, "UI", "1.2.826.0.1.3680043.2.1125.99"))
	meta.Write(f.Meta...)

	var out bytes.Buffer
	out.Write(make([]byte, 128))
	if !f.NoMagic {
		out.WriteString("DICM")
	}
	header := NewEncoder(binary.LittleEndian, false)
	if !f.NoGroupLength {
		header.Write(UL(dicomtag.FileMetaInformationGroupLength, uint32(len(meta.Bytes()))))
	}
	out.Write(header.Bytes())
	out.Write(meta.Bytes())
	out.Write(EncodeDataSet(f.TransferSyntaxUID, f.DataSet...))
	return out.Bytes()
}

// EncodeDataSet encodes a dataset body in a transfer syntax; deflated
// syntaxes are compressed with raw deflate.
func EncodeDataSet(transferSyntaxUID string, elems ...Element) []byte {
	var e *Encoder
	switch transferSyntaxUID {
	case "", dicomuid.ImplicitVRLittleEndian:
		e = NewEncoder(binary.LittleEndian, true)
	case dicomuid.ExplicitVRBigEndian:
		e = NewEncoder(binary.BigEndian, false)
	default:
		e = NewEncoder(binary.LittleEndian, false)
	}
	e.Write(elems...)
	if transferSyntaxUID != dicomuid.DeflatedExplicitVRLittleEndian {
		return e.Bytes()
	}
	var out bytes.Buffer
	w, err := flate.NewWriter(&out, flate.DefaultCompression)
	if err != nil {
		panic(err)
	}
	w.Write(e.Bytes())
	w.Close()
	return out.Bytes()
}
