package dicom

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/odincare/dcmview/dicomio"
	"github.com/odincare/dcmview/dicomlog"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
	"github.com/sirupsen/logrus"
)

// ReadOptions定义DataSets和Element的读取格式
type ReadOptions struct {
	// DropPixelData会让ReadDataSet跳过PixelData(bulk image)
	DropPixelData bool

	// ReturnTags 会返回一系列tag白名单. It filters top-level elements
	// only; meta elements are always returned.
	ReturnTags []dicomtag.Tag

	// StopAtTag stops reading the top-level dataset at the first tag that
	// sorts at or after it.
	StopAtTag *dicomtag.Tag

	// Strict makes ReadDataSet return the first recovered element-level
	// problem as an error, together with the dataset.
	Strict bool
}

const preambleLength = 128

var errDuplicateElement = errors.New("duplicate element, the last occurrence wins")

// ParseFileHeader从Dicom文件读取DICOM头和元数据(element的tag group == 2的)
// 报错会通过d.Error()传入: ErrNotDICOM when the magic is absent, otherwise
// an error wrapping ErrUnparsableFile.
func ParseFileHeader(d *dicomio.Decoder) []*Element {
	d.PushTransferSyntax(binary.LittleEndian, dicomio.ExplicitVR)
	defer d.PopTransferSyntax()

	if d.Remaining() < preambleLength+4 {
		d.SetError(fmt.Errorf("%w: %d bytes is too short for the preamble", ErrNotDICOM, d.Remaining()))
		return nil
	}
	// 跳过前言
	d.Skip(preambleLength)
	if s := string(d.ReadBytes(4)); s != "DICM" {
		// bom头没找到DICM
		d.SetError(fmt.Errorf("%w: keyword 'DICM' not found in the header", ErrNotDICOM))
		return nil
	}

	meta := &DataSet{}
	b := newBuilder(d, ReadOptions{}, meta)
	if tag, ok := d.PeekTag(); ok && tag == dicomtag.FileMetaInformationGroupLength {
		// (0002, 0000) MetaElementGroupLength
		elem := b.readHeader()
		b.readLeaf(elem)
		metaLength, err := elem.GetUInt32()
		if err != nil {
			d.SetError(fmt.Errorf("%w: FileMetaInformationGroupLength: %v", ErrUnparsableFile, err))
			return nil
		}
		meta.add(elem)
		d.PushLimit(int64(metaLength))
		b.run()
		if err := d.PopLimit(); err != nil && len(b.warnings) == 0 {
			b.warnings = append(b.warnings, err)
		}
	} else {
		logrus.Warnf("dicom.ParseFileHeader: FileMetaInformationGroupLength not found, reading while group is %04x", dicomtag.MetadataGroup)
		b.stopAt = func(tag dicomtag.Tag) bool { return tag.Group != dicomtag.MetadataGroup }
		b.run()
	}
	for _, w := range b.warnings {
		if errors.Is(w, ErrTruncatedInput) || errors.Is(w, ErrMalformedElement) {
			d.SetError(fmt.Errorf("%w: file meta information: %v", ErrUnparsableFile, w))
			return nil
		}
	}
	if len(meta.Elements) == 0 {
		d.SetError(fmt.Errorf("%w: no file meta information", ErrUnparsableFile))
		return nil
	}
	dicomlog.Vprintf(1, "dicom.ParseFileHeader: %d meta element(s), pos %d", len(meta.Elements), d.BytesRead())
	return meta.Elements
}

// ReadDataSet用io读取dicom file
// The whole input is read into memory before decoding.
func ReadDataSet(in io.Reader, options ReadOptions) (*DataSet, error) {
	data, err := ioutil.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return ReadDataSetInBytes(data, options)
}

// ReadDataSetInBytes decodes a complete DICOM file held in memory. Byte
// slices in the returned dataset alias data.
//
// Only failures before any dataset element can be read are fatal: the
// result is nil and the error wraps ErrNotDICOM or ErrUnparsableFile. An
// unknown transfer syntax returns the meta elements together with an error
// wrapping ErrUnsupportedTransferSyntax. Everything else is recovered and
// listed in DataSet.Warnings.
func ReadDataSetInBytes(data []byte, options ReadOptions) (*DataSet, error) {
	d := dicomio.NewBytesDecoder(data, binary.LittleEndian, dicomio.ExplicitVR)
	metaElems := ParseFileHeader(d)
	if err := d.Error(); err != nil {
		if !errors.Is(err, ErrNotDICOM) && !errors.Is(err, ErrUnparsableFile) {
			err = fmt.Errorf("%w: %v", ErrUnparsableFile, err)
		}
		return nil, err
	}
	ds := &DataSet{}
	for _, elem := range metaElems {
		ds.add(elem)
	}

	// 改变剩余文件的 transfer syntax
	ts, warning, err := resolveTransferSyntax(ds)
	if err != nil {
		return ds, err
	}
	ds.TransferSyntax = &ts
	var warnings []error
	if warning != nil {
		logrus.Warnf("dicom.ReadDataSet: %v", warning)
		warnings = append(warnings, warning)
	}

	body := d
	if ts.Deflated {
		inflated, err := inflate(data[d.BytesRead():])
		if err != nil {
			w := fmt.Errorf("%w: deflated dataset: %v", ErrTruncatedInput, err)
			logrus.Warnf("dicom.ReadDataSet: %v", w)
			warnings = append(warnings, w)
		}
		body = dicomio.NewBytesDecoder(inflated, ts.ByteOrder, ts.Implicit)
	} else {
		body.PushTransferSyntax(ts.ByteOrder, ts.Implicit)
	}

	b := newBuilder(body, options, ds)
	b.warnings = warnings
	b.run()
	ds.Warnings = b.warnings
	if options.Strict && len(ds.Warnings) > 0 {
		return ds, ds.Warnings[0]
	}
	return ds, nil
}

// ReadDataSetFromFile 读取文件内容到 element.DataSet. 是一层ReadDataSetInBytes的包装
// Files larger than Config.MaxFileSize are rejected before reading, and
// Config.Strict turns on ReadOptions.Strict.
func ReadDataSetFromFile(path string, options ReadOptions) (*DataSet, error) {
	config := GetConfig()
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if config.MaxFileSize > 0 && info.Size() > config.MaxFileSize {
		return nil, fmt.Errorf("dicom: %s is %d bytes, above the %d byte limit", path, info.Size(), config.MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if config.Strict {
		options.Strict = true
	}
	return ReadDataSetInBytes(data, options)
}

func resolveTransferSyntax(ds *DataSet) (ts dicomio.TransferSyntax, warning error, err error) {
	elem, err := ds.FindElementByTag(dicomtag.TransferSyntaxUID)
	if err != nil {
		ts, _ = dicomio.LookupTransferSyntax(dicomuid.ImplicitVRLittleEndian)
		return ts, &ElementError{Tag: dicomtag.TransferSyntaxUID, Err: fmt.Errorf("%w, assuming %s", ErrElementNotFound, ts.Name)}, nil
	}
	uid, err := elem.GetString()
	if err != nil {
		return ts, nil, fmt.Errorf("%w: %v", ErrUnsupportedTransferSyntax, err)
	}
	ts, err = dicomio.LookupTransferSyntax(uid)
	return ts, nil, err
}

func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	// ReadAll returns what was inflated before a corrupt block.
	return ioutil.ReadAll(r)
}

type frameKind int

const (
	datasetFrame frameKind = iota
	sequenceFrame
)

// frame is an open container on the builder stack: the top-level dataset,
// a sequence, or an item.
type frame struct {
	kind frameKind
	ds   *DataSet
	seq  *Element

	tag    dicomtag.Tag
	offset int64

	undefinedLength bool
	// limited: a PushLimit region ends at the container's last byte.
	limited bool
	// implicitLE: the content of a <UN, undefined length> element.
	implicitLE bool
	top        bool
}

// builder assembles elements into datasets. Nesting is tracked on an
// explicit stack, so the depth of the input never grows the Go stack.
type builder struct {
	d        *dicomio.Decoder
	options  ReadOptions
	stack    []frame
	warnings []error
	// reported is the last decoder error already listed in warnings.
	reported error
	stopAt   func(tag dicomtag.Tag) bool
}

func newBuilder(d *dicomio.Decoder, options ReadOptions, ds *DataSet) *builder {
	return &builder{
		d:       d,
		options: options,
		stack:   []frame{{kind: datasetFrame, ds: ds, top: true}},
	}
}

func (b *builder) warn(tag dicomtag.Tag, offset int64, err error) {
	logrus.WithFields(logrus.Fields{
		"tag":    dicomtag.DebugString(tag),
		"offset": offset,
	}).Warnf("dicom: %v", err)
	b.warnings = append(b.warnings, &ElementError{Tag: tag, Offset: offset, Err: err})
}

func (b *builder) run() {
	for len(b.stack) > 0 {
		f := &b.stack[len(b.stack)-1]
		if b.d.EOF() {
			if b.d.Error() == nil && f.undefinedLength {
				b.warn(f.tag, f.offset, fmt.Errorf("%w: end of input before the delimiter", ErrTruncatedInput))
			}
			b.pop()
			continue
		}
		tag, ok := b.d.PeekTag()
		if !ok {
			offset, n := b.d.BytesRead(), b.d.Remaining()
			b.d.Skip(int(n))
			b.warn(f.tag, offset, fmt.Errorf("%w: %d trailing byte(s)", ErrTruncatedInput, n))
			continue
		}
		if f.kind == sequenceFrame {
			b.stepSequence(f, tag)
		} else {
			b.stepDataSet(f, tag)
		}
	}
	if err := b.d.Error(); err != nil && err != b.reported {
		b.reported = err
		b.warn(dicomtag.Tag{}, b.d.BytesRead(), err)
	}
}

// push opens a container whose content follows the cursor.
func (b *builder) push(fr frame, vl uint32) {
	if vl == UndefinedLength {
		fr.undefinedLength = true
	} else {
		b.d.PushLimit(int64(vl))
		fr.limited = true
	}
	b.stack = append(b.stack, fr)
}

func (b *builder) pop() {
	f := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	if f.implicitLE {
		b.d.PopTransferSyntax()
	}
	if f.limited {
		if err := b.d.PopLimit(); err != nil && err != b.reported {
			b.warn(f.tag, f.offset, err)
		}
	}
}

func (b *builder) shouldStop(tag dicomtag.Tag) bool {
	if b.stopAt != nil && b.stopAt(tag) {
		return true
	}
	if b.options.DropPixelData && tag == dicomtag.PixelData {
		return true
	}
	return b.options.StopAtTag != nil && tag.Compare(*b.options.StopAtTag) >= 0
}

func (b *builder) keep(tag dicomtag.Tag) bool {
	return b.options.ReturnTags == nil || tagInList(tag, b.options.ReturnTags)
}

func (b *builder) insert(ds *DataSet, elem *Element) {
	if ds.add(elem) {
		b.warn(elem.Tag, elem.Offset, errDuplicateElement)
	}
}

// readDelimiter consumes an item or sequence delimitation item.
func (b *builder) readDelimiter() {
	offset := b.d.BytesRead()
	tag := b.d.ReadTag()
	if vl := b.d.ReadUInt32(); vl != 0 && b.d.Error() == nil {
		b.warn(tag, offset, fmt.Errorf("%w: delimiter length %d, expected 0", ErrMalformedElement, vl))
	}
}

func (b *builder) stepSequence(f *frame, tag dicomtag.Tag) {
	offset := b.d.BytesRead()
	switch tag {
	case dicomtag.Item:
		b.d.ReadTag()
		vl := b.d.ReadUInt32()
		if b.d.Error() != nil {
			return
		}
		item := &Item{UndefinedLength: vl == UndefinedLength, Offset: offset}
		f.seq.Value = append(f.seq.Value, item)
		b.push(frame{kind: datasetFrame, ds: &item.DataSet, tag: dicomtag.Item, offset: offset}, vl)
	case dicomtag.SequenceDelimitationItem:
		b.readDelimiter()
		if f.undefinedLength {
			b.pop()
		} else {
			b.warn(f.tag, offset, fmt.Errorf("%w: sequence delimiter inside a defined-length sequence", ErrMalformedElement))
		}
	default:
		// A non-item closes the sequence; the enclosing dataset reads it.
		b.warn(f.tag, offset, fmt.Errorf("%w: found %s inside a sequence", ErrMalformedElement, dicomtag.DebugString(tag)))
		b.pop()
	}
}

func (b *builder) stepDataSet(f *frame, tag dicomtag.Tag) {
	offset := b.d.BytesRead()
	switch tag {
	case dicomtag.ItemDelimitationItem:
		b.readDelimiter()
		if f.undefinedLength && !f.top {
			b.pop()
		} else {
			b.warn(tag, offset, fmt.Errorf("%w: unexpected item delimiter", ErrMalformedElement))
		}
		return
	case dicomtag.SequenceDelimitationItem:
		if f.undefinedLength && !f.top {
			// Unterminated item: close it and let the sequence consume the
			// delimiter.
			b.warn(dicomtag.Item, f.offset, fmt.Errorf("%w: item closed by a sequence delimiter", ErrMalformedElement))
			b.pop()
			return
		}
		b.readDelimiter()
		b.warn(tag, offset, fmt.Errorf("%w: unexpected sequence delimiter", ErrMalformedElement))
		return
	case dicomtag.Item:
		b.d.ReadTag()
		vl := b.d.ReadUInt32()
		if b.d.Error() != nil {
			return
		}
		// Parsed into a throwaway dataset to find where it ends.
		b.warn(tag, offset, fmt.Errorf("%w: item outside of a sequence", ErrMalformedElement))
		b.push(frame{kind: datasetFrame, ds: &DataSet{}, tag: tag, offset: offset}, vl)
		return
	}

	if f.top && b.shouldStop(tag) {
		b.stack = b.stack[:0]
		return
	}
	elem := b.readHeader()
	if b.d.Error() != nil {
		return
	}
	ds := f.ds
	if f.top && !b.keep(elem.Tag) {
		ds = &DataSet{}
	}
	if !dicomtag.IsKnownVR(elem.VR) && !elem.UndefinedLength {
		b.warn(elem.Tag, elem.Offset, fmt.Errorf("%w: unknown VR %q, value kept as bytes", ErrMalformedElement, elem.VR))
	}

	switch {
	case elem.VR == "SQ" || (elem.VR == "UN" && elem.UndefinedLength):
		// <UN, undefinedLength> == <SQ, undefinedLength> encoded as implicit
		// VR little endian, PS3.5 6.2.2.
		un := elem.VR == "UN"
		elem.VR = "SQ"
		b.insert(ds, elem)
		b.push(frame{kind: sequenceFrame, seq: elem, tag: elem.Tag, offset: elem.Offset}, elem.VL)
		if un {
			b.d.PushTransferSyntax(binary.LittleEndian, dicomio.ImplicitVR)
			b.stack[len(b.stack)-1].implicitLE = true
		}
	case elem.Tag == dicomtag.PixelData && elem.UndefinedLength:
		b.readEncapsulated(elem)
		b.insert(ds, elem)
	case elem.UndefinedLength:
		b.skipUndefined(elem)
		b.insert(ds, elem)
	default:
		b.readLeaf(elem)
		b.insert(ds, elem)
		if f.top && elem.Tag == dicomtag.SpecificCharacterSet && elem.Err == nil {
			b.setCharacterSet(elem)
		}
	}
}

// readHeader reads tag, VR and VL. 组为0xFFFE 的 elements组应被编码为Implicit VR
// DICOM 标准09. PS3.6 - Section 7.5: "Nesting of Data Sets"
func (b *builder) readHeader() *Element {
	offset := b.d.BytesRead()
	tag := b.d.ReadTag()
	_, implicit := b.d.TransferSyntax()
	if tag.Group == dicomtag.ItemSeqGroup {
		implicit = dicomio.ImplicitVR
	}
	var vr string
	var vl uint32
	if implicit == dicomio.ImplicitVR {
		vr, vl = readImplicit(b.d, tag)
	} else {
		vr, vl = readExplicit(b.d, tag)
	}
	if vl != UndefinedLength && vl%2 != 0 {
		dicomlog.Vprintf(1, "dicom: odd length %d for %s at offset %d", vl, dicomtag.DebugString(tag), offset)
	}
	return &Element{Tag: tag, VR: vr, VL: vl, UndefinedLength: vl == UndefinedLength, Offset: offset}
}

// 从DICOM字典中读取VR，VL是32比特无符号数字
func readImplicit(d *dicomio.Decoder, tag dicomtag.Tag) (string, uint32) {
	vr := "UN"
	if entry, err := dicomtag.Find(tag); err == nil {
		vr = entry.VR
	}
	return vr, d.ReadUInt32()
}

// VR由下两个连续的bytes代表
// VL根据VR的值, PS3.5 7.1.2. Unknown VRs are read with the 32-bit form,
// like every VR added to the standard since 2007.
func readExplicit(d *dicomio.Decoder, tag dicomtag.Tag) (string, uint32) {
	vr := string(d.ReadBytes(2))
	if dicomtag.HasLongLength(vr) || !dicomtag.IsKnownVR(vr) {
		d.Skip(2) // 忽略两个bytes，给未来用(0000H)
		return vr, d.ReadUInt32()
	}
	return vr, uint32(d.ReadUInt16())
}

// readLeaf decodes a defined-length value without crossing its declared
// length. A failed value leaves the cursor at the element's end.
func (b *builder) readLeaf(elem *Element) {
	b.d.PushLimit(int64(elem.VL))
	values := readValue(b.d, elem)
	if err := b.d.PopLimit(); err != nil {
		elem.Err = err
		b.warn(elem.Tag, elem.Offset, err)
		return
	}
	elem.Value = values
}

func readValue(d *dicomio.Decoder, elem *Element) []interface{} {
	n := int(elem.VL)
	if elem.Tag == dicomtag.PixelData {
		data := d.ReadBytes(n)
		if elem.VR == "OW" {
			data = nativeWords(d, data)
		}
		return []interface{}{PixelDataInfo{Fragments: [][]byte{data}}}
	}
	var data []interface{}
	switch elem.VR {
	case "DA":
		return []interface{}{strings.Trim(d.ReadString(n), " \x00")}
	case "AT":
		// (2byte group, 2byte elem)
		for !d.EOF() {
			data = append(data, d.ReadTag())
		}
	case "OW":
		if n%2 != 0 {
			d.SetError(fmt.Errorf("%w: OW requires even length, but found %d", ErrMalformedElement, n))
			return nil
		}
		return []interface{}{nativeWords(d, d.ReadBytes(n))}
	case "OB", "UN", "OL", "OV":
		return []interface{}{d.ReadBytes(n)}
	case "LT", "UT", "ST", "UR":
		return []interface{}{strings.TrimRight(d.ReadString(n), " \x00")}
	case "UL":
		for !d.EOF() {
			data = append(data, d.ReadUInt32())
		}
	case "SL":
		for !d.EOF() {
			data = append(data, d.ReadInt32())
		}
	case "UV":
		for !d.EOF() {
			data = append(data, d.ReadUInt64())
		}
	case "SV":
		for !d.EOF() {
			data = append(data, d.ReadInt64())
		}
	case "US":
		for !d.EOF() {
			data = append(data, d.ReadUInt16())
		}
	case "SS":
		for !d.EOF() {
			data = append(data, d.ReadInt16())
		}
	case "FL", "OF":
		for !d.EOF() {
			data = append(data, d.ReadFloat32())
		}
	case "FD", "OD":
		for !d.EOF() {
			data = append(data, d.ReadFloat64())
		}
	default:
		if !dicomtag.IsKnownVR(elem.VR) {
			return []interface{}{d.ReadBytes(n)}
		}
		// List of strings, each delimited by '\\'.
		// String may have '\0' suffix if its length is odd.
		str := strings.Trim(d.ReadString(n), " \x00")
		if len(str) > 0 {
			for _, s := range strings.Split(str, "\\") {
				data = append(data, strings.Trim(s, " \x00"))
			}
		}
	}
	return data
}

// nativeWords returns 16-bit words in dicomio.NativeByteOrder. Little endian
// input is returned as is.
func nativeWords(d *dicomio.Decoder, data []byte) []byte {
	bo, _ := d.TransferSyntax()
	if data == nil || bo != binary.BigEndian {
		return data
	}
	out := make([]byte, len(data))
	for i := 0; i+1 < len(data); i += 2 {
		dicomio.NativeByteOrder.PutUint16(out[i:], bo.Uint16(data[i:]))
	}
	return out
}

// readEncapsulated reads undefined-length pixel data: P3.5, A.4
//
//	Item(BasicOffsetTable) Item(Fragment0) ... Item(FragmentM) SequenceDelimiterItem
//
// The item tags are written in the dataset byte order and always have an
// implicit VR header.
func (b *builder) readEncapsulated(elem *Element) {
	d := b.d
	bo, _ := d.TransferSyntax()
	info := PixelDataInfo{Encapsulated: true}
	first := true
	for {
		tag := d.ReadTag()
		vl := d.ReadUInt32()
		if d.Error() != nil || tag == dicomtag.SequenceDelimitationItem {
			break
		}
		if tag != dicomtag.Item {
			d.SetError(fmt.Errorf("%w: found %s in encapsulated pixel data", ErrMalformedElement, dicomtag.DebugString(tag)))
			break
		}
		if vl == UndefinedLength {
			d.SetError(fmt.Errorf("%w: undefined-length fragment in encapsulated pixel data", ErrMalformedElement))
			break
		}
		data := d.ReadBytes(int(vl))
		if d.Error() != nil {
			break
		}
		if first {
			// item的值是uint32的序列
			for i := 0; i+4 <= len(data); i += 4 {
				info.Offsets = append(info.Offsets, bo.Uint32(data[i:]))
			}
			first = false
			continue
		}
		info.Fragments = append(info.Fragments, data)
	}
	elem.Value = []interface{}{info}
	if err := d.Error(); err != nil {
		elem.Err = err
		b.reported = err
		b.warn(elem.Tag, elem.Offset, err)
	}
}

// skipUndefined records an element whose VR does not allow an undefined
// length, and resumes after the next sequence delimitation item.
func (b *builder) skipUndefined(elem *Element) {
	d := b.d
	bo, _ := d.TransferSyntax()
	pattern := make([]byte, 8)
	bo.PutUint16(pattern, dicomtag.SequenceDelimitationItem.Group)
	bo.PutUint16(pattern[2:], dicomtag.SequenceDelimitationItem.Element)

	elem.Err = fmt.Errorf("%w: undefined length is not allowed for VR %s", ErrMalformedElement, elem.VR)
	if n := d.Find(pattern); n >= 0 {
		d.Skip(int(n) + len(pattern))
		b.warn(elem.Tag, elem.Offset, elem.Err)
		return
	}
	d.SetError(fmt.Errorf("%w, and no delimiter follows", elem.Err))
	b.reported = d.Error()
	b.warn(elem.Tag, elem.Offset, d.Error())
}

// setCharacterSet 将剩余文件设为[]byte -> string decoder.
// SpecificCharacterSet inside an item is ignored.
func (b *builder) setCharacterSet(elem *Element) {
	encodingNames, err := elem.GetStrings()
	if err == nil {
		var cs dicomio.CodingSystem
		if cs, err = dicomio.ParseSpecificCharacterSet(encodingNames); err == nil {
			b.d.SetCodingSystem(cs)
			return
		}
	}
	b.warn(elem.Tag, elem.Offset, err)
}

func tagInList(tag dicomtag.Tag, tags []dicomtag.Tag) bool {
	for _, t := range tags {
		if tag == t {
			return true
		}
	}
	return false
}
