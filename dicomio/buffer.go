// Package dicomio provides the bounds-checked byte cursor used to decode
// low-level DICOM data types, such as integers, strings and tags.
package dicomio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/odincare/dcmview/dicomtag"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

// ErrTruncatedInput is raised when a read needs more bytes than remain
// before the active limit.
var ErrTruncatedInput = errors.New("dicom: truncated input")

// NativeByteOrder is the byte order OW values and decoded pixel samples are
// normalized to.
var NativeByteOrder = binary.LittleEndian

type transferSyntaxStackEntry struct {
	byteorder binary.ByteOrder
	implicit  IsImplicitVR
}

type stackEntry struct {
	limit int64
	err   error
}

// IsImplicitVR defines whether a 2-character VR tag
// is emit with each data element
type IsImplicitVR int

const (
	// ImplicitVR编码一个没有VR tag的data element
	// 从dicom standard静态页面(tag_definitions.go) 来读取 tag->VR的对应
	ImplicitVR IsImplicitVR = iota

	// ExplicitVR 保存了2比特VR value inline w/ a data element
	ExplicitVR

	// UnknownVR is to be used when you never encode or decode DataElement.
	UnknownVR
)

func (v IsImplicitVR) String() string {
	switch v {
	case ImplicitVR:
		return "implicit"
	case ExplicitVR:
		return "explicit"
	default:
		return "unknown"
	}
}

// Decoder用来解码low-level的dicom data 类型（types）
//
// The whole file is held in memory; the decoder never reads past the active
// limit and never panics on underrun. A failed read records a sticky error,
// returns a zero value and leaves the position unchanged.
type Decoder struct {
	data      []byte
	err       error
	byteorder binary.ByteOrder

	// “implicit”不是由decoder内部使用，是让decoder的使用者可以看见当前的transfer syntax
	implicit IsImplicitVR

	// 可以读到的最大offset（绝对位置）
	limit int64

	// Cumulative # bytes read.
	pos int64

	// 将dicom文件的原始数据解码为utf-8，如果为空，则可能是ASCII编码。详情见Cf p3.5 6.1.2.1
	codingSystem CodingSystem

	// 旧transfer syntax栈，由{push, pop}TransferSyntax使用
	oldTransferSyntaxes []transferSyntaxStackEntry
	// 旧limit栈，由{push, pop}Limit使用
	// limit 以降序存储
	stateStack []stackEntry
}

// NewBytesDecoder 创建一个decoder来读取“a sequence of bytes”。
// Values returned by ReadBytes alias data.
func NewBytesDecoder(data []byte, byteorder binary.ByteOrder, implicit IsImplicitVR) *Decoder {
	return &Decoder{
		data:      data,
		byteorder: byteorder,
		implicit:  implicit,
		limit:     int64(len(data)),
	}
}

// NewBytesDecoderWithTransferSyntax与NewBytesDecoder相似，
// 但需要一个transfer syntax UID 而不是一对<byteorder, IsImplicitVR>
func NewBytesDecoderWithTransferSyntax(data []byte, transferSyntaxUID string) *Decoder {
	endian, implicit, err := ParseTransferSyntaxUID(transferSyntaxUID)
	if err == nil {
		return NewBytesDecoder(data, endian, implicit)
	}
	d := NewBytesDecoder(data, binary.LittleEndian, ExplicitVR)
	d.SetError(err)
	return d
}

// SetError 将之后Error() 或 Finish() call的错误设为已上报（reported）
// The error is annotated with the current offset and stays matchable with
// errors.Is.
func (d *Decoder) SetError(err error) {
	if err != nil && d.err == nil {
		d.err = fmt.Errorf("%w (file offset %d)", err, d.pos)
	}
}

// SetErrorf 与 SetError相似，但需要一个可打印的string
func (d *Decoder) SetErrorf(format string, args ...interface{}) {
	d.SetError(fmt.Errorf(format, args...))
}

// TransferSyntax 返回目前的transfer syntax
func (d *Decoder) TransferSyntax() (byteorder binary.ByteOrder, implicit IsImplicitVR) {
	return d.byteorder, d.implicit
}

// PushTransferSyntax() 暂时改变编码格式
// PopTransferSyntax() 恢复旧的编码格式
func (d *Decoder) PushTransferSyntax(byteorder binary.ByteOrder, implicit IsImplicitVR) {
	d.oldTransferSyntaxes = append(d.oldTransferSyntaxes, transferSyntaxStackEntry{d.byteorder, d.implicit})
	d.byteorder = byteorder
	d.implicit = implicit
}

// PopTransferSyntax 在最后一次调用PushTransferSyntax前回复编码方式
func (d *Decoder) PopTransferSyntax() {
	DoAssert(len(d.oldTransferSyntaxes) > 0, "PopTransferSyntax without PushTransferSyntax")
	e := d.oldTransferSyntaxes[len(d.oldTransferSyntaxes)-1]
	d.byteorder = e.byteorder
	d.implicit = e.implicit
	d.oldTransferSyntaxes = d.oldTransferSyntaxes[:len(d.oldTransferSyntaxes)-1]
}

// SetCodingSystem overrides the default (7bit ASCII) decoder used when
// converting a byte[] to a string.
func (d *Decoder) SetCodingSystem(cs CodingSystem) {
	d.codingSystem = cs
}

// PushLimit bounds all reads to the next "bytes" bytes and clears d.err so
// the bounded region can fail on its own. If the region would extend past
// the current limit, the limit is left in place and ErrTruncatedInput is
// recorded for the region.
//
// 注意：新的limit必须比当前的limit小
func (d *Decoder) PushLimit(bytes int64) {
	d.stateStack = append(d.stateStack, stackEntry{limit: d.limit, err: d.err})
	d.err = nil
	newLimit := d.pos + bytes
	if bytes < 0 || newLimit > d.limit {
		d.SetError(fmt.Errorf("%w: region of %d bytes exceeds the %d bytes available", ErrTruncatedInput, bytes, d.limit-d.pos))
		newLimit = d.limit
	}
	d.limit = newLimit
}

// PopLimit 恢复由PushLimit覆盖的limit. Any unread bytes of the bounded
// region are skipped, the error state from before PushLimit is restored, and
// the error raised inside the region (if any) is returned.
func (d *Decoder) PopLimit() error {
	DoAssert(len(d.stateStack) > 0, "PopLimit without PushLimit")
	if d.pos < d.limit {
		// d.pos < d.limit iff parse error happened or the caller didn't fully
		// consume the region. Skip over it so the next element starts at the
		// declared boundary.
		d.pos = d.limit
	}
	inner := d.err
	last := len(d.stateStack) - 1
	d.limit = d.stateStack[last].limit
	d.err = d.stateStack[last].err
	d.stateStack = d.stateStack[:last]
	return inner
}

// Depth returns the number of active PushLimit regions.
func (d *Decoder) Depth() int { return len(d.stateStack) }

// Error returns an error encountered so far.
func (d *Decoder) Error() error { return d.err }

// Finish()必须在使用decoder之后用
// 会返回在运行decoder中遇到的任何错误
// 如果有data无法被处理 也会返回一个错误
func (d *Decoder) Finish() error {
	if d.err != nil {
		return d.err
	}
	if !d.EOF() {
		return fmt.Errorf("decoder found junk: %d bytes unread", d.Remaining())
	}
	return nil
}

// EOF 检查如果没有可读数据了
func (d *Decoder) EOF() bool {
	if d.err != nil {
		return true
	}
	return d.limit-d.pos <= 0
}

// BytesRead returns the cumulative # of bytes read so far, i.e. the
// absolute offset of the cursor.
func (d *Decoder) BytesRead() int64 { return d.pos }

// Pos is BytesRead.
func (d *Decoder) Pos() int64 { return d.pos }

// Remaining returns the number of bytes left before the active limit.
// It is never negative.
func (d *Decoder) Remaining() int64 {
	if d.limit <= d.pos {
		return 0
	}
	return d.limit - d.pos
}

// next returns the next n bytes and advances, or records ErrTruncatedInput.
func (d *Decoder) next(n int) []byte {
	if d.err != nil {
		return nil
	}
	if n < 0 || d.Remaining() < int64(n) {
		d.SetError(fmt.Errorf("%w: requested %d, available %d", ErrTruncatedInput, n, d.Remaining()))
		return nil
	}
	b := d.data[d.pos : d.pos+int64(n) : d.pos+int64(n)]
	d.pos += int64(n)
	return b
}

// ReadByte reads a single byte from the buffer. On EOF, it returns a junk
// value, and sets an error to be returned by Error() or Finish().
func (d *Decoder) ReadByte() (v byte) {
	if b := d.next(1); b != nil {
		return b[0]
	}
	return 0
}

func (d *Decoder) ReadUInt16() uint16 {
	if b := d.next(2); b != nil {
		return d.byteorder.Uint16(b)
	}
	return 0
}

func (d *Decoder) ReadUInt32() uint32 {
	if b := d.next(4); b != nil {
		return d.byteorder.Uint32(b)
	}
	return 0
}

func (d *Decoder) ReadUInt64() uint64 {
	if b := d.next(8); b != nil {
		return d.byteorder.Uint64(b)
	}
	return 0
}

func (d *Decoder) ReadInt16() int16 { return int16(d.ReadUInt16()) }

func (d *Decoder) ReadInt32() int32 { return int32(d.ReadUInt32()) }

func (d *Decoder) ReadInt64() int64 { return int64(d.ReadUInt64()) }

func (d *Decoder) ReadFloat32() float32 {
	if b := d.next(4); b != nil {
		return math.Float32frombits(d.byteorder.Uint32(b))
	}
	return 0
}

func (d *Decoder) ReadFloat64() float64 {
	if b := d.next(8); b != nil {
		return math.Float64frombits(d.byteorder.Uint64(b))
	}
	return 0
}

// ReadTag reads a <group, element> pair in the active byte order.
func (d *Decoder) ReadTag() dicomtag.Tag {
	group := d.ReadUInt16()
	element := d.ReadUInt16()
	return dicomtag.Tag{Group: group, Element: element}
}

// PeekTag returns the next tag without consuming it. ok is false when fewer
// than four bytes remain.
func (d *Decoder) PeekTag() (tag dicomtag.Tag, ok bool) {
	if d.err != nil || d.Remaining() < 4 {
		return dicomtag.Tag{}, false
	}
	b := d.data[d.pos : d.pos+4]
	return dicomtag.Tag{Group: d.byteorder.Uint16(b), Element: d.byteorder.Uint16(b[2:])}, true
}

// Find returns the distance from the cursor to the first occurrence of
// pattern before the active limit, or -1.
func (d *Decoder) Find(pattern []byte) int64 {
	if d.err != nil {
		return -1
	}
	return int64(bytes.Index(d.data[d.pos:d.limit], pattern))
}

func internalReadString(d *Decoder, sd *encoding.Decoder, length int) string {
	bytes := d.ReadBytes(length)
	if len(bytes) == 0 {
		return ""
	}
	if sd == nil {
		// 假设UTF-8是ASCII的超集
		return string(bytes)
	}
	decoded, err := sd.Bytes(bytes)
	if err != nil {
		logrus.Warnf("dicomio: string at offset %d is not valid in the declared character set: %v", d.pos-int64(length), err)
		return string(bytes)
	}
	return string(decoded)
}

// ReadStringWithCodingSystem reads a string, decoding it with the coding
// system component relevant to csType (PN components use all three).
func (d *Decoder) ReadStringWithCodingSystem(csType CodingSystemType, length int) string {
	var sd *encoding.Decoder
	switch csType {
	case AlphabeticCodingSystem:
		sd = d.codingSystem.Alphabetic
	case IdeographicCodingSystem:
		sd = d.codingSystem.Ideographic
	case PhoneticCodingSystem:
		sd = d.codingSystem.Phonetic
	default:
		DoAssert(false, "unknown coding system type ", csType)
	}
	return internalReadString(d, sd, length)
}

func (d *Decoder) ReadString(length int) string {
	return internalReadString(d, d.codingSystem.Ideographic, length)
}

// ReadBytes returns exactly length bytes, or nil with ErrTruncatedInput
// recorded. The returned slice aliases the input buffer.
func (d *Decoder) ReadBytes(length int) []byte {
	return d.next(length)
}

func (d *Decoder) Skip(length int) {
	d.next(length)
}

// DoAssert panics when an internal invariant is broken. It is never used
// for conditions caused by input data.
func DoAssert(condition bool, values ...interface{}) {
	if !condition {
		var s string
		for _, value := range values {
			s += fmt.Sprintf("%v", value)
		}
		logrus.Panic(s)
	}
}
