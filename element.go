package dicom

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odincare/dcmview/dicomtag"
)

// UndefinedLength is the VL value of an element (or item) delimited by an
// end-sequence or end-item marker instead of a byte count.
const UndefinedLength uint32 = 0xffffffff

// Element represents a single DICOM element. Use NewElement() to create a
// element denovo. Avoid creating a struct manually, because setting the VR
// field is a bit tricky.
type Element struct {
	// Tag is a pair of <group, element>. See tag_definitions.go for possible values.
	Tag dicomtag.Tag

	// VR defines the encoding of Value[] in two-letter alphabets, e.g.,
	// "AE", "UL". See P3.5 6.2. It is the VR found in the file for
	// explicit-VR data and the dictionary VR for implicit-VR data. A
	// <UN, undefined length> element is stored with VR "SQ".
	VR string

	// VL is the value length as declared in the file.
	VL uint32

	// UndefinedLength is true if, in the DICOM file, the element is encoded
	// as having undefined length, and is delimited by end-sequence or
	// end-item element.
	UndefinedLength bool

	// Offset is the absolute position of the element's tag in the decoded
	// stream (the inflated stream for deflated transfer syntaxes).
	Offset int64

	// List of values in the element. Their types depends on value
	// representation (VR) of the Tag; Cf. dicomtag.GetVRKind.
	//
	// If Tag==PixelData, len(Value)==1, and Value[0] is PixelDataInfo.
	// Else if VR=="SQ", Value[i] is a *Item.
	// Else if VR=="LT", "UT", "ST", "UR" or "DA", then len(Value)==1, and Value[0] is string
	// Else if VR=="US", Value[] is a list of uint16s
	// Else if VR=="UL", Value[] is a list of uint32s
	// Else if VR=="UV", Value[] is a list of uint64s
	// Else if VR=="SS", Value[] is a list of int16s
	// Else if VR=="SL", Value[] is a list of int32s
	// Else if VR=="SV", Value[] is a list of int64s
	// Else if VR=="FL" or "OF", Value[] is a list of float32s
	// Else if VR=="FD" or "OD", Value[] is a list of float64s
	// Else if VR=="AT", Value[] is a list of Tag's.
	// Else if VR is "OW", "OB", "OL", "OV", "UN" or not a known VR,
	// len(Value)==1, and Value[0] is []byte. OW bytes are little endian.
	// Else, Value[] is a list of strings.
	Value []interface{}

	// Err is non-nil when the element could not be decoded. Value is then
	// empty (or partial, for encapsulated pixel data).
	Err error
}

// Item is one entry of a sequence: a nested dataset owned by the sequence
// element.
type Item struct {
	DataSet
	UndefinedLength bool
	// Offset is the absolute position of the item tag.
	Offset int64
}

// PixelDataInfo is the value of the PixelData element.
type PixelDataInfo struct {
	// Offsets is the basic offset table of encapsulated pixel data. It is
	// empty when the table is empty, and always empty for native data.
	Offsets []uint32
	// Fragments are the raw item payloads of encapsulated pixel data, or a
	// single slice with the whole native pixel buffer.
	Fragments    [][]byte
	Encapsulated bool
}

// Undecodable reports whether the element was recorded as undecodable.
func (e *Element) Undecodable() bool { return e.Err != nil }

// NewElement用传入的tag和values来创建一个新的Element
// 每个传入的值必须符合 tag 的 VR
// 详情-> tag_definition.go
func NewElement(tag dicomtag.Tag, values ...interface{}) (*Element, error) {
	ti, err := dicomtag.Find(tag)
	if err != nil {
		return nil, err
	}
	e := Element{
		Tag:   tag,
		VR:    ti.VR,
		Value: make([]interface{}, len(values)),
	}
	vrKind := dicomtag.GetVRKind(tag, ti.VR)
	for i, v := range values {
		var ok bool
		switch vrKind {
		case dicomtag.VRStringList, dicomtag.VRDate, dicomtag.VRString:
			_, ok = v.(string)
		case dicomtag.VRBytes:
			_, ok = v.([]byte)
		case dicomtag.VRUInt16List:
			_, ok = v.(uint16)
		case dicomtag.VRUInt32List:
			_, ok = v.(uint32)
		case dicomtag.VRUInt64List:
			_, ok = v.(uint64)
		case dicomtag.VRInt16List:
			_, ok = v.(int16)
		case dicomtag.VRInt32List:
			_, ok = v.(int32)
		case dicomtag.VRInt64List:
			_, ok = v.(int64)
		case dicomtag.VRFloat32List:
			_, ok = v.(float32)
		case dicomtag.VRFloat64List:
			_, ok = v.(float64)
		case dicomtag.VRPixelData:
			_, ok = v.(PixelDataInfo)
		case dicomtag.VRTagList:
			_, ok = v.(dicomtag.Tag)
		case dicomtag.VRSequence:
			_, ok = v.(*Item)
		}
		if !ok {
			return nil, fmt.Errorf("%v: wrong payload type for NewElement: expect %v, but found %v",
				dicomtag.DebugString(tag), vrKind, v)
		}
		e.Value[i] = v
	}
	return &e, nil
}

// MustNewElement is similar to NewElement, but it crashes the process on any error
func MustNewElement(tag dicomtag.Tag, values ...interface{}) *Element {
	elem, err := NewElement(tag, values...)
	if err != nil {
		panic(fmt.Sprintf("Failed to create element with tag %v: %v", tag, err))
	}
	return elem
}

func (e *Element) single(kind string) (interface{}, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	if len(e.Value) != 1 {
		return nil, fmt.Errorf("%s: found %d value(s) in get%s (expect 1)", dicomtag.DebugString(e.Tag), len(e.Value), kind)
	}
	return e.Value[0], nil
}

// GetUInt32 gets a uint32 value from an element.  It returns an error if the
// element contains zero or >1 values, or the value is not a uint32.
func (e *Element) GetUInt32() (uint32, error) {
	v, err := e.single("uint32")
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint32)
	if !ok {
		return 0, fmt.Errorf("uint32 value not found in %v", e)
	}
	return u, nil
}

// GetUInt16 gets a uint16 value from an element.  It returns an error if the
// element contains zero or >1 values, or the value is not a uint16.
func (e *Element) GetUInt16() (uint16, error) {
	v, err := e.single("uint16")
	if err != nil {
		return 0, err
	}
	u, ok := v.(uint16)
	if !ok {
		return 0, fmt.Errorf("uint16 value not found in %v", e)
	}
	return u, nil
}

// GetString gets a string value from an element.  It returns an error if the
// element contains zero or >1 values, or the value is not a string.
func (e *Element) GetString() (string, error) {
	v, err := e.single("string")
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("string value not found in %v", e)
	}
	return s, nil
}

// MustGetString is similar to GetString(), but panics on error.
func (e *Element) MustGetString() string {
	v, err := e.GetString()
	if err != nil {
		panic(err)
	}
	return v
}

// GetStrings 返回 存在element中的string数组，
// 如果 e.Tag的VR不是string将返回错误
func (e *Element) GetStrings() ([]string, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	values := make([]string, 0, len(e.Value))
	for _, v := range e.Value {
		v, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("string value not found in %v", e)
		}
		values = append(values, v)
	}
	return values, nil
}

// GetFloat64s converts every value of a numeric element to float64. Binary
// integers and floats are accepted, and so are the decimal and integer
// string VRs (DS, IS).
func (e *Element) GetFloat64s() ([]float64, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	values := make([]float64, 0, len(e.Value))
	for _, v := range e.Value {
		f, err := toFloat64(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", dicomtag.DebugString(e.Tag), err)
		}
		values = append(values, f)
	}
	return values, nil
}

// GetFloat64 returns the first value of a numeric element as float64.
func (e *Element) GetFloat64() (float64, error) {
	values, err := e.GetFloat64s()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%s: element has no value", dicomtag.DebugString(e.Tag))
	}
	return values[0], nil
}

// GetInts is GetFloat64s for integral values.
func (e *Element) GetInts() ([]int, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	values := make([]int, 0, len(e.Value))
	for _, v := range e.Value {
		i, err := toInt(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %v", dicomtag.DebugString(e.Tag), err)
		}
		values = append(values, i)
	}
	return values, nil
}

// GetInt returns the first value of an integral element.
func (e *Element) GetInt() (int, error) {
	values, err := e.GetInts()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("%s: element has no value", dicomtag.DebugString(e.Tag))
	}
	return values[0], nil
}

// GetItems returns the items of a sequence element.
func (e *Element) GetItems() ([]*Item, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	items := make([]*Item, 0, len(e.Value))
	for _, v := range e.Value {
		item, ok := v.(*Item)
		if !ok {
			return nil, fmt.Errorf("%s: not a sequence", dicomtag.DebugString(e.Tag))
		}
		items = append(items, item)
	}
	return items, nil
}

// GetPixelDataInfo returns the value of a PixelData element.
func (e *Element) GetPixelDataInfo() (PixelDataInfo, error) {
	v, err := e.single("pixeldata")
	if err != nil {
		return PixelDataInfo{}, err
	}
	info, ok := v.(PixelDataInfo)
	if !ok {
		return PixelDataInfo{}, fmt.Errorf("pixel data value not found in %v", e)
	}
	return info, nil
}

func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	}
	return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case uint16:
		return int(n), nil
	case uint32:
		return int(n), nil
	case uint64:
		return int(n), nil
	case int16:
		return int(n), nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i, nil
		}
		// IS values written as "1.0" by some modalities.
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("value %q is not an integer", n)
		}
		return int(f), nil
	}
	return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
}

// maxPrintDepth bounds the nesting printed by Element.String. Use
// DumpDataSet for a full listing.
const maxPrintDepth = 8

func elementString(e *Element, nestLevel int) string {
	indent := strings.Repeat(" ", nestLevel)
	s := indent
	sVl := ""
	if e.UndefinedLength {
		sVl = "u"
	}
	s = fmt.Sprintf("%s %s %s %s ", s, dicomtag.DebugString(e.Tag), e.VR, sVl)
	if e.Err != nil {
		return s + fmt.Sprintf("<undecodable: %v>", e.Err)
	}
	if e.VR == "SQ" {
		s += fmt.Sprintf(" (#%d)[", len(e.Value))
		if nestLevel >= maxPrintDepth {
			return s + "...]"
		}
		s += "\n"
		for _, v := range e.Value {
			item, ok := v.(*Item)
			if !ok {
				continue
			}
			s += indent + "  item\n"
			for _, sub := range item.Elements {
				s += elementString(sub, nestLevel+2) + "\n"
			}
		}
		return s + indent + " ]"
	}
	var sv string
	switch v := firstValue(e).(type) {
	case PixelDataInfo:
		sv = fmt.Sprintf("[pixeldata: %d fragment(s), encapsulated=%v]", len(v.Fragments), v.Encapsulated)
	case []byte:
		sv = fmt.Sprintf("[%d bytes]", len(v))
	default:
		if len(e.Value) == 1 {
			sv = fmt.Sprintf("%v", e.Value)
		} else {
			sv = fmt.Sprintf("(%d)%v", len(e.Value), e.Value)
		}
	}
	if len(sv) > 1024 {
		sv = sv[1:1024] + "(...)"
	}
	return s + sv
}

func firstValue(e *Element) interface{} {
	if len(e.Value) == 0 {
		return nil
	}
	return e.Value[0]
}

// Stringer
func (e *Element) String() string {
	return elementString(e, 0)
}
