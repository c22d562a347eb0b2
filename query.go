package dicom

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
	"github.com/odincare/dcmview/dicomtag"
)

// 查询检查dataset是否符合QR condition "filter"。
// 如果是，就返回<true, 匹配的element, nil>
// 如果 "filter" 要求一个通用匹配(universal match) i.e. 空查询 empty query value 且 element的filter.Tag不存在，函数返回<true, nil, nil>
// 如果”filter“有误(malformed)，函数返回<false, nil, err reason>
func Query(ds *DataSet, f *Element) (match bool, matchedElement *Element, err error) {
	if len(f.Value) > 1 && f.VR != "UI" {
		// 过滤器不能包含多个值 P3.4 C2.2.2.1
		return false, nil, fmt.Errorf("multiple values found in filter '%v'", f)
	}
	if f.Tag == dicomtag.QueryRetrieveLevel || f.Tag == dicomtag.SpecificCharacterSet {
		return true, nil, nil
	}
	elem, err := ds.FindElementByTag(f.Tag)
	if err != nil {
		elem = nil
	}
	match, err = queryElement(elem, f)
	if match {
		return true, elem, nil
	}
	return false, nil, err
}

// QueryAll reports whether ds matches every filter.
func QueryAll(ds *DataSet, filters []*Element) (bool, error) {
	for _, f := range filters {
		ok, _, err := Query(ds, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func queryElement(elem *Element, f *Element) (match bool, err error) {
	if isEmptyQuery(f) {
		// 通用匹配 一个空格代表通配符
		return true, nil
	}
	if f.VR == "SQ" {
		return querySequence(elem, f)
	}
	if elem == nil || elem.Err != nil {
		return false, nil
	}

	if f.VR == "UI" {
		// 判断element的filter是否至少包含一个uid, P3.4 C.2.2.2.2
		for _, expected := range f.Value {
			for _, value := range elem.Value {
				if value == expected {
					return true, nil
				}
			}
		}
		return false, nil
	}

	switch v := f.Value[0].(type) {
	case string:
		switch f.VR {
		case "DA", "TM", "DT":
			if strings.Contains(v, "-") {
				return matchRange(v, elem)
			}
		}
		for _, value := range elem.Value {
			s, ok := value.(string)
			if !ok {
				return false, fmt.Errorf("VR mismatch: filter %v, value %v", f, elem)
			}
			ok, err := matchString(v, s)
			if err != nil || ok {
				return ok, err
			}
		}
	case int16, int32, int64, uint16, uint32, uint64, float32, float64:
		want, _ := toFloat64(v)
		for _, value := range elem.Value {
			got, err := toFloat64(value)
			if err != nil {
				return false, fmt.Errorf("VR mismatch: filter %v, value %v", f, elem)
			}
			if got == want {
				return true, nil
			}
		}
	default:
		return false, fmt.Errorf("Unknown data: %v", f)
	}
	return false, nil
}

// querySequence matches when one item of the sequence matches every
// element of the filter's first item, P3.4 C.2.2.2.6.
func querySequence(elem *Element, f *Element) (match bool, err error) {
	filterItems, err := f.GetItems()
	if err != nil || len(filterItems) == 0 {
		return true, err
	}
	if elem == nil {
		return false, nil
	}
	items, err := elem.GetItems()
	if err != nil {
		return false, nil
	}
	for _, item := range items {
		ok, err := QueryAll(&item.DataSet, filterItems[0].Elements)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// matchRange matches "a-b", "-b" and "a-" ranges. DICOM dates and times
// compare correctly as strings.
func matchRange(pattern string, elem *Element) (bool, error) {
	i := strings.Index(pattern, "-")
	lo, hi := strings.TrimSpace(pattern[:i]), strings.TrimSpace(pattern[i+1:])
	for _, value := range elem.Value {
		s, ok := value.(string)
		if !ok {
			return false, fmt.Errorf("VR mismatch: range %q, value %v", pattern, elem)
		}
		if (lo == "" || s >= lo) && (hi == "" || s <= hi) {
			return true, nil
		}
	}
	return false, nil
}

func matchString(pattern string, value string) (bool, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return false, err
	}
	return g.Match(value), nil
}

func isEmptyQuery(f *Element) bool {
	// 检查匹配格式是否是一串 “*”
	// "*" 与 空查询一样是通用匹配符 P3.4 C2.2.2.4
	isUniversalGlob := func(s string) bool {
		for i := 0; i < len(s); i++ {
			if s[i] != '*' {
				return false
			}
		}
		return true
	}
	if len(f.Value) == 0 {
		return true
	}
	switch v := f.Value[0].(type) {
	case []byte:
		return len(v) == 0
	case string:
		return isUniversalGlob(v)
	}
	return false
}
