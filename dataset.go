package dicom

import (
	"fmt"

	"github.com/odincare/dcmview/dicomio"
	"github.com/odincare/dcmview/dicomtag"
)

// DataSet is an ordered collection of elements. A DataSet returned by
// ReadDataSet is never modified afterwards, so it can be shared by
// concurrent readers.
type DataSet struct {
	// 与pydicom不同， Elements仍包含元数据（Tag.Group==2的)
	// Elements are in file order. A tag that appears twice keeps the slot of
	// its first occurrence and the value of its last one.
	Elements []*Element

	// TransferSyntax is set on the top-level dataset only.
	TransferSyntax *dicomio.TransferSyntax

	// Warnings lists the element-level problems recovered while building
	// the top-level dataset, including those found in nested items.
	Warnings []error

	index map[dicomtag.Tag]int
}

// add inserts elem, replacing (in place) an element with the same tag.
func (ds *DataSet) add(elem *Element) (replaced bool) {
	if ds.index == nil {
		ds.index = make(map[dicomtag.Tag]int)
	}
	if i, ok := ds.index[elem.Tag]; ok {
		ds.Elements[i] = elem
		return true
	}
	ds.index[elem.Tag] = len(ds.Elements)
	ds.Elements = append(ds.Elements, elem)
	return false
}

// Len returns the number of elements at this level.
func (ds *DataSet) Len() int { return len(ds.Elements) }

// FindElementByName 寻找指定name的element
// 如“PatientName”
func (ds *DataSet) FindElementByName(name string) (*Element, error) {
	t, err := dicomtag.FindByName(name)
	if err != nil {
		return nil, err
	}
	return ds.FindElementByTag(t.Tag)
}

// FindElementByTag finds an element from the dataset given its tag, such as
// Tag{0x0010, 0x0010}. Missing elements fail with ErrElementNotFound.
func (ds *DataSet) FindElementByTag(tag dicomtag.Tag) (*Element, error) {
	if ds.index != nil {
		if i, ok := ds.index[tag]; ok {
			return ds.Elements[i], nil
		}
		return nil, fmt.Errorf("%s: %w", dicomtag.DebugString(tag), ErrElementNotFound)
	}
	return FindElementByTag(ds.Elements, tag)
}

// Has reports whether an element with the tag is present, decodable or not.
func (ds *DataSet) Has(tag dicomtag.Tag) bool {
	_, err := ds.FindElementByTag(tag)
	return err == nil
}

// GetString returns the single string value of the element with the tag.
func (ds *DataSet) GetString(tag dicomtag.Tag) (string, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return "", err
	}
	return elem.GetString()
}

// GetFirstString returns the first value of a multi-valued string element.
func (ds *DataSet) GetFirstString(tag dicomtag.Tag) (string, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return "", err
	}
	values, err := elem.GetStrings()
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%s: element has no value", dicomtag.DebugString(tag))
	}
	return values[0], nil
}

func (ds *DataSet) GetStrings(tag dicomtag.Tag) ([]string, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return nil, err
	}
	return elem.GetStrings()
}

func (ds *DataSet) GetInt(tag dicomtag.Tag) (int, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return 0, err
	}
	return elem.GetInt()
}

func (ds *DataSet) GetInts(tag dicomtag.Tag) ([]int, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return nil, err
	}
	return elem.GetInts()
}

func (ds *DataSet) GetFloat64(tag dicomtag.Tag) (float64, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return 0, err
	}
	return elem.GetFloat64()
}

func (ds *DataSet) GetFloat64s(tag dicomtag.Tag) ([]float64, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return nil, err
	}
	return elem.GetFloat64s()
}

// GetItems returns the items of the sequence element with the tag.
func (ds *DataSet) GetItems(tag dicomtag.Tag) ([]*Item, error) {
	elem, err := ds.FindElementByTag(tag)
	if err != nil {
		return nil, err
	}
	return elem.GetItems()
}

// FirstItem returns the first item of a sequence, or nil.
func (ds *DataSet) FirstItem(tag dicomtag.Tag) *Item {
	items, err := ds.GetItems(tag)
	if err != nil || len(items) == 0 {
		return nil
	}
	return items[0]
}

// FindElementByName finds an element with the given Element.Name in
// "elements" If not found, return an error
func FindElementByName(elems []*Element, name string) (*Element, error) {
	t, err := dicomtag.FindByName(name)
	if err != nil {
		return nil, err
	}
	return FindElementByTag(elems, t.Tag)
}

// FindElementByTag finds an element with the given Element.Tag in
// "elements" If not found, returns an error.
func FindElementByTag(elems []*Element, tag dicomtag.Tag) (*Element, error) {
	var found *Element
	// The last occurrence wins, matching DataSet.add.
	for _, elem := range elems {
		if elem.Tag == tag {
			found = elem
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%s: %w", dicomtag.DebugString(tag), ErrElementNotFound)
	}
	return found, nil
}
