package dicom

import (
	"fmt"

	"github.com/odincare/dcmview/dicomtag"
)

// Code is a coded concept, PS3.3 8.8.
type Code struct {
	Value   string
	Scheme  string
	Meaning string
}

func (c *Code) String() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("(%s, %s, %q)", c.Value, c.Scheme, c.Meaning)
}

// codeFromSequence reads the first item of a code sequence.
func codeFromSequence(ds *DataSet, tag dicomtag.Tag) *Code {
	item := ds.FirstItem(tag)
	if item == nil {
		return nil
	}
	c := &Code{}
	c.Value, _ = item.GetString(dicomtag.CodeValue)
	c.Scheme, _ = item.GetString(dicomtag.CodingSchemeDesignator)
	c.Meaning, _ = item.GetString(dicomtag.CodeMeaning)
	return c
}

// Reference is a referenced SOP instance of an IMAGE or COMPOSITE item.
type Reference struct {
	SOPClassUID    string
	SOPInstanceUID string
	Frames         []int
}

// ContentItem is one node of a structured report content tree. Which value
// fields are set depends on ValueType.
type ContentItem struct {
	RelationshipType string
	ValueType        string
	ConceptName      *Code

	// TEXT, DATETIME, DATE, TIME, PNAME and UIDREF values.
	Text string
	// CODE value.
	Code *Code
	// NUM value.
	Numeric    *float64
	Units      *Code
	References []Reference
	// SCOORD and SCOORD3D values.
	GraphicType string
	GraphicData []float64
	// CONTAINER continuity.
	ContinuityOfContent string

	Children []*ContentItem
}

// StructuredReport is the document root of an SR object.
type StructuredReport struct {
	SOPClassUID      string
	Title            *Code
	ValueType        string
	CompletionFlag   string
	VerificationFlag string
	TemplateID       string
	Content          []*ContentItem
	// Warnings lists content items that were skipped.
	Warnings []error
}

// ExtractStructuredReport builds the content tree of an SR document. An
// item without a ValueType is skipped together with its subtree and
// recorded in Warnings.
func ExtractStructuredReport(ds *DataSet) (*StructuredReport, error) {
	if !ds.Has(dicomtag.ContentSequence) && !ds.Has(dicomtag.ValueType) {
		return nil, &RequiredTagError{Tag: dicomtag.ContentSequence, Field: "structured report content"}
	}
	sr := &StructuredReport{
		Title: codeFromSequence(ds, dicomtag.ConceptNameCodeSequence),
	}
	sr.SOPClassUID, _ = ds.GetString(dicomtag.SOPClassUID)
	sr.ValueType, _ = ds.GetString(dicomtag.ValueType)
	sr.CompletionFlag, _ = ds.GetString(dicomtag.CompletionFlag)
	sr.VerificationFlag, _ = ds.GetString(dicomtag.VerificationFlag)
	if tmpl := ds.FirstItem(dicomtag.ContentTemplateSequence); tmpl != nil {
		sr.TemplateID, _ = tmpl.GetString(dicomtag.TemplateIdentifier)
	}

	type work struct {
		item   *Item
		parent *ContentItem
	}
	var stack []work
	pushChildren := func(ds *DataSet, parent *ContentItem) {
		items, err := ds.GetItems(dicomtag.ContentSequence)
		if err != nil {
			return
		}
		// Reversed so that siblings are visited in file order.
		for i := len(items) - 1; i >= 0; i-- {
			stack = append(stack, work{items[i], parent})
		}
	}
	pushChildren(ds, nil)
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, err := contentItem(&w.item.DataSet)
		if err != nil {
			sr.Warnings = append(sr.Warnings, &ElementError{Tag: dicomtag.ContentSequence, Offset: w.item.Offset, Err: err})
			continue
		}
		if w.parent == nil {
			sr.Content = append(sr.Content, node)
		} else {
			w.parent.Children = append(w.parent.Children, node)
		}
		pushChildren(&w.item.DataSet, node)
	}
	return sr, nil
}

func contentItem(ds *DataSet) (*ContentItem, error) {
	valueType, err := ds.GetString(dicomtag.ValueType)
	if err != nil || valueType == "" {
		return nil, &RequiredTagError{Tag: dicomtag.ValueType, Field: "content item"}
	}
	n := &ContentItem{
		ValueType:   valueType,
		ConceptName: codeFromSequence(ds, dicomtag.ConceptNameCodeSequence),
	}
	n.RelationshipType, _ = ds.GetString(dicomtag.RelationshipType)
	switch valueType {
	case "TEXT":
		n.Text, _ = ds.GetString(dicomtag.TextValue)
	case "DATETIME":
		n.Text, _ = ds.GetString(dicomtag.DateTime)
	case "DATE":
		n.Text, _ = ds.GetString(dicomtag.Date)
	case "TIME":
		n.Text, _ = ds.GetString(dicomtag.Time)
	case "PNAME":
		n.Text, _ = ds.GetString(dicomtag.PersonName)
	case "UIDREF":
		n.Text, _ = ds.GetString(dicomtag.UID)
	case "CODE":
		n.Code = codeFromSequence(ds, dicomtag.ConceptCodeSequence)
	case "NUM":
		if mv := ds.FirstItem(dicomtag.MeasuredValueSequence); mv != nil {
			if v, err := mv.GetFloat64(dicomtag.NumericValue); err == nil {
				n.Numeric = &v
			}
			n.Units = codeFromSequence(&mv.DataSet, dicomtag.MeasurementUnitsCodeSequence)
		}
	case "IMAGE", "COMPOSITE", "WAVEFORM":
		n.References = references(ds)
	case "SCOORD", "SCOORD3D":
		n.GraphicType, _ = ds.GetString(dicomtag.GraphicType)
		n.GraphicData, _ = ds.GetFloat64s(dicomtag.GraphicData)
	case "CONTAINER":
		n.ContinuityOfContent, _ = ds.GetString(dicomtag.ContinuityOfContent)
	}
	return n, nil
}

func references(ds *DataSet) []Reference {
	items, err := ds.GetItems(dicomtag.ReferencedSOPSequence)
	if err != nil {
		return nil
	}
	refs := make([]Reference, 0, len(items))
	for _, item := range items {
		var r Reference
		r.SOPClassUID, _ = item.GetString(dicomtag.ReferencedSOPClassUID)
		r.SOPInstanceUID, _ = item.GetString(dicomtag.ReferencedSOPInstanceUID)
		r.Frames, _ = item.GetInts(dicomtag.ReferencedFrameNumber)
		refs = append(refs, r)
	}
	return refs
}

// Walk visits the content tree depth first in document order. Returning
// false from fn skips the children of that node.
func (sr *StructuredReport) Walk(fn func(node *ContentItem, depth int) bool) {
	type work struct {
		node  *ContentItem
		depth int
	}
	var stack []work
	for i := len(sr.Content) - 1; i >= 0; i-- {
		stack = append(stack, work{sr.Content[i], 0})
	}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(w.node, w.depth) {
			continue
		}
		for i := len(w.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, work{w.node.Children[i], w.depth + 1})
		}
	}
}
