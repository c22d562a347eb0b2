package dicom

import (
	"fmt"

	"github.com/odincare/dcmview/dicomtag"
)

// Segment is one entry of the SegmentSequence.
type Segment struct {
	Number        int
	Label         string
	Description   string
	AlgorithmType string
	AlgorithmName string
	Category      *Code
	Type          *Code
	// CIELab is RecommendedDisplayCIELabValue, or nil.
	CIELab []int
}

// SegmentFrame maps one frame of the segmentation pixel data to a segment.
type SegmentFrame struct {
	Index         int
	SegmentNumber int
	// ImagePosition is nil when the frame has no plane position.
	ImagePosition         []float64
	SourceSOPInstanceUIDs []string
}

// Segmentation is a Segmentation IOD.
type Segmentation struct {
	// SegmentationType is BINARY or FRACTIONAL.
	SegmentationType   string
	FractionalType     string
	MaxFractionalValue int
	Segments           []*Segment
	Frames             []SegmentFrame
	// Warnings lists segment and frame entries that were skipped.
	Warnings []error
}

// Segment returns the segment with the given number.
func (s *Segmentation) Segment(number int) (*Segment, bool) {
	for _, seg := range s.Segments {
		if seg.Number == number {
			return seg, true
		}
	}
	return nil, false
}

// SegmentFrames lists the frame indexes that belong to a segment, in frame
// order.
func (s *Segmentation) SegmentFrames(number int) []int {
	var frames []int
	for _, f := range s.Frames {
		if f.SegmentNumber == number {
			frames = append(frames, f.Index)
		}
	}
	return frames
}

func (s *Segmentation) warnf(tag dicomtag.Tag, item *Item, format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, &ElementError{Tag: tag, Offset: item.Offset, Err: fmt.Errorf(format, args...)})
}

// ExtractSegmentation reads the segments and the per-frame segment mapping
// of a Segmentation object. SegmentSequence is required.
func ExtractSegmentation(ds *DataSet) (*Segmentation, error) {
	items, err := ds.GetItems(dicomtag.SegmentSequence)
	if err != nil {
		return nil, &RequiredTagError{Tag: dicomtag.SegmentSequence, Field: "segmentation"}
	}
	s := &Segmentation{
		SegmentationType: stringOrDefault(ds, dicomtag.SegmentationType, "BINARY"),
	}
	s.FractionalType, _ = ds.GetString(dicomtag.SegmentationFractionalType)
	s.MaxFractionalValue, _ = ds.GetInt(dicomtag.MaximumFractionalValue)

	known := map[int]bool{}
	for _, item := range items {
		number, err := item.GetInt(dicomtag.SegmentNumber)
		if err != nil {
			s.warnf(dicomtag.SegmentSequence, item, "%w: segment without SegmentNumber", ErrRequiredTagMissing)
			continue
		}
		seg := &Segment{
			Number:   number,
			Category: codeFromSequence(&item.DataSet, dicomtag.SegmentedPropertyCategoryCodeSequence),
			Type:     codeFromSequence(&item.DataSet, dicomtag.SegmentedPropertyTypeCodeSequence),
		}
		seg.Label, _ = item.GetString(dicomtag.SegmentLabel)
		seg.Description, _ = item.GetString(dicomtag.SegmentDescription)
		seg.AlgorithmType, _ = item.GetString(dicomtag.SegmentAlgorithmType)
		seg.AlgorithmName, _ = item.GetString(dicomtag.SegmentAlgorithmName)
		if lab, err := item.GetInts(dicomtag.RecommendedDisplayCIELabValue); err == nil && len(lab) == 3 {
			seg.CIELab = lab
		}
		known[number] = true
		s.Segments = append(s.Segments, seg)
	}

	frames, err := ds.GetItems(dicomtag.PerFrameFunctionalGroupsSequence)
	if err != nil {
		return s, nil
	}
	for i, item := range frames {
		ident := item.FirstItem(dicomtag.SegmentIdentificationSequence)
		if ident == nil {
			s.warnf(dicomtag.PerFrameFunctionalGroupsSequence, item, "%w: frame %d has no SegmentIdentificationSequence", ErrRequiredTagMissing, i)
			continue
		}
		number, err := ident.GetInt(dicomtag.ReferencedSegmentNumber)
		if err != nil {
			s.warnf(dicomtag.PerFrameFunctionalGroupsSequence, item, "%w: frame %d has no ReferencedSegmentNumber", ErrRequiredTagMissing, i)
			continue
		}
		if !known[number] {
			s.warnf(dicomtag.PerFrameFunctionalGroupsSequence, item, "%w: frame %d references undefined segment %d", ErrMalformedElement, i, number)
		}
		f := SegmentFrame{Index: i, SegmentNumber: number}
		if plane := item.FirstItem(dicomtag.PlanePositionSequence); plane != nil {
			if pos, err := plane.GetFloat64s(dicomtag.ImagePositionPatient); err == nil && len(pos) == 3 {
				f.ImagePosition = pos
			}
		}
		f.SourceSOPInstanceUIDs = sourceImages(item)
		s.Frames = append(s.Frames, f)
	}
	return s, nil
}

// sourceImages reads DerivationImageSequence > SourceImageSequence.
func sourceImages(frame *Item) []string {
	derivations, err := frame.GetItems(dicomtag.DerivationImageSequence)
	if err != nil {
		return nil
	}
	var uids []string
	for _, d := range derivations {
		sources, err := d.GetItems(dicomtag.SourceImageSequence)
		if err != nil {
			continue
		}
		for _, src := range sources {
			if uid, err := src.GetString(dicomtag.ReferencedSOPInstanceUID); err == nil {
				uids = append(uids, uid)
			}
		}
	}
	return uids
}
