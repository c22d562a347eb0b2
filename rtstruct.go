package dicom

import (
	"fmt"

	"github.com/odincare/dcmview/dicomtag"
)

// RTStructureSet is an RT Structure Set object: ROIs and their contours.
type RTStructureSet struct {
	Label       string
	Name        string
	Description string
	Date        string
	Time        string

	FrameOfReferenceUIDs []string
	// ROIs are in StructureSetROISequence order.
	ROIs []*ROI
	// Warnings lists ROI and contour entries that were skipped or merged
	// incompletely.
	Warnings []error
}

// ROI merges the StructureSetROISequence, ROIContourSequence and
// RTROIObservationsSequence entries of one ROI number.
type ROI struct {
	Number              int
	Name                string
	Description         string
	GenerationAlgorithm string
	FrameOfReferenceUID string
	// Color is the RGB ROIDisplayColor, or nil.
	Color           []int
	Contours        []Contour
	InterpretedType string
	Interpreter     string
}

// Contour is one closed or open polygon (or point) of an ROI.
type Contour struct {
	Number        int
	GeometricType string
	// Points are (x, y, z) triplets in patient coordinates.
	Points                    [][3]float64
	ReferencedSOPInstanceUIDs []string
}

// ROI returns the ROI with the given number.
func (s *RTStructureSet) ROI(number int) (*ROI, bool) {
	for _, r := range s.ROIs {
		if r.Number == number {
			return r, true
		}
	}
	return nil, false
}

func (s *RTStructureSet) warnf(tag dicomtag.Tag, item *Item, format string, args ...interface{}) {
	s.Warnings = append(s.Warnings, &ElementError{Tag: tag, Offset: item.Offset, Err: fmt.Errorf(format, args...)})
}

// ExtractRTStructureSet reads an RT Structure Set. StructureSetROISequence is
// required; a malformed ROI or contour entry is skipped with a warning.
func ExtractRTStructureSet(ds *DataSet) (*RTStructureSet, error) {
	roiItems, err := ds.GetItems(dicomtag.StructureSetROISequence)
	if err != nil {
		return nil, &RequiredTagError{Tag: dicomtag.StructureSetROISequence, Field: "RT structure set"}
	}
	s := &RTStructureSet{}
	s.Label, _ = ds.GetString(dicomtag.StructureSetLabel)
	s.Name, _ = ds.GetString(dicomtag.StructureSetName)
	s.Description, _ = ds.GetString(dicomtag.StructureSetDescription)
	s.Date, _ = ds.GetString(dicomtag.StructureSetDate)
	s.Time, _ = ds.GetString(dicomtag.StructureSetTime)
	if refs, err := ds.GetItems(dicomtag.ReferencedFrameOfReferenceSequence); err == nil {
		for _, ref := range refs {
			if uid, err := ref.GetString(dicomtag.FrameOfReferenceUID); err == nil {
				s.FrameOfReferenceUIDs = append(s.FrameOfReferenceUIDs, uid)
			}
		}
	}

	byNumber := map[int]*ROI{}
	for _, item := range roiItems {
		number, err := item.GetInt(dicomtag.ROINumber)
		if err != nil {
			s.warnf(dicomtag.StructureSetROISequence, item, "%w: ROI entry without ROINumber", ErrRequiredTagMissing)
			continue
		}
		if _, dup := byNumber[number]; dup {
			s.warnf(dicomtag.StructureSetROISequence, item, "%w: ROI number %d defined twice", ErrMalformedElement, number)
			continue
		}
		roi := &ROI{Number: number}
		roi.Name, _ = item.GetString(dicomtag.ROIName)
		roi.Description, _ = item.GetString(dicomtag.ROIDescription)
		roi.GenerationAlgorithm, _ = item.GetString(dicomtag.ROIGenerationAlgorithm)
		roi.FrameOfReferenceUID, _ = item.GetString(dicomtag.ReferencedFrameOfReferenceUID)
		byNumber[number] = roi
		s.ROIs = append(s.ROIs, roi)
	}

	if items, err := ds.GetItems(dicomtag.ROIContourSequence); err == nil {
		for _, item := range items {
			roi := s.referencedROI(byNumber, dicomtag.ROIContourSequence, item)
			if roi == nil {
				continue
			}
			if color, err := item.GetInts(dicomtag.ROIDisplayColor); err == nil && len(color) == 3 {
				roi.Color = color
			}
			s.readContours(roi, item)
		}
	}
	if items, err := ds.GetItems(dicomtag.RTROIObservationsSequence); err == nil {
		for _, item := range items {
			roi := s.referencedROI(byNumber, dicomtag.RTROIObservationsSequence, item)
			if roi == nil {
				continue
			}
			roi.InterpretedType, _ = item.GetString(dicomtag.RTROIInterpretedType)
			roi.Interpreter, _ = item.GetString(dicomtag.ROIInterpreter)
		}
	}
	return s, nil
}

func (s *RTStructureSet) referencedROI(byNumber map[int]*ROI, seq dicomtag.Tag, item *Item) *ROI {
	number, err := item.GetInt(dicomtag.ReferencedROINumber)
	if err != nil {
		s.warnf(seq, item, "%w: entry without ReferencedROINumber", ErrRequiredTagMissing)
		return nil
	}
	roi, ok := byNumber[number]
	if !ok {
		s.warnf(seq, item, "%w: reference to undefined ROI number %d", ErrMalformedElement, number)
		return nil
	}
	return roi
}

func (s *RTStructureSet) readContours(roi *ROI, roiContour *Item) {
	items, err := roiContour.GetItems(dicomtag.ContourSequence)
	if err != nil {
		return
	}
	for _, item := range items {
		data, err := item.GetFloat64s(dicomtag.ContourData)
		if err != nil {
			s.warnf(dicomtag.ContourSequence, item, "ROI %d: unusable ContourData: %w", roi.Number, err)
			continue
		}
		if len(data)%3 != 0 {
			s.warnf(dicomtag.ContourSequence, item, "%w: ROI %d: %d contour coordinates is not a multiple of 3",
				ErrMalformedElement, roi.Number, len(data))
			continue
		}
		c := Contour{Points: make([][3]float64, 0, len(data)/3)}
		for i := 0; i < len(data); i += 3 {
			c.Points = append(c.Points, [3]float64{data[i], data[i+1], data[i+2]})
		}
		c.Number, _ = item.GetInt(dicomtag.ContourNumber)
		c.GeometricType, _ = item.GetString(dicomtag.ContourGeometricType)
		if n, err := item.GetInt(dicomtag.NumberOfContourPoints); err == nil && n != len(c.Points) {
			s.warnf(dicomtag.ContourSequence, item, "ROI %d: NumberOfContourPoints is %d, ContourData has %d points",
				roi.Number, n, len(c.Points))
		}
		if images, err := item.GetItems(dicomtag.ContourImageSequence); err == nil {
			for _, image := range images {
				if uid, err := image.GetString(dicomtag.ReferencedSOPInstanceUID); err == nil {
					c.ReferencedSOPInstanceUIDs = append(c.ReferencedSOPInstanceUIDs, uid)
				}
			}
		}
		roi.Contours = append(roi.Contours, c)
	}
}
