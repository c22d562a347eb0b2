package dicom

import (
	"math"

	"github.com/odincare/dcmview/dicomtag"
)

// Geometry places an image in the patient coordinate system (millimetres).
type Geometry struct {
	Rows    int
	Columns int

	// ImageOrientation is the row direction cosine followed by the column
	// direction cosine.
	ImageOrientation [6]float64
	// ImagePosition is the centre of the first transmitted pixel.
	ImagePosition [3]float64
	// PixelSpacing is row spacing (between rows) then column spacing.
	PixelSpacing [2]float64

	SliceThickness       float64
	SpacingBetweenSlices float64
	SliceLocation        float64
	FrameOfReferenceUID  string

	// FramePositions holds the per-frame ImagePositionPatient of enhanced
	// multi-frame objects, in frame order. It is empty when any frame lacks
	// a position.
	FramePositions [][3]float64

	// Defaulted names the fields that were not found in the dataset.
	Defaulted []string
}

// Normal is the cross product of the row and column direction cosines.
func (g Geometry) Normal() [3]float64 {
	r := g.ImageOrientation[0:3]
	c := g.ImageOrientation[3:6]
	return [3]float64{
		r[1]*c[2] - r[2]*c[1],
		r[2]*c[0] - r[0]*c[2],
		r[0]*c[1] - r[1]*c[0],
	}
}

// IsDefaulted reports whether field came from a default.
func (g Geometry) IsDefaulted(field string) bool {
	for _, f := range g.Defaulted {
		if f == field {
			return true
		}
	}
	return false
}

// functionalGroupFloats looks tag up at the top level, then in the named
// functional group macro of the shared groups, then of the first frame.
func functionalGroupFloats(ds *DataSet, tag dicomtag.Tag, n int, macro dicomtag.Tag) ([]float64, bool) {
	if values, err := ds.GetFloat64s(tag); err == nil && len(values) >= n {
		return values[:n], true
	}
	for _, groups := range []dicomtag.Tag{dicomtag.SharedFunctionalGroupsSequence, dicomtag.PerFrameFunctionalGroupsSequence} {
		group := ds.FirstItem(groups)
		if group == nil {
			continue
		}
		m := group.FirstItem(macro)
		if m == nil {
			continue
		}
		if values, err := m.GetFloat64s(tag); err == nil && len(values) >= n {
			return values[:n], true
		}
	}
	return nil, false
}

// ExtractGeometry reads the image plane module. Rows and Columns are
// required; orientation defaults to the identity, position to the origin and
// spacing to ImagerPixelSpacing or 1x1.
func ExtractGeometry(ds *DataSet) (*Geometry, error) {
	g := &Geometry{}
	var err error
	if g.Rows, err = requiredInt(ds, dicomtag.Rows, "Rows"); err != nil {
		return nil, err
	}
	if g.Columns, err = requiredInt(ds, dicomtag.Columns, "Columns"); err != nil {
		return nil, err
	}

	if v, ok := functionalGroupFloats(ds, dicomtag.ImageOrientationPatient, 6, dicomtag.PlaneOrientationSequence); ok && !zeroVector(v) {
		copy(g.ImageOrientation[:], v)
	} else {
		g.ImageOrientation = [6]float64{1, 0, 0, 0, 1, 0}
		g.Defaulted = append(g.Defaulted, "ImageOrientation")
	}
	if v, ok := functionalGroupFloats(ds, dicomtag.ImagePositionPatient, 3, dicomtag.PlanePositionSequence); ok {
		copy(g.ImagePosition[:], v)
	} else {
		g.Defaulted = append(g.Defaulted, "ImagePosition")
	}
	if v, ok := functionalGroupFloats(ds, dicomtag.PixelSpacing, 2, dicomtag.PixelMeasuresSequence); ok {
		copy(g.PixelSpacing[:], v)
	} else if v, err := ds.GetFloat64s(dicomtag.ImagerPixelSpacing); err == nil && len(v) >= 2 {
		copy(g.PixelSpacing[:], v)
	} else {
		g.PixelSpacing = [2]float64{1, 1}
		g.Defaulted = append(g.Defaulted, "PixelSpacing")
	}
	if v, ok := functionalGroupFloats(ds, dicomtag.SliceThickness, 1, dicomtag.PixelMeasuresSequence); ok {
		g.SliceThickness = v[0]
	} else {
		g.SliceThickness = 1
		g.Defaulted = append(g.Defaulted, "SliceThickness")
	}
	if v, ok := functionalGroupFloats(ds, dicomtag.SpacingBetweenSlices, 1, dicomtag.PixelMeasuresSequence); ok {
		g.SpacingBetweenSlices = v[0]
	} else {
		g.SpacingBetweenSlices = g.SliceThickness
		g.Defaulted = append(g.Defaulted, "SpacingBetweenSlices")
	}
	if v, err := ds.GetFloat64(dicomtag.SliceLocation); err == nil {
		g.SliceLocation = v
	} else {
		// Distance of the plane from the origin along the normal.
		n := g.Normal()
		p := g.ImagePosition
		g.SliceLocation = n[0]*p[0] + n[1]*p[1] + n[2]*p[2]
		g.Defaulted = append(g.Defaulted, "SliceLocation")
	}
	g.FrameOfReferenceUID, _ = ds.GetString(dicomtag.FrameOfReferenceUID)
	g.FramePositions = framePositions(ds)
	return g, nil
}

func framePositions(ds *DataSet) [][3]float64 {
	frames, err := ds.GetItems(dicomtag.PerFrameFunctionalGroupsSequence)
	if err != nil || len(frames) == 0 {
		return nil
	}
	positions := make([][3]float64, 0, len(frames))
	for _, frame := range frames {
		plane := frame.FirstItem(dicomtag.PlanePositionSequence)
		if plane == nil {
			return nil
		}
		v, err := plane.GetFloat64s(dicomtag.ImagePositionPatient)
		if err != nil || len(v) < 3 {
			return nil
		}
		positions = append(positions, [3]float64{v[0], v[1], v[2]})
	}
	return positions
}

func zeroVector(v []float64) bool {
	for _, x := range v {
		if math.Abs(x) > 1e-9 {
			return false
		}
	}
	return true
}
