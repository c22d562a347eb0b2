package dicom

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
)

// Metadata maps human-meaningful keys to string, int, float64 or []float64
// values.
type Metadata map[string]interface{}

type metaKind int

const (
	metaString metaKind = iota
	metaInt
	metaFloat
	metaFloats
)

type metadataField struct {
	key  string
	tag  dicomtag.Tag
	kind metaKind
}

// metadataFields is the fixed projection of ExtractMetadata, grouped by IOD
// module.
var metadataFields = []metadataField{
	// Patient
	{"PatientName", dicomtag.PatientName, metaString},
	{"PatientID", dicomtag.PatientID, metaString},
	{"PatientBirthDate", dicomtag.PatientBirthDate, metaString},
	{"PatientSex", dicomtag.PatientSex, metaString},
	{"PatientAge", dicomtag.PatientAge, metaString},
	{"PatientWeight", dicomtag.PatientWeight, metaFloat},
	// Study
	{"StudyInstanceUID", dicomtag.StudyInstanceUID, metaString},
	{"StudyDate", dicomtag.StudyDate, metaString},
	{"StudyTime", dicomtag.StudyTime, metaString},
	{"StudyID", dicomtag.StudyID, metaString},
	{"StudyDescription", dicomtag.StudyDescription, metaString},
	{"AccessionNumber", dicomtag.AccessionNumber, metaString},
	{"ReferringPhysicianName", dicomtag.ReferringPhysicianName, metaString},
	// Series
	{"SeriesInstanceUID", dicomtag.SeriesInstanceUID, metaString},
	{"SeriesNumber", dicomtag.SeriesNumber, metaInt},
	{"SeriesDate", dicomtag.SeriesDate, metaString},
	{"SeriesDescription", dicomtag.SeriesDescription, metaString},
	{"Modality", dicomtag.Modality, metaString},
	{"BodyPartExamined", dicomtag.BodyPartExamined, metaString},
	{"ProtocolName", dicomtag.ProtocolName, metaString},
	// Equipment
	{"Manufacturer", dicomtag.Manufacturer, metaString},
	{"ManufacturerModelName", dicomtag.ManufacturerModelName, metaString},
	{"InstitutionName", dicomtag.InstitutionName, metaString},
	{"SoftwareVersions", dicomtag.SoftwareVersions, metaString},
	// Instance
	{"SOPInstanceUID", dicomtag.SOPInstanceUID, metaString},
	{"InstanceNumber", dicomtag.InstanceNumber, metaInt},
	{"AcquisitionDate", dicomtag.AcquisitionDate, metaString},
	{"ContentDate", dicomtag.ContentDate, metaString},
	{"ContentTime", dicomtag.ContentTime, metaString},
	{"ImageType", dicomtag.ImageType, metaString},
	// Image plane
	{"FrameOfReferenceUID", dicomtag.FrameOfReferenceUID, metaString},
	{"PixelSpacing", dicomtag.PixelSpacing, metaFloats},
	{"SliceThickness", dicomtag.SliceThickness, metaFloat},
	{"SpacingBetweenSlices", dicomtag.SpacingBetweenSlices, metaFloat},
	{"SliceLocation", dicomtag.SliceLocation, metaFloat},
	{"ImagePositionPatient", dicomtag.ImagePositionPatient, metaFloats},
	{"ImageOrientationPatient", dicomtag.ImageOrientationPatient, metaFloats},
	// Image pixel
	{"Rows", dicomtag.Rows, metaInt},
	{"Columns", dicomtag.Columns, metaInt},
	{"BitsAllocated", dicomtag.BitsAllocated, metaInt},
	{"BitsStored", dicomtag.BitsStored, metaInt},
	{"HighBit", dicomtag.HighBit, metaInt},
	{"PixelRepresentation", dicomtag.PixelRepresentation, metaInt},
	{"SamplesPerPixel", dicomtag.SamplesPerPixel, metaInt},
	{"PlanarConfiguration", dicomtag.PlanarConfiguration, metaInt},
	{"PhotometricInterpretation", dicomtag.PhotometricInterpretation, metaString},
	{"NumberOfFrames", dicomtag.NumberOfFrames, metaInt},
	{"WindowCenter", dicomtag.WindowCenter, metaFloat},
	{"WindowWidth", dicomtag.WindowWidth, metaFloat},
	{"RescaleSlope", dicomtag.RescaleSlope, metaFloat},
	{"RescaleIntercept", dicomtag.RescaleIntercept, metaFloat},
	{"RescaleType", dicomtag.RescaleType, metaString},
	// SOP common
	{"SOPClassUID", dicomtag.SOPClassUID, metaString},
	{"SpecificCharacterSet", dicomtag.SpecificCharacterSet, metaString},
}

func metadataValue(elem *Element, kind metaKind) (interface{}, error) {
	switch kind {
	case metaInt:
		return elem.GetInt()
	case metaFloat:
		return elem.GetFloat64()
	case metaFloats:
		return elem.GetFloat64s()
	default:
		values, err := elem.GetStrings()
		if err != nil {
			return nil, err
		}
		return strings.Join(values, "\\"), nil
	}
}

// ExtractMetadata projects the dataset onto the fixed metadata table.
// Absent or undecodable elements are left out, except for these defaults:
// image objects (those with Rows) get NumberOfFrames=1, SamplesPerPixel=1,
// RescaleSlope=1, RescaleIntercept=0 and a full-range window, and
// SOPClassUID falls back to MediaStorageSOPClassUID. TransferSyntaxUID and
// SOPClassName are derived from the file meta group and the UID registry.
func ExtractMetadata(ds *DataSet) Metadata {
	m := Metadata{}
	for _, f := range metadataFields {
		elem, err := ds.FindElementByTag(f.tag)
		if err != nil {
			continue
		}
		if v, err := metadataValue(elem, f.kind); err == nil {
			m[f.key] = v
		}
	}

	if _, ok := m["SOPClassUID"]; !ok {
		if uid, err := ds.GetString(dicomtag.MediaStorageSOPClassUID); err == nil {
			m["SOPClassUID"] = uid
		}
	}
	if uid, ok := m["SOPClassUID"].(string); ok {
		if info, err := dicomuid.Lookup(uid); err == nil {
			m["SOPClassName"] = info.Name
		}
	}
	if ds.TransferSyntax != nil {
		m["TransferSyntaxUID"] = ds.TransferSyntax.UID
	} else if uid, err := ds.GetString(dicomtag.TransferSyntaxUID); err == nil {
		m["TransferSyntaxUID"] = uid
	}

	if _, ok := m["Rows"]; ok {
		setDefault(m, "NumberOfFrames", 1)
		setDefault(m, "SamplesPerPixel", 1)
		setDefault(m, "RescaleSlope", 1.0)
		setDefault(m, "RescaleIntercept", 0.0)
		_, hasCenter := m["WindowCenter"]
		_, hasWidth := m["WindowWidth"]
		if !hasCenter || !hasWidth {
			if desc, err := ExtractPixelDescriptor(ds); err == nil {
				m["WindowCenter"], m["WindowWidth"] = desc.WindowCenter, desc.WindowWidth
			}
		}
	}
	return m
}

func setDefault(m Metadata, key string, v interface{}) {
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

// Keys returns the keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString returns the value of key formatted as a string.
func (m Metadata) GetString(key string) (string, bool) {
	v, ok := m[key]
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}

// Select returns the entries whose key matches a glob pattern, e.g.
// "Patient*" or "{Rows,Columns}".
func (m Metadata) Select(pattern string) (Metadata, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, err
	}
	out := Metadata{}
	for k, v := range m {
		if g.Match(k) {
			out[k] = v
		}
	}
	return out, nil
}
