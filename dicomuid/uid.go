// Package dicomuid holds the well-known UIDs this module understands:
// transfer syntaxes and the storage SOP classes a viewer distinguishes.
package dicomuid

import (
	"fmt"
	"strings"
)

// Type classifies a registered UID.
type Type string

const (
	TypeTransferSyntax Type = "Transfer Syntax"
	TypeSOPClass       Type = "SOP Class"
)

// Transfer syntaxes, PS3.6 Annex A.
const (
	ImplicitVRLittleEndian         = "1.2.840.10008.1.2"
	ExplicitVRLittleEndian         = "1.2.840.10008.1.2.1"
	DeflatedExplicitVRLittleEndian = "1.2.840.10008.1.2.1.99"
	ExplicitVRBigEndian            = "1.2.840.10008.1.2.2"
	JPEGBaseline8Bit               = "1.2.840.10008.1.2.4.50"
	JPEGExtended12Bit              = "1.2.840.10008.1.2.4.51"
	JPEGLossless                   = "1.2.840.10008.1.2.4.57"
	JPEGLosslessSV1                = "1.2.840.10008.1.2.4.70"
	JPEGLSLossless                 = "1.2.840.10008.1.2.4.80"
	JPEGLSNearLossless             = "1.2.840.10008.1.2.4.81"
	JPEG2000Lossless               = "1.2.840.10008.1.2.4.90"
	JPEG2000                       = "1.2.840.10008.1.2.4.91"
	HTJ2KLossless                  = "1.2.840.10008.1.2.4.201"
	HTJ2KLosslessRPCL              = "1.2.840.10008.1.2.4.202"
	HTJ2K                          = "1.2.840.10008.1.2.4.203"
	RLELossless                    = "1.2.840.10008.1.2.5"
)

// Storage SOP classes, PS3.4 Annex B.
const (
	CTImageStorage                         = "1.2.840.10008.5.1.4.1.1.2"
	EnhancedCTImageStorage                 = "1.2.840.10008.5.1.4.1.1.2.1"
	MRImageStorage                         = "1.2.840.10008.5.1.4.1.1.4"
	EnhancedMRImageStorage                 = "1.2.840.10008.5.1.4.1.1.4.1"
	UltrasoundMultiFrameImageStorage       = "1.2.840.10008.5.1.4.1.1.3.1"
	UltrasoundImageStorage                 = "1.2.840.10008.5.1.4.1.1.6.1"
	ComputedRadiographyImageStorage        = "1.2.840.10008.5.1.4.1.1.1"
	DigitalXRayImageStorageForPresentation = "1.2.840.10008.5.1.4.1.1.1.1"
	SecondaryCaptureImageStorage           = "1.2.840.10008.5.1.4.1.1.7"
	NuclearMedicineImageStorage            = "1.2.840.10008.5.1.4.1.1.20"
	PositronEmissionTomographyImageStorage = "1.2.840.10008.5.1.4.1.1.128"
	SegmentationStorage                    = "1.2.840.10008.5.1.4.1.1.66.4"
	BasicTextSRStorage                     = "1.2.840.10008.5.1.4.1.1.88.11"
	EnhancedSRStorage                      = "1.2.840.10008.5.1.4.1.1.88.22"
	ComprehensiveSRStorage                 = "1.2.840.10008.5.1.4.1.1.88.33"
	Comprehensive3DSRStorage               = "1.2.840.10008.5.1.4.1.1.88.34"
	KeyObjectSelectionDocumentStorage      = "1.2.840.10008.5.1.4.1.1.88.59"
	RTImageStorage                         = "1.2.840.10008.5.1.4.1.1.481.1"
	RTDoseStorage                          = "1.2.840.10008.5.1.4.1.1.481.2"
	RTStructureSetStorage                  = "1.2.840.10008.5.1.4.1.1.481.3"
	RTPlanStorage                          = "1.2.840.10008.5.1.4.1.1.481.5"
)

// UIDInfo describes one registered UID.
type UIDInfo struct {
	UID  string
	Name string
	Type Type
}

var uidDict = map[string]UIDInfo{}

func init() {
	for _, e := range []UIDInfo{
		{ImplicitVRLittleEndian, "Implicit VR Little Endian", TypeTransferSyntax},
		{ExplicitVRLittleEndian, "Explicit VR Little Endian", TypeTransferSyntax},
		{DeflatedExplicitVRLittleEndian, "Deflated Explicit VR Little Endian", TypeTransferSyntax},
		{ExplicitVRBigEndian, "Explicit VR Big Endian", TypeTransferSyntax},
		{JPEGBaseline8Bit, "JPEG Baseline (Process 1)", TypeTransferSyntax},
		{JPEGExtended12Bit, "JPEG Extended (Process 2 & 4)", TypeTransferSyntax},
		{JPEGLossless, "JPEG Lossless, Non-Hierarchical (Process 14)", TypeTransferSyntax},
		{JPEGLosslessSV1, "JPEG Lossless, Non-Hierarchical, First-Order Prediction", TypeTransferSyntax},
		{JPEGLSLossless, "JPEG-LS Lossless Image Compression", TypeTransferSyntax},
		{JPEGLSNearLossless, "JPEG-LS Lossy (Near-Lossless) Image Compression", TypeTransferSyntax},
		{JPEG2000Lossless, "JPEG 2000 Image Compression (Lossless Only)", TypeTransferSyntax},
		{JPEG2000, "JPEG 2000 Image Compression", TypeTransferSyntax},
		{HTJ2KLossless, "High-Throughput JPEG 2000 Image Compression (Lossless Only)", TypeTransferSyntax},
		{HTJ2KLosslessRPCL, "High-Throughput JPEG 2000 with RPCL Options Image Compression (Lossless Only)", TypeTransferSyntax},
		{HTJ2K, "High-Throughput JPEG 2000 Image Compression", TypeTransferSyntax},
		{RLELossless, "RLE Lossless", TypeTransferSyntax},

		{CTImageStorage, "CT Image Storage", TypeSOPClass},
		{EnhancedCTImageStorage, "Enhanced CT Image Storage", TypeSOPClass},
		{MRImageStorage, "MR Image Storage", TypeSOPClass},
		{EnhancedMRImageStorage, "Enhanced MR Image Storage", TypeSOPClass},
		{UltrasoundMultiFrameImageStorage, "Ultrasound Multi-frame Image Storage", TypeSOPClass},
		{UltrasoundImageStorage, "Ultrasound Image Storage", TypeSOPClass},
		{ComputedRadiographyImageStorage, "Computed Radiography Image Storage", TypeSOPClass},
		{DigitalXRayImageStorageForPresentation, "Digital X-Ray Image Storage - For Presentation", TypeSOPClass},
		{SecondaryCaptureImageStorage, "Secondary Capture Image Storage", TypeSOPClass},
		{NuclearMedicineImageStorage, "Nuclear Medicine Image Storage", TypeSOPClass},
		{PositronEmissionTomographyImageStorage, "Positron Emission Tomography Image Storage", TypeSOPClass},
		{SegmentationStorage, "Segmentation Storage", TypeSOPClass},
		{BasicTextSRStorage, "Basic Text SR Storage", TypeSOPClass},
		{EnhancedSRStorage, "Enhanced SR Storage", TypeSOPClass},
		{ComprehensiveSRStorage, "Comprehensive SR Storage", TypeSOPClass},
		{Comprehensive3DSRStorage, "Comprehensive 3D SR Storage", TypeSOPClass},
		{KeyObjectSelectionDocumentStorage, "Key Object Selection Document Storage", TypeSOPClass},
		{RTImageStorage, "RT Image Storage", TypeSOPClass},
		{RTDoseStorage, "RT Dose Storage", TypeSOPClass},
		{RTStructureSetStorage, "RT Structure Set Storage", TypeSOPClass},
		{RTPlanStorage, "RT Plan Storage", TypeSOPClass},
	} {
		uidDict[e.UID] = e
	}
}

// Lookup finds information about the given UID. UIDs read from a file may
// carry a trailing NUL or space pad; it is ignored.
func Lookup(uid string) (UIDInfo, error) {
	e, ok := uidDict[strings.TrimRight(uid, " \x00")]
	if !ok {
		return UIDInfo{}, fmt.Errorf("dicomuid: uid '%s' not found in dictionary", uid)
	}
	return e, nil
}

// UIDString returns a human-readable name for the uid, or the uid itself
// if it is not registered.
func UIDString(uid string) string {
	e, err := Lookup(uid)
	if err != nil {
		return uid
	}
	return e.Name
}

// IsStructuredReport reports whether sopClass is one of the SR storage classes.
func IsStructuredReport(sopClass string) bool {
	switch sopClass {
	case BasicTextSRStorage, EnhancedSRStorage, ComprehensiveSRStorage,
		Comprehensive3DSRStorage, KeyObjectSelectionDocumentStorage:
		return true
	}
	return false
}
