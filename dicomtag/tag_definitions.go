package dicomtag

// Standard tags used by the decoder and extractors. Generated from PS3.6
// (subset); PixelData is listed as OW, which is its implicit-VR encoding.

var (
	FileMetaInformationGroupLength        = Tag{0x0002, 0x0000}
	FileMetaInformationVersion            = Tag{0x0002, 0x0001}
	MediaStorageSOPClassUID               = Tag{0x0002, 0x0002}
	MediaStorageSOPInstanceUID            = Tag{0x0002, 0x0003}
	TransferSyntaxUID                     = Tag{0x0002, 0x0010}
	ImplementationClassUID                = Tag{0x0002, 0x0012}
	ImplementationVersionName             = Tag{0x0002, 0x0013}
	SourceApplicationEntityTitle          = Tag{0x0002, 0x0016}
	SpecificCharacterSet                  = Tag{0x0008, 0x0005}
	ImageType                             = Tag{0x0008, 0x0008}
	InstanceCreationDate                  = Tag{0x0008, 0x0012}
	InstanceCreationTime                  = Tag{0x0008, 0x0013}
	SOPClassUID                           = Tag{0x0008, 0x0016}
	SOPInstanceUID                        = Tag{0x0008, 0x0018}
	StudyDate                             = Tag{0x0008, 0x0020}
	SeriesDate                            = Tag{0x0008, 0x0021}
	AcquisitionDate                       = Tag{0x0008, 0x0022}
	ContentDate                           = Tag{0x0008, 0x0023}
	StudyTime                             = Tag{0x0008, 0x0030}
	SeriesTime                            = Tag{0x0008, 0x0031}
	AcquisitionTime                       = Tag{0x0008, 0x0032}
	ContentTime                           = Tag{0x0008, 0x0033}
	AccessionNumber                       = Tag{0x0008, 0x0050}
	QueryRetrieveLevel                    = Tag{0x0008, 0x0052}
	Modality                              = Tag{0x0008, 0x0060}
	Manufacturer                          = Tag{0x0008, 0x0070}
	InstitutionName                       = Tag{0x0008, 0x0080}
	ReferringPhysicianName                = Tag{0x0008, 0x0090}
	CodeValue                             = Tag{0x0008, 0x0100}
	CodingSchemeDesignator                = Tag{0x0008, 0x0102}
	CodingSchemeVersion                   = Tag{0x0008, 0x0103}
	CodeMeaning                           = Tag{0x0008, 0x0104}
	StudyDescription                      = Tag{0x0008, 0x1030}
	SeriesDescription                     = Tag{0x0008, 0x103e}
	ManufacturerModelName                 = Tag{0x0008, 0x1090}
	ReferencedSeriesSequence              = Tag{0x0008, 0x1115}
	ReferencedImageSequence               = Tag{0x0008, 0x1140}
	ReferencedSOPClassUID                 = Tag{0x0008, 0x1150}
	ReferencedSOPInstanceUID              = Tag{0x0008, 0x1155}
	ReferencedFrameNumber                 = Tag{0x0008, 0x1160}
	ReferencedSOPSequence                 = Tag{0x0008, 0x1199}
	SourceImageSequence                   = Tag{0x0008, 0x2112}
	DerivationImageSequence               = Tag{0x0008, 0x9124}
	PatientName                           = Tag{0x0010, 0x0010}
	PatientID                             = Tag{0x0010, 0x0020}
	PatientBirthDate                      = Tag{0x0010, 0x0030}
	PatientSex                            = Tag{0x0010, 0x0040}
	PatientAge                            = Tag{0x0010, 0x1010}
	PatientSize                           = Tag{0x0010, 0x1020}
	PatientWeight                         = Tag{0x0010, 0x1030}
	BodyPartExamined                      = Tag{0x0018, 0x0015}
	SliceThickness                        = Tag{0x0018, 0x0050}
	KVP                                   = Tag{0x0018, 0x0060}
	RepetitionTime                        = Tag{0x0018, 0x0080}
	EchoTime                              = Tag{0x0018, 0x0081}
	MagneticFieldStrength                 = Tag{0x0018, 0x0087}
	SpacingBetweenSlices                  = Tag{0x0018, 0x0088}
	SoftwareVersions                      = Tag{0x0018, 0x1020}
	ProtocolName                          = Tag{0x0018, 0x1030}
	ImagerPixelSpacing                    = Tag{0x0018, 0x1164}
	PatientPosition                       = Tag{0x0018, 0x5100}
	StudyInstanceUID                      = Tag{0x0020, 0x000d}
	SeriesInstanceUID                     = Tag{0x0020, 0x000e}
	StudyID                               = Tag{0x0020, 0x0010}
	SeriesNumber                          = Tag{0x0020, 0x0011}
	AcquisitionNumber                     = Tag{0x0020, 0x0012}
	InstanceNumber                        = Tag{0x0020, 0x0013}
	ImagePositionPatient                  = Tag{0x0020, 0x0032}
	ImageOrientationPatient               = Tag{0x0020, 0x0037}
	FrameOfReferenceUID                   = Tag{0x0020, 0x0052}
	SliceLocation                         = Tag{0x0020, 0x1041}
	FrameContentSequence                  = Tag{0x0020, 0x9111}
	PlanePositionSequence                 = Tag{0x0020, 0x9113}
	PlaneOrientationSequence              = Tag{0x0020, 0x9116}
	DimensionIndexValues                  = Tag{0x0020, 0x9157}
	SamplesPerPixel                       = Tag{0x0028, 0x0002}
	PhotometricInterpretation             = Tag{0x0028, 0x0004}
	PlanarConfiguration                   = Tag{0x0028, 0x0006}
	NumberOfFrames                        = Tag{0x0028, 0x0008}
	Rows                                  = Tag{0x0028, 0x0010}
	Columns                               = Tag{0x0028, 0x0011}
	PixelSpacing                          = Tag{0x0028, 0x0030}
	BitsAllocated                         = Tag{0x0028, 0x0100}
	BitsStored                            = Tag{0x0028, 0x0101}
	HighBit                               = Tag{0x0028, 0x0102}
	PixelRepresentation                   = Tag{0x0028, 0x0103}
	WindowCenter                          = Tag{0x0028, 0x1050}
	WindowWidth                           = Tag{0x0028, 0x1051}
	RescaleIntercept                      = Tag{0x0028, 0x1052}
	RescaleSlope                          = Tag{0x0028, 0x1053}
	RescaleType                           = Tag{0x0028, 0x1054}
	WindowCenterWidthExplanation          = Tag{0x0028, 0x1055}
	PixelMeasuresSequence                 = Tag{0x0028, 0x9110}
	FrameVOILUTSequence                   = Tag{0x0028, 0x9132}
	PixelValueTransformationSequence      = Tag{0x0028, 0x9145}
	MeasurementUnitsCodeSequence          = Tag{0x0040, 0x08ea}
	RelationshipType                      = Tag{0x0040, 0xa010}
	ValueType                             = Tag{0x0040, 0xa040}
	ConceptNameCodeSequence               = Tag{0x0040, 0xa043}
	ContinuityOfContent                   = Tag{0x0040, 0xa050}
	DateTime                              = Tag{0x0040, 0xa120}
	Date                                  = Tag{0x0040, 0xa121}
	Time                                  = Tag{0x0040, 0xa122}
	PersonName                            = Tag{0x0040, 0xa123}
	UID                                   = Tag{0x0040, 0xa124}
	TextValue                             = Tag{0x0040, 0xa160}
	ConceptCodeSequence                   = Tag{0x0040, 0xa168}
	MeasuredValueSequence                 = Tag{0x0040, 0xa300}
	NumericValue                          = Tag{0x0040, 0xa30a}
	CompletionFlag                        = Tag{0x0040, 0xa491}
	VerificationFlag                      = Tag{0x0040, 0xa493}
	ContentTemplateSequence               = Tag{0x0040, 0xa504}
	ContentSequence                       = Tag{0x0040, 0xa730}
	TemplateIdentifier                    = Tag{0x0040, 0xdb00}
	SegmentationType                      = Tag{0x0062, 0x0001}
	SegmentSequence                       = Tag{0x0062, 0x0002}
	SegmentedPropertyCategoryCodeSequence = Tag{0x0062, 0x0003}
	SegmentNumber                         = Tag{0x0062, 0x0004}
	SegmentLabel                          = Tag{0x0062, 0x0005}
	SegmentDescription                    = Tag{0x0062, 0x0006}
	SegmentAlgorithmType                  = Tag{0x0062, 0x0008}
	SegmentAlgorithmName                  = Tag{0x0062, 0x0009}
	SegmentIdentificationSequence         = Tag{0x0062, 0x000a}
	ReferencedSegmentNumber               = Tag{0x0062, 0x000b}
	RecommendedDisplayCIELabValue         = Tag{0x0062, 0x000d}
	MaximumFractionalValue                = Tag{0x0062, 0x000e}
	SegmentedPropertyTypeCodeSequence     = Tag{0x0062, 0x000f}
	SegmentationFractionalType            = Tag{0x0062, 0x0010}
	GraphicData                           = Tag{0x0070, 0x0022}
	GraphicType                           = Tag{0x0070, 0x0023}
	StructureSetLabel                     = Tag{0x3006, 0x0002}
	StructureSetName                      = Tag{0x3006, 0x0004}
	StructureSetDescription               = Tag{0x3006, 0x0006}
	StructureSetDate                      = Tag{0x3006, 0x0008}
	StructureSetTime                      = Tag{0x3006, 0x0009}
	ReferencedFrameOfReferenceSequence    = Tag{0x3006, 0x0010}
	ContourImageSequence                  = Tag{0x3006, 0x0016}
	StructureSetROISequence               = Tag{0x3006, 0x0020}
	ROINumber                             = Tag{0x3006, 0x0022}
	ReferencedFrameOfReferenceUID         = Tag{0x3006, 0x0024}
	ROIName                               = Tag{0x3006, 0x0026}
	ROIDescription                        = Tag{0x3006, 0x0028}
	ROIDisplayColor                       = Tag{0x3006, 0x002a}
	ROIGenerationAlgorithm                = Tag{0x3006, 0x0036}
	ROIContourSequence                    = Tag{0x3006, 0x0039}
	ContourSequence                       = Tag{0x3006, 0x0040}
	ContourGeometricType                  = Tag{0x3006, 0x0042}
	NumberOfContourPoints                 = Tag{0x3006, 0x0046}
	ContourNumber                         = Tag{0x3006, 0x0048}
	ContourData                           = Tag{0x3006, 0x0050}
	RTROIObservationsSequence             = Tag{0x3006, 0x0080}
	ObservationNumber                     = Tag{0x3006, 0x0082}
	ReferencedROINumber                   = Tag{0x3006, 0x0084}
	RTROIInterpretedType                  = Tag{0x3006, 0x00a4}
	ROIInterpreter                        = Tag{0x3006, 0x00a6}
	SharedFunctionalGroupsSequence        = Tag{0x5200, 0x9229}
	PerFrameFunctionalGroupsSequence      = Tag{0x5200, 0x9230}
	PixelData                             = Tag{0x7fe0, 0x0010}
	Item                                  = Tag{0xfffe, 0xe000}
	ItemDelimitationItem                  = Tag{0xfffe, 0xe00d}
	SequenceDelimitationItem              = Tag{0xfffe, 0xe0dd}
)

var tagEntries = []TagInfo{
	{FileMetaInformationGroupLength, "UL", "FileMetaInformationGroupLength", "1"},
	{FileMetaInformationVersion, "OB", "FileMetaInformationVersion", "1"},
	{MediaStorageSOPClassUID, "UI", "MediaStorageSOPClassUID", "1"},
	{MediaStorageSOPInstanceUID, "UI", "MediaStorageSOPInstanceUID", "1"},
	{TransferSyntaxUID, "UI", "TransferSyntaxUID", "1"},
	{ImplementationClassUID, "UI", "ImplementationClassUID", "1"},
	{ImplementationVersionName, "SH", "ImplementationVersionName", "1"},
	{SourceApplicationEntityTitle, "AE", "SourceApplicationEntityTitle", "1"},
	{SpecificCharacterSet, "CS", "SpecificCharacterSet", "1-n"},
	{ImageType, "CS", "ImageType", "2-n"},
	{InstanceCreationDate, "DA", "InstanceCreationDate", "1"},
	{InstanceCreationTime, "TM", "InstanceCreationTime", "1"},
	{SOPClassUID, "UI", "SOPClassUID", "1"},
	{SOPInstanceUID, "UI", "SOPInstanceUID", "1"},
	{StudyDate, "DA", "StudyDate", "1"},
	{SeriesDate, "DA", "SeriesDate", "1"},
	{AcquisitionDate, "DA", "AcquisitionDate", "1"},
	{ContentDate, "DA", "ContentDate", "1"},
	{StudyTime, "TM", "StudyTime", "1"},
	{SeriesTime, "TM", "SeriesTime", "1"},
	{AcquisitionTime, "TM", "AcquisitionTime", "1"},
	{ContentTime, "TM", "ContentTime", "1"},
	{AccessionNumber, "SH", "AccessionNumber", "1"},
	{QueryRetrieveLevel, "CS", "QueryRetrieveLevel", "1"},
	{Modality, "CS", "Modality", "1"},
	{Manufacturer, "LO", "Manufacturer", "1"},
	{InstitutionName, "LO", "InstitutionName", "1"},
	{ReferringPhysicianName, "PN", "ReferringPhysicianName", "1"},
	{CodeValue, "SH", "CodeValue", "1"},
	{CodingSchemeDesignator, "SH", "CodingSchemeDesignator", "1"},
	{CodingSchemeVersion, "SH", "CodingSchemeVersion", "1"},
	{CodeMeaning, "LO", "CodeMeaning", "1"},
	{StudyDescription, "LO", "StudyDescription", "1"},
	{SeriesDescription, "LO", "SeriesDescription", "1"},
	{ManufacturerModelName, "LO", "ManufacturerModelName", "1"},
	{ReferencedSeriesSequence, "SQ", "ReferencedSeriesSequence", "1"},
	{ReferencedImageSequence, "SQ", "ReferencedImageSequence", "1"},
	{ReferencedSOPClassUID, "UI", "ReferencedSOPClassUID", "1"},
	{ReferencedSOPInstanceUID, "UI", "ReferencedSOPInstanceUID", "1"},
	{ReferencedFrameNumber, "IS", "ReferencedFrameNumber", "1-n"},
	{ReferencedSOPSequence, "SQ", "ReferencedSOPSequence", "1"},
	{SourceImageSequence, "SQ", "SourceImageSequence", "1"},
	{DerivationImageSequence, "SQ", "DerivationImageSequence", "1"},
	{PatientName, "PN", "PatientName", "1"},
	{PatientID, "LO", "PatientID", "1"},
	{PatientBirthDate, "DA", "PatientBirthDate", "1"},
	{PatientSex, "CS", "PatientSex", "1"},
	{PatientAge, "AS", "PatientAge", "1"},
	{PatientSize, "DS", "PatientSize", "1"},
	{PatientWeight, "DS", "PatientWeight", "1"},
	{BodyPartExamined, "CS", "BodyPartExamined", "1"},
	{SliceThickness, "DS", "SliceThickness", "1"},
	{KVP, "DS", "KVP", "1"},
	{RepetitionTime, "DS", "RepetitionTime", "1"},
	{EchoTime, "DS", "EchoTime", "1"},
	{MagneticFieldStrength, "DS", "MagneticFieldStrength", "1"},
	{SpacingBetweenSlices, "DS", "SpacingBetweenSlices", "1"},
	{SoftwareVersions, "LO", "SoftwareVersions", "1-n"},
	{ProtocolName, "LO", "ProtocolName", "1"},
	{ImagerPixelSpacing, "DS", "ImagerPixelSpacing", "2"},
	{PatientPosition, "CS", "PatientPosition", "1"},
	{StudyInstanceUID, "UI", "StudyInstanceUID", "1"},
	{SeriesInstanceUID, "UI", "SeriesInstanceUID", "1"},
	{StudyID, "SH", "StudyID", "1"},
	{SeriesNumber, "IS", "SeriesNumber", "1"},
	{AcquisitionNumber, "IS", "AcquisitionNumber", "1"},
	{InstanceNumber, "IS", "InstanceNumber", "1"},
	{ImagePositionPatient, "DS", "ImagePositionPatient", "3"},
	{ImageOrientationPatient, "DS", "ImageOrientationPatient", "6"},
	{FrameOfReferenceUID, "UI", "FrameOfReferenceUID", "1"},
	{SliceLocation, "DS", "SliceLocation", "1"},
	{FrameContentSequence, "SQ", "FrameContentSequence", "1"},
	{PlanePositionSequence, "SQ", "PlanePositionSequence", "1"},
	{PlaneOrientationSequence, "SQ", "PlaneOrientationSequence", "1"},
	{DimensionIndexValues, "UL", "DimensionIndexValues", "1-n"},
	{SamplesPerPixel, "US", "SamplesPerPixel", "1"},
	{PhotometricInterpretation, "CS", "PhotometricInterpretation", "1"},
	{PlanarConfiguration, "US", "PlanarConfiguration", "1"},
	{NumberOfFrames, "IS", "NumberOfFrames", "1"},
	{Rows, "US", "Rows", "1"},
	{Columns, "US", "Columns", "1"},
	{PixelSpacing, "DS", "PixelSpacing", "2"},
	{BitsAllocated, "US", "BitsAllocated", "1"},
	{BitsStored, "US", "BitsStored", "1"},
	{HighBit, "US", "HighBit", "1"},
	{PixelRepresentation, "US", "PixelRepresentation", "1"},
	{WindowCenter, "DS", "WindowCenter", "1-n"},
	{WindowWidth, "DS", "WindowWidth", "1-n"},
	{RescaleIntercept, "DS", "RescaleIntercept", "1"},
	{RescaleSlope, "DS", "RescaleSlope", "1"},
	{RescaleType, "LO", "RescaleType", "1"},
	{WindowCenterWidthExplanation, "LO", "WindowCenterWidthExplanation", "1-n"},
	{PixelMeasuresSequence, "SQ", "PixelMeasuresSequence", "1"},
	{FrameVOILUTSequence, "SQ", "FrameVOILUTSequence", "1"},
	{PixelValueTransformationSequence, "SQ", "PixelValueTransformationSequence", "1"},
	{MeasurementUnitsCodeSequence, "SQ", "MeasurementUnitsCodeSequence", "1"},
	{RelationshipType, "CS", "RelationshipType", "1"},
	{ValueType, "CS", "ValueType", "1"},
	{ConceptNameCodeSequence, "SQ", "ConceptNameCodeSequence", "1"},
	{ContinuityOfContent, "CS", "ContinuityOfContent", "1"},
	{DateTime, "DT", "DateTime", "1"},
	{Date, "DA", "Date", "1"},
	{Time, "TM", "Time", "1"},
	{PersonName, "PN", "PersonName", "1"},
	{UID, "UI", "UID", "1"},
	{TextValue, "UT", "TextValue", "1"},
	{ConceptCodeSequence, "SQ", "ConceptCodeSequence", "1"},
	{MeasuredValueSequence, "SQ", "MeasuredValueSequence", "1"},
	{NumericValue, "DS", "NumericValue", "1-n"},
	{CompletionFlag, "CS", "CompletionFlag", "1"},
	{VerificationFlag, "CS", "VerificationFlag", "1"},
	{ContentTemplateSequence, "SQ", "ContentTemplateSequence", "1"},
	{ContentSequence, "SQ", "ContentSequence", "1"},
	{TemplateIdentifier, "CS", "TemplateIdentifier", "1"},
	{SegmentationType, "CS", "SegmentationType", "1"},
	{SegmentSequence, "SQ", "SegmentSequence", "1"},
	{SegmentedPropertyCategoryCodeSequence, "SQ", "SegmentedPropertyCategoryCodeSequence", "1"},
	{SegmentNumber, "US", "SegmentNumber", "1"},
	{SegmentLabel, "LO", "SegmentLabel", "1"},
	{SegmentDescription, "ST", "SegmentDescription", "1"},
	{SegmentAlgorithmType, "CS", "SegmentAlgorithmType", "1"},
	{SegmentAlgorithmName, "LO", "SegmentAlgorithmName", "1-n"},
	{SegmentIdentificationSequence, "SQ", "SegmentIdentificationSequence", "1"},
	{ReferencedSegmentNumber, "US", "ReferencedSegmentNumber", "1-n"},
	{RecommendedDisplayCIELabValue, "US", "RecommendedDisplayCIELabValue", "3"},
	{MaximumFractionalValue, "US", "MaximumFractionalValue", "1"},
	{SegmentedPropertyTypeCodeSequence, "SQ", "SegmentedPropertyTypeCodeSequence", "1"},
	{SegmentationFractionalType, "CS", "SegmentationFractionalType", "1"},
	{GraphicData, "FL", "GraphicData", "2-n"},
	{GraphicType, "CS", "GraphicType", "1"},
	{StructureSetLabel, "SH", "StructureSetLabel", "1"},
	{StructureSetName, "LO", "StructureSetName", "1"},
	{StructureSetDescription, "ST", "StructureSetDescription", "1"},
	{StructureSetDate, "DA", "StructureSetDate", "1"},
	{StructureSetTime, "TM", "StructureSetTime", "1"},
	{ReferencedFrameOfReferenceSequence, "SQ", "ReferencedFrameOfReferenceSequence", "1"},
	{ContourImageSequence, "SQ", "ContourImageSequence", "1"},
	{StructureSetROISequence, "SQ", "StructureSetROISequence", "1"},
	{ROINumber, "IS", "ROINumber", "1"},
	{ReferencedFrameOfReferenceUID, "UI", "ReferencedFrameOfReferenceUID", "1"},
	{ROIName, "LO", "ROIName", "1"},
	{ROIDescription, "ST", "ROIDescription", "1"},
	{ROIDisplayColor, "IS", "ROIDisplayColor", "3"},
	{ROIGenerationAlgorithm, "CS", "ROIGenerationAlgorithm", "1"},
	{ROIContourSequence, "SQ", "ROIContourSequence", "1"},
	{ContourSequence, "SQ", "ContourSequence", "1"},
	{ContourGeometricType, "CS", "ContourGeometricType", "1"},
	{NumberOfContourPoints, "IS", "NumberOfContourPoints", "1"},
	{ContourNumber, "IS", "ContourNumber", "1"},
	{ContourData, "DS", "ContourData", "3-3n"},
	{RTROIObservationsSequence, "SQ", "RTROIObservationsSequence", "1"},
	{ObservationNumber, "IS", "ObservationNumber", "1"},
	{ReferencedROINumber, "IS", "ReferencedROINumber", "1"},
	{RTROIInterpretedType, "CS", "RTROIInterpretedType", "1"},
	{ROIInterpreter, "PN", "ROIInterpreter", "1"},
	{SharedFunctionalGroupsSequence, "SQ", "SharedFunctionalGroupsSequence", "1"},
	{PerFrameFunctionalGroupsSequence, "SQ", "PerFrameFunctionalGroupsSequence", "1"},
	{PixelData, "OW", "PixelData", "1"},
	{Item, "NA", "Item", "1"},
	{ItemDelimitationItem, "NA", "ItemDelimitationItem", "1"},
	{SequenceDelimitationItem, "NA", "SequenceDelimitationItem", "1"},
}
