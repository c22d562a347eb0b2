package dicom_test

import (
	"fmt"

	"github.com/odincare/dcmview"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
	"github.com/odincare/dcmview/internal/dcmtest"
)

func ExampleReadDataSetInBytes() {
	data := dcmtest.File{
		TransferSyntaxUID: dicomuid.ExplicitVRLittleEndian,
		DataSet: []dcmtest.Element{
			dcmtest.Str(dicomtag.PatientName, "PN", "Doe^John"),
			dcmtest.Str(dicomtag.Modality, "CS", "CT"),
		},
	}.Bytes()

	ds, err := dicom.ReadDataSetInBytes(data, dicom.ReadOptions{})
	if err != nil {
		panic(err)
	}
	name, _ := ds.GetString(dicomtag.PatientName)
	fmt.Println(name, ds.TransferSyntax.Name)
	// Output: Doe^John Explicit VR Little Endian
}

func ExampleMetadata_Select() {
	m := dicom.Metadata{"PatientName": "Doe^John", "PatientID": "P001", "Rows": 512}
	patient, _ := m.Select("Patient*")
	for _, k := range patient.Keys() {
		fmt.Println(k, patient[k])
	}
	// Output:
	// PatientID P001
	// PatientName Doe^John
}

func ExampleSliceFrame() {
	desc := dicom.PixelDescriptor{Rows: 1, Columns: 2, SamplesPerPixel: 1, BitsAllocated: 8, NumberOfFrames: 3}
	frame, _ := dicom.SliceFrame([]byte{1, 2, 3, 4, 5, 6}, desc, 2)
	fmt.Println(frame)
	// Output: [5 6]
}
