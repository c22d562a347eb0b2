package dicom

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/odincare/dcmview/dicomtag"
	"github.com/odincare/dcmview/dicomuid"
	"github.com/sirupsen/logrus"
)

// IsDICOM reports whether data starts with a preamble and the DICM magic.
func IsDICOM(data []byte) bool {
	return len(data) >= preambleLength+4 && string(data[preambleLength:preambleLength+4]) == "DICM"
}

// IsValidDICOMFile reports whether the file starts with a preamble and the
// DICM magic. Only the first 132 bytes are read.
func IsValidDICOMFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	head := make([]byte, preambleLength+4)
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return IsDICOM(head)
}

// ParsePixelDataFromFile decodes a file and extracts its pixel data.
func ParsePixelDataFromFile(path string) (*PixelData, error) {
	ds, err := ReadDataSetFromFile(path, ReadOptions{})
	if err != nil {
		return nil, err
	}
	return ExtractPixelData(ds)
}

// ParseMetadataFromFile decodes a file without its pixel data and extracts
// the metadata. For an unknown transfer syntax the metadata of the file
// meta group is returned together with the error.
func ParseMetadataFromFile(path string) (Metadata, error) {
	ds, err := ReadDataSetFromFile(path, ReadOptions{DropPixelData: true})
	if ds == nil {
		return nil, err
	}
	return ExtractMetadata(ds), err
}

// GetFrameData returns frame index of the pixel data of a file.
func GetFrameData(path string, index int) ([]byte, error) {
	pd, err := ParsePixelDataFromFile(path)
	if err != nil {
		return nil, err
	}
	return pd.Frame(index)
}

// readHeaderOnly decodes the file meta group only.
func readHeaderOnly(path string) (*DataSet, error) {
	first := dicomtag.Tag{Group: dicomtag.MetadataGroup + 1, Element: 0}
	return ReadDataSetFromFile(path, ReadOptions{StopAtTag: &first})
}

// TransferSyntaxFromFile returns the TransferSyntaxUID of the file meta
// group. Unknown transfer syntaxes are returned too.
func TransferSyntaxFromFile(path string) (string, error) {
	ds, err := readHeaderOnly(path)
	if ds == nil {
		return "", err
	}
	return ds.GetString(dicomtag.TransferSyntaxUID)
}

// SOPClassUIDFromFile returns the SOPClassUID of the dataset, or the
// MediaStorageSOPClassUID when the dataset has none.
func SOPClassUIDFromFile(path string) (string, error) {
	ds, err := ReadDataSetFromFile(path, ReadOptions{
		DropPixelData: true,
		ReturnTags:    []dicomtag.Tag{dicomtag.SOPClassUID, dicomtag.SpecificCharacterSet},
	})
	if ds == nil {
		return "", err
	}
	if uid, err := ds.GetString(dicomtag.SOPClassUID); err == nil {
		return uid, nil
	}
	return ds.GetString(dicomtag.MediaStorageSOPClassUID)
}

func parseFile(path string) (*DataSet, error) {
	return ReadDataSetFromFile(path, ReadOptions{DropPixelData: true})
}

// ParseStructuredReportFromFile decodes a file and builds its content tree.
func ParseStructuredReportFromFile(path string) (*StructuredReport, error) {
	ds, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractStructuredReport(ds)
}

// ParseRTStructureSetFromFile decodes an RT Structure Set file.
func ParseRTStructureSetFromFile(path string) (*RTStructureSet, error) {
	ds, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractRTStructureSet(ds)
}

// ParseSegmentationFromFile decodes a Segmentation file. The pixel data is
// not read; use ParsePixelDataFromFile for the segment masks.
func ParseSegmentationFromFile(path string) (*Segmentation, error) {
	ds, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractSegmentation(ds)
}

// ImageGeometryFromFile decodes a file and extracts its image plane.
func ImageGeometryFromFile(path string) (*Geometry, error) {
	ds, err := parseFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractGeometry(ds)
}

// DiagnoseFile logs what the decoder finds in a file: header, transfer
// syntax, element summary and pixel data checks. It only logs, at info
// level and above, and returns the first fatal error.
func DiagnoseFile(path string) error {
	log := logrus.WithField("file", path)
	info, err := os.Stat(path)
	if err != nil {
		log.Errorf("diagnose: %v", err)
		return err
	}
	log = log.WithField("size", info.Size())
	if !IsValidDICOMFile(path) {
		log.Error("diagnose: no DICM magic after the 128-byte preamble")
	}
	ds, err := ReadDataSetFromFile(path, ReadOptions{})
	if ds == nil {
		log.Errorf("diagnose: %v", err)
		return err
	}
	if err != nil {
		log.Warnf("diagnose: %v", err)
	}

	if ds.TransferSyntax != nil {
		log.WithFields(logrus.Fields{
			"uid":          ds.TransferSyntax.UID,
			"implicit":     ds.TransferSyntax.Implicit,
			"encapsulated": ds.TransferSyntax.Encapsulated,
			"deflated":     ds.TransferSyntax.Deflated,
		}).Infof("diagnose: transfer syntax %s", ds.TransferSyntax.Name)
	}
	if uid, err := ds.GetString(dicomtag.SOPClassUID); err == nil {
		log.Infof("diagnose: SOP class %s", dicomuid.UIDString(uid))
	}

	var undecodable int
	for _, elem := range ds.Elements {
		if elem.Err != nil {
			undecodable++
		}
	}
	log.WithFields(logrus.Fields{
		"elements":    len(ds.Elements),
		"undecodable": undecodable,
		"warnings":    len(ds.Warnings),
	}).Info("diagnose: dataset")
	for i, w := range ds.Warnings {
		log.WithField("warning", i).Warn(w)
	}

	desc, err := ExtractPixelDescriptor(ds)
	if err != nil {
		log.Warnf("diagnose: pixel descriptor: %v", err)
		return nil
	}
	log.WithFields(logrus.Fields{
		"rows":        desc.Rows,
		"columns":     desc.Columns,
		"bits":        fmt.Sprintf("%d/%d/%d", desc.BitsAllocated, desc.BitsStored, desc.HighBit),
		"signed":      desc.Signed,
		"samples":     desc.SamplesPerPixel,
		"frames":      desc.NumberOfFrames,
		"photometric": desc.PhotometricInterpretation,
		"window":      fmt.Sprintf("%g/%g", desc.WindowCenter, desc.WindowWidth),
	}).Info("diagnose: pixel descriptor")

	elem, err := ds.FindElementByTag(dicomtag.PixelData)
	if err != nil {
		log.Warn("diagnose: no pixel data")
		return nil
	}
	if pdi, err := elem.GetPixelDataInfo(); err == nil {
		var n int
		for _, f := range pdi.Fragments {
			n += len(f)
		}
		log.WithFields(logrus.Fields{
			"vr":           elem.VR,
			"encapsulated": pdi.Encapsulated,
			"fragments":    len(pdi.Fragments),
			"offsets":      len(pdi.Offsets),
			"bytes":        n,
			"expected":     int64(FrameByteLength(desc)) * int64(desc.NumberOfFrames),
		}).Info("diagnose: pixel data element")
	}
	if _, err := ExtractPixelData(ds); err != nil {
		log.Warnf("diagnose: pixel data: %v", err)
	} else {
		log.Info("diagnose: pixel data ok")
	}
	return nil
}

// DumpDataSet writes one line per element, nested items indented, without
// limiting the depth.
func DumpDataSet(w io.Writer, ds *DataSet) error {
	type work struct {
		// header is printed before elems.
		header string
		elems  []*Element
		depth  int
	}
	var buf bytes.Buffer
	stack := []work{{elems: ds.Elements}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.header != "" {
			fmt.Fprintf(&buf, "%s%s\n", strings.Repeat("  ", top.depth-1), top.header)
			top.header = ""
		}
		if len(top.elems) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}
		elem := top.elems[0]
		top.elems = top.elems[1:]
		depth := top.depth
		indent := strings.Repeat("  ", depth)
		if elem.VR != "SQ" || elem.Err != nil {
			fmt.Fprintf(&buf, "%s%s\n", indent, strings.TrimSpace(elementString(elem, 0)))
		} else {
			items, _ := elem.GetItems()
			fmt.Fprintf(&buf, "%s%s SQ (#%d)\n", indent, dicomtag.DebugString(elem.Tag), len(items))
			// Reversed so that items are printed in order.
			for i := len(items) - 1; i >= 0; i-- {
				stack = append(stack, work{header: fmt.Sprintf("item %d", i), elems: items[i].Elements, depth: depth + 2})
			}
		}
		if buf.Len() > 1<<16 {
			if _, err := w.Write(buf.Bytes()); err != nil {
				return err
			}
			buf.Reset()
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}
