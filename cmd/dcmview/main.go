// Command dcmview inspects DICOM files from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/odincare/dcmview"
	_ "github.com/odincare/dcmview/dicomcodec"
	"github.com/odincare/dcmview/dicomtag"
	"github.com/sirupsen/logrus"
)

var baseFile = filepath.Base(os.Args[0])

var commands = []string{"dump", "diagnose", "meta", "pixels", "frame", "geometry", "sr", "rtstruct", "seg", "find"}

func check(err error) {
	if err != nil {
		logrus.Fatalf("%s: %v", baseFile, err)
	}
}

func usage() {
	fmt.Printf("usage: %s [%s] <file> [args]\n", baseFile, strings.Join(commands, " / "))
	fmt.Printf("       %s frame <file> <index> <out>\n", baseFile)
	fmt.Printf("       %s find <dir> [Tag=value ...]\n", baseFile)
	os.Exit(1)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	check(enc.Encode(v))
}

func main() {
	dicom.GetConfig()
	if len(os.Args) < 3 || os.Args[1] == "--help" || os.Args[1] == "-h" {
		usage()
	}
	path := os.Args[2]
	switch os.Args[1] {
	case "dump":
		ds, err := dicom.ReadDataSetFromFile(path, dicom.ReadOptions{})
		if ds == nil {
			check(err)
		}
		check(dicom.DumpDataSet(os.Stdout, ds))
		for _, w := range ds.Warnings {
			logrus.Warn(w)
		}
		check(err)
	case "diagnose":
		check(dicom.DiagnoseFile(path))
	case "meta":
		m, err := dicom.ParseMetadataFromFile(path)
		if m != nil {
			printJSON(m)
		}
		check(err)
	case "pixels":
		pd, err := dicom.ParsePixelDataFromFile(path)
		check(err)
		printJSON(struct {
			Descriptor        dicom.PixelDescriptor
			TransferSyntaxUID string
			Bytes             int
			FrameBytes        int
		}{pd.Descriptor, pd.TransferSyntaxUID, len(pd.Data), dicom.FrameByteLength(pd.Descriptor)})
	case "frame":
		StartFrame(path, os.Args[3:])
	case "geometry":
		g, err := dicom.ImageGeometryFromFile(path)
		check(err)
		printJSON(g)
	case "sr":
		sr, err := dicom.ParseStructuredReportFromFile(path)
		check(err)
		sr.Walk(func(node *dicom.ContentItem, depth int) bool {
			fmt.Printf("%s%s %s %s%s\n", strings.Repeat("  ", depth), node.RelationshipType, node.ValueType,
				node.ConceptName.String(), contentValue(node))
			return true
		})
		warnAll(sr.Warnings)
	case "rtstruct":
		s, err := dicom.ParseRTStructureSetFromFile(path)
		check(err)
		warnAll(s.Warnings)
		s.Warnings = nil
		printJSON(s)
	case "seg":
		s, err := dicom.ParseSegmentationFromFile(path)
		check(err)
		warnAll(s.Warnings)
		s.Warnings = nil
		printJSON(s)
	case "find":
		StartFind(path, os.Args[3:])
	default:
		usage()
	}
}

func warnAll(warnings []error) {
	for _, w := range warnings {
		logrus.Warn(w)
	}
}

func contentValue(node *dicom.ContentItem) string {
	switch {
	case node.Text != "":
		return fmt.Sprintf(" = %q", node.Text)
	case node.Code != nil:
		return " = " + node.Code.String()
	case node.Numeric != nil:
		return fmt.Sprintf(" = %g %s", *node.Numeric, node.Units.String())
	case len(node.References) > 0:
		return fmt.Sprintf(" -> %s", node.References[0].SOPInstanceUID)
	case len(node.GraphicData) > 0:
		return fmt.Sprintf(" %s %v", node.GraphicType, node.GraphicData)
	}
	return ""
}

// StartFrame writes one decoded frame to a file.
func StartFrame(path string, args []string) {
	if len(args) != 2 {
		usage()
	}
	index, err := strconv.Atoi(args[0])
	check(err)
	data, err := dicom.GetFrameData(path, index)
	check(err)
	check(os.WriteFile(args[1], data, 0644))
	logrus.WithFields(logrus.Fields{"frame": index, "bytes": len(data)}).Infof("wrote %s", args[1])
}

// newFilter builds a query element from "Tag=value". Tag is a dictionary
// name or a "(gggg,eeee)" pair.
func newFilter(arg string) (*dicom.Element, error) {
	i := strings.Index(arg, "=")
	if i < 0 {
		return nil, fmt.Errorf("filter %q: expected Tag=value", arg)
	}
	tag, err := dicomtag.Parse(arg[:i])
	if err != nil {
		return nil, err
	}
	info, err := dicomtag.Find(tag)
	if err != nil {
		return nil, err
	}
	value := arg[i+1:]
	switch dicomtag.GetVRKind(tag, info.VR) {
	case dicomtag.VRStringList, dicomtag.VRString, dicomtag.VRDate:
		if info.VR == "UI" {
			var values []interface{}
			for _, uid := range strings.Split(value, "\\") {
				values = append(values, uid)
			}
			return dicom.NewElement(tag, values...)
		}
		return dicom.NewElement(tag, value)
	case dicomtag.VRUInt16List:
		v, err := strconv.ParseUint(value, 10, 16)
		if err != nil {
			return nil, err
		}
		return dicom.NewElement(tag, uint16(v))
	case dicomtag.VRUInt32List:
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, err
		}
		return dicom.NewElement(tag, uint32(v))
	}
	return nil, fmt.Errorf("filter %q: cannot match %s values", arg, info.VR)
}

// StartFind lists the files under dir that match every filter.
func StartFind(dir string, args []string) {
	var filters []*dicom.Element
	for _, arg := range args {
		f, err := newFilter(arg)
		check(err)
		filters = append(filters, f)
	}
	files, err := dicom.WalkDir(dir)
	check(err)

	var matched, failed int
	for r := range dicom.ReadFiles(context.Background(), files, dicom.ReadOptions{DropPixelData: true}, 0) {
		if r.Err != nil && r.DataSet == nil {
			failed++
			continue
		}
		ok, err := dicom.QueryAll(r.DataSet, filters)
		if err != nil {
			check(err)
		}
		if ok {
			matched++
			fmt.Println(r.Path)
		}
	}
	logrus.WithFields(logrus.Fields{"files": len(files), "matched": matched, "unreadable": failed}).Info("find: done")
}
