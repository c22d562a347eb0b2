package dicomio

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
)

// CodingSystem defines how a []byte is translated into a utf8 string.
// A nil decoder means 7-bit ASCII (passed through unchanged).
type CodingSystem struct {
	// VR="PN" is the only place where we potentially use all three
	// decoders. For all other VR types, only Ideographic decoder is used.
	// See P3.5, 6.2.
	Alphabetic  *encoding.Decoder
	Ideographic *encoding.Decoder
	Phonetic    *encoding.Decoder
}

// CodingSystemType defines the where the coding system is going to be
// used. This distinction is useful in Japanese, but of little use in other
// languages.
type CodingSystemType int

const (
	// AlphabeticCodingSystem is for writing a name in (English) alphabets.
	AlphabeticCodingSystem CodingSystemType = iota
	// IdeographicCodingSystem is for writing the name in the native writing
	// system (Kanji).
	IdeographicCodingSystem
	// PhoneticCodingSystem is for hirakana and/or katakana.
	PhoneticCodingSystem
)

// characterSets maps Specific Character Set (0008,0005) defined terms to an
// encoding. A nil entry is the default repertoire (ASCII).
// http://dicom.nema.org/medical/dicom/current/output/chtml/part02/sect_D.6.2.html
var characterSets = map[string]encoding.Encoding{
	"":                nil,
	"ISO_IR 6":        nil,
	"ISO 2022 IR 6":   nil,
	"ISO_IR 13":       japanese.ShiftJIS,
	"ISO 2022 IR 13":  japanese.ShiftJIS,
	"ISO 2022 IR 87":  japanese.ISO2022JP,
	"ISO 2022 IR 159": japanese.ISO2022JP,
	"ISO_IR 100":      charmap.ISO8859_1,
	"ISO 2022 IR 100": charmap.ISO8859_1,
	"ISO_IR 101":      charmap.ISO8859_2,
	"ISO 2022 IR 101": charmap.ISO8859_2,
	"ISO_IR 109":      charmap.ISO8859_3,
	"ISO 2022 IR 109": charmap.ISO8859_3,
	"ISO_IR 110":      charmap.ISO8859_4,
	"ISO 2022 IR 110": charmap.ISO8859_4,
	"ISO_IR 126":      charmap.ISO8859_7,
	"ISO 2022 IR 126": charmap.ISO8859_7,
	"ISO_IR 127":      charmap.ISO8859_6,
	"ISO 2022 IR 127": charmap.ISO8859_6,
	"ISO_IR 138":      charmap.ISO8859_8,
	"ISO 2022 IR 138": charmap.ISO8859_8,
	"ISO_IR 144":      charmap.ISO8859_5,
	"ISO 2022 IR 144": charmap.ISO8859_5,
	"ISO_IR 148":      charmap.ISO8859_9,
	"ISO 2022 IR 148": charmap.ISO8859_9,
	"ISO_IR 166":      charmap.Windows874,
	"ISO 2022 IR 166": charmap.Windows874,
	"ISO 2022 IR 149": korean.EUCKR,
	"ISO 2022 IR 58":  simplifiedchinese.GBK,
	"ISO_IR 192":      unicode.UTF8,
	"GB18030":         simplifiedchinese.GB18030,
	"GBK":             simplifiedchinese.GBK,
}

// ParseSpecificCharacterSet converts DICOM character encoding names, such as
// "ISO-IR 100" to CodingSystem. A single value applies to all three
// components; with two or more values the second (and third) apply to the
// ideographic and phonetic components, P3.5 6.1.2.5.
func ParseSpecificCharacterSet(encodingNames []string) (CodingSystem, error) {
	var decoders []*encoding.Decoder
	for _, name := range encodingNames {
		enc, ok := characterSets[strings.TrimSpace(name)]
		if !ok {
			return CodingSystem{}, fmt.Errorf("dicomio: unknown character set '%s'", name)
		}
		var d *encoding.Decoder
		if enc != nil {
			d = enc.NewDecoder()
		}
		logrus.Debugf("dicomio: using coding system %q", name)
		decoders = append(decoders, d)
	}
	switch len(decoders) {
	case 0:
		return CodingSystem{}, nil
	case 1:
		return CodingSystem{decoders[0], decoders[0], decoders[0]}, nil
	case 2:
		return CodingSystem{decoders[0], decoders[1], decoders[1]}, nil
	default:
		return CodingSystem{decoders[0], decoders[1], decoders[2]}, nil
	}
}
