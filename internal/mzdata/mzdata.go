// Package mzdata reads GC-MS runs from mzML files. It parses only what
// chromatographic peak picking needs: scan retention times, total ion
// current and the per-scan mass spectra, exposed as a TIC signal and
// nominal-mass ion traces.
package mzdata

import (
	"encoding/xml"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidScanIndex means an invalid scan index is supplied.
	ErrInvalidScanIndex = errors.New("mzdata: invalid scan index")
	// ErrNoScans means the run contains no spectra.
	ErrNoScans = errors.New("mzdata: run contains no scans")
	// ErrUnsupportedCompression means the binary data uses a compression
	// scheme other than none or zlib.
	ErrUnsupportedCompression = errors.New("mzdata: unsupported binary data compression")
)

// Point is one line of a scan's mass spectrum.
type Point struct {
	Mz     float64
	Intens float64
}

// Run holds a parsed GC-MS acquisition.
type Run struct {
	content mzMLContent
}

// The mzML subset we read. Metadata sections that only matter for
// writing mzML back out are not retained.
type mzMLContent struct {
	XMLName xml.Name `xml:"http://psi.hupo.org/ms/mzml mzML"`
	Run     struct {
		ID             string       `xml:"id,attr"`
		StartTimeStamp string       `xml:"startTimeStamp,attr"`
		SpectrumList   spectrumList `xml:"spectrumList"`
	} `xml:"run"`
}

type spectrumList struct {
	Count    int        `xml:"count,attr"`
	Spectrum []spectrum `xml:"spectrum"`
}

type spectrum struct {
	Index               int                 `xml:"index,attr"`
	ID                  string              `xml:"id,attr"`
	DefaultArrayLength  int64               `xml:"defaultArrayLength,attr"`
	CvPar               []cvParam           `xml:"cvParam"`
	ScanList            scanList            `xml:"scanList"`
	BinaryDataArrayList binaryDataArrayList `xml:"binaryDataArrayList"`
}

type scanList struct {
	Count int    `xml:"count,attr"`
	Scan  []scan `xml:"scan"`
}

type scan struct {
	CvPar []cvParam `xml:"cvParam"`
}

type binaryDataArrayList struct {
	Count           int               `xml:"count,attr"`
	BinaryDataArray []binaryDataArray `xml:"binaryDataArray"`
}

type binaryDataArray struct {
	EncodedLength int       `xml:"encodedLength,attr"`
	CvPar         []cvParam `xml:"cvParam"`
	Binary        string    `xml:"binary"`
}

// cvParam holds a mzML Controlled Vocabulary term
// (http://www.peptideatlas.org/tmp/mzML1.1.0.html).
type cvParam struct {
	Accession     string `xml:"accession,attr"`
	Name          string `xml:"name,attr"`
	Value         string `xml:"value,attr"`
	UnitAccession string `xml:"unitAccession,attr"`
}
