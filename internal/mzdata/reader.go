package mzdata

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/xml"
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/net/html/charset"
)

// Read parses a GC-MS run from an mzML document. Files wrapped in
// indexedmzML are handled by skipping over everything but the mzML
// element.
func Read(reader io.Reader) (*Run, error) {
	var run Run

	d := xml.NewDecoder(reader)
	d.CharsetReader = charset.NewReaderLabel

	for {
		t, tokenErr := d.Token()
		if tokenErr != nil {
			if tokenErr == io.EOF {
				break
			}
			return nil, errors.Wrap(tokenErr, "mzdata: parsing mzML")
		}
		switch t := t.(type) {
		case xml.StartElement:
			if t.Name.Local == "mzML" {
				if err := d.DecodeElement(&run.content, &t); err != nil {
					return nil, errors.Wrap(err, "mzdata: decoding mzML element")
				}
			}
		}
	}

	for i, spec := range run.content.Run.SpectrumList.Spectrum {
		if spec.Index != i {
			return nil, errors.Wrapf(ErrInvalidScanIndex, "scan %s", spec.ID)
		}
	}
	return &run, nil
}

// NumScans returns the number of scans in the run.
func (r *Run) NumScans() int {
	return len(r.content.Run.SpectrumList.Spectrum)
}

// RetentionTime returns the retention time of a scan in minutes.
func (r *Run) RetentionTime(scanIndex int) (float64, error) {
	if scanIndex < 0 || scanIndex >= r.NumScans() {
		return 0, ErrInvalidScanIndex
	}
	for _, scan := range r.content.Run.SpectrumList.Spectrum[scanIndex].ScanList.Scan {
		for _, cvParam := range scan.CvPar {
			if cvParam.Accession == "MS:1000016" { // scan start time
				rt, err := strconv.ParseFloat(cvParam.Value, 64)
				// Seconds unless the unit says minutes.
				if cvParam.UnitAccession != "UO:0000031" &&
					cvParam.UnitAccession != "MS:1000038" {
					rt /= 60
				}
				return rt, errors.Wrap(err, "mzdata: parsing scan start time")
			}
		}
	}
	return -1.0, nil
}

// TotalIonCurrent returns the total ion current of a scan, summing the
// scan's spectrum when the file does not record it.
func (r *Run) TotalIonCurrent(scanIndex int) (float64, error) {
	if scanIndex < 0 || scanIndex >= r.NumScans() {
		return 0, ErrInvalidScanIndex
	}
	for _, cvParam := range r.content.Run.SpectrumList.Spectrum[scanIndex].CvPar {
		if cvParam.Accession == "MS:1000285" { // total ion current
			tic, err := strconv.ParseFloat(cvParam.Value, 64)
			return tic, errors.Wrap(err, "mzdata: parsing total ion current")
		}
	}
	points, err := r.Scan(scanIndex)
	if err != nil {
		return 0, err
	}
	var tic float64
	for _, p := range points {
		tic += p.Intens
	}
	return tic, nil
}

// Scan reads the mass spectrum of a single scan.
func (r *Run) Scan(scanIndex int) ([]Point, error) {
	if scanIndex < 0 || scanIndex >= r.NumScans() {
		return nil, ErrInvalidScanIndex
	}
	spec := &r.content.Run.SpectrumList.Spectrum[scanIndex]
	p := make([]Point, spec.DefaultArrayLength)
	for i := range spec.BinaryDataArrayList.BinaryDataArray {
		if err := fillScan(p, &spec.BinaryDataArrayList.BinaryDataArray[i]); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// binaryDataPars decodes the CV terms of a mzML binary data section.
//
// CV Terms for binary data compression
// MS:1000574 zlib compression
// MS:1000576 No Compression
// MS:1002312..MS:1002748 MS-Numpress variants (not supported)
//
// CV Terms for binary data array types
// MS:1000514 m/z array
// MS:1000515 intensity array
//
// CV Terms for binary-data-type
// MS:1000521 32-bit float
// MS:1000523 64-bit float
func binaryDataPars(bda *binaryDataArray) (zlibCompression, bits64, mzArray, intensityArray bool, err error) {
	for _, cvParam := range bda.CvPar {
		switch cvParam.Accession {
		case `MS:1000574`:
			zlibCompression = true
		case `MS:1000514`:
			mzArray = true
		case `MS:1000515`:
			intensityArray = true
		case `MS:1000523`:
			bits64 = true
		case `MS:1002312`, `MS:1002313`, `MS:1002314`,
			`MS:1002746`, `MS:1002747`, `MS:1002748`:
			err = errors.Wrap(ErrUnsupportedCompression, cvParam.Accession)
			return
		}
	}
	return
}

func fillScan(p []Point, bda *binaryDataArray) error {
	zlibCompression, bits64, mzArray, intensityArray, err := binaryDataPars(bda)
	if err != nil {
		return err
	}
	// Only m/z and intensity arrays matter here.
	if !mzArray && !intensityArray {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(bda.Binary)
	if err != nil {
		return errors.Wrap(err, "mzdata: decoding binary data")
	}
	if zlibCompression {
		z, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return errors.Wrap(err, "mzdata: inflating binary data")
		}
		defer z.Close()
		if data, err = io.ReadAll(z); err != nil {
			return errors.Wrap(err, "mzdata: inflating binary data")
		}
	}
	if bits64 {
		cnt := len(data) / 8
		for i := 0; i < cnt && i < len(p); i++ {
			v := math.Float64frombits(binary.LittleEndian.Uint64(data[i*8:]))
			if mzArray {
				p[i].Mz = v
			} else {
				p[i].Intens = v
			}
		}
	} else {
		cnt := len(data) / 4
		for i := 0; i < cnt && i < len(p); i++ {
			v := float64(math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:])))
			if mzArray {
				p[i].Mz = v
			} else {
				p[i].Intens = v
			}
		}
	}
	return nil
}
