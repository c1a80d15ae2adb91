package spectrum

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/KevinWang15/go-json5"
)

// MicroPLHeaderTokens is the number of tab-separated header tokens at the start
// of a µ-PL text export.
const MicroPLHeaderTokens = 19

// LoadFile reads a spectrum, choosing the parser by file extension:
// .csv (comma-separated columns), .txt (µ-PL export) or .json/.json5
// (array of [wavelength, intensity] pairs).
func LoadFile(filename string) (Spectrum, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".txt", ".json", ".json5":
	default:
		return Spectrum{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return Spectrum{}, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var s Spectrum
	switch ext {
	case ".csv":
		s, err = ParseCSV(bytes.NewReader(data))
	case ".txt":
		s, err = ParseMicroPL(data)
	default:
		s, err = ParseJSONPairs(data)
	}
	if err != nil {
		return Spectrum{}, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return s, nil
}

// ParseCSV reads comma-separated rows and uses the first two columns as
// wavelength and intensity. Blank lines and lines starting with '#' are skipped.
func ParseCSV(r io.Reader) (Spectrum, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var wl, in []float64
	for line := 1; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Spectrum{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(record) < 2 {
			return Spectrum{}, fmt.Errorf("%w: row %d has %d columns, need 2", ErrMalformed, line, len(record))
		}
		w, err := parseToken(record[0])
		if err != nil {
			return Spectrum{}, fmt.Errorf("row %d: %w", line, err)
		}
		v, err := parseToken(record[1])
		if err != nil {
			return Spectrum{}, fmt.Errorf("row %d: %w", line, err)
		}
		wl = append(wl, w)
		in = append(in, v)
	}
	return New(wl, in)
}

// ParseMicroPL reads a µ-PL text export. Line breaks are treated as tabs, the
// first MicroPLHeaderTokens tokens are header metadata, the final token is a
// trailing artifact, and the remaining tokens alternate wavelength and intensity.
func ParseMicroPL(data []byte) (Spectrum, error) {
	tokens := strings.Split(strings.ReplaceAll(string(data), "\n", "\t"), "\t")
	if len(tokens) <= MicroPLHeaderTokens {
		return Spectrum{}, fmt.Errorf("%w: only %d tokens, header needs %d", ErrMalformed, len(tokens), MicroPLHeaderTokens)
	}
	body := tokens[MicroPLHeaderTokens : len(tokens)-1]
	if len(body)%2 != 0 {
		return Spectrum{}, fmt.Errorf("%w: odd number of data tokens (%d)", ErrMalformed, len(body))
	}

	wl := make([]float64, 0, len(body)/2)
	in := make([]float64, 0, len(body)/2)
	for i := 0; i < len(body); i += 2 {
		w, err := parseToken(body[i])
		if err != nil {
			return Spectrum{}, fmt.Errorf("token %d: %w", MicroPLHeaderTokens+i, err)
		}
		v, err := parseToken(body[i+1])
		if err != nil {
			return Spectrum{}, fmt.Errorf("token %d: %w", MicroPLHeaderTokens+i+1, err)
		}
		wl = append(wl, w)
		in = append(in, v)
	}
	return New(wl, in)
}

// ParseJSONPairs reads a JSON or JSON5 array of [wavelength, intensity] pairs.
func ParseJSONPairs(data []byte) (Spectrum, error) {
	var pairs [][2]float64
	if err := json.Unmarshal(data, &pairs); err != nil {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	wl := make([]float64, len(pairs))
	in := make([]float64, len(pairs))
	for i, p := range pairs {
		wl[i], in[i] = p[0], p[1]
	}
	return New(wl, in)
}

func parseToken(tok string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(tok), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformed, tok)
	}
	return v, nil
}

// WriteCSV writes s as two comma-separated columns.
func WriteCSV(w io.Writer, s Spectrum) error {
	cw := csv.NewWriter(w)
	for i := 0; i < s.Len(); i++ {
		p := s.At(i)
		record := []string{
			strconv.FormatFloat(p.Wavelength, 'g', -1, 64),
			strconv.FormatFloat(p.Intensity, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes s to filename as two comma-separated columns.
func SaveCSV(filename string, s Spectrum) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return WriteCSV(f, s)
}
