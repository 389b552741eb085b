package file

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/advisordesk/advisordesk/internal/lead"
)

// readLeadsCSV parses a CRM lead export. CRM tools emit CSV in whatever
// charset the workstation used, so the bytes are decoded to UTF-8 first.
// Rows without an id get a generated one.
func readLeadsCSV(path string) ([]lead.Lead, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	decoded, err := toUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	reader := csv.NewReader(bytes.NewReader(decoded))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", path, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}

	var leads []lead.Lead

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		l, err := leadFromRow(columns, row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		leads = append(leads, l)
	}

	return leads, nil
}

func leadFromRow(columns map[string]int, row []string) (lead.Lead, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}

		return row[i]
	}

	l := lead.Lead{
		ID:           field("id"),
		Company:      field("company"),
		ContactName:  field("contactName"),
		ContactEmail: field("contactEmail"),
		ContactPhone: field("contactPhone"),
		Source:       lead.Channel(field("source")),
		Status:       lead.Status(field("status")),
		AssignedTo:   field("assignedTo"),
		Scheme:       field("scheme"),
	}

	if l.ID == "" {
		l.ID = uuid.NewString()
	}

	if v := field("potentialValue"); v != "" {
		value, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return lead.Lead{}, fmt.Errorf("potentialValue %q: %w", v, err)
		}

		l.PotentialValue = value
	}

	var err error

	if l.CreatedDate, err = parseCSVDate(field("createdDate")); err != nil {
		return lead.Lead{}, err
	}

	if l.LastContactedDate, err = parseCSVDate(field("lastContactedDate")); err != nil {
		return lead.Lead{}, err
	}

	return l, nil
}

func parseCSVDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable date %q", value)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// toUTF8 converts raw export bytes to UTF-8. BOMs win, then valid UTF-8
// passes through, then charset detection picks a decoder, with Windows-1252
// as the final assumption for undetectable single-byte content.
func toUTF8(raw []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		return raw[len(bomUTF8):], nil
	case bytes.HasPrefix(raw, bomUTF16LE):
		return decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), raw)
	case bytes.HasPrefix(raw, bomUTF16BE):
		return decodeWith(unicode.UTF16(unicode.BigEndian, unicode.UseBOM), raw)
	}

	if utf8.Valid(raw) {
		return raw, nil
	}

	if result, err := chardet.NewTextDetector().DetectBest(raw); err == nil {
		switch result.Charset {
		case "ISO-8859-1", "windows-1252":
			return decodeWith(charmap.Windows1252, raw)
		case "ISO-8859-9":
			return decodeWith(charmap.ISO8859_9, raw)
		}
	}

	return decodeWith(charmap.Windows1252, raw)
}

func decodeWith(enc encoding.Encoding, raw []byte) ([]byte, error) {
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, err
	}

	return decoded, nil
}
