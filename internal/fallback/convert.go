package fallback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/polkiloo/loandesk/internal/domain/model"
)

type field int

const (
	fieldFullName field = iota
	fieldPhone
	fieldAmount
	fieldDate
	fieldEmail
	fieldPurpose
	fieldTerm
)

var headerAliases = map[string]field{
	"full names":        fieldFullName,
	"full name":         fieldFullName,
	"name":              fieldFullName,
	"borrower":          fieldFullName,
	"borrower name":     fieldFullName,
	"phone":             fieldPhone,
	"phone number":      fieldPhone,
	"phone no":          fieldPhone,
	"contact":           fieldPhone,
	"mobile":            fieldPhone,
	"amount borrowed":   fieldAmount,
	"amount":            fieldAmount,
	"loan amount":       fieldAmount,
	"principal":         fieldAmount,
	"date of borrowing": fieldDate,
	"date":              fieldDate,
	"loan date":         fieldDate,
	"date borrowed":     fieldDate,
	"email":             fieldEmail,
	"email address":     fieldEmail,
	"purpose":           fieldPurpose,
	"loan purpose":      fieldPurpose,
	"term":              fieldTerm,
	"term (months)":     fieldTerm,
	"duration":          fieldTerm,
}

// Slash dates are always day first; "2/1/2006" also accepts zero padding.
var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2006/01/02",
	time.RFC3339,
}

// Input is one CSV export to convert.
type Input struct {
	Name   string
	Reader io.Reader
}

// Converter turns CSV exports into fallback records.
type Converter struct {
	now func() time.Time
}

// NewConverter creates a converter stamping undated rows with now.
func NewConverter(now func() time.Time) *Converter {
	if now == nil {
		now = time.Now
	}
	return &Converter{now: now}
}

// Convert reads every input and numbers records across all of them.
func (c *Converter) Convert(inputs ...Input) ([]Record, error) {
	generated := c.now().UTC()
	records := make([]Record, 0)

	for _, in := range inputs {
		rows, err := readCSV(in.Reader)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", in.Name, err)
		}
		source := filepath.Base(in.Name)
		for _, row := range rows {
			record := buildRecord(row, source, generated)
			record.ID = IDPrefix + strconv.Itoa(len(records)+1)
			records = append(records, record)
		}
	}

	return records, nil
}

func readCSV(r io.Reader) ([]map[field]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[int]field, len(header))
	for i, name := range header {
		if f, ok := headerAliases[normalizeHeader(name)]; ok {
			if _, taken := columnFor(columns, f); !taken {
				columns[i] = f
			}
		}
	}

	var rows []map[field]string
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		row := make(map[field]string, len(columns))
		blank := true
		for i, value := range values {
			value = strings.TrimSpace(value)
			if value != "" {
				blank = false
			}
			if f, ok := columns[i]; ok {
				row[f] = value
			}
		}
		if !blank {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func columnFor(columns map[int]field, f field) (int, bool) {
	for i, existing := range columns {
		if existing == f {
			return i, true
		}
	}
	return 0, false
}

func buildRecord(row map[field]string, source string, generated time.Time) Record {
	date := generated.Format(time.RFC3339)
	if raw := strings.TrimSpace(row[fieldDate]); raw != "" {
		date = raw
		if parsed, ok := parseDate(raw); ok {
			date = parsed.Format(time.RFC3339)
		}
	}

	term := parseTerm(row[fieldTerm])
	purpose := firstNonEmpty(row[fieldPurpose], model.DefaultPurpose)

	return Record{
		FullName: row[fieldFullName],
		Phone:    row[fieldPhone],
		Amount:   ParseAmount(row[fieldAmount]),
		Date:     date,
		Status:   string(DefaultStatus),
		Source:   source,
		Borrower: Borrower{
			FullName: row[fieldFullName],
			Email:    row[fieldEmail],
			Phone:    row[fieldPhone],
		},
		Purpose: purpose,
		Term:    term,
	}
}

// ParseAmount strips everything except digits and the decimal point.
// Unparsable input yields zero.
func ParseAmount(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return amount
}

func parseTerm(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		} else if b.Len() > 0 {
			break
		}
	}
	term, err := strconv.Atoi(b.String())
	if err != nil || term <= 0 {
		return model.DefaultTermMonths
	}
	return term
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func normalizeHeader(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
