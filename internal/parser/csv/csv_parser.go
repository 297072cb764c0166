// Package csv parses the header-bearing CSV inputs into in-memory tables.
// The reader is deliberately lenient: quoting oddities do not abort the run,
// short rows are padded with nil cells, and overlong rows keep their overflow
// under positional keys. Cell-level problems are the coercion layer's job;
// this layer only gets bytes into records.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"wcetl/pkg/records"
)

// Options configures the CSV parser. All fields are optional.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// TrimSpace trims leading/trailing spaces from each field value.
	TrimSpace bool
}

// Parser parses CSV input according to Options. A Parser may be reused across
// inputs but is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "﻿"

// Parse consumes CSV records from r and returns the parsed table along with
// the number of ragged rows (rows whose field count differed from the header).
// Ragged rows are kept, not dropped: short rows are padded with nil and
// overlong rows store their extra fields under "col_N" keys.
//
// The first row is always treated as the header. Header names are normalized
// so downstream code can rely on stable snake_case keys.
func (p *Parser) Parse(r io.Reader) (*records.Table, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h)

	t := &records.Table{Columns: headers}
	var ragged int

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, ragged, fmt.Errorf("read csv row %d: %w", line, err)
		}
		if len(row) != len(headers) {
			ragged++
		}

		rec := make(records.Record, len(headers))
		for i, val := range row {
			if p.opt.TrimSpace {
				val = strings.TrimSpace(val)
			}
			rec[keyFor(i, headers)] = emptyToNil(val)
		}
		// Pad short rows so every header key exists.
		for i := len(row); i < len(headers); i++ {
			rec[headers[i]] = nil
		}
		t.Rows = append(t.Rows, rec)
	}

	return t, ragged, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name for overflow fields.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}

// emptyToNil converts an empty string to nil; all other values pass through.
func emptyToNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// foldAccents removes combining marks so accented header names normalize to
// plain ASCII identifiers.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalizeHeaders produces canonical snake_case header keys: BOM stripped
// from the first cell, accents folded, lowercased, and anything that is not a
// letter, digit, or underscore replaced with an underscore.
func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := strings.TrimSpace(col)
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		if folded, _, err := transform.String(foldAccents, c); err == nil {
			c = folded
		}
		c = strings.ToLower(c)
		c = strings.Map(func(r rune) rune {
			switch {
			case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
				return r
			default:
				return '_'
			}
		}, c)
		res[i] = c
	}
	return res
}
