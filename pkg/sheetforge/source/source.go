// Package source adapts external tabular inputs into row sequences the
// builder can import. Sources are lazy and cache nothing: restarting an
// import is possible exactly when the underlying reader is restartable.
package source

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sheetforge/sheetforge-go/pkg/sheetforge/doc"
)

// RowSource yields rows of scalar cell values. Next returns io.EOF after the
// last row.
type RowSource interface {
	Next() ([]doc.Value, error)
}

// CSVSource reads rows from CSV input. Fields that look numeric become
// numbers, everything else text.
type CSVSource struct {
	r *csv.Reader
}

// CSV wraps a reader producing CSV input. Records may vary in field count.
func CSV(r io.Reader) *CSVSource {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	return &CSVSource{r: cr}
}

// Next returns the next CSV record as values, or io.EOF.
func (s *CSVSource) Next() ([]doc.Value, error) {
	record, err := s.r.Read()
	if err != nil {
		return nil, err
	}
	row := make([]doc.Value, len(record))
	for i, field := range record {
		row[i] = doc.FromAny(field)
	}
	return row, nil
}

// JSONSource reads rows from a JSON array of flat objects. Each object's
// values are emitted in key-insertion order, which a plain map unmarshal
// would destroy; the decoder walks tokens instead.
type JSONSource struct {
	dec     *json.Decoder
	started bool
	done    bool
}

// JSON wraps a reader producing a JSON array of objects with scalar values.
func JSON(r io.Reader) *JSONSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &JSONSource{dec: dec}
}

// Next returns the next object's values in key order, or io.EOF. Object keys
// themselves are not part of the row contract.
func (s *JSONSource) Next() ([]doc.Value, error) {
	if s.done {
		return nil, io.EOF
	}
	if !s.started {
		if err := s.expectDelim('['); err != nil {
			return nil, err
		}
		s.started = true
	}
	if !s.dec.More() {
		// Consume the closing bracket.
		if _, err := s.dec.Token(); err != nil {
			return nil, err
		}
		s.done = true
		return nil, io.EOF
	}
	if err := s.expectDelim('{'); err != nil {
		return nil, err
	}
	var row []doc.Value
	for s.dec.More() {
		// Key token; the value position decides the cell.
		if _, err := s.dec.Token(); err != nil {
			return nil, err
		}
		tok, err := s.dec.Token()
		if err != nil {
			return nil, err
		}
		v, err := tokenValue(tok)
		if err != nil {
			return nil, err
		}
		row = append(row, v)
	}
	// Consume the closing brace.
	if _, err := s.dec.Token(); err != nil {
		return nil, err
	}
	return row, nil
}

func (s *JSONSource) expectDelim(want rune) error {
	tok, err := s.dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("unexpected JSON token %v, want %q", tok, want)
	}
	return nil
}

func tokenValue(tok json.Token) (doc.Value, error) {
	switch x := tok.(type) {
	case nil:
		return doc.Empty(), nil
	case string:
		return doc.Text(x), nil
	case bool:
		return doc.Bool(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return doc.Value{}, err
		}
		return doc.Number(f), nil
	default:
		return doc.Value{}, fmt.Errorf("nested JSON value %v is not a scalar", tok)
	}
}

// SliceSource yields rows from an in-memory slice, mainly for tests and
// programmatic imports.
type SliceSource struct {
	rows [][]interface{}
	next int
}

// Slice wraps in-memory rows of arbitrary scalars.
func Slice(rows [][]interface{}) *SliceSource {
	return &SliceSource{rows: rows}
}

// Next returns the next in-memory row, or io.EOF.
func (s *SliceSource) Next() ([]doc.Value, error) {
	if s.next >= len(s.rows) {
		return nil, io.EOF
	}
	raw := s.rows[s.next]
	s.next++
	row := make([]doc.Value, len(raw))
	for i, field := range raw {
		row[i] = doc.FromAny(field)
	}
	return row, nil
}
