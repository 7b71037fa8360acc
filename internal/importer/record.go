package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one element of an import input array: an object whose keys are
// preserved in document order. Values are decoded with json.Number so numeric
// precision survives a round-trip to the upload payload.
type Record struct {
	keys   []string
	values map[string]any
}

// Keys returns the record's keys in document order.
func (r Record) Keys() []string {
	return r.keys
}

// Get returns the value for a key and whether the record has that key.
// A present key with a JSON null value returns (nil, true).
func (r Record) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether the record has the given key.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Len returns the number of keys in the record.
func (r Record) Len() int {
	return len(r.keys)
}

// parseRecords decodes raw JSON into a sequence of records.
//
// The decoder walks tokens rather than unmarshalling into a map so that the
// document order of each object's keys is preserved; field discovery depends
// on first-seen ordering. Malformed JSON yields a ParseError; well-formed
// JSON that is not an array of objects yields a ValidationError.
func parseRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if d, ok := tok.(json.Delim); !ok || d != '[' {
		return nil, &ValidationError{Reason: "input is not a JSON array"}
	}

	var records []Record
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: err}
		}
		if d, ok := tok.(json.Delim); !ok || d != '{' {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("element %d is not an object", len(records)),
			}
		}
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &ParseError{Err: err}
	}

	if len(records) == 0 {
		return nil, &ValidationError{Reason: "input array is empty"}
	}
	return records, nil
}

// decodeObject consumes the members of an object whose opening brace has
// already been read, up to and including the closing brace.
func decodeObject(dec *json.Decoder) (Record, error) {
	rec := Record{values: make(map[string]any)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Record{}, &ParseError{Err: err}
		}
		key, ok := keyTok.(string)
		if !ok {
			return Record{}, &ParseError{Err: fmt.Errorf("unexpected token %v in object", keyTok)}
		}

		var val any
		if err := dec.Decode(&val); err != nil {
			return Record{}, &ParseError{Err: err}
		}

		if _, seen := rec.values[key]; !seen {
			rec.keys = append(rec.keys, key)
		}
		rec.values[key] = val
	}
	if _, err := dec.Token(); err != nil {
		return Record{}, &ParseError{Err: err}
	}
	return rec, nil
}
