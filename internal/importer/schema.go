package importer

import "slices"

// Field describes one JSON object key observed across the input records.
type Field struct {
	Name         string
	DataType     DataType
	SampleValues []string
	IsID         bool
	IsName       bool
	IsIncluded   bool
}

// Schema is the insertion-ordered set of fields discovered for one import.
// It is treated as a value: pipeline stages return modified copies rather
// than mutating a shared schema in place.
type Schema struct {
	fields []Field
	index  map[string]int
}

// Fields returns the fields in first-seen order.
func (s Schema) Fields() []Field {
	return slices.Clone(s.fields)
}

// Field returns the field with the given name.
func (s Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// Names returns the field names in first-seen order.
func (s Schema) Names() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Len returns the number of discovered fields.
func (s Schema) Len() int {
	return len(s.fields)
}

// IDField returns the name of the field marked as the unique ID, if any.
func (s Schema) IDField() (string, bool) {
	for _, f := range s.fields {
		if f.IsID {
			return f.Name, true
		}
	}
	return "", false
}

// NameField returns the name of the field marked as the display name, if any.
func (s Schema) NameField() (string, bool) {
	for _, f := range s.fields {
		if f.IsName {
			return f.Name, true
		}
	}
	return "", false
}

// Validate checks that the schema is usable for upload: exactly one ID field
// and exactly one Name field, both included.
func (s Schema) Validate() error {
	var ids, names int
	for _, f := range s.fields {
		if f.IsID {
			ids++
			if !f.IsIncluded {
				return &ValidationError{Reason: "ID field " + f.Name + " is excluded"}
			}
		}
		if f.IsName {
			names++
			if !f.IsIncluded {
				return &ValidationError{Reason: "Name field " + f.Name + " is excluded"}
			}
		}
	}
	if ids != 1 {
		return &ValidationError{Reason: "schema must have exactly one ID field"}
	}
	if names != 1 {
		return &ValidationError{Reason: "schema must have exactly one Name field"}
	}
	return nil
}

// clone returns a deep copy so stage methods never alias the caller's fields.
func (s Schema) clone() Schema {
	out := Schema{
		fields: make([]Field, len(s.fields)),
		index:  make(map[string]int, len(s.index)),
	}
	for i, f := range s.fields {
		f.SampleValues = slices.Clone(f.SampleValues)
		out.fields[i] = f
		out.index[f.Name] = i
	}
	return out
}

// markID returns a copy with exactly the named field flagged as ID.
func (s Schema) markID(name string) Schema {
	out := s.clone()
	for i := range out.fields {
		out.fields[i].IsID = out.fields[i].Name == name
	}
	return out
}

// markName returns a copy with exactly the named field flagged as Name.
func (s Schema) markName(name string) Schema {
	out := s.clone()
	for i := range out.fields {
		out.fields[i].IsName = out.fields[i].Name == name
	}
	return out
}

// exclude returns a copy with the named fields marked as not included.
// Excluding the ID or Name field is rejected since both must ship with every
// item payload.
func (s Schema) exclude(names []string) (Schema, error) {
	out := s.clone()
	for _, name := range names {
		i, ok := out.index[name]
		if !ok {
			return Schema{}, &FieldNotFoundError{Role: "excluded", Name: name, Available: s.Names()}
		}
		if out.fields[i].IsID || out.fields[i].IsName {
			return Schema{}, &ValidationError{Reason: "cannot exclude ID or Name field " + name}
		}
		out.fields[i].IsIncluded = false
	}
	return out, nil
}

// discoverFields builds the schema for a record sequence.
//
// Every record's keys are visited in document order. The first sighting of a
// key fixes its position and infers its type; later sightings may only
// upgrade an Unknown type to a concrete one — two conflicting concrete types
// are not reconciled, the first wins. Up to maxSampleValues distinct,
// non-empty samples are kept per field in first-seen order.
func discoverFields(records []Record) (Schema, error) {
	if len(records) == 0 {
		return Schema{}, &ValidationError{Reason: "input array is empty"}
	}

	sch := Schema{index: make(map[string]int)}
	for _, rec := range records {
		for _, key := range rec.Keys() {
			v, _ := rec.Get(key)

			i, seen := sch.index[key]
			if !seen {
				i = len(sch.fields)
				sch.index[key] = i
				sch.fields = append(sch.fields, Field{
					Name:       key,
					DataType:   inferType(v),
					IsIncluded: true,
				})
			} else if sch.fields[i].DataType == TypeUnknown {
				if t := inferType(v); t != TypeUnknown {
					sch.fields[i].DataType = t
				}
			}

			f := &sch.fields[i]
			if len(f.SampleValues) < maxSampleValues {
				if s := sampleValue(v); s != "" && !slices.Contains(f.SampleValues, s) {
					f.SampleValues = append(f.SampleValues, s)
				}
			}
		}
	}

	if len(sch.fields) == 0 {
		return Schema{}, &ValidationError{Reason: "no fields discovered in input"}
	}
	return sch, nil
}
