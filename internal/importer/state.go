// Package importer implements the dataset import pipeline: JSON schema
// inference over an arbitrary array of records, ID/Name field designation,
// and construction of the deduplicated item payload handed to the dataset
// creation API.
//
// The pipeline is a sequence of pure stages — Parse, Discover, Resolve,
// Build — each taking the prior stage's state and returning a new one. The
// interactive import wizard and the remote-store pull both drive exactly
// this pipeline; the only difference between them is where the designation
// inputs come from.
package importer

// ImportState is the working state of one import or pull operation. It is
// owned by a single command invocation and discarded once the remote create
// call returns. Stage methods return updated copies; no stage mutates state
// behind the caller's back.
type ImportState struct {
	Raw     string
	Records []Record
	Schema  Schema

	Resolution Resolution

	DatasetID   string
	DatasetName string
	Description string

	Items   map[string]Item
	Skipped int
}

// Parse creates the initial state from raw JSON text.
func Parse(raw string) (ImportState, error) {
	records, err := parseRecords([]byte(raw))
	if err != nil {
		return ImportState{}, err
	}
	return ImportState{Raw: raw, Records: records}, nil
}

// Discover infers the field schema from the parsed records.
func (st ImportState) Discover() (ImportState, error) {
	sch, err := discoverFields(st.Records)
	if err != nil {
		return ImportState{}, err
	}
	st.Schema = sch
	return st, nil
}

// Resolve designates the ID and Name fields using the precedence
// explicit override > hint > designator. Passing a nil designator makes
// resolution fully non-interactive.
func (st ImportState) Resolve(opts ResolveOptions, d Designator) (ImportState, error) {
	sch, res, err := resolveSchema(st.Schema, opts, d)
	if err != nil {
		return ImportState{}, err
	}
	st.Schema = sch
	st.Resolution = res
	return st, nil
}

// Designate marks a single role's field explicitly. The wizard uses it to
// apply one choice at a time; Resolve applies both roles at once.
func (st ImportState) Designate(role, name string) (ImportState, error) {
	if _, ok := st.Schema.Field(name); !ok {
		return ImportState{}, &FieldNotFoundError{Role: role, Name: name, Available: st.Schema.Names()}
	}
	switch role {
	case RoleID:
		st.Schema = st.Schema.markID(name)
		st.Resolution.IDField = name
		st.Resolution.IDFromHint = false
	case RoleName:
		st.Schema = st.Schema.markName(name)
		st.Resolution.NameField = name
		st.Resolution.NameFromHint = false
	default:
		return ImportState{}, &ResolutionError{Role: role}
	}
	return st, nil
}

// Exclude marks the named fields as not included in item payloads.
func (st ImportState) Exclude(names ...string) (ImportState, error) {
	if len(names) == 0 {
		return st, nil
	}
	sch, err := st.Schema.exclude(names)
	if err != nil {
		return ImportState{}, err
	}
	st.Schema = sch
	return st, nil
}

// WithDataset sets the target dataset identity, normalizing the identifier.
// The returned bool reports whether the identifier was lower-cased.
func (st ImportState) WithDataset(id, name, description string) (ImportState, bool, error) {
	normalized, lowered, err := NormalizeDatasetID(id)
	if err != nil {
		return ImportState{}, false, err
	}
	st.DatasetID = normalized
	st.DatasetName = name
	st.Description = description
	return st, lowered, nil
}

// Build validates the schema and constructs the item payload with skip
// accounting. It is the final stage before upload.
func (st ImportState) Build() (ImportState, error) {
	if err := st.Schema.Validate(); err != nil {
		return ImportState{}, err
	}
	idField, _ := st.Schema.IDField()
	nameField, _ := st.Schema.NameField()
	st.Items, st.Skipped = buildItems(st.Schema, st.Records, idField, nameField)
	return st, nil
}

// TotalRecords returns the number of parsed input records.
func (st ImportState) TotalRecords() int {
	return len(st.Records)
}
