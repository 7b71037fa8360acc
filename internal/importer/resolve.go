package importer

import (
	"strings"
	"unicode"
)

// Roles used for ID/Name designation in errors and prompts.
const (
	RoleID   = "ID"
	RoleName = "Name"
)

// ResolveOptions carries the non-interactive inputs to ID/Name resolution.
// Explicit overrides come from CLI flags or a manifest; hints come from a
// remote catalog's declared id/name fields.
type ResolveOptions struct {
	IDField   string
	NameField string
	IDHint    string
	NameHint  string
}

// Resolution reports how the ID and Name fields were chosen, so callers can
// surface auto-selections to the user.
type Resolution struct {
	IDField      string
	NameField    string
	IDFromHint   bool
	NameFromHint bool
}

// resolveRole picks the field for one role with the precedence
// explicit > hint > designator. An explicit name that does not exist is a
// FieldNotFoundError; a hint that does not exist is silently ignored.
func resolveRole(sch Schema, role, explicit, hint string, d Designator) (name string, fromHint bool, err error) {
	if explicit != "" {
		if _, ok := sch.Field(explicit); !ok {
			return "", false, &FieldNotFoundError{Role: role, Name: explicit, Available: sch.Names()}
		}
		return explicit, false, nil
	}
	if hint != "" {
		if _, ok := sch.Field(hint); ok {
			return hint, true, nil
		}
	}
	if d != nil {
		chosen, err := d.ChooseField(role, sch.Fields())
		if err != nil {
			return "", false, err
		}
		if _, ok := sch.Field(chosen); !ok {
			return "", false, &FieldNotFoundError{Role: role, Name: chosen, Available: sch.Names()}
		}
		return chosen, false, nil
	}
	return "", false, &ResolutionError{Role: role}
}

// resolveSchema applies ID and Name resolution independently and returns the
// designated schema copy.
func resolveSchema(sch Schema, opts ResolveOptions, d Designator) (Schema, Resolution, error) {
	idField, idFromHint, err := resolveRole(sch, RoleID, opts.IDField, opts.IDHint, d)
	if err != nil {
		return Schema{}, Resolution{}, err
	}
	nameField, nameFromHint, err := resolveRole(sch, RoleName, opts.NameField, opts.NameHint, d)
	if err != nil {
		return Schema{}, Resolution{}, err
	}

	sch = sch.markID(idField).markName(nameField)
	return sch, Resolution{
		IDField:      idField,
		NameField:    nameField,
		IDFromHint:   idFromHint,
		NameFromHint: nameFromHint,
	}, nil
}

// NormalizeDatasetID lower-cases a dataset identifier. Whitespace anywhere in
// the identifier is rejected; the returned bool reports whether lower-casing
// changed the input so callers can tell the user.
func NormalizeDatasetID(id string) (string, bool, error) {
	if strings.ContainsFunc(id, unicode.IsSpace) {
		return "", false, &ValidationError{Reason: "dataset id must not contain whitespace"}
	}
	lowered := strings.ToLower(id)
	return lowered, lowered != id, nil
}
