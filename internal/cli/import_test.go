package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/coretravis/refwire-cli/internal/importer"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "countries.yaml")
	content := `dataset_id: countries
name: Countries
description: ISO country data
id_field: code
name_field: name
exclude: [notes, rank]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.DatasetID != "countries" || m.Name != "Countries" {
		t.Errorf("identity = %q/%q", m.DatasetID, m.Name)
	}
	if m.IDField != "code" || m.NameField != "name" {
		t.Errorf("designation = %q/%q", m.IDField, m.NameField)
	}
	if len(m.Exclude) != 2 || m.Exclude[0] != "notes" {
		t.Errorf("exclude = %v", m.Exclude)
	}
}

func TestLoadManifestRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("dataset_id: x\nbogus: y\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadManifest(path); err == nil {
		t.Fatal("expected error for unknown manifest field")
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := loadManifest(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing manifest")
	}
}

func builtImportState(t *testing.T) importer.ImportState {
	t.Helper()
	raw := `[
		{"code": "US", "name": "United States", "population": 331000000, "notes": "x"},
		{"code": "CA", "name": "Canada", "population": 38000000, "notes": "y"}
	]`
	st, err := importer.Parse(raw)
	if err != nil {
		t.Fatal(err)
	}
	if st, err = st.Discover(); err != nil {
		t.Fatal(err)
	}
	if st, err = st.Resolve(importer.ResolveOptions{IDField: "code", NameField: "name"}, nil); err != nil {
		t.Fatal(err)
	}
	if st, err = st.Exclude("notes"); err != nil {
		t.Fatal(err)
	}
	st, _, err = st.WithDataset("Countries", "Countries", "country data")
	if err != nil {
		t.Fatal(err)
	}
	if st, err = st.Build(); err != nil {
		t.Fatal(err)
	}
	return st
}

func TestBuildCreateRequest(t *testing.T) {
	req := buildCreateRequest(builtImportState(t))

	if req.ID != "countries" {
		t.Errorf("dataset id = %q, want normalized %q", req.ID, "countries")
	}
	if req.IDField != "code" || req.NameField != "name" {
		t.Errorf("designation = %q/%q", req.IDField, req.NameField)
	}
	if len(req.Fields) != 4 {
		t.Fatalf("fields = %d, want 4", len(req.Fields))
	}
	for _, f := range req.Fields {
		switch f.Name {
		case "code":
			if !f.IsID || !f.IsRequired || !f.IsIncluded {
				t.Errorf("code flags = %+v", f)
			}
		case "name":
			if !f.IsName || !f.IsRequired {
				t.Errorf("name flags = %+v", f)
			}
		case "notes":
			if f.IsIncluded {
				t.Error("excluded field still included")
			}
		case "population":
			if f.IsID || f.IsName || f.IsRequired || !f.IsIncluded {
				t.Errorf("population flags = %+v", f)
			}
		}
	}

	if len(req.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(req.Items))
	}
	us, ok := req.Items["US"]
	if !ok {
		t.Fatal("missing item keyed by stringified ID")
	}
	if us.Name != "United States" {
		t.Errorf("item name = %q", us.Name)
	}
	if _, has := us.Data["notes"]; has {
		t.Error("excluded field leaked into item data")
	}
}

func TestApplyManifestFlagsWin(t *testing.T) {
	defer func() {
		importIDField, importNameField = "", ""
		importDatasetID, importName, importDescription = "", "", ""
		importExclude = nil
	}()

	importIDField = "iso3"
	applyManifest(importManifest{
		IDField:   "code",
		NameField: "name",
		DatasetID: "countries",
		Exclude:   []string{"notes"},
	})

	if importIDField != "iso3" {
		t.Errorf("flag overridden by manifest: %q", importIDField)
	}
	if importNameField != "name" || importDatasetID != "countries" {
		t.Error("manifest did not fill unset inputs")
	}
	if len(importExclude) != 1 || importExclude[0] != "notes" {
		t.Errorf("exclude = %v", importExclude)
	}
}
