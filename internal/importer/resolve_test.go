package importer

import (
	"errors"
	"testing"
)

func discoverFrom(t *testing.T, raw string) Schema {
	t.Helper()
	sch, err := discoverFields(mustParse(t, raw))
	if err != nil {
		t.Fatalf("discoverFields failed: %v", err)
	}
	return sch
}

func TestResolveExplicit(t *testing.T) {
	sch := discoverFrom(t, `[{"code":"us","title":"United States"}]`)

	resolved, res, err := resolveSchema(sch, ResolveOptions{IDField: "code", NameField: "title"}, nil)
	if err != nil {
		t.Fatalf("resolveSchema failed: %v", err)
	}

	if res.IDField != "code" || res.NameField != "title" {
		t.Errorf("Resolution = %+v, want code/title", res)
	}
	if res.IDFromHint || res.NameFromHint {
		t.Error("explicit overrides must not report as hints")
	}

	for _, f := range resolved.Fields() {
		if f.IsID != (f.Name == "code") {
			t.Errorf("field %s IsID = %v", f.Name, f.IsID)
		}
		if f.IsName != (f.Name == "title") {
			t.Errorf("field %s IsName = %v", f.Name, f.IsName)
		}
	}
}

func TestResolveExplicitNotFound(t *testing.T) {
	sch := discoverFrom(t, `[{"code":"us","title":"x"}]`)

	_, _, err := resolveSchema(sch, ResolveOptions{IDField: "missing", NameField: "title"}, nil)
	var nf *FieldNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want FieldNotFoundError", err)
	}
	if nf.Role != RoleID || nf.Name != "missing" {
		t.Errorf("FieldNotFoundError = %+v", nf)
	}
	if len(nf.Available) != 2 {
		t.Errorf("Available = %v, want both discovered fields", nf.Available)
	}
}

func TestResolveHints(t *testing.T) {
	sch := discoverFrom(t, `[{"alpha2":"us","common_name":"United States"}]`)

	t.Run("matching hints auto-select", func(t *testing.T) {
		_, res, err := resolveSchema(sch, ResolveOptions{IDHint: "alpha2", NameHint: "common_name"}, nil)
		if err != nil {
			t.Fatalf("resolveSchema failed: %v", err)
		}
		if !res.IDFromHint || !res.NameFromHint {
			t.Errorf("Resolution = %+v, want both from hints", res)
		}
	})

	t.Run("explicit beats hint", func(t *testing.T) {
		_, res, err := resolveSchema(sch, ResolveOptions{
			IDField: "common_name", IDHint: "alpha2", NameHint: "common_name",
		}, nil)
		if err != nil {
			t.Fatalf("resolveSchema failed: %v", err)
		}
		if res.IDField != "common_name" || res.IDFromHint {
			t.Errorf("Resolution = %+v, want explicit common_name", res)
		}
	})

	t.Run("unmatched hint falls through", func(t *testing.T) {
		_, _, err := resolveSchema(sch, ResolveOptions{IDHint: "nope", NameHint: "common_name"}, nil)
		var re *ResolutionError
		if !errors.As(err, &re) {
			t.Fatalf("got %v, want ResolutionError", err)
		}
		if re.Role != RoleID {
			t.Errorf("Role = %s, want %s", re.Role, RoleID)
		}
	})
}

func TestResolveDesignator(t *testing.T) {
	sch := discoverFrom(t, `[{"code":"us","title":"x"}]`)

	_, res, err := resolveSchema(sch, ResolveOptions{}, StaticDesignator{ID: "code", Name: "title"})
	if err != nil {
		t.Fatalf("resolveSchema failed: %v", err)
	}
	if res.IDField != "code" || res.NameField != "title" {
		t.Errorf("Resolution = %+v", res)
	}
}

func TestResolveNothing(t *testing.T) {
	sch := discoverFrom(t, `[{"code":"us","title":"x"}]`)

	_, _, err := resolveSchema(sch, ResolveOptions{}, nil)
	var re *ResolutionError
	if !errors.As(err, &re) {
		t.Fatalf("got %v, want ResolutionError", err)
	}
}

func TestNormalizeDatasetID(t *testing.T) {
	tests := []struct {
		in          string
		want        string
		wantLowered bool
		wantErr     bool
	}{
		{"countries", "countries", false, false},
		{"Countries", "countries", true, false},
		{"ISO-3166", "iso-3166", true, false},
		{"has space", "", false, true},
		{"tab\there", "", false, true},
		{"trailing ", "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, lowered, err := NormalizeDatasetID(tt.in)
			if tt.wantErr {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("got %v, want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || lowered != tt.wantLowered {
				t.Errorf("got (%q, %v), want (%q, %v)", got, lowered, tt.want, tt.wantLowered)
			}
		})
	}
}
