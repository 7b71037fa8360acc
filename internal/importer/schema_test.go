package importer

import (
	"errors"
	"reflect"
	"testing"
)

func mustParse(t *testing.T, raw string) []Record {
	t.Helper()
	records, err := parseRecords([]byte(raw))
	if err != nil {
		t.Fatalf("parseRecords(%q) failed: %v", raw, err)
	}
	return records
}

func TestInferType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want DataType
	}{
		{"iso date", `[{"v":"2024-01-15"}]`, TypeDate},
		{"invalid calendar date", `[{"v":"2024-13-40"}]`, TypeText},
		{"plain string", `[{"v":"hello"}]`, TypeText},
		{"number", `[{"v":42}]`, TypeNumber},
		{"float", `[{"v":3.14}]`, TypeNumber},
		{"boolean", `[{"v":true}]`, TypeBoolean},
		{"array", `[{"v":[1,2]}]`, TypeList},
		{"object", `[{"v":{}}]`, TypeUnknown},
		{"null", `[{"v":null}]`, TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sch, err := discoverFields(mustParse(t, tt.raw))
			if err != nil {
				t.Fatalf("discoverFields failed: %v", err)
			}
			f, ok := sch.Field("v")
			if !ok {
				t.Fatal("field v not discovered")
			}
			if f.DataType != tt.want {
				t.Errorf("DataType = %s, want %s", f.DataType, tt.want)
			}
		})
	}
}

func TestDiscoverFieldsOrder(t *testing.T) {
	raw := `[{"b":1,"a":2},{"c":3,"a":4},{"d":5}]`
	sch, err := discoverFields(mustParse(t, raw))
	if err != nil {
		t.Fatalf("discoverFields failed: %v", err)
	}

	want := []string{"b", "a", "c", "d"}
	if got := sch.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	for _, f := range sch.Fields() {
		if !f.IsIncluded {
			t.Errorf("field %s should default to included", f.Name)
		}
		if f.IsID || f.IsName {
			t.Errorf("field %s should not be designated before resolution", f.Name)
		}
	}
}

func TestDiscoverFieldsTypeUpgrade(t *testing.T) {
	t.Run("unknown upgrades to concrete", func(t *testing.T) {
		sch, err := discoverFields(mustParse(t, `[{"v":null},{"v":42}]`))
		if err != nil {
			t.Fatalf("discoverFields failed: %v", err)
		}
		f, _ := sch.Field("v")
		if f.DataType != TypeNumber {
			t.Errorf("DataType = %s, want Number after upgrade", f.DataType)
		}
	})

	t.Run("first concrete type wins", func(t *testing.T) {
		// A later conflicting sighting is accepted without reconciliation.
		sch, err := discoverFields(mustParse(t, `[{"v":42},{"v":"hello"}]`))
		if err != nil {
			t.Fatalf("discoverFields failed: %v", err)
		}
		f, _ := sch.Field("v")
		if f.DataType != TypeNumber {
			t.Errorf("DataType = %s, want Number (first inference)", f.DataType)
		}
	})
}

func TestDiscoverFieldsSamples(t *testing.T) {
	t.Run("capped unique and ordered", func(t *testing.T) {
		raw := `[{"v":"a"},{"v":"b"},{"v":"a"},{"v":"c"},{"v":"d"}]`
		sch, err := discoverFields(mustParse(t, raw))
		if err != nil {
			t.Fatalf("discoverFields failed: %v", err)
		}
		f, _ := sch.Field("v")
		want := []string{"a", "b", "c"}
		if !reflect.DeepEqual(f.SampleValues, want) {
			t.Errorf("SampleValues = %v, want %v", f.SampleValues, want)
		}
	})

	t.Run("empty strings never sampled", func(t *testing.T) {
		sch, err := discoverFields(mustParse(t, `[{"v":""},{"v":"x"}]`))
		if err != nil {
			t.Fatalf("discoverFields failed: %v", err)
		}
		f, _ := sch.Field("v")
		if !reflect.DeepEqual(f.SampleValues, []string{"x"}) {
			t.Errorf("SampleValues = %v, want [x]", f.SampleValues)
		}
	})

	t.Run("projection", func(t *testing.T) {
		long := "abcdefghijklmnopqrstuvwxyz0123456789"
		raw := `[{"n":null,"l":[1,2],"o":{"k":1},"s":"` + long + `","b":false,"num":7}]`
		sch, err := discoverFields(mustParse(t, raw))
		if err != nil {
			t.Fatalf("discoverFields failed: %v", err)
		}

		wants := map[string]string{
			"n":   "null",
			"l":   "[...]",
			"o":   "{...}",
			"s":   long[:27] + "...",
			"b":   "false",
			"num": "7",
		}
		for name, want := range wants {
			f, ok := sch.Field(name)
			if !ok {
				t.Fatalf("field %s not discovered", name)
			}
			if len(f.SampleValues) != 1 || f.SampleValues[0] != want {
				t.Errorf("field %s samples = %v, want [%q]", name, f.SampleValues, want)
			}
		}
	})
}

func TestParseRecordsFailures(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr any
	}{
		{"invalid json", `[{`, &ParseError{}},
		{"not json at all", `nonsense`, &ParseError{}},
		{"not an array", `{"a":1}`, &ValidationError{}},
		{"scalar input", `42`, &ValidationError{}},
		{"empty array", `[]`, &ValidationError{}},
		{"primitive element", `[1]`, &ValidationError{}},
		{"null element", `[null]`, &ValidationError{}},
		{"array element", `[[1,2]]`, &ValidationError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseRecords([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected an error")
			}
			switch tt.wantErr.(type) {
			case *ParseError:
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Errorf("got %T (%v), want ParseError", err, err)
				}
			case *ValidationError:
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("got %T (%v), want ValidationError", err, err)
				}
			}
		})
	}
}

func TestDiscoverFieldsNoFields(t *testing.T) {
	_, err := discoverFields(mustParse(t, `[{},{}]`))
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("got %v, want ValidationError for empty field union", err)
	}
}

func TestSchemaValidate(t *testing.T) {
	base := mustParse(t, `[{"code":"us","title":"United States"}]`)
	sch, err := discoverFields(base)
	if err != nil {
		t.Fatalf("discoverFields failed: %v", err)
	}

	if err := sch.Validate(); err == nil {
		t.Error("undesignated schema should not validate")
	}

	designated := sch.markID("code").markName("title")
	if err := designated.Validate(); err != nil {
		t.Errorf("designated schema should validate, got: %v", err)
	}

	// The original schema value must be untouched by designation.
	if _, ok := sch.IDField(); ok {
		t.Error("markID mutated the receiver schema")
	}

	if _, err := designated.exclude([]string{"code"}); err == nil {
		t.Error("excluding the ID field should fail")
	}
}
