package importer

// Item is the per-record upload unit, keyed in the payload mapping by its
// stringified ID.
type Item struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Data       map[string]any `json:"data"`
	IsArchived bool           `json:"isArchived"`
}

// buildItems constructs the upload payload from the resolved schema and the
// record sequence. Records are dropped (and counted) when the designated ID
// or Name value is null or absent, when the stringified ID is empty, or when
// the ID was already claimed by an earlier record — the first occurrence
// wins. Data carries only included fields the record actually has; missing
// keys are omitted rather than defaulted to null.
func buildItems(sch Schema, records []Record, idField, nameField string) (map[string]Item, int) {
	items := make(map[string]Item, len(records))
	skipped := 0

	for _, rec := range records {
		idVal, idOK := rec.Get(idField)
		nameVal, nameOK := rec.Get(nameField)
		if !idOK || idVal == nil || !nameOK || nameVal == nil {
			skipped++
			continue
		}

		id := stringify(idVal)
		if id == "" {
			skipped++
			continue
		}
		if _, dup := items[id]; dup {
			skipped++
			continue
		}

		data := make(map[string]any)
		for _, f := range sch.Fields() {
			if !f.IsIncluded {
				continue
			}
			if v, ok := rec.Get(f.Name); ok {
				data[f.Name] = v
			}
		}

		items[id] = Item{
			ID:   id,
			Name: stringify(nameVal),
			Data: data,
		}
	}

	return items, skipped
}
