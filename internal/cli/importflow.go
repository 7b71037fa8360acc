package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coretravis/refwire-cli/internal/history"
	"github.com/coretravis/refwire-cli/internal/importer"
	"github.com/coretravis/refwire-cli/internal/refwire"
	"github.com/coretravis/refwire-cli/internal/ui"
)

// handleImportError maps pipeline errors to stable codes.
func handleImportError(err error) error {
	var parseErr *importer.ParseError
	var validationErr *importer.ValidationError
	var notFoundErr *importer.FieldNotFoundError
	var resolutionErr *importer.ResolutionError

	switch {
	case errors.As(err, &parseErr):
		return handleError(ErrParseFailed, err, "The input must be a JSON array of objects")
	case errors.As(err, &notFoundErr):
		suggestion := ""
		if len(notFoundErr.Available) > 0 {
			suggestion = "Available fields: " + strings.Join(notFoundErr.Available, ", ")
		}
		return handleError(ErrFieldNotFound, err, suggestion)
	case errors.As(err, &resolutionErr):
		return handleError(ErrResolutionFailed, err, "Use --id-field and --name-field, or run interactively")
	case errors.As(err, &validationErr):
		return handleError(ErrValidationFailed, err, "")
	default:
		return handleError(ErrInternal, err, "")
	}
}

// printSchema renders the discovered schema for review.
func printSchema(sch importer.Schema, total int) {
	fmt.Println(ui.Header(fmt.Sprintf("Discovered %d fields across %d records:", sch.Len(), total)))
	tbl := ui.NewTable(4)
	for _, f := range sch.Fields() {
		role := ""
		switch {
		case f.IsID:
			role = ui.AccentBold.Render("id")
		case f.IsName:
			role = ui.AccentBold.Render("name")
		case !f.IsIncluded:
			role = ui.Muted.Render("excluded")
		}
		samples := ""
		if len(f.SampleValues) > 0 {
			samples = ui.Hint(strings.Join(f.SampleValues, ", "))
		}
		tbl.AddRow(f.Name, string(f.DataType), role, samples)
	}
	fmt.Print(tbl.String())
}

// runWizard drives the interactive designation loop until the user chooses
// to upload or abort. Fields already supplied through opts stay chosen.
func runWizard(st importer.ImportState, opts importer.ResolveOptions) (importer.ImportState, error) {
	d := promptDesignator{}
	for {
		action, err := d.ChooseAction(st.Schema)
		if err != nil {
			return st, err
		}
		switch action {
		case importer.ActionSetID, importer.ActionSetName:
			role := importer.RoleID
			if action == importer.ActionSetName {
				role = importer.RoleName
			}
			name, err := d.ChooseField(role, st.Schema.Fields())
			if err != nil {
				return st, err
			}
			next, err := st.Designate(role, name)
			if err != nil {
				fmt.Println(ui.Errorf("%v", err))
				continue
			}
			st = next

		case importer.ActionToggleField:
			name, err := d.ChooseField("excluded", st.Schema.Fields())
			if err != nil {
				return st, err
			}
			next, err := st.Exclude(name)
			if err != nil {
				fmt.Println(ui.Errorf("%v", err))
				continue
			}
			st = next

		case importer.ActionUpload:
			// Carry wizard choices into resolution; the designator fills
			// whatever is still missing.
			if id, ok := st.Schema.IDField(); ok {
				opts.IDField = id
			}
			if name, ok := st.Schema.NameField(); ok {
				opts.NameField = name
			}
			return st.Resolve(opts, d)

		case importer.ActionAbort:
			return st, errAborted
		}
	}
}

var errAborted = errors.New("import aborted")

// buildCreateRequest converts a built import state into the bulk-create
// payload.
func buildCreateRequest(st importer.ImportState) refwire.CreateDatasetRequest {
	idField, _ := st.Schema.IDField()
	nameField, _ := st.Schema.NameField()

	fields := make([]refwire.DatasetField, 0, st.Schema.Len())
	for _, f := range st.Schema.Fields() {
		fields = append(fields, refwire.DatasetField{
			Name:         f.Name,
			DataType:     string(f.DataType),
			IsID:         f.IsID,
			IsName:       f.IsName,
			IsRequired:   f.IsID || f.IsName,
			IsIncluded:   f.IsIncluded,
			SampleValues: f.SampleValues,
		})
	}

	items := make(map[string]refwire.Item, len(st.Items))
	for id, it := range st.Items {
		items[id] = refwire.Item{
			ID:         it.ID,
			Name:       it.Name,
			Data:       it.Data,
			IsArchived: it.IsArchived,
		}
	}

	return refwire.CreateDatasetRequest{
		ID:          st.DatasetID,
		Name:        st.DatasetName,
		Description: st.Description,
		IDField:     idField,
		NameField:   nameField,
		Fields:      fields,
		Items:       items,
	}
}

// uploadDataset performs the create call, records history, and reports the
// outcome. Recording failures warn but never fail an upload that succeeded.
func uploadDataset(st importer.ImportState, source string) error {
	req := buildCreateRequest(st)

	spinner := newNetworkSpinner(fmt.Sprintf("Uploading %d items", len(req.Items)))
	dataset, err := apiClient().CreateDataset(context.Background(), req)
	spinner.Stop()
	if err != nil {
		return handleAPIError(err)
	}

	if histErr := recordImport(st, source); histErr != nil && !isJSONOutput() {
		fmt.Println(ui.Warningf("Could not record import history: %v", histErr))
	}

	if isJSONOutput() {
		outputSuccess(dataset, &Meta{Count: len(req.Items), Skipped: st.Skipped})
		return nil
	}
	fmt.Println(ui.Successf("Created dataset %s with %d items", ui.ID(dataset.ID), len(req.Items)))
	if st.Skipped > 0 {
		fmt.Println(ui.Warningf("Skipped %d of %d records (missing or duplicate ID/Name)", st.Skipped, st.TotalRecords()))
	}
	return nil
}

func recordImport(st importer.ImportState, source string) error {
	store, err := history.Open(history.DefaultPath())
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(history.Entry{
		DatasetID:   st.DatasetID,
		DatasetName: st.DatasetName,
		Source:      source,
		Items:       len(st.Items),
		Skipped:     st.Skipped,
	})
}
