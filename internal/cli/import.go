package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/coretravis/refwire-cli/internal/importer"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var (
	importIDField     string
	importNameField   string
	importExclude     []string
	importDatasetID   string
	importName        string
	importDescription string
	importManifestVal string
	importYes         bool
)

var importCmd = &cobra.Command{
	Use:   "import <file.json>",
	Short: "Import a JSON file as a new dataset",
	Long: `Import a JSON file as a new dataset.

The file must contain a JSON array of objects. Field names, types and sample
values are inferred from the records; you then designate which field is the
unique ID and which is the display name, either interactively or with flags.
Records missing the ID or Name value are skipped, as are duplicate IDs (the
first occurrence wins).

A manifest file can carry the designation so imports are repeatable:

  dataset_id: countries
  name: Countries
  id_field: code
  name_field: name
  exclude: [internal_notes]

Examples:
  refwire import countries.json
  refwire import countries.json --id-field code --name-field name --dataset-id countries --name Countries --yes
  refwire import countries.json --manifest countries.yaml --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

// importManifest is the YAML designation file for repeatable imports.
type importManifest struct {
	DatasetID   string   `yaml:"dataset_id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	IDField     string   `yaml:"id_field"`
	NameField   string   `yaml:"name_field"`
	Exclude     []string `yaml:"exclude"`
}

func loadManifest(path string) (importManifest, error) {
	var m importManifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return m, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return m, nil
}

func runImport(cmd *cobra.Command, args []string) error {
	filePath := args[0]
	data, err := os.ReadFile(filePath)
	if err != nil {
		return handleError(ErrFileReadError, err, "")
	}

	if importManifestVal != "" {
		m, err := loadManifest(importManifestVal)
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
		applyManifest(m)
	}

	st, err := importer.Parse(string(data))
	if err != nil {
		return handleImportError(err)
	}
	st, err = st.Discover()
	if err != nil {
		return handleImportError(err)
	}

	interactive := stdinIsTerminal() && !importYes && !isJSONOutput()
	if !isJSONOutput() {
		printSchema(st.Schema, st.TotalRecords())
	}

	opts := importer.ResolveOptions{IDField: importIDField, NameField: importNameField}
	if interactive {
		st, err = runWizard(st, opts)
		if errors.Is(err, errAborted) {
			return handleErrorMsg(ErrAborted, "import aborted", "")
		}
	} else {
		st, err = st.Resolve(opts, nil)
	}
	if err != nil {
		return handleImportError(err)
	}

	if st, err = st.Exclude(importExclude...); err != nil {
		return handleImportError(err)
	}

	id, name, desc, err := datasetIdentity(filePath, interactive)
	if err != nil {
		return handleError(ErrInvalidInput, err, "")
	}
	st, lowered, err := st.WithDataset(id, name, desc)
	if err != nil {
		return handleImportError(err)
	}
	if lowered && !isJSONOutput() {
		fmt.Println(ui.Infof("Dataset id lower-cased to %s", ui.ID(st.DatasetID)))
	}

	st, err = st.Build()
	if err != nil {
		return handleImportError(err)
	}

	if interactive {
		summary := fmt.Sprintf("Upload %d items to dataset %s?", len(st.Items), st.DatasetID)
		if st.Skipped > 0 {
			summary = fmt.Sprintf("Upload %d items to dataset %s (%d records will be skipped)?", len(st.Items), st.DatasetID, st.Skipped)
		}
		if !promptConfirm(summary) {
			return handleErrorMsg(ErrAborted, "import aborted", "")
		}
	}

	return uploadDataset(st, filePath)
}

// applyManifest fills designation inputs that were not already set by flags;
// flags win over the manifest.
func applyManifest(m importManifest) {
	if importIDField == "" {
		importIDField = m.IDField
	}
	if importNameField == "" {
		importNameField = m.NameField
	}
	if importDatasetID == "" {
		importDatasetID = m.DatasetID
	}
	if importName == "" {
		importName = m.Name
	}
	if importDescription == "" {
		importDescription = m.Description
	}
	importExclude = append(importExclude, m.Exclude...)
}

// datasetIdentity resolves the target dataset's id, name and description,
// prompting with a filename-derived suggestion when interactive.
func datasetIdentity(filePath string, interactive bool) (id, name, desc string, err error) {
	id = importDatasetID
	name = importName
	desc = importDescription

	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	if id == "" {
		if !interactive {
			return "", "", "", fmt.Errorf("--dataset-id is required in non-interactive mode")
		}
		if id, err = promptString("Dataset id:", slug.Make(base)); err != nil {
			return "", "", "", err
		}
	}
	if name == "" {
		if !interactive {
			return "", "", "", fmt.Errorf("--name is required in non-interactive mode")
		}
		if name, err = promptString("Dataset name:", base); err != nil {
			return "", "", "", err
		}
	}
	if desc == "" && interactive {
		if desc, err = promptString("Description (optional):", ""); err != nil {
			return "", "", "", err
		}
	}
	return id, name, desc, nil
}

func init() {
	importCmd.Flags().StringVar(&importIDField, "id-field", "", "Field holding the unique item ID")
	importCmd.Flags().StringVar(&importNameField, "name-field", "", "Field holding the item display name")
	importCmd.Flags().StringSliceVar(&importExclude, "exclude", nil, "Fields to leave out of item data (repeatable)")
	importCmd.Flags().StringVar(&importDatasetID, "dataset-id", "", "Identifier for the new dataset")
	importCmd.Flags().StringVar(&importName, "name", "", "Display name for the new dataset")
	importCmd.Flags().StringVar(&importDescription, "description", "", "Description for the new dataset")
	importCmd.Flags().StringVar(&importManifestVal, "manifest", "", "YAML manifest carrying the designation")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "Skip all prompts; fail when required inputs are missing")

	rootCmd.AddCommand(importCmd)
}
