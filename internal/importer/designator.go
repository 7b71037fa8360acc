package importer

// Action is a step chosen in the interactive import wizard.
type Action string

const (
	ActionSetID       Action = "set-id"
	ActionSetName     Action = "set-name"
	ActionToggleField Action = "toggle-field"
	ActionUpload      Action = "upload"
	ActionAbort       Action = "abort"
)

// Designator supplies field designation decisions to the pipeline. The
// engine never talks to a terminal: a prompt-backed designator and a
// scripted one driven by flags satisfy the same interface.
type Designator interface {
	// ChooseAction picks the next wizard step given the current schema.
	ChooseAction(sch Schema) (Action, error)

	// ChooseField picks the field for a role (RoleID or RoleName).
	ChooseField(role string, fields []Field) (string, error)

	// Confirm answers a yes/no question.
	Confirm(prompt string) (bool, error)
}

// StaticDesignator is a non-interactive Designator backed by fixed answers.
// It is used when designation comes from flags or a manifest, and in tests.
type StaticDesignator struct {
	ID     string
	Name   string
	Accept bool
}

// ChooseAction always proceeds to upload.
func (s StaticDesignator) ChooseAction(Schema) (Action, error) {
	return ActionUpload, nil
}

// ChooseField returns the preconfigured field for the role. An empty answer
// is a ResolutionError, matching the behavior of a user aborting the prompt.
func (s StaticDesignator) ChooseField(role string, _ []Field) (string, error) {
	var name string
	switch role {
	case RoleID:
		name = s.ID
	case RoleName:
		name = s.Name
	}
	if name == "" {
		return "", &ResolutionError{Role: role}
	}
	return name, nil
}

// Confirm returns the preconfigured answer.
func (s StaticDesignator) Confirm(string) (bool, error) {
	return s.Accept, nil
}
