package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/coretravis/refwire-cli/internal/importer"
	"github.com/coretravis/refwire-cli/internal/ui"
)

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

// promptString asks for one line of input, returning the default when the
// user just presses enter.
func promptString(label, defaultValue string) (string, error) {
	if defaultValue != "" {
		fmt.Printf("%s %s ", label, ui.Hint("["+defaultValue+"]"))
	} else {
		fmt.Printf("%s ", label)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue, nil
	}
	return line, nil
}

// promptSecret asks for input with terminal echo disabled.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s ", label)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func promptConfirm(message string) bool {
	if !stdinIsTerminal() {
		return false
	}
	fmt.Printf("%s %s ", message, ui.Hint("[y/N]"))
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// promptDesignator is the interactive importer.Designator used by the
// import wizard.
type promptDesignator struct{}

// ChooseAction presents the wizard menu.
func (promptDesignator) ChooseAction(sch importer.Schema) (importer.Action, error) {
	idField, hasID := sch.IDField()
	nameField, hasName := sch.NameField()

	fmt.Println()
	fmt.Println(ui.Header("Next step:"))
	if hasID {
		fmt.Printf("  1) ID field      %s\n", ui.ID(idField))
	} else {
		fmt.Printf("  1) ID field      %s\n", ui.Hint("(not set)"))
	}
	if hasName {
		fmt.Printf("  2) Name field    %s\n", ui.ID(nameField))
	} else {
		fmt.Printf("  2) Name field    %s\n", ui.Hint("(not set)"))
	}
	fmt.Println("  3) Exclude a field")
	fmt.Println("  4) Upload")
	fmt.Println("  5) Abort")

	choice, err := promptString("Select:", "4")
	if err != nil {
		return importer.ActionAbort, err
	}
	switch choice {
	case "1":
		return importer.ActionSetID, nil
	case "2":
		return importer.ActionSetName, nil
	case "3":
		return importer.ActionToggleField, nil
	case "4":
		return importer.ActionUpload, nil
	default:
		return importer.ActionAbort, nil
	}
}

// ChooseField lists the discovered fields and asks for one by number or name.
func (promptDesignator) ChooseField(role string, fields []importer.Field) (string, error) {
	fmt.Printf("\n%s\n", ui.Header(fmt.Sprintf("Choose the %s field:", role)))
	for i, f := range fields {
		samples := ""
		if len(f.SampleValues) > 0 {
			samples = ui.Hint(strings.Join(f.SampleValues, ", "))
		}
		fmt.Printf("  %2d) %-20s %-8s %s\n", i+1, f.Name, ui.Muted.Render(string(f.DataType)), samples)
	}

	answer, err := promptString("Field:", "")
	if err != nil {
		return "", err
	}
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(fields) {
		return fields[n-1].Name, nil
	}
	return answer, nil
}

// Confirm asks a yes/no question.
func (promptDesignator) Confirm(prompt string) (bool, error) {
	return promptConfirm(prompt), nil
}
