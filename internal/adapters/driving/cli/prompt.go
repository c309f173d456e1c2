package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/pileus-cli/internal/adapters/driving/form"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
)

// stdinIsTerminal reports whether prompts can be shown. Tests replace it.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// prompter reads answers from the command input.
// One prompter must be used per command run so buffered input is not lost.
type prompter struct {
	in  *bufio.Reader
	out io.Writer

	// fd is the terminal passwords are read from without echo, or -1.
	fd int
}

func newPrompter(cmd *cobra.Command) *prompter {
	in := cmd.InOrStdin()
	p := &prompter{
		in:  bufio.NewReader(in),
		out: cmd.OutOrStdout(),
		fd:  -1,
	}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
	}
	return p
}

// line prints label and reads one trimmed line.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	return readLine(p.in)
}

// password reads a line without echo when the input is a terminal.
func (p *prompter) password(label string) (string, error) {
	if p.fd < 0 {
		return p.line(label)
	}

	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// ask prompts for f until the answer passes its check.
func (p *prompter) ask(f form.Field, answers form.Answers) (string, error) {
	for {
		input, err := p.line(f.Label(answers))
		if err != nil {
			return "", err
		}
		value, err := f.Check(input, answers)
		if err == nil {
			return value, nil
		}
		fmt.Fprintf(p.out, "Invalid input: %s\n", strings.TrimSuffix(err.Error(), ": "+domain.ErrInvalidInput.Error()))
	}
}

// confirm asks a y/n question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) bool {
	answer, err := p.line(question + " (y/n): ")
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// errNoInput is returned when the input ends before a question is answered.
var errNoInput = errors.New("no input")

// readLine reads one line. A final line without a newline is returned as is.
func readLine(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if input == "" {
			return "", errNoInput
		}
	}
	return strings.TrimSpace(input), nil
}

// collect fills answers for fields.
//
// When every required field already has an answer, nothing is prompted:
// missing booleans default to "0" and missing optional text to "". Otherwise
// the remaining fields are prompted in order, which needs a terminal.
func collect(p *prompter, fields []form.Field, answers form.Answers) error {
	if !needsPrompt(fields, answers) {
		for _, f := range fields {
			v, ok := answers[f.Key]
			if !ok && f.Kind == form.Bool {
				v = "0"
			}
			checked, err := f.Check(v, answers)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Key, err)
			}
			answers[f.Key] = checked
		}
		return nil
	}

	if !stdinIsTerminal() {
		return fmt.Errorf("missing %s (pass it as a flag or run in a terminal): %w",
			strings.Join(missingKeys(fields, answers), ", "), domain.ErrInvalidInput)
	}

	for _, f := range fields {
		if v, ok := answers[f.Key]; ok {
			checked, err := f.Check(v, answers)
			if err != nil {
				return fmt.Errorf("%s: %w", f.Key, err)
			}
			answers[f.Key] = checked
			continue
		}
		v, err := p.ask(f, answers)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Key, err)
		}
		answers[f.Key] = v
	}
	return nil
}

func needsPrompt(fields []form.Field, answers form.Answers) bool {
	return len(missingKeys(fields, answers)) > 0
}

// missingKeys returns required fields without an answer.
func missingKeys(fields []form.Field, answers form.Answers) []string {
	var keys []string
	for _, f := range fields {
		if _, ok := answers[f.Key]; ok {
			continue
		}
		if f.Kind == form.Choice || (f.Kind == form.Text && !f.IsOptional(answers)) {
			keys = append(keys, f.Key)
		}
	}
	return keys
}

// maskSecret shows the first and last four characters of long values.
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
