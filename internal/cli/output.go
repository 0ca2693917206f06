package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool

	// Out and ErrOut default to os.Stdout and os.Stderr
	Out    io.Writer
	ErrOut io.Writer
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// NewFormatter reads --json and --quiet from cmd and writes to its streams
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) stdout() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return os.Stdout
}

func (f *OutputFormatter) stderr() io.Writer {
	if f.ErrOut != nil {
		return f.ErrOut
	}
	return os.Stderr
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Quiet {
		// Extract ID if possible
		if idGetter, ok := data.(interface{ GetID() int }); ok {
			_, err := fmt.Fprintf(f.stdout(), "%d\n", idGetter.GetID())
			return err
		}
	}

	if f.JSON {
		return f.Result(map[string]interface{}{"data": data})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Result writes fields as a JSON object with "success": true added
func (f *OutputFormatter) Result(fields map[string]interface{}) error {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["success"] = true
	return json.NewEncoder(f.stdout()).Encode(out)
}

// Println writes a human-readable line unless quiet mode is on
func (f *OutputFormatter) Println(a ...interface{}) {
	if f.Quiet {
		return
	}
	_, _ = fmt.Fprintln(f.stdout(), a...)
}

// Printf writes human-readable text unless quiet mode is on
func (f *OutputFormatter) Printf(format string, a ...interface{}) {
	if f.Quiet {
		return
	}
	_, _ = fmt.Fprintf(f.stdout(), format, a...)
}

// ID writes a bare id, the quiet mode output
func (f *OutputFormatter) ID(id int) {
	_, _ = fmt.Fprintf(f.stdout(), "%d\n", id)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]interface{}{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.stdout()).Encode(map[string]interface{}{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	if _, err := fmt.Fprintf(f.stderr(), "Error: %s\n", message); err != nil {
		return err
	}
	if suggestion != "" {
		_, err := fmt.Fprintf(f.stderr(), "Suggestion: %s\n", suggestion)
		return err
	}
	return nil
}

// Fail reports err and returns it wrapped with the matching exit code
func (f *OutputFormatter) Fail(err error, suggestion string) error {
	code, label := Classify(err)
	_ = f.ErrorWithSuggestion(label, err.Error(), suggestion)
	return Exit(code, err)
}

// Usage reports a usage problem and returns it with ExitUsage
func (f *OutputFormatter) Usage(err error, suggestion string) error {
	_ = f.ErrorWithSuggestion("USAGE_ERROR", err.Error(), suggestion)
	return Exit(ExitUsage, err)
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data interface{}) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.stdout(), s.String())
		return err
	}
	_, err := fmt.Fprintf(f.stdout(), "%+v\n", data)
	return err
}
