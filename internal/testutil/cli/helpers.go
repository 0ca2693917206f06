package cli

import (
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/trtodo/internal/models"
)

// ParseJSON decodes a --json result and fails unless it reports success.
// The "success" key is left in the map.
func ParseJSON(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	result := decodeObject(t, output)
	if ok, _ := result["success"].(bool); !ok {
		t.Fatalf("Expected a successful result, got: %s", output)
	}
	return result
}

// ErrorBody is the "error" object of a failed --json command
type ErrorBody struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// ParseJSONError decodes a failed --json result
func ParseJSONError(t *testing.T, output string) ErrorBody {
	t.Helper()

	var result struct {
		Success bool       `json:"success"`
		Error   *ErrorBody `json:"error"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if result.Success || result.Error == nil {
		t.Fatalf("Expected an error result, got: %s", output)
	}
	return *result.Error
}

// ParseTask decodes the "task" field of a --json result
func ParseTask(t *testing.T, output string) models.Task {
	t.Helper()

	var result struct {
		Success bool         `json:"success"`
		Task    *models.Task `json:"task"`
	}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	if !result.Success || result.Task == nil {
		t.Fatalf("Expected a task result, got: %s", output)
	}
	return *result.Task
}

func decodeObject(t *testing.T, output string) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}
	return result
}

// SetupCobraCommand sets args and silences cobra's own usage and error
// printing; the formatter already reports failures.
func SetupCobraCommand(cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
}
