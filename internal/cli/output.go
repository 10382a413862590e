package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// HumanReadable is implemented by results with a custom terminal rendering
type HumanReadable interface {
	Human() string
}

// Result reports a completed action on a single entity
type Result struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func (r Result) GetID() int { return r.ID }

func (r Result) Human() string { return "✓ " + r.Message }

// Resultf builds a Result
func Resultf(id int, format string, args ...any) Result {
	return Result{ID: id, Message: fmt.Sprintf(format, args...)}
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		switch v := data.(type) {
		case interface{ GetID() int }:
			fmt.Printf("%d\n", v.GetID())
			return nil
		case interface{ GetIDs() []int }:
			for _, id := range v.GetIDs() {
				fmt.Printf("%d\n", id)
			}
			return nil
		}
	}

	if f.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	fmt.Fprintf(os.Stderr, "❌ Error: %s\n", message)
	if suggestion != "" {
		fmt.Fprintf(os.Stderr, "💡 Suggestion: %s\n", suggestion)
	}
	return nil
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case HumanReadable:
		out := v.Human()
		if out == "" {
			return nil
		}
		if out[len(out)-1] != '\n' {
			out += "\n"
		}
		_, err := fmt.Print(out)
		return err
	case string:
		fmt.Println(v)
		return nil
	}
	fmt.Printf("%+v\n", data)
	return nil
}
