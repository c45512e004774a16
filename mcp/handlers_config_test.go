package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/prexpr/domain"
	mcptypes "github.com/mark3labs/mcp-go/mcp"
)

func TestHandleSimplifyExpression_RespectsConfig(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, ".prexpr.toml")
	config := `[simplify]
mode = "basic"

[variables]
Rate = 3
`
	if err := os.WriteFile(configPath, []byte(config), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	handlers := NewHandlerSet(NewDependencies(nil, configPath))
	request := mcptypes.CallToolRequest{
		Params: mcptypes.CallToolParams{
			Name: "simplify_expression",
			Arguments: map[string]interface{}{
				"expression": "* 1 + Rate rate",
			},
		},
	}

	result, err := handlers.HandleSimplifyExpression(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected successful MCP tool result, got error result: %+v", result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatal("expected tool result content")
	}

	textContent, ok := mcptypes.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}

	var response domain.ExpressionResult
	if err := json.Unmarshal([]byte(textContent.Text), &response); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}

	// basic mode keeps "* 1"; only the configured, case sensitive name is bound
	if response.SimplifiedPrefix != "* 1 + 3 rate" {
		t.Errorf("expected simplified prefix %q, got %q", "* 1 + 3 rate", response.SimplifiedPrefix)
	}
	if len(response.FreeVariables) != 1 || response.FreeVariables[0] != "rate" {
		t.Errorf("expected free variables [rate], got %v", response.FreeVariables)
	}
}

func TestHandleEvaluateExpression_CallBindingsOverrideConfig(t *testing.T) {
	cfgDeps := NewDependencies(nil, "")
	cfgDeps.config.Variables = map[string]int{"x": 1, "y": 2}
	handlers := NewHandlerSet(cfgDeps)

	request := mcptypes.CallToolRequest{
		Params: mcptypes.CallToolParams{
			Name: "evaluate_expression",
			Arguments: map[string]interface{}{
				"expression": "+ x y",
				"bindings":   map[string]interface{}{"x": float64(10)},
			},
		},
	}

	result, err := handlers.HandleEvaluateExpression(context.Background(), request)
	if err != nil {
		t.Fatalf("unexpected handler error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected successful MCP tool result, got error result: %+v", result.Content)
	}

	if len(result.Content) == 0 {
		t.Fatal("expected tool result content")
	}
	textContent, ok := mcptypes.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	var response struct {
		Value int `json:"value"`
	}
	if err := json.Unmarshal([]byte(textContent.Text), &response); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if response.Value != 12 {
		t.Errorf("expected value 12, got %d", response.Value)
	}
}
