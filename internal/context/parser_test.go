package context

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseKV(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantKey   string
		wantValue any
		wantErr   bool
	}{
		{
			name:      "simple string",
			input:     "task=WP03",
			wantKey:   "task",
			wantValue: "WP03",
		},
		{
			name:      "integer value",
			input:     "attempt=2",
			wantKey:   "attempt",
			wantValue: 2,
		},
		{
			name:      "float value",
			input:     "budget=1.5",
			wantKey:   "budget",
			wantValue: 1.5,
		},
		{
			name:      "boolean true",
			input:     "retry=true",
			wantKey:   "retry",
			wantValue: true,
		},
		{
			name:      "string with spaces",
			input:     "feature=user onboarding flow",
			wantKey:   "feature",
			wantValue: "user onboarding flow",
		},
		{
			name:      "value containing equals",
			input:     "query=a=b",
			wantKey:   "query",
			wantValue: "a=b",
		},
		{
			name:    "missing equals",
			input:   "not-a-pair",
			wantErr: true,
		},
		{
			name:    "empty key",
			input:   "=value",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := ParseKV(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if key != tt.wantKey {
				t.Errorf("key = %q, want %q", key, tt.wantKey)
			}
			if !reflect.DeepEqual(value, tt.wantValue) {
				t.Errorf("value = %v (%T), want %v (%T)", value, value, tt.wantValue, tt.wantValue)
			}
		})
	}
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON(`{"task":"WP03","attempt":2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected map, got %T", got)
	}
	if m["task"] != "WP03" {
		t.Errorf("task = %v, want WP03", m["task"])
	}

	if _, err := ParseJSON("{broken"); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "context.json")
	if err := os.WriteFile(path, []byte(`{"feature":"onboarding"}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got.(map[string]any)
	if m["feature"] != "onboarding" {
		t.Errorf("feature = %v, want onboarding", m["feature"])
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMergeContexts(t *testing.T) {
	merged := MergeContexts(
		map[string]any{"a": 1, "b": "low"},
		nil,
		map[string]any{"b": "high", "c": true},
	)

	want := map[string]any{"a": 1, "b": "high", "c": true}
	if !reflect.DeepEqual(merged, want) {
		t.Errorf("merged = %v, want %v", merged, want)
	}

	if MergeContexts(nil, nil) != nil {
		t.Error("expected nil for no sources")
	}

	// Non-object JSON passes through when nothing else merged.
	if got := MergeContexts([]any{"x"}); !reflect.DeepEqual(got, []any{"x"}) {
		t.Errorf("expected passthrough of non-object, got %v", got)
	}
}

func TestBuildPrecedence(t *testing.T) {
	t.Setenv(EnvPrefix+"_TASK", "from-env")
	t.Setenv(EnvPrefix+"_ATTEMPT", "1")

	dir := t.TempDir()
	path := filepath.Join(dir, "ctx.json")
	if err := os.WriteFile(path, []byte(`{"task":"from-file","extra":"f"}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	got, err := Build(`{"task":"from-json"}`, []string{"task=from-kv"}, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := got.(map[string]any)
	if m["task"] != "from-kv" {
		t.Errorf("kv pairs must win, got task=%v", m["task"])
	}
	if m["attempt"] != 1 {
		t.Errorf("env value lost, got attempt=%v", m["attempt"])
	}
	if m["extra"] != "f" {
		t.Errorf("file value lost, got extra=%v", m["extra"])
	}
}

func TestBuildWithPrefixEnvJSON(t *testing.T) {
	t.Setenv("SUMMON_UPLOAD_CONFIG", `{"bucket":"transcripts"}`)
	t.Setenv("SUMMON_UPLOAD_CONFIG_SECURE", "false")

	got, err := BuildWithPrefix("SUMMON_UPLOAD_CONFIG", "", nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := got.(map[string]any)
	if m["bucket"] != "transcripts" {
		t.Errorf("bucket = %v, want transcripts", m["bucket"])
	}
	if m["secure"] != false {
		t.Errorf("secure = %v (%T), want false", m["secure"], m["secure"])
	}
}
