// Package context assembles the free-form metadata an orchestrator attaches
// to an invocation (task ids, work-package names, retry counters). Sources
// merge with fixed precedence: env vars, then file, then JSON string, then
// explicit key=value pairs.
package context

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"strconv"
	"strings"
)

// EnvPrefix is the environment variable namespace for run metadata.
const EnvPrefix = "SUMMON_CONTEXT"

// ParseKV parses a key=value pair, attempting type inference for the value
func ParseKV(kvPair string) (string, any, error) {
	parts := strings.SplitN(kvPair, "=", 2)
	if len(parts) != 2 {
		return "", nil, fmt.Errorf("invalid format, expected key=value: %s", kvPair)
	}

	key := strings.TrimSpace(parts[0])
	if key == "" {
		return "", nil, fmt.Errorf("empty key in key=value pair")
	}

	valueStr := strings.TrimSpace(parts[1])

	// Integer first, so "1" does not become boolean true.
	if intVal, err := strconv.Atoi(valueStr); err == nil {
		return key, intVal, nil
	}

	if floatVal, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return key, floatVal, nil
	}

	if valueStr == "true" || valueStr == "false" {
		boolVal, _ := strconv.ParseBool(valueStr)
		return key, boolVal, nil
	}

	return key, valueStr, nil
}

// ParseJSON parses a JSON string into a map or other structure
func ParseJSON(jsonStr string) (any, error) {
	var result any
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return result, nil
}

// ParseFile reads and parses JSON from a file
func ParseFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read context file: %w", err)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("invalid JSON in file: %w", err)
	}
	return result, nil
}

// ParseEnvWithPrefix parses environment variables under the given prefix.
// PREFIX itself holds a JSON object; PREFIX_SOME_KEY holds one value with
// type inference applied.
func ParseEnvWithPrefix(prefix string) map[string]any {
	context := make(map[string]any)

	if jsonStr := os.Getenv(prefix); jsonStr != "" {
		if parsed, err := ParseJSON(jsonStr); err == nil {
			if m, ok := parsed.(map[string]any); ok {
				maps.Copy(context, m)
			}
		}
	}

	envPrefix := prefix + "_"
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			parts := strings.SplitN(env, "=", 2)
			if len(parts) == 2 {
				key := strings.ToLower(strings.TrimPrefix(parts[0], envPrefix))
				_, value, _ := ParseKV(key + "=" + parts[1])
				context[key] = value
			}
		}
	}

	if len(context) == 0 {
		return nil
	}
	return context
}

// MergeContexts merges multiple context sources; later sources override
// earlier ones.
func MergeContexts(contexts ...any) any {
	result := make(map[string]any)

	for _, ctx := range contexts {
		if ctx == nil {
			continue
		}

		switch v := ctx.(type) {
		case map[string]any:
			maps.Copy(result, v)
		default:
			// Non-object JSON (array or primitive) is passed through as-is
			// when nothing else was merged.
			if len(result) == 0 {
				return v
			}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// Build assembles the final metadata from all sources under EnvPrefix.
func Build(jsonStr string, kvPairs []string, filePath string) (any, error) {
	return BuildWithPrefix(EnvPrefix, jsonStr, kvPairs, filePath)
}

// BuildWithPrefix assembles metadata with a custom env var prefix, so the
// upload layer can reuse the same precedence rules for its own config.
func BuildWithPrefix(envPrefix, jsonStr string, kvPairs []string, filePath string) (any, error) {
	var contexts []any

	// 1. Environment variables (lowest priority)
	if envCtx := ParseEnvWithPrefix(envPrefix); envCtx != nil {
		contexts = append(contexts, envCtx)
	}

	// 2. File
	if filePath != "" {
		fileCtx, err := ParseFile(filePath)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, fileCtx)
	}

	// 3. JSON string
	if jsonStr != "" {
		jsonCtx, err := ParseJSON(jsonStr)
		if err != nil {
			return nil, err
		}
		contexts = append(contexts, jsonCtx)
	}

	// 4. Key-value pairs (highest priority)
	if len(kvPairs) > 0 {
		kvCtx := make(map[string]any)
		for _, kv := range kvPairs {
			key, value, err := ParseKV(kv)
			if err != nil {
				return nil, err
			}
			kvCtx[key] = value
		}
		contexts = append(contexts, kvCtx)
	}

	return MergeContexts(contexts...), nil
}
