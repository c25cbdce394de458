package runner

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Helper functions
func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(content)
}

func TestExecute(t *testing.T) {
	tests := []struct {
		name          string
		setupConfig   func(t *testing.T, tmpDir string) *Config
		wantExitCode  int
		wantStatus    Status
		wantError     bool
		errorContains string
		checkResult   func(t *testing.T, tmpDir string, result *Result)
	}{
		{
			name: "successful echo command",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "echo",
					Args:    []string{"hello world"},
				}
			},
			wantExitCode: 0,
			wantStatus:   StatusSuccess,
			checkResult: func(t *testing.T, tmpDir string, result *Result) {
				if result.Stdout != "hello world\n" {
					t.Errorf("stdout mismatch\ngot:  %q\nwant: %q", result.Stdout, "hello world\n")
				}
				if result.Stderr != "" {
					t.Errorf("expected empty stderr, got %q", result.Stderr)
				}
			},
		},
		{
			name: "prompt fed on stdin",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "cat",
					Args:    []string{},
					Stdin:   "the prompt text\nwith two lines",
				}
			},
			wantExitCode: 0,
			wantStatus:   StatusSuccess,
			checkResult: func(t *testing.T, tmpDir string, result *Result) {
				if result.Stdout != "the prompt text\nwith two lines" {
					t.Errorf("stdin was not piped through, got %q", result.Stdout)
				}
			},
		},
		{
			name: "command with non-zero exit code",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "sh",
					Args:    []string{"-c", "exit 42"},
				}
			},
			wantExitCode: 42,
			wantStatus:   StatusFailure,
		},
		{
			name: "command writes to stderr",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "sh",
					Args:    []string{"-c", "echo 'error message' >&2"},
				}
			},
			wantExitCode: 0,
			wantStatus:   StatusSuccess,
			checkResult: func(t *testing.T, tmpDir string, result *Result) {
				if result.Stderr != "error message\n" {
					t.Errorf("expected stderr capture, got %q", result.Stderr)
				}
			},
		},
		{
			name: "runs in the working directory",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "pwd",
					Dir:     tmpDir,
				}
			},
			wantExitCode: 0,
			wantStatus:   StatusSuccess,
			checkResult: func(t *testing.T, tmpDir string, result *Result) {
				got := strings.TrimSpace(result.Stdout)
				want, _ := filepath.EvalSymlinks(tmpDir)
				gotResolved, _ := filepath.EvalSymlinks(got)
				if gotResolved != want {
					t.Errorf("expected pwd %q, got %q", want, got)
				}
			},
		},
		{
			name: "missing working directory",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "echo",
					Dir:     filepath.Join(tmpDir, "does-not-exist"),
				}
			},
			wantError:     true,
			errorContains: "working directory",
		},
		{
			name: "missing binary",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command: "summon-no-such-binary-9c41aa",
				}
			},
			wantError:     true,
			errorContains: "failed to start command",
		},
		{
			name: "transcripts teed to files",
			setupConfig: func(t *testing.T, tmpDir string) *Config {
				return &Config{
					Command:    "sh",
					Args:       []string{"-c", "echo out; echo err >&2"},
					StdoutFile: filepath.Join(tmpDir, "stdout.log"),
					StderrFile: filepath.Join(tmpDir, "stderr.log"),
				}
			},
			wantExitCode: 0,
			wantStatus:   StatusSuccess,
			checkResult: func(t *testing.T, tmpDir string, result *Result) {
				if result.Stdout != "out\n" {
					t.Errorf("buffer capture lost, got %q", result.Stdout)
				}
				if got := readFile(t, filepath.Join(tmpDir, "stdout.log")); got != "out\n" {
					t.Errorf("stdout transcript mismatch, got %q", got)
				}
				if got := readFile(t, filepath.Join(tmpDir, "stderr.log")); got != "err\n" {
					t.Errorf("stderr transcript mismatch, got %q", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			config := tt.setupConfig(t, tmpDir)

			result, err := Execute(config)

			if tt.wantError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errorContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ExitCode != tt.wantExitCode {
				t.Errorf("exit code = %d, want %d", result.ExitCode, tt.wantExitCode)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", result.Status, tt.wantStatus)
			}
			if result.Duration < 0 {
				t.Errorf("negative duration %v", result.Duration)
			}
			if tt.checkResult != nil {
				tt.checkResult(t, tmpDir, result)
			}
		})
	}
}
