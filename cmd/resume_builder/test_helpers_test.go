package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const completeCvJSON = `{
  "personal": {
    "fullName": "Jane Doe",
    "email": "jane@example.com",
    "phone": "+1 555 0100",
    "location": "Berlin"
  },
  "targetRole": "Backend Engineer",
  "skills": ["Go", "PostgreSQL"],
  "experiences": [
    {"id": "exp_1", "jobTitle": "Developer", "companyName": "Acme", "startDate": "2020", "endDate": "Present", "description": "Built APIs."}
  ],
  "education": [],
  "projects": []
}`

// resetFlags restores every flag to its default so commands can run repeatedly in one process
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the CLI in-process and returns its stdout and stderr
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	_, err := rootCmd.ExecuteC()
	return stdout.String(), stderr.String(), err
}

// writeFile writes content into a temp dir and returns its path
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolateEnv clears the variables that would otherwise leak a developer's setup into config.Load
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_BACKEND", "LLM_PROVIDER", "GEMINI_API_KEY", "ANTHROPIC_API_KEY",
		"SHARE_BACKEND", "OUTPUT_DIR", "MINIO_ENDPOINT", "CHROME_PATH", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}
