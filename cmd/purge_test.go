package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfirmPurgePrompt(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "confirmed", input: "Y\n", want: true},
		{name: "confirmed without newline", input: "Y", want: true},
		{name: "lowercase rejected", input: "y\n", want: false},
		{name: "declined", input: "n\n", want: false},
		{name: "empty", input: "\n", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var output bytes.Buffer
			confirmed, err := confirmPurgePrompt(strings.NewReader(tc.input), &output, "./cmsrd.db")
			if err != nil {
				t.Fatalf("confirm: %v", err)
			}
			if confirmed != tc.want {
				t.Fatalf("confirmed = %t, want %t", confirmed, tc.want)
			}
			if !strings.Contains(output.String(), "cmsrd.db") {
				t.Fatalf("prompt missing path: %q", output.String())
			}
		})
	}
}

func TestConfirmPurgePrompt_NilInput(t *testing.T) {
	t.Parallel()

	if _, err := confirmPurgePrompt(nil, nil, "./cmsrd.db"); err == nil {
		t.Fatal("expected error for nil input")
	}
}

func TestRemoveDatabaseFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cmsrd.db")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("seed db file: %v", err)
	}

	if err := removeDatabaseFile(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("file still present")
	}

	if err := removeDatabaseFile(path); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := removeDatabaseFile(dir); err == nil {
		t.Fatal("expected error for directory path")
	}
}
