package cmd

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// installExtension writes a cfo-<name> shell script in a folder put first in
// PATH.
func installExtension(t *testing.T, name, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("extensions are shell scripts")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "cfo-"+name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestRunExtension(t *testing.T) {
	setup(t)
	*storeKind = "sqlite"
	out := filepath.Join(t.TempDir(), "out.txt")
	t.Setenv("HELLO_OUT", out)
	installExtension(t, "hello", `
echo "$CFO_STORE_PATH" > "$HELLO_OUT"
echo "$CFO_STORE_KIND" >> "$HELLO_OUT"
echo "$CFO_CATALOG_FILE" >> "$HELLO_OUT"
echo "$CFO_VERBOSE" >> "$HELLO_OUT"
echo "$@" >> "$HELLO_OUT"
`)

	found, code := RunExtension("hello", []string{"world", "-n", "2"})
	if !found || code != 0 {
		t.Fatalf("RunExtension(hello) = %v, %d; want true, 0", found, code)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{*storePath, "sqlite", *catalogFile, "false", "world -n 2"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("extension received %q; want %q", got, want)
	}
}

func TestRunExtension_ExitCode(t *testing.T) {
	installExtension(t, "fail", "exit 3\n")
	if found, code := RunExtension("fail", nil); !found || code != 3 {
		t.Errorf("RunExtension(fail) = %v, %d; want true, 3", found, code)
	}
}

func TestRunExtension_NotFound(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	if found, code := RunExtension("does-not-exist", nil); found || code != 0 {
		t.Errorf("RunExtension(unknown) = %v, %d; want false, 0", found, code)
	}
}
