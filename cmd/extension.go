package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
)

// Environment variables passed to extensions.
const (
	EnvConfigFile  = "CFO_CONFIG_FILE"
	EnvCatalogFile = "CFO_CATALOG_FILE"
	EnvStorePath   = "CFO_STORE_PATH"
	EnvStoreKind   = "CFO_STORE_KIND"
	EnvVerbose     = "CFO_VERBOSE"
)

// extensionEnv returns the global flags as environment variables, so that an
// extension works on the same catalog and collection.
func extensionEnv() []string {
	vars := []struct{ name, value string }{
		{EnvConfigFile, *configFile},
		{EnvCatalogFile, *catalogFile},
		{EnvStorePath, *storePath},
		{EnvStoreKind, *storeKind},
		{EnvVerbose, strconv.FormatBool(*Verbose)},
	}
	env := os.Environ()
	for _, v := range vars {
		env = append(env, v.name+"="+v.value)
	}
	return env
}

// RunExtension runs the cfo-<name> executable found in PATH with args.
//
// It reports whether such an executable exists, and its exit code.
func RunExtension(name string, args []string) (found bool, code int) {
	bin := "cfo-" + name
	path, err := exec.LookPath(bin)
	if err != nil {
		slog.Debug("no extension", "command", bin, "error", err)
		return false, 0
	}

	ext := exec.Command(path, args...)
	ext.Stdin, ext.Stdout, ext.Stderr = os.Stdin, os.Stdout, os.Stderr
	ext.Env = extensionEnv()

	err = ext.Run()
	var exit *exec.ExitError
	switch {
	case err == nil:
		return true, 0
	case errors.As(err, &exit):
		return true, exit.ExitCode()
	}
	fmt.Fprintf(os.Stderr, "Error running %s: %v\n", bin, err)
	return true, 1
}
