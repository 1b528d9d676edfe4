package main

import (
	"os"
	"strings"

	"rydscheme/internal/cli"
)

var subcommands = map[string]bool{
	"levels":      true,
	"thz":         true,
	"transitions": true,
	"scheme":      true,
	"import":      true,
	"doctor":      true,
	"config":      true,
	"help":        true,
	"completion":  true,
	"docs":        true,
}

func isDataDir(s string) bool {
	if subcommands[s] {
		return false
	}
	fi, err := os.Stat(s)
	return err == nil && fi.IsDir()
}

func rewriteDataDirArgs(argv []string) []string {
	// Convenience: `rydscheme ./data` works like `rydscheme --data ./data`.
	//
	// Cobra would treat the directory as an unknown subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first.
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--data":   true,
		"--db":     true,
		"--format": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if isDataDir(a) {
			out := make([]string, 0, len(argv)+1)
			out = append(out, argv[:i]...)
			out = append(out, "--data")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDataDirArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
