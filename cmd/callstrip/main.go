package main

import (
	"os"
	"strings"

	"callstrip/internal/calltype"
	"callstrip/internal/cli"
)

// isCodeList reports whether s is a bare list of call-type codes such as
// "3" or "1,3,5". Names are not accepted so they cannot shadow subcommands.
func isCodeList(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0123456789,") != "" {
		return false
	}
	codes, err := calltype.ParseList(s)
	return err == nil && len(codes) > 0
}

func rewriteShortcutArgs(argv []string) []string {
	// Convenience: `callstrip 1,3,5` works like `callstrip strip 1 3 5`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first, so the
	// first positional token is searched for rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--db":         true,
		"--format":     true,
		"--accounting": true,
		"--log-level":  true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--carrier": true,
	}

	rewrite := func(i int) []string {
		out := make([]string, 0, len(argv)+4)
		out = append(out, argv[:i]...)
		out = append(out, "strip")
		out = append(out, strings.FieldsFunc(argv[i], func(r rune) bool { return r == ',' })...)
		out = append(out, argv[i+1:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isCodeList(argv[i+1]) {
				return rewrite(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
				continue
			}
			continue
		}

		if isCodeList(a) {
			return rewrite(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteShortcutArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
