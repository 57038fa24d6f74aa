// Package flagx picks individual flags out of the command line before the
// full flag set is known. The config loader uses it to find the config file
// first and to parse its own overrides without tripping over foreign flags.
package flagx

import (
	"flag"
	"io"
	"slices"
	"strings"
)

// ConfigFlags are the spellings that name the config file.
var ConfigFlags = []string{"-c", "-config"}

// FilterArgs keeps only the flags listed in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a following
// token that starts with "-" is never taken as a value.
func FilterArgs(args []string, allowed []string) []string {
	kept := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if slices.Contains(allowed, name) {
				kept = append(kept, arg)
			}
			continue
		}

		if !slices.Contains(allowed, arg) {
			continue
		}
		kept = append(kept, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			kept = append(kept, args[i])
		}
	}

	return kept
}

// ConfigPath returns the config file named by -c or -config in args
// (without the program name), or "" when neither is given. The last
// occurrence wins. The file may be JSON or YAML; the caller decides by
// extension.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, name := range ConfigFlags {
		fs.StringVar(&path, strings.TrimLeft(name, "-"), "", "path to config file")
	}
	_ = fs.Parse(FilterArgs(args, ConfigFlags))

	return path
}
