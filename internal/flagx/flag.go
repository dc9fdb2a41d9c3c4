// Package flagx lets several loaders share os.Args: each one picks out the
// flags it owns and parses only those, so unknown flags never abort startup.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// ConfigEnv names the environment variable consulted when no -c/-config
// flag is given.
const ConfigEnv = "CONFIG"

// FilterArgs keeps the arguments naming one of allowedFlags, in their
// original order. Both "-f value" and "-f=value" forms are recognised; a
// following token is taken as the value unless it starts with '-'.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigPath returns the JSON config path given by -c or -config in args,
// the last occurrence winning. When neither flag is present it falls back
// to getenv(ConfigEnv).
func ConfigPath(args []string, getenv func(string) string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	if path == "" && getenv != nil {
		path = getenv(ConfigEnv)
	}
	return path
}

// JsonConfigFlags resolves the config path for the running process.
func JsonConfigFlags() string {
	return ConfigPath(os.Args[1:], os.Getenv)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
