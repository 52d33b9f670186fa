// Package flagx lets several components read their own command-line flags
// from the same os.Args without tripping over each other's definitions.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args made of allowed flags and their values.
//
// Two forms are recognized: "-f value" and "-f=value". A value is taken only
// when the next argument does not start with "-".
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config,
// or "" when neither is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}

// StringFlag reads a single string flag -name from os.Args, ignoring
// everything else. def is returned when the flag is absent.
func StringFlag(name, def, usage string) string {
	value := def

	args := FilterArgs(os.Args[1:], []string{"-" + name})

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&value, name, def, usage)
	_ = fs.Parse(args)

	return value
}
