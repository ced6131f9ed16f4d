package commands

import "strings"

// legacySwitches maps the single-dash switches of the earlier command line to
// flags. Bare layout words are accepted too.
var legacySwitches = map[string][]string{
	"-debug":    {"--debug"},
	"-local":    {"--local"},
	"-nois":     {"--noise", "--local"},
	"-noise":    {"--noise", "--local"},
	"-noq":      {"--no-logo"},
	"-e":        {"--emulator"},
	"-dual":     {"--dual"},
	"-neopixel": {"--neopixel"},
	"-select":   {"--select"},
	"-input":    {"--input"},
	"-int":      {"--interactive"},
	"-16":       {"--file", "16"},
	"16":        {"--file", "16"},
	"-12":       {"--file", "12"},
	"12":        {"--file", "12"},
	"-tee":      {"--layout", "tee"},
	"tee":       {"--layout", "tee"},
	"-bow":      {"--layout", "bowtie"},
	"bow":       {"--layout", "bowtie"},
	"-tie":      {"--layout", "bowtie"},
	"tie":       {"--layout", "bowtie"},
	"-hex":      {"--layout", "hex"},
	"hex":       {"--layout", "hex"},
	"-q16":      {"--layout", "q16"},
	"q16":       {"--layout", "q16"},
	"d16":       {"--layout", "q16"},
}

// legacyValues maps "-key:value" prefixes to flags taking the value.
var legacyValues = map[string]string{
	"-b":    "--backend",
	"-f":    "--file",
	"-nois": "--noise-model",
}

// translateLegacy rewrites legacy arguments into flags.
// Tokens are matched whole. takesValue reports whether a modern flag
// ("--name" or "-x") consumes the next token, which is then passed through
// untouched. Everything after "--" is left alone.
func translateLegacy(args []string, takesValue func(flag string) bool) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(out, args[i:]...)
		}
		if repl, ok := legacySwitches[a]; ok {
			out = append(out, repl...)
			continue
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") {
			if key, val, ok := strings.Cut(a, ":"); ok {
				if flag, ok := legacyValues[key]; ok {
					out = append(out, flag, val)
					continue
				}
			}
		}
		out = append(out, a)
		if strings.HasPrefix(a, "-") && !strings.Contains(a, "=") && takesValue != nil && takesValue(a) && i+1 < len(args) {
			i++
			out = append(out, args[i])
		}
	}
	return out
}
