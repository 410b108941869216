package main

import (
	"fmt"
	"strings"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/headless"
)

// parseFieldArgs turns "--first-name Иван --key=8999..." into a map keyed
// by field name. Unknown flags are rejected.
func parseFieldArgs(args []string) (map[string]string, error) {
	out := make(map[string]string)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		name, value, hasValue := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
		if !hasValue {
			if i+1 >= len(args) {
				return nil, fmt.Errorf("flag --%s needs a value", name)
			}
			i++
			value = args[i]
		}

		key := name
		if name != headless.KeyArg && name != headless.FileArg {
			f, err := contact.ParseField(name)
			if err != nil {
				return nil, fmt.Errorf("unknown flag --%s", name)
			}
			key = string(f)
		}
		if _, dup := out[key]; dup {
			return nil, fmt.Errorf("flag --%s given twice", name)
		}
		out[key] = value
	}
	return out, nil
}
