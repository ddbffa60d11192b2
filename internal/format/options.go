package format

import (
	"errors"
	"strconv"
	"strings"

	rerrors "remapper/internal/errors"
)

// Option describes one named reader or writer option.
type Option struct {
	Name        string
	Description string
	// Default is used when no value is supplied; "" means no default.
	Default  string
	Required bool
	// Validate rejects invalid values; nil accepts everything.
	Validate func(value string) error
}

// Options are resolved option values by name.
type Options map[string]string

// Get returns the value of name, or "".
func (o Options) Get(name string) string {
	return o[name]
}

// Lookup returns the value of name and whether it is set.
func (o Options) Lookup(name string) (string, bool) {
	v, ok := o[name]
	return v, ok
}

// Bool returns the value of name as a boolean; unset is false. Anything
// other than true or false is a CONFIG error naming the option.
func (o Options) Bool(name string) (bool, error) {
	v, ok := o[name]
	if !ok {
		return false, nil
	}

	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, rerrors.Configf("option %s must be true or false, got %s", name, strconv.Quote(v))
	}
}

// ResolveOptions applies defaults to supplied values and validates them.
// Supplied values for options outside schema are ignored.
func ResolveOptions(schema []Option, supplied map[string]string) (Options, error) {
	out := make(Options, len(schema))

	for _, opt := range schema {
		value, ok := supplied[opt.Name]
		if !ok && opt.Default != "" {
			value, ok = opt.Default, true
		}

		if !ok {
			if opt.Required {
				return nil, rerrors.Configf("missing required option %q", opt.Name)
			}

			continue
		}

		if opt.Validate != nil {
			if err := opt.Validate(value); err != nil {
				return nil, rerrors.Config("invalid value for option "+opt.Name, err)
			}
		}

		out[opt.Name] = value
	}

	return out, nil
}

// NotBlank rejects empty and whitespace-only values.
func NotBlank(value string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New("value must not be blank")
	}

	return nil
}

// OneOf returns a validator accepting only the given values.
func OneOf(values ...string) func(string) error {
	return func(value string) error {
		for _, v := range values {
			if v == value {
				return nil
			}
		}

		return errors.New("value must be one of " + strings.Join(values, ", "))
	}
}
