package flags

import "fmt"

// Arity describes how many values a flag takes.
type Arity int

const (
	// Flag is a presence switch with no value.
	Flag Arity = iota
	// Opt takes exactly one value.
	Opt
	// FlagOpt may be given with or without a value.
	FlagOpt
	// Multi takes a value and may be repeated.
	Multi
)

func (a Arity) String() string {
	switch a {
	case Flag:
		return "flag"
	case Opt:
		return "opt"
	case FlagOpt:
		return "flagopt"
	case Multi:
		return "multi"
	default:
		return fmt.Sprintf("Arity(%d)", int(a))
	}
}

// Spec declares a single flag. Short is optional; Long is required.
type Spec struct {
	Short rune
	Long  string
	Arity Arity
	Help  string
	Hint  string
}

// Schema is an ordered list of flag declarations.
type Schema []Spec

// HelpName is the long name of the flag that requests usage output.
const HelpName = "help"

// Validate reports empty or duplicate names.
func (s Schema) Validate() error {
	longs := make(map[string]struct{}, len(s))
	shorts := make(map[rune]string, len(s))
	for _, spec := range s {
		if spec.Long == "" {
			return fmt.Errorf("flag -%c has no long name", spec.Short)
		}
		if _, dup := longs[spec.Long]; dup {
			return fmt.Errorf("duplicate long flag --%s", spec.Long)
		}
		longs[spec.Long] = struct{}{}

		if spec.Short == 0 {
			continue
		}
		if other, dup := shorts[spec.Short]; dup {
			return fmt.Errorf("duplicate short flag -%c (--%s and --%s)", spec.Short, other, spec.Long)
		}
		shorts[spec.Short] = spec.Long
	}
	if spec, ok := s.lookup(HelpName); ok && spec.Arity != Flag {
		return fmt.Errorf("--%s must be a presence flag", HelpName)
	}
	return nil
}

func (s Schema) lookup(long string) (Spec, bool) {
	for _, spec := range s {
		if spec.Long == long {
			return spec, true
		}
	}
	return Spec{}, false
}
