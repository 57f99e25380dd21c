package flags

import "strings"

// occurrence is the kingpin.Value behind every schema flag. It records how
// often the flag was seen and the values it carried.
type occurrence struct {
	arity  Arity
	count  int
	values []string
}

func (o *occurrence) String() string {
	return strings.Join(o.values, ",")
}

func (o *occurrence) Set(raw string) error {
	switch o.arity {
	case Flag:
		// kingpin passes "false" for the --no-<name> form.
		if raw == "false" {
			o.count = 0
			return nil
		}
		o.count++
	case FlagOpt:
		o.count++
		if raw != "" {
			o.values = append(o.values, raw)
		}
	default:
		o.count++
		o.values = append(o.values, raw)
	}
	return nil
}

func (o *occurrence) IsBoolFlag() bool {
	return o.arity == Flag
}

func (o *occurrence) IsCumulative() bool {
	return o.arity == Multi
}
