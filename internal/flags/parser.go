package flags

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/kingpin/v2"
)

const (
	defaultPositionalName = "args"
	defaultPositionalHelp = "Positional arguments."
)

// Parser parses argument vectors against a fixed schema.
type Parser struct {
	name    string
	help    string
	schema  Schema
	argName string
	argHelp string
}

// Option configures a Parser.
type Option func(*Parser)

// WithPositional names the free arguments in usage output.
func WithPositional(name, help string) Option {
	return func(p *Parser) {
		p.argName = name
		p.argHelp = help
	}
}

// NewParser validates schema and returns a parser for it.
func NewParser(name, help string, schema Schema, opts ...Option) (*Parser, error) {
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flag schema: %w", err)
	}

	p := &Parser{
		name:    name,
		help:    help,
		schema:  schema,
		argName: defaultPositionalName,
		argHelp: defaultPositionalHelp,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Schema returns the declarations the parser was built with.
func (p *Parser) Schema() Schema {
	out := make(Schema, len(p.schema))
	copy(out, p.schema)
	return out
}

// Parse matches args against the schema. A help flag anywhere in a
// well-formed vector yields Matches with HelpRequested set and the usage
// text rendered; other flags are still recorded but callers should not act
// on them.
func (p *Parser) Parse(args []string) (*Matches, error) {
	c := p.compile()

	prepared, err := prepareArgs(p.schema, args)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	_, err = c.app.Parse(prepared)
	if c.terminated && c.status == 0 {
		if help, ok := c.values[HelpName]; ok && help.count == 0 {
			help.count = 1
		}
		return c.matches(true), nil
	}
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return c.matches(false), nil
}

// Usage renders the usage text for the schema.
func (p *Parser) Usage() string {
	c := p.compile()
	c.app.Usage(nil)
	return c.usage.String()
}

// compiled is a single-use kingpin application built from the schema. The
// application accumulates values, so a fresh one is built for every parse.
type compiled struct {
	app    *kingpin.Application
	schema Schema
	values map[string]*occurrence
	free   *[]string

	usage      bytes.Buffer
	terminated bool
	status     int
	usageText  string
}

func (p *Parser) compile() *compiled {
	c := &compiled{
		schema: p.schema,
		values: make(map[string]*occurrence, len(p.schema)),
	}

	app := kingpin.New(p.name, p.help)
	app.UsageWriter(&c.usage)
	app.ErrorWriter(io.Discard)
	app.Terminate(c.terminate)

	for _, spec := range p.schema {
		value := &occurrence{arity: spec.Arity}
		c.values[spec.Long] = value

		if spec.Long == HelpName {
			if spec.Short != 0 {
				app.HelpFlag.Short(spec.Short)
			}
			if spec.Help != "" {
				app.HelpFlag.Help(spec.Help)
			}
			continue
		}

		clause := app.Flag(spec.Long, spec.Help)
		if spec.Short != 0 {
			clause.Short(spec.Short)
		}
		if spec.Hint != "" {
			clause.PlaceHolder(spec.Hint)
		}
		clause.SetValue(value)
	}

	c.free = app.Arg(p.argName, p.argHelp).Strings()
	c.app = app
	return c
}

// terminate replaces os.Exit. Only the first call counts; kingpin writes
// usage once per help flag occurrence.
func (c *compiled) terminate(status int) {
	if c.terminated {
		return
	}
	c.terminated = true
	c.status = status
	c.usageText = c.usage.String()
}

func (c *compiled) matches(help bool) *Matches {
	m := &Matches{
		schema: c.schema,
		values: c.values,
		help:   help,
		usage:  c.usageText,
	}
	if c.free != nil {
		m.free = append([]string(nil), *c.free...)
	}
	return m
}

// reservedFlags are registered by kingpin itself and are not part of any
// schema.
var reservedFlags = map[string]bool{
	"help-long":              true,
	"help-man":               true,
	"completion-bash":        true,
	"completion-script-bash": true,
	"completion-script-zsh":  true,
}

// prepareArgs rewrites args into a form kingpin reads with getopts
// semantics:
//   - value-less uses of FlagOpt flags become "--name=", so kingpin does not
//     demand an argument; a bare short FlagOpt, alone or closing a cluster,
//     takes the next argument unless that argument looks like a flag;
//   - separated flag values are joined onto their flag;
//   - positional arguments move behind a single "--".
//
// Joined values and arguments after "--" are never expanded as @files.
// Kingpin's own hidden flags are rejected unless the schema declares them.
func prepareArgs(schema Schema, args []string) ([]string, error) {
	longs := make(map[string]Spec, len(schema))
	shorts := make(map[rune]Spec, len(schema))
	for _, spec := range schema {
		longs[spec.Long] = spec
		if spec.Short != 0 {
			shorts[spec.Short] = spec
		}
	}

	var (
		out  = make([]string, 0, len(args)+1)
		free []string
	)
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next, hasNext := "", i+1 < len(args)
		if hasNext {
			next = args[i+1]
		}

		switch {
		case arg == "--":
			free = append(free, args[i+1:]...)
			i = len(args)

		case strings.HasPrefix(arg, "--"):
			name, _, hasValue := strings.Cut(arg[2:], "=")
			spec, declared := longs[name]
			if !declared && reservedFlags[name] {
				return nil, fmt.Errorf("unknown long flag '--%s'", name)
			}
			if hasValue || !declared {
				out = append(out, arg)
				continue
			}
			switch spec.Arity {
			case FlagOpt:
				out = append(out, arg+"=")
			case Opt, Multi:
				if hasNext {
					out = append(out, arg+"="+next)
					i++
				} else {
					out = append(out, arg)
				}
			default:
				out = append(out, arg)
			}

		case len(arg) > 1 && arg[0] == '-':
			rewritten, consumed := prepareCluster(shorts, arg, next, hasNext)
			out = append(out, rewritten...)
			if consumed {
				i++
			}

		default:
			free = append(free, arg)
		}
	}

	if len(free) > 0 {
		out = append(out, "--")
		out = append(out, free...)
	}
	return out, nil
}

// prepareCluster handles one short-flag argument such as "-zs" or "-p10".
// It reports whether next was consumed as a value.
func prepareCluster(shorts map[rune]Spec, arg, next string, hasNext bool) ([]string, bool) {
	cluster := arg[1:]
	for j, r := range cluster {
		rest := cluster[j+utf8.RuneLen(r):]
		spec, ok := shorts[r]
		if !ok {
			return []string{arg}, false
		}
		switch spec.Arity {
		case Flag:
			continue
		case Opt, Multi:
			if rest != "" || !hasNext {
				return []string{arg}, false
			}
			return []string{arg + next}, true
		case FlagOpt:
			if rest != "" {
				return []string{arg}, false
			}
			if hasNext && !looksLikeFlag(next) {
				return []string{arg + next}, true
			}
			if j == 0 {
				return []string{"--" + spec.Long + "="}, false
			}
			return []string{"-" + cluster[:j], "--" + spec.Long + "="}, false
		}
	}
	return []string{arg}, false
}

func looksLikeFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}
