package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/shlex"
)

const prefix = "/"

// ErrHelp is returned by Execute when a command was asked for -h/--help; usage has already
// been written to the registry output.
var ErrHelp = flag.ErrHelp

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse with the remaining positional args.
type Command struct {
	Name    string
	Summary string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
	out  io.Writer
}

// NewRegistry returns an empty command registry. Flag usage and parse errors go to out.
func NewRegistry(out io.Writer) *Registry {
	if out == nil {
		out = io.Discard
	}
	return &Registry{cmds: make(map[string]*Command), out: out}
}

// Register adds a subcommand. name is the first token after "/" (e.g. "light").
// fs may be nil for commands without flags; run is called after fs.Parse succeeds.
func (r *Registry) Register(name, summary string, fs *flag.FlagSet, run func(args []string) error) {
	if fs == nil {
		fs = flag.NewFlagSet(name, flag.ContinueOnError)
	}
	fs.SetOutput(r.out)
	r.cmds[name] = &Command{Name: name, Summary: summary, FlagSet: fs, Run: run}
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for n := range r.cmds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Help returns one "/name  summary" line per command.
func (r *Registry) Help() []string {
	var lines []string
	for _, n := range r.Names() {
		lines = append(lines, fmt.Sprintf("%s%-8s %s", prefix, n, r.cmds[n].Summary))
	}
	return lines
}

// Parse interprets line as a console line. If line starts with "/", the rest is split
// shell style, so quoted arguments may contain spaces (/spawn "tat house 1"), and returned
// with ok true. Otherwise nil, false. err reports an unterminated quote or escape.
func Parse(line string) (args []string, ok bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return nil, false, nil
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true, nil
	}
	args, err = shlex.Split(rest)
	if err != nil {
		return nil, true, fmt.Errorf("commands: %w", err)
	}
	if len(args) == 0 {
		return nil, true, nil
	}
	return args, true, nil
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return errors.New("missing command, try /help")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run(cmd.FlagSet.Args())
}
