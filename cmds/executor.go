package cmds

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"reflect"
	"strings"
)

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrMissingArgument = errors.New("expecting argument, got nothing")
	ErrBadArgument     = errors.New("bad argument")
)

// Executor runs command lines like `-report yaml -config=a.cue run capture-by-value`.
// Commands run in order, each consuming its own arguments.
type Executor struct {
	commands map[string]*Command
	Output   io.Writer // usage output, default to os.Stderr
}

func NewExecutor() *Executor {
	ret := &Executor{
		commands: make(map[string]*Command),
	}
	ret.Define("-h", Func(func() {
		ret.PrintUsage()
		os.Exit(0)
	}).Desc("print this usage").Alias("help", "-help", "--help"))
	return ret
}

func (p *Executor) Define(name string, command *Command) {
	for _, name := range append([]string{name}, command.Aliases...) {
		if _, ok := p.commands[name]; ok {
			panic(fmt.Errorf("duplicated command %s", name))
		}
		p.commands[name] = command
	}
}

var errorType = reflect.TypeFor[error]()

func (p *Executor) Execute(args []string) error {
	commands := p.commands
	for len(args) > 0 {
		name, inline, hasInline := splitInline(commands, strings.TrimSpace(args[0]))
		args = args[1:]
		if hasInline {
			args = append([]string{inline}, args...)
		}

		command, ok := commands[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
		}

		if command.Func.IsValid() {
			callArgs, rest, err := bindArgs(commands, command.Func.Type(), args)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			args = rest
			if err := call(command.Func, callArgs); err != nil {
				return err
			}
		}

		if len(command.Subs) > 0 {
			// sub commands are visible for the rest of the line
			commands = maps.Clone(commands)
			for subname, sub := range command.Subs {
				if _, ok := commands[subname]; ok {
					return fmt.Errorf("duplicated sub command: %s %s", name, subname)
				}
				commands[subname] = sub
			}
		}
	}
	return nil
}

func (p *Executor) MustExecute(args []string) {
	if err := p.Execute(args); err != nil {
		panic(err)
	}
}

// splitInline splits `-flag=value` when -flag is a command and the whole word is not.
func splitInline(commands map[string]*Command, word string) (name string, value string, ok bool) {
	if _, isCommand := commands[word]; isCommand {
		return word, "", false
	}
	name, value, ok = strings.Cut(word, "=")
	if !ok || !strings.HasPrefix(name, "-") {
		return word, "", false
	}
	if _, isCommand := commands[name]; !isCommand {
		return word, "", false
	}
	return name, value, true
}

// bindArgs converts leading args to the parameters of fnType.
// Pointer parameters are optional and never take a word naming a command.
func bindArgs(commands map[string]*Command, fnType reflect.Type, args []string) (values []reflect.Value, rest []string, err error) {
	rest = args
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		optional := t.Kind() == reflect.Pointer

		var word *string
		if len(rest) > 0 {
			if _, isCommand := commands[rest[0]]; !isCommand || !optional {
				word = &rest[0]
				rest = rest[1:]
			}
		}

		var value reflect.Value
		switch {
		case word == nil && optional:
			value = reflect.New(t.Elem())
		case word == nil:
			return nil, nil, ErrMissingArgument
		case optional:
			elem, err := parseArg(t.Elem(), *word)
			if err != nil {
				return nil, nil, err
			}
			value = reflect.New(t.Elem())
			value.Elem().Set(elem)
		default:
			value, err = parseArg(t, *word)
			if err != nil {
				return nil, nil, err
			}
		}
		values = append(values, value)
	}
	return
}

func call(fn reflect.Value, args []reflect.Value) error {
	rets := fn.Call(args)
	if len(rets) > 0 && !rets[0].IsNil() {
		return rets[0].Interface().(error)
	}
	return nil
}
