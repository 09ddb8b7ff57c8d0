package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/caplang"
	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/debugs"
)

func runREPL(scope dscope.Scope) error {
	var tap debugs.Tap
	scope.Call(func(t debugs.Tap) {
		tap = t
	})

	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".lambdas_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	env := capvm.NewGlobals().NewChild()
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		switch line {
		case "":
			continue
		case ":tap":
			values := make(map[string]any)
			for e := env; e != nil; e = e.Parent {
				for name, slot := range e.Vars {
					if _, ok := values[name]; !ok {
						values[name] = slot.Value
					}
				}
			}
			tap(context.Background(), "repl", values)
			continue
		}
		res, err := caplang.Exec(env, line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else if res != nil {
			fmt.Println(caplang.Format(res))
		}
	}
	return nil
}
