package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reusee/dscope"
	"github.com/reusee/lambdas/caplang"
	"github.com/reusee/lambdas/capvm"
	"github.com/reusee/lambdas/logs"
)

func execFile(scope dscope.Scope, path string) error {
	var input io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		input = f
	}

	var logger logs.Logger
	scope.Call(func(l logs.Logger) {
		logger = l
	})

	env := capvm.NewGlobals().NewChild()
	scanner := bufio.NewScanner(input)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		logger.Debug("exec", "line", lineNum, "source", line)
		if _, err := caplang.Exec(env, line); err != nil {
			return fmt.Errorf("%s:%d: %w", path, lineNum, err)
		}
	}
	return scanner.Err()
}

func evalLine(line string) error {
	res, err := caplang.Exec(capvm.NewGlobals().NewChild(), line)
	if err != nil {
		return err
	}
	if res != nil {
		fmt.Println(caplang.Format(res))
	}
	return nil
}
