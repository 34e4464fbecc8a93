// Package command provides CLI command definitions for chainmap-cli.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

// DumpCommand creates the dump command.
func DumpCommand() *cli.Command {
	return &cli.Command{
		Name:      "dump",
		Usage:     "Populate a table from key=value arguments and print its buckets",
		ArgsUsage: "[key=value ...]",
		Action:    runDump,
	}
}

func runDump(c *cli.Context) error {
	cfg := getConfig(c)
	tbl, err := newTable(cfg)
	if err != nil {
		return err
	}

	for _, arg := range c.Args().Slice() {
		key, val, found := strings.Cut(arg, "=")
		if !found {
			return fmt.Errorf("argument %q is not key=value", arg)
		}

		k, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return fmt.Errorf("key %q is not an integer: %w", key, err)
		}
		v, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return fmt.Errorf("value %q is not an integer: %w", val, err)
		}

		tbl.Put(k, v)
	}

	return tbl.Dump(c.App.Writer)
}
