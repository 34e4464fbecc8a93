// Package command provides CLI command definitions for chainmap-cli.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/chainmap-go/pkg/chainmap"
)

// ExerciseCommand creates the exercise command.
func ExerciseCommand() *cli.Command {
	return &cli.Command{
		Name:   "exercise",
		Usage:  "Walk a scripted put/get/delete sequence on a 4-bucket table",
		Action: runExercise,
	}
}

// runExercise demonstrates chaining on a small table: with 4 buckets and the
// identity hasher, keys 5 and 9 share bucket 1.
func runExercise(c *cli.Context) error {
	w := c.App.Writer

	tbl, err := chainmap.New[int64, int64](4, chainmap.WithHasher[int64, int64](chainmap.IntHasher[int64]))
	if err != nil {
		return err
	}

	_, existed := tbl.Put(5, 100)
	fmt.Fprintf(w, "put(5, 100)    -> existed=%-5v size=%d\n", existed, tbl.Len())

	_, existed = tbl.Put(9, 200)
	fmt.Fprintf(w, "put(9, 200)    -> existed=%-5v size=%d (9 mod 4 == 5 mod 4: chained in bucket 1)\n", existed, tbl.Len())

	val, ok := tbl.Get(9)
	fmt.Fprintf(w, "get(9)         -> value=%d found=%v\n", val, ok)

	prev, existed := tbl.Put(9, 201)
	fmt.Fprintf(w, "put(9, 201)    -> previous=%d existed=%v size=%d (update, not insert)\n", prev, existed, tbl.Len())

	val, ok = tbl.Delete(5)
	fmt.Fprintf(w, "delete(5)      -> value=%d found=%-5v size=%d\n", val, ok, tbl.Len())

	_, ok = tbl.Get(5)
	fmt.Fprintf(w, "get(5)         -> found=%v\n", ok)

	fmt.Fprintf(w, "ops counted    -> %d\n\n", tbl.Ops())

	return tbl.Dump(w)
}
