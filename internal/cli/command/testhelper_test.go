package command

import (
	"bytes"
	"testing"
)

// runApp runs the CLI with the given arguments and captures stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := App()
	app.Writer = &buf

	err := app.Run(append([]string{"chainmap-cli"}, args...))
	return buf.String(), err
}
