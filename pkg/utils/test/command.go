package testutils

import (
	"bytes"

	"github.com/spf13/cobra"
)

// Execute runs cmd with args and returns what it wrote to stdout and
// stderr.
func Execute(cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
