package commands

import (
	"bytes"
	"os"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shufa/config"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

// isolate points config discovery at empty directories
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHUFA_GATEWAY_PROVIDER", "")
	t.Setenv("SHUFA_GATEWAY_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")
	t.Chdir(t.TempDir())
	config.Reset()
	t.Cleanup(config.Reset)
}

// execute runs c as a root command and captures its output
func execute(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	c.SetOut(&buf)
	c.SetErr(&buf)
	if args == nil {
		args = []string{}
	}
	c.SetArgs(args)
	t.Cleanup(func() {
		c.SetOut(nil)
		c.SetErr(nil)
		c.SetArgs(nil)
	})
	err := c.Execute()
	return buf.String(), err
}
