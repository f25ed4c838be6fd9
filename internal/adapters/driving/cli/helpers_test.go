package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/edicat/internal/adapters/driven/encoding"
	"github.com/custodia-labs/edicat/internal/adapters/driven/source/filesystem"
	"github.com/custodia-labs/edicat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/edicat/internal/core/services"
	"github.com/custodia-labs/edicat/internal/logger"
)

const x12Doc = "ISA*00*          *00*          *01*0011223456     *01*999999999      *950120*0147*U*00300*000000005*0*P*^~" +
	"GS*PO*0011223456*999999999*950120*0147*5*X*003040~" +
	"ST*850*000000001~" +
	"SE*2*000000001~" +
	"GE*1*5~" +
	"IEA*1*000000005~"

const edifactDoc = "UNB+UNOC:3+sender:id+receiver:id+date:time+ref'UNH+1+ORDERS:D:96A:UN'UNT+2+1'UNZ+1+ref'"

// testEnv holds the buffers and store a CLI test runs against.
type testEnv struct {
	out   *bytes.Buffer
	err   *bytes.Buffer
	store *memory.ConfigStore
	dir   string
}

// setupTest wires real services over an in-memory config store. stdin
// backs the "-" input.
func setupTest(t *testing.T, stdin io.Reader) *testEnv {
	t.Helper()

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	env := &testEnv{
		out:   new(bytes.Buffer),
		err:   new(bytes.Buffer),
		store: memory.NewConfigStore(),
		dir:   t.TempDir(),
	}

	resetFlags(rootCmd)
	decoders := encoding.NewFactory()
	SetServices(Services{
		Document:   services.NewDocumentService(filesystem.NewWithStdin(stdin), decoders, logger.Diagnostic),
		Settings:   services.NewSettingsService(env.store, decoders),
		ConfigPath: env.store.Path(),
	})

	origTerminal := stdinIsTerminal
	stdinIsTerminal = func() bool { return false }

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.err)

	t.Cleanup(func() {
		stdinIsTerminal = origTerminal
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		SetServices(Services{})
		logger.SetOutput(os.Stderr)
		logger.SetVerbose(false)
		resetFlags(rootCmd)
	})

	return env
}

// resetFlags restores every flag in the tree to its default, since cobra
// commands are package globals shared across tests.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// run executes the command tree with args.
func run(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// file writes content to name inside the test directory and returns its path.
func (e *testEnv) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
