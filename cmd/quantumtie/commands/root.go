package commands

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"quantumtie/internal/app"
)

var (
	home       string
	passphrase string
	account    string
	logLevel   string
	debug      bool
	runtimeURL string
	iamURL     string
	pingURL    string
	python     string

	wire *app.Wire
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quantumtie [flags] [qasm-file]",
		Short: "Run a quantum circuit and show the results on an 8x8 LED matrix",
		Long: "quantumtie submits an OpenQASM circuit to the IBM Quantum runtime or a local\n" +
			"Qiskit simulator and displays the measured qubits on a Sense HAT, a terminal\n" +
			"emulator, or a NeoPixel strip.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			h := app.Home(home)
			if h == "" {
				var err error
				if h, err = app.DefaultHome(); err != nil {
					return err
				}
			}
			unknown, err := app.ApplyFile(h.ConfigFile(), cmd.Flags())
			if err != nil {
				return err
			}
			level := logLevel
			if debug && level == "" {
				level = "debug"
			}
			wire, err = app.NewWire(app.Config{
				Home:       h,
				Passphrase: passphrase,
				Account:    account,
				RuntimeURL: runtimeURL,
				IAMURL:     iamURL,
				PingURL:    pingURL,
				Python:     python,
				LogLevel:   level,
			})
			if err != nil {
				return err
			}
			if len(unknown) > 0 {
				wire.Log.Debug("config keys not used by this command", "keys", unknown)
			}
			return nil
		},
		RunE: runDemo,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&home, "home", "", "state dir (default ~/.quantumtie)")
	pf.StringVarP(&passphrase, "passphrase", "p", "", "passphrase protecting stored tokens")
	pf.StringVar(&account, "account", "", "stored account name (default account if empty)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.BoolVar(&debug, "debug", false, "verbose logging and pauses between setup steps")
	pf.StringVar(&runtimeURL, "runtime-url", "", "runtime API root (default IBM Quantum Platform)")
	pf.StringVar(&iamURL, "iam-url", "", "IAM token endpoint for cloud API keys")
	pf.StringVar(&pingURL, "ping-url", "", "URL checked before connecting to the runtime")
	pf.StringVar(&python, "python", "", "interpreter for the local Qiskit runner (default python3)")

	addRunFlags(root.Flags())
	root.AddCommand(envCmd(), accountCmd(), modelsCmd())
	return root
}

// Execute runs the command line. SIGINT and SIGTERM cancel the context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := rootCmd()
	args := os.Args[1:]
	if !namesSubcommand(root, args) {
		args = translateLegacy(args, flagTakesValue(root))
	}
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	if wire != nil {
		_ = wire.Close()
	}
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}

// namesSubcommand reports whether args invoke a subcommand. Legacy
// translation only applies to the demo itself.
func namesSubcommand(root *cobra.Command, args []string) bool {
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			continue
		}
		for _, c := range root.Commands() {
			if c.Name() == a || c.HasAlias(a) {
				return true
			}
		}
		if a == "help" || a == "completion" {
			return true
		}
	}
	return false
}

// flagTakesValue reports whether a flag of root consumes the next argument.
func flagTakesValue(root *cobra.Command) func(string) bool {
	sets := []*pflag.FlagSet{root.PersistentFlags(), root.Flags()}
	return func(arg string) bool {
		for _, fs := range sets {
			var f *pflag.Flag
			if name, ok := strings.CutPrefix(arg, "--"); ok {
				f = fs.Lookup(name)
			} else if len(arg) == 2 {
				f = fs.ShorthandLookup(arg[1:])
			}
			if f != nil {
				return f.NoOptDefVal == ""
			}
		}
		return false
	}
}
