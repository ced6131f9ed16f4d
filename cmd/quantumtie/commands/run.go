package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"quantumtie/internal/display"
	"quantumtie/internal/domain"
	"quantumtie/internal/envinfo"
	"quantumtie/internal/glow"
	"quantumtie/internal/layout"
	"quantumtie/internal/qasm"
	backendsvc "quantumtie/internal/services/backend"
	"quantumtie/internal/services/run"
	"quantumtie/internal/svg"
)

type demoFlags struct {
	file        string
	qasmDir     string
	layout      string
	noLogo      bool
	emulator    bool
	dual        bool
	neopixel    bool
	spiDevice   string
	svgDir      string
	selectBE    bool
	local       bool
	noise       bool
	noiseModel  string
	backend     string
	shots       int
	interval    time.Duration
	stall       time.Duration
	poll        time.Duration
	powerOff    string
	input       bool
	interactive bool
}

var demo demoFlags

func addRunFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&demo.file, "file", "f", "", "QASM file, or 12/16 for the bundled circuits (default expt.qasm)")
	fs.StringVar(&demo.qasmDir, "qasm-dir", ".", "directory searched for bare QASM names")
	fs.StringVar(&demo.layout, "layout", "", "display layout: tee, bowtie, hex or q16")
	fs.BoolVar(&demo.noLogo, "no-logo", false, "animate the layout instead of the logo while waiting")
	fs.BoolVarP(&demo.emulator, "emulator", "e", false, "use the terminal emulator instead of hardware")
	fs.BoolVar(&demo.dual, "dual", false, "drive the hardware and the emulator together")
	fs.BoolVar(&demo.neopixel, "neopixel", false, "also drive a NeoPixel strip over SPI")
	fs.StringVar(&demo.spiDevice, "spi-device", "/dev/spidev0.0", "SPI device for the NeoPixel strip")
	fs.StringVar(&demo.svgDir, "svg-dir", "svg", "directory for the browser view; empty disables it")
	fs.BoolVar(&demo.selectBE, "select", false, "ask for the backend interactively")
	fs.BoolVar(&demo.local, "local", false, "run on a local simulator")
	fs.BoolVar(&demo.noise, "noise", false, "use a noisy local simulator")
	fs.StringVar(&demo.noiseModel, "noise-model", "", "cached noise model (file or backend name) for local Aer")
	fs.StringVarP(&demo.backend, "backend", "b", "", "backend: least, aer, aermodel or a backend name")
	fs.IntVar(&demo.shots, "shots", 0, "shots per job (backend default if 0)")
	fs.DurationVar(&demo.interval, "interval", run.DefaultInterval, "wait between runs")
	fs.DurationVar(&demo.stall, "stall-timeout", run.DefaultStallTimeout, "abandon a running job after this long")
	fs.DurationVar(&demo.poll, "poll-interval", run.DefaultPollInterval, "job status poll interval")
	fs.StringVar(&demo.powerOff, "power-off", "sudo shutdown -P now", "command run on joystick shutdown; empty just exits")
	fs.BoolVar(&demo.input, "input", false, "prompt for extra parameters")
	fs.BoolVar(&demo.interactive, "interactive", false, "choose the demo settings in a guided dialog")
}

// applyExtra parses more parameters on top of the ones already given.
func applyExtra(cmd *cobra.Command, extra []string) error {
	if len(extra) == 0 {
		return nil
	}
	extra = translateLegacy(extra, flagTakesValue(cmd.Root()))
	fs := cmd.Flags()
	if err := fs.Parse(extra); err != nil {
		return err
	}
	if rest := fs.Args(); len(rest) > 0 {
		demo.file = rest[0]
	}
	wire.Log.Info("extra parameters", "args", extra)
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := wire.Log
	if len(args) == 1 && demo.file == "" {
		demo.file = args[0]
	}

	switch {
	case demo.interactive:
		extra, err := guidedArgs(wire.Prompt, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if err := applyExtra(cmd, extra); err != nil {
			return err
		}
	case demo.input:
		extra, err := extraArgs(wire.Prompt)
		if err != nil {
			return err
		}
		if err := applyExtra(cmd, extra); err != nil {
			return err
		}
	}
	if debug {
		if err := wire.Prompt.Pause("Press Enter to continue"); err != nil {
			return err
		}
	}

	src, err := qasm.Load(demo.file, demo.qasmDir)
	if err != nil {
		return err
	}
	info, err := qasm.Parse(src.Text)
	if err != nil {
		return fmt.Errorf("%s: %w", src.Name, err)
	}
	logger.Info("loaded circuit", "file", src.Name, "qubits", info.NumQubits, "clbits", info.NumClbits)

	name, err := layout.ParseName(demo.layout)
	if err != nil {
		return err
	}
	l, zeros := layout.Select(info.NumQubits, layout.ChoiceFor(name))

	// The terminal is still ours here, so account setup and --select can
	// prompt before the emulator takes over.
	sel, err := wire.Backends.Select(ctx, backendsvc.Options{
		Backend:    demo.backend,
		Local:      demo.local,
		Noise:      demo.noise,
		NoiseModel: demo.noiseModel,
		Select:     demo.selectBE,
		Qubits:     info.NumQubits,
		Account:    account,
		Passphrase: passphrase,
		Debug:      debug,
	})
	if err != nil {
		return err
	}
	logger.Info("backend selected", "backend", sel.Backend.Name(), "simulator", sel.Backend.Simulator())

	if warn := envinfo.RootWarning(envinfo.Detect()); warn != "" {
		logger.Warn(warn)
	}

	devs, err := display.Open(display.Options{
		Emulator:  demo.emulator,
		Dual:      demo.dual,
		NeoPixel:  demo.neopixel,
		SPIDevice: demo.spiDevice,
	}, logger.WithPrefix("display"))
	if err != nil {
		return err
	}
	defer devs.Close()
	if devs.Emulator != nil {
		if err := wire.LogToFile(devs.Emulator); err != nil {
			logger.Warn("log file unavailable", "err", err)
		}
	}
	if demo.svgDir != "" {
		if w, err := svg.Open(demo.svgDir); err != nil {
			logger.Warn("svg view disabled", "err", err)
		} else {
			devs.AddSink(w)
		}
	}

	state := glow.NewState(zeros)
	r := glow.NewRenderer(state, devs.Primary, l, info.NumQubits, logger.WithPrefix("glow"))
	r.Secondary = devs.Secondary
	r.Sinks = devs.Sinks
	r.LogoMask = !demo.noLogo
	r.PowerOff = powerOff(demo.powerOff)

	renderCtx, stopRender := context.WithCancel(context.Background())
	defer stopRender()
	rendered := make(chan error, 1)
	go func() { rendered <- r.Run(renderCtx) }()

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()
	if devs.Emulator != nil {
		go func() {
			select {
			case <-devs.Emulator.Done():
				stopLoop()
			case <-loopCtx.Done():
			}
		}()
	}

	circuit := domain.Circuit{
		Source:    src.Text,
		Name:      src.Name,
		NumQubits: info.NumQubits,
		NumClbits: info.NumClbits,
		Shots:     demo.shots,
		Registers: info.Registers,
	}
	loop := run.New(state, sel.Backend, circuit, logger.WithPrefix("run"),
		run.WithPing(wire.Pinger, sel.PingURL),
		run.WithOrienter(devs, display.DefaultAngle),
		run.WithStick(devs.Stick()),
		run.WithConfig(run.Config{
			Interval:     demo.interval,
			StallTimeout: demo.stall,
			PollInterval: demo.poll,
		}),
	)
	sum, err := loop.Run(loopCtx)
	if !sum.Shutdown {
		stopRender()
	}
	<-rendered
	logger.Info("done", "runs", sum.Runs, "pattern", sum.Pattern, "count", sum.Count)
	if err != nil && loopCtx.Err() == nil {
		return err
	}
	return nil
}

// powerOff runs command on a joystick shutdown. An empty command does
// nothing.
func powerOff(command string) func(ctx context.Context) error {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil
	}
	return func(ctx context.Context) error {
		c := exec.CommandContext(ctx, fields[0], fields[1:]...)
		c.Stdout, c.Stderr = os.Stdout, os.Stderr
		return c.Run()
	}
}
