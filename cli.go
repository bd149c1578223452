package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"vpad/emu/log"
)

type mode byte

const (
	runMode      mode = iota // Sample devices and publish the controller state
	captureMode              // Bind a button with the capture window
	devicesMode              // List connected devices
	bindingsMode             // Show bindings
	versionMode              // Show vpad version
)

type (
	CLI struct {
		Run      Run      `cmd:"" help:"Sample input devices and publish the virtual controller state. (default command)" default:"withargs"`
		Capture  Capture  `cmd:"" help:"Bind a button to the next pressed input."`
		Devices  Devices  `cmd:"" help:"List connected game controllers and joysticks."`
		Bindings Bindings `cmd:"" help:"Show the bindings."`
		Version  Version  `cmd:"" help:"Show vpad version."`

		Config string     `name:"config" help:"${config_help}" type:"path" placeholder:"FILE"`
		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Run struct {
		JSON     *outfile      `name:"json" help:"Write controller state changes as JSON lines." placeholder:"FILE|stdout|stderr|-"`
		Port     int           `name:"port" help:"Serve the controller state over RPC on this port."`
		WS       string        `name:"ws" help:"Stream controller state changes to websocket clients connecting to ws://ADDR/ws." placeholder:"HOST:PORT"`
		Watch    bool          `name:"watch" help:"Reload the bindings when the config file changes."`
		Duration time.Duration `name:"duration" help:"Stop after this duration (0 runs until the window is closed)."`
	}

	Capture struct {
		Button  string        `name:"button" help:"${button_help}" required:""`
		Timeout time.Duration `name:"timeout" help:"Give up after this duration." default:"5s"`
		DryRun  bool          `name:"dry-run" help:"Print the captured input, don't save it."`
	}

	Devices struct{}

	Bindings struct {
		Reset bool `name:"reset" help:"Restore and save the default bindings."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"config_help": "Configuration file. (default: config.toml in the user config directory)",
	"log_help":    "Enable logging for specified modules.",
	"button_help": "Button to bind: a, b, x, y, l, r, zl, zr, start, select, home, dup, ddown, dleft, dright, cup, cdown, cleft, cright, circle_up, circle_down, circle_left, circle_right or circle_modifier.",
}

var commandModes = map[string]mode{
	"capture":  captureMode,
	"devices":  devicesMode,
	"bindings": bindingsMode,
	"version":  versionMode,
}

func parseArgs(args []string) CLI {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("vpad"),
		kong.Description("Virtual controller input core."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)

	ctx, err := parser.Parse(args)
	checkf(err, "invalid command line")

	// Anything else, including no command, runs.
	cli.mode = commandModes[ctx.Command()]
	return cli
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if cmd := ctx.Command(); cmd != "" && !strings.HasPrefix(cmd, "run") {
		return nil
	}

	fmt.Fprintf(os.Stderr, `
Log modules:
  --log takes a comma-separated list among: %s.
  'all' enables every module, 'no' disables logging entirely.
`, strings.Join(log.ModuleNames(), ", "))
	return nil
}

type logModMask log.ModuleMask

// Decode enables debug logs for a comma-separated list of modules.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	names := strings.Split(ctx.Scan.Pop().Value.(string), ",")

	if slices.Contains(names, "no") {
		if len(names) > 1 {
			return fmt.Errorf("'no' can't be combined with other log modules")
		}
		log.Disable()
		return nil
	}

	for _, name := range names {
		if name == "all" {
			lm = logModMask(log.ModuleMaskAll)
			continue
		}
		mod, ok := log.ModuleByName(name)
		if !ok {
			return fmt.Errorf("unknown log module %q", name)
		}
		lm |= logModMask(mod.Mask())
	}
	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

// outfile is an output destination given on the command line: a file path,
// or one of stdout, stderr and '-' (stdout).
type outfile struct {
	io.WriteCloser
	name string
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// Decode implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	f.name = ctx.Scan.Pop().Value.(string)
	switch f.name {
	case "stdout", "-":
		f.WriteCloser = nopCloser{os.Stdout}
	case "stderr":
		f.WriteCloser = nopCloser{os.Stderr}
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return err
		}
		f.WriteCloser = fd
	}
	return nil
}

func (f *outfile) String() string { return f.name }

func checkf(err error, format string, args ...any) {
	if err != nil {
		fatalf("%s: %v", fmt.Sprintf(format, args...), err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "vpad: "+format+"\n", args...)
	os.Exit(1)
}
