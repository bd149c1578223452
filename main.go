package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"vpad/emu"
)

func main() {
	cli := parseArgs(os.Args[1:])

	cfgpath := cli.Config
	if cfgpath == "" {
		cfgpath = emu.DefaultConfigPath()
	}

	switch cli.mode {
	case versionMode:
		fmt.Println("vpad", version())
	case devicesMode:
		devicesMain()
	case bindingsMode:
		bindingsMain(cli.Bindings, cfgpath)
	case captureMode:
		captureMain(cli.Capture, cfgpath)
	case runMode:
		runMain(cli.Run, cfgpath)
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}
