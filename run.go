package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/veandco/go-sdl2/sdl"
	"golang.org/x/sync/errgroup"

	"vpad/emu"
	"vpad/emu/log"
	"vpad/emu/rpc"
	"vpad/emu/ws"
	"vpad/hw/input"
	"vpad/ui"
)

var windowBackground = sdl.Color{R: 32, G: 32, B: 40, A: 255}

// runMain samples input devices until the window is closed.
func runMain(args Run, cfgpath string) {
	cfg := emu.LoadConfigOrDefault(cfgpath)

	var exitcode int
	sdl.Main(func() {
		if err := runInput(args, cfgpath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			exitcode = 1
		}
	})
	os.Exit(exitcode)
}

func runInput(args Run, cfgpath string, cfg emu.Config) error {
	router := input.NewRouter(cfg.Input)
	router.SetTickPeriod(cfg.Emulation.TickPeriod())

	hid := emu.NewHID(router)
	router.OnTick(hid.Update)
	log.AddContext(hid)

	var (
		win *ui.Window
		err error
	)
	sdl.Do(func() {
		win, err = ui.NewWindow("vpad", 2*ui.TouchWidth, 2*ui.TouchHeight, ui.DefaultWindowFlags, router.Keyboard(), router)
	})
	if err != nil {
		return err
	}
	defer sdl.Do(win.Close)

	var sched emu.Scheduler
	sdl.Do(func() { router.Init(&sched) })
	defer func() {
		router.Shutdown()
		sched.Wait()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if args.Duration > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, args.Duration)
		defer stop()
	}

	g, ctx := errgroup.WithContext(ctx)

	if args.JSON != nil {
		g.Go(func() error {
			defer args.JSON.Close()
			return hid.WriteJSON(ctx, args.JSON)
		})
	}

	if args.Port != 0 {
		server, err := rpc.NewServer("", args.Port, router)
		if err != nil {
			return fmt.Errorf("rpc server: %w", err)
		}
		g.Go(func() error {
			<-ctx.Done()
			return server.Close()
		})
	}

	if args.WS != "" {
		server, err := ws.NewServer(args.WS)
		if err != nil {
			return fmt.Errorf("websocket server: %w", err)
		}
		states, unsubscribe := hid.Subscribe()
		g.Go(func() error {
			defer server.Close()
			defer unsubscribe()
			return server.Run(ctx, states)
		})
	}

	if args.Watch {
		g.Go(func() error {
			return emu.WatchConfig(ctx, cfgpath, emu.ConfigSettleDelay, func(cfg emu.Config) {
				router.ReloadSettings(cfg.Input)
			})
		})
	}

	// Window events are processed at the input sampling rate.
	ticker := time.NewTicker(input.TickPeriod)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			open := true
			sdl.Do(func() {
				open = win.Pump()
				win.Draw(windowBackground)
			})
			if !open {
				break loop
			}
		}
	}

	cancel()
	return g.Wait()
}

// captureMain binds a button to the next pressed input.
func captureMain(args Capture, cfgpath string) {
	slot, ok := input.SlotByName(args.Button)
	if !ok {
		fatalf("unknown button %q", args.Button)
	}
	cfg := emu.LoadConfigOrDefault(cfgpath)
	router := input.NewRouter(cfg.Input)

	var exitcode int
	sdl.Main(func() {
		var (
			b   input.Binding
			err error
		)
		sdl.Do(func() { b, err = ui.Capture(router, slot, args.Timeout) })
		if err != nil {
			fmt.Fprintf(os.Stderr, "error capturing input: %v\n", err)
			exitcode = 1
			return
		}
		if !b.IsSet() {
			fmt.Fprintln(os.Stderr, "no input captured")
			return
		}

		fmt.Printf("%s = %s (%s)\n", slot, b, b.DisplayName())
		if args.DryRun {
			return
		}

		cfg.Input.Assign(slot, b)
		if err := emu.SaveConfig(cfgpath, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error saving config: %v\n", err)
			exitcode = 1
		}
	})
	os.Exit(exitcode)
}

// devicesMain lists connected devices.
func devicesMain() {
	sdl.Main(func() {
		router := input.NewRouter(input.DefaultConfig())

		var devs []input.Device
		sdl.Do(func() { devs = router.AllDevices() })

		fmt.Println(devicesTable(devs))
		for _, dev := range devs {
			sdl.Do(func() { dev.Close() })
		}
	})
}

func devicesTable(devs []input.Device) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Device", "Name", "Inputs"})
	for _, dev := range devs {
		var inputs []string
		if js, ok := dev.(*input.JoystickDevice); ok {
			for key := 0; js.InputName(key) != ""; key++ {
				inputs = append(inputs, fmt.Sprintf("%d: %s", key, js.InputName(key)))
			}
		}
		t.AppendRow(table.Row{dev.Identity(), dev.Name(), strings.Join(inputs, "\n")})
	}
	return t.Render()
}

// bindingsMain shows, and optionally resets, the bindings.
func bindingsMain(args Bindings, cfgpath string) {
	cfg := emu.LoadConfigOrDefault(cfgpath)
	if args.Reset {
		cfg.Input = input.DefaultConfig()
		checkf(emu.SaveConfig(cfgpath, cfg), "failed to save config to %s", cfgpath)
	}
	fmt.Println(bindingsTable(cfg.Input))
}

func bindingsTable(cfg input.Config) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Button", "Binding", "Input"})
	for s := range input.Slot(input.NumSlots) {
		b := cfg.Get(s)
		t.AppendRow(table.Row{s, b, b.DisplayName()})
	}
	return t.Render()
}
