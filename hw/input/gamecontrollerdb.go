package input

import (
	"bufio"
	_ "embed"
	"io"
	"os"
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"vpad/emu/log"
)

//go:embed gamecontrollerdb.txt
var controllerDB string

// ControllerDBEnv names the environment variable pointing to an additional
// user-provided game controller database.
const ControllerDBEnv = "VPAD_GAMECONTROLLERDB"

// A controllerMapping is one line of a game controller database.
type controllerMapping struct {
	GUID     string
	Name     string
	Platform string
	Line     string
}

// parseControllerDB reads all valid mappings of a game controller database.
// Comments, blank and malformed lines are skipped.
func parseControllerDB(r io.Reader) []controllerMapping {
	var mappings []controllerMapping

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < 3 || len(fields[0]) != 32 || fields[1] == "" {
			log.ModDevice.DebugZ("skipping malformed controller mapping").
				String("line", line).
				End()
			continue
		}

		m := controllerMapping{
			GUID: strings.ToLower(fields[0]),
			Name: fields[1],
			Line: line,
		}
		for _, f := range fields[2:] {
			if p, ok := strings.CutPrefix(f, "platform:"); ok {
				m.Platform = p
			}
		}
		mappings = append(mappings, m)
	}
	return mappings
}

// loadControllerDB registers the embedded controller mappings, and then the
// user ones, to SDL. Returns the number of registered mappings.
func loadControllerDB() int {
	mappings := parseControllerDB(strings.NewReader(controllerDB))

	if path := os.Getenv(ControllerDBEnv); path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.ModDevice.WarnZ("can't open user controller database").
				String("path", path).
				Error("err", err).
				End()
		} else {
			mappings = append(mappings, parseControllerDB(f)...)
			f.Close()
		}
	}

	n := 0
	for _, m := range mappings {
		if sdl.GameControllerAddMapping(m.Line) < 0 {
			log.ModDevice.DebugZ("rejected controller mapping").
				String("guid", m.GUID).
				String("name", m.Name).
				End()
			continue
		}
		n++
	}
	return n
}
