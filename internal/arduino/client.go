// Package arduino drives the arduino-cli board manager.
//
// The pipeline depends only on the four operations of [ToolClient]; [CLI]
// implements them by building argv for arduino-cli and executing it through
// a runner.Runner. No shell is involved.
package arduino

import (
	"context"
	"strings"

	"github.com/thoreinstein/boardci/internal/platform"
	"github.com/thoreinstein/boardci/internal/runner"
)

// DefaultBinary is the arduino-cli executable name looked up on PATH.
const DefaultBinary = "arduino-cli"

// DefaultAdditionalURLs are the third-party board index URLs passed to every
// core operation.
var DefaultAdditionalURLs = []string{
	"https://raw.githubusercontent.com/RAKWireless/RAKwireless-Arduino-BSP-Index/main/package_rakwireless_index.json",
	"https://adafruit.github.io/arduino-board-index/package_adafruit_index.json",
	"http://arduino.esp8266.com/stable/package_esp8266com_index.json",
	"https://dl.espressif.com/dl/package_esp32_index.json",
	"https://sandeepmistry.github.io/arduino-nRF5/package_nRF5_boards_index.json",
	"https://raw.githubusercontent.com/RAKWireless/RAKwireless-Arduino-BSP-Index/main/package_rakwireless.com_rui_index.json",
}

// ToolClient is the narrow surface of the board manager the pipeline uses.
// Every method blocks until the tool exits. A non-zero exit is reported in
// the Result; the error is reserved for failures to run the tool at all.
type ToolClient interface {
	UpdateIndex(ctx context.Context) (*runner.Result, error)
	InstallPlatform(ctx context.Context, pkg string) (*runner.Result, error)
	InstallLibrary(ctx context.Context, spec string) (*runner.Result, error)
	CompileSketch(ctx context.Context, fqbn platform.FQBN, dir string) (*runner.Result, error)
}

// CLI implements ToolClient by invoking arduino-cli.
type CLI struct {
	// Binary is the executable to run. Empty means DefaultBinary.
	Binary string
	// AdditionalURLs are passed with --additional-urls to core commands.
	AdditionalURLs []string
	// Runner executes the commands.
	Runner runner.Runner
}

// NewCLI returns a CLI with the given binary, URLs and runner.
func NewCLI(binary string, urls []string, r runner.Runner) *CLI {
	return &CLI{Binary: binary, AdditionalURLs: urls, Runner: r}
}

var _ ToolClient = (*CLI)(nil)

// UpdateIndex runs `core update-index`.
func (c *CLI) UpdateIndex(ctx context.Context) (*runner.Result, error) {
	return c.run(ctx, c.withURLs("core", "update-index")...)
}

// InstallPlatform runs `core install <vendor:arch>`.
func (c *CLI) InstallPlatform(ctx context.Context, pkg string) (*runner.Result, error) {
	return c.run(ctx, c.withURLs("core", "install", pkg)...)
}

// InstallLibrary runs `lib install <name[@version]>`.
func (c *CLI) InstallLibrary(ctx context.Context, spec string) (*runner.Result, error) {
	return c.run(ctx, "lib", "install", spec)
}

// CompileSketch runs `compile --fqbn <fqbn> <dir>`.
func (c *CLI) CompileSketch(ctx context.Context, fqbn platform.FQBN, dir string) (*runner.Result, error) {
	return c.run(ctx, "compile", "--fqbn", fqbn.String(), dir)
}

func (c *CLI) withURLs(args ...string) []string {
	if len(c.AdditionalURLs) == 0 {
		return args
	}
	return append(args, "--additional-urls", strings.Join(c.AdditionalURLs, ","))
}

func (c *CLI) run(ctx context.Context, args ...string) (*runner.Result, error) {
	bin := c.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	return c.Runner.Run(ctx, bin, args...)
}
