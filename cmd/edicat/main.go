// Command edicat prints and concatenates EDI documents one segment per line.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/edicat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/edicat/internal/adapters/driven/encoding"
	"github.com/custodia-labs/edicat/internal/adapters/driven/source/filesystem"
	"github.com/custodia-labs/edicat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/edicat/internal/adapters/driving/cli"
	"github.com/custodia-labs/edicat/internal/core/ports/driven"
	"github.com/custodia-labs/edicat/internal/core/services"
	"github.com/custodia-labs/edicat/internal/logger"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ignoreBrokenPipe()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx)
	stop()
	os.Exit(code)
}

// ignoreBrokenPipe turns a closed stdout into an EPIPE write error instead of
// a fatal SIGPIPE, so an early-exiting reader like head ends the run cleanly.
func ignoreBrokenPipe() {
	signal.Ignore(syscall.SIGPIPE)
}

func run(ctx context.Context) int {
	store := openConfigStore()
	decoders := encoding.NewFactory()

	cli.SetServices(cli.Services{
		Document:   services.NewDocumentService(filesystem.New(), decoders, logger.Diagnostic),
		Settings:   services.NewSettingsService(store, decoders),
		ConfigPath: store.Path(),
	})
	return cli.Execute(ctx, version)
}

// openConfigStore opens the TOML settings file, falling back to in-memory
// defaults when the config directory is unusable.
func openConfigStore() driven.ConfigStore {
	store, err := file.NewConfigStore("")
	if err != nil {
		logger.Warn("settings unavailable, using defaults: %v", err)
		return memory.NewConfigStore()
	}
	return store
}
