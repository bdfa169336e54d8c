// brickimg turns an image into a brick layout for a building game.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/setanarut/brickimg/internal/config"
	"github.com/setanarut/brickimg/internal/log"
)

const description = `Converts an image into bricks.

The image is resized, reduced to a small palette and converted to HSV. The
scalable mode covers each uniform color region with as few rectangular bricks
as a greedy row scan finds.`

func main() {
	var cli config.CLI
	k := kong.Parse(&cli,
		kong.Name("brickimg"),
		kong.Description(description),
		kong.UsageOnError(),
		kong.Configuration(kongyaml.Loader, configPaths()...),
	)

	logger, closer, err := log.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to setup logger:", err)
		os.Exit(2)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	k.Bind(logger)
	k.BindTo(ctx, (*context.Context)(nil))
	err = k.Run()
	if err != nil {
		logger.Error("failed", "error", err)
		closer.Close()
		os.Exit(1)
	}
}

func configPaths() []string {
	paths := []string{"brickimg.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "brickimg", "config.yaml"))
	}
	return paths
}
