// Package config defines the command line of brickimg.
package config

import (
	"github.com/alecthomas/kong"

	"github.com/setanarut/brickimg/internal/cmd"
)

type Log struct {
	Level string `help:"Log level: debug, info, warn, error." default:"info" enum:"debug,info,warn,error" env:"BRICKIMG_LOG_LEVEL"`
	File  string `help:"Also write logs to this file." type:"path" env:"BRICKIMG_LOG_FILE"`
}

// CLI is the root command structure for kong.
type CLI struct {
	Log    `embed:"" prefix:"log."`
	Config kong.ConfigFlag `help:"YAML configuration file." env:"BRICKIMG_CONFIG"`

	Scalable cmd.Scalable `cmd:"" default:"withargs" help:"Build scalable bricks from uniform color rectangles."`
	Text     cmd.Text     `cmd:"" help:"Build text bricks, one line per row and color."`
	Palette  cmd.Palette  `cmd:"" help:"Save the extracted palette as PNG."`
}
