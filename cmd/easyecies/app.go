package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// env is the state set up before any command runs.
type env struct {
	cfg *config
	log zerolog.Logger
}

func newApp() *cli.App {
	e := &env{log: zerolog.Nop()}
	return &cli.App{
		Name:  "easyecies",
		Usage: "Brainpool ECIES encryption and key store tool",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "config file, easyecies.yaml is looked up by default"},
			&cli.StringFlag{Name: "dir", Aliases: []string{"d"}, Usage: "key store directory"},
			&cli.StringFlag{Name: "prefix", Usage: "key store file name prefix"},
			&cli.IntFlag{Name: "key-size", Usage: "key size in bits"},
			&cli.StringFlag{Name: "log-level", Usage: "log level (debug, info, warn, error)"},
		},
		Before: e.setup,
		Commands: []*cli.Command{
			curvesCommand(),
			keygenCommand(e),
			encryptCommand(e),
			decryptCommand(e),
			showCommand(e),
			obfuscateCommand(),
			deobfuscateCommand(),
		},
	}
}

func (e *env) setup(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("dir") {
		cfg.Dir = c.String("dir")
	}
	if c.IsSet("prefix") {
		cfg.Prefix = c.String("prefix")
	}
	if c.IsSet("key-size") {
		cfg.KeySize = c.Int("key-size")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.log = zerolog.New(zerolog.ConsoleWriter{
		Out:        c.App.ErrWriter,
		TimeFormat: time.DateTime,
	}).Level(level).With().Timestamp().Logger()
	return nil
}
