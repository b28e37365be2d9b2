// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command osrdemo runs the off-screen rendering compositor headlessly,
// either on a built-in scenario or attached to a remote engine, and
// saves the frames it presents as images.
package main

import (
	"log/slog"
	"os"

	"cogentcore.org/osr/config"
	"cogentcore.org/osr/logx"
	"github.com/spf13/cobra"
)

// App holds the state shared by the commands.
type App struct {

	// SettingsPath is the settings file, if any.
	SettingsPath string

	// Settings are the settings opened from SettingsPath,
	// or the defaults.
	Settings config.Settings

	veryVerbose, verbose, quiet bool
}

func main() {
	if err := newRootCmd(&App{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "osrdemo",
		Short:         "Run the off-screen rendering compositor headlessly",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&a.SettingsPath, "settings", "s", "", "settings file (.toml, .yaml or .yml)")
	pf.BoolVar(&a.veryVerbose, "vv", false, "log debugging messages")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "log informational messages")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	root.AddCommand(newScenarioCmd(a), newConnectCmd(a))
	return root
}

// setup opens the settings and sets up logging.
func (a *App) setup() error {
	logx.SetDefaultLogger()
	a.Settings = config.Defaults()
	if a.SettingsPath != "" {
		s, err := config.Open(a.SettingsPath)
		if err != nil {
			return err
		}
		a.Settings = s
		if err := s.ApplyLogging(); err != nil {
			return err
		}
	}
	if a.veryVerbose || a.verbose || a.quiet {
		logx.UserLevel = logx.LevelFromFlags(a.veryVerbose, a.verbose, a.quiet)
	}
	slog.Debug("osrdemo: settings", "path", a.SettingsPath, "level", logx.UserLevel)
	return nil
}
