// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the settings of the compositor and
// surface host, stored in a TOML or YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/osr/debounce"
	"cogentcore.org/osr/host"
	"cogentcore.org/osr/logx"
	"cogentcore.org/osr/scale"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the user settings of the surface host.
type Settings struct {

	// ResizeDelay is the debounce window for resizing the renderer.
	ResizeDelay Duration `toml:"resize-delay" yaml:"resize-delay" def:"100ms"`

	// HiDPIMode is which side scales for high DPI screens:
	// "host" if host coordinates are device pixels, and "toolkit"
	// if the toolkit virtualizes the pixel density.
	HiDPIMode string `toml:"hidpi-mode" yaml:"hidpi-mode" def:"toolkit"`

	// ScaleFactor is the user interface scale of the toolkit.
	ScaleFactor float64 `toml:"scale-factor" yaml:"scale-factor" def:"1"`

	// PixelDensity is the device pixel ratio used until
	// the screen of the surface is known.
	PixelDensity float64 `toml:"pixel-density" yaml:"pixel-density" def:"1"`

	// MouseWheel is whether mouse wheel events are sent to the renderer.
	MouseWheel bool `toml:"mouse-wheel" yaml:"mouse-wheel" def:"true"`

	// LogLevel is the logging level: debug, info, warn or error.
	LogLevel string `toml:"log-level" yaml:"log-level" def:"warn"`

	// Platform is the platform whose conventions the offscreen
	// platform follows: offscreen, macos, windows or linux.
	Platform string `toml:"platform" yaml:"platform" def:"offscreen"`

	// Screens are the screens of the offscreen platform;
	// one default screen if there are none.
	Screens []ScreenSettings `toml:"screens" yaml:"screens"`
}

// ScreenSettings are the settings of one offscreen screen.
type ScreenSettings struct {
	Name string `toml:"name" yaml:"name"`

	// X, Y, Width and Height are the geometry of the screen
	// in host screen coordinates.
	X      int `toml:"x" yaml:"x"`
	Y      int `toml:"y" yaml:"y"`
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`

	DevicePixelRatio float64 `toml:"device-pixel-ratio" yaml:"device-pixel-ratio"`
}

// Duration is a [time.Duration] that is stored as a string such as "100ms".
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	td, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(td)
	return nil
}

// Defaults returns the default settings.
func Defaults() Settings {
	return Settings{
		ResizeDelay:  Duration(debounce.DefaultWindow),
		HiDPIMode:    "toolkit",
		ScaleFactor:  1,
		PixelDensity: 1,
		MouseWheel:   true,
		LogLevel:     "warn",
		Platform:     "offscreen",
	}
}

// Clone returns a deep copy of the settings.
func (s *Settings) Clone() Settings {
	var c Settings
	if err := copier.CopyWithOption(&c, s, copier.Option{DeepCopy: true}); err != nil {
		slog.Error("config: clone settings", "err", err)
		return *s
	}
	return c
}

// Validate returns an error describing every invalid setting, or nil.
func (s *Settings) Validate() error {
	var errs []error
	if s.ResizeDelay < 0 {
		errs = append(errs, fmt.Errorf("resize-delay %v is negative", time.Duration(s.ResizeDelay)))
	}
	if _, err := scale.ParseMode(s.HiDPIMode); err != nil {
		errs = append(errs, err)
	}
	if s.ScaleFactor <= 0 {
		errs = append(errs, fmt.Errorf("scale-factor %g is not positive", s.ScaleFactor))
	}
	if s.PixelDensity <= 0 {
		errs = append(errs, fmt.Errorf("pixel-density %g is not positive", s.PixelDensity))
	}
	if _, err := logx.ParseLevel(s.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParsePlatform(s.Platform); err != nil {
		errs = append(errs, err)
	}
	for i, sc := range s.Screens {
		if sc.Width <= 0 || sc.Height <= 0 {
			errs = append(errs, fmt.Errorf("screen %d (%q) has an empty geometry", i, sc.Name))
		}
	}
	return errors.Join(errs...)
}

// Scale returns the scale state of the settings.
func (s *Settings) Scale() (scale.State, error) {
	m, err := scale.ParseMode(s.HiDPIMode)
	if err != nil {
		return scale.Default(), err
	}
	return scale.New(s.PixelDensity, s.ScaleFactor, m), nil
}

// HostOptions returns the [host.Options] of the settings.
func (s *Settings) HostOptions() (host.Options, error) {
	opts := host.DefaultOptions()
	opts.MouseWheelEnabled = s.MouseWheel
	opts.ResizeDelay = time.Duration(s.ResizeDelay)
	sc, err := s.Scale()
	opts.Scale = sc
	return opts, err
}

// ApplyLogging sets [logx.UserLevel] from the log level setting.
func (s *Settings) ApplyLogging() error {
	return logx.SetLevel(s.LogLevel)
}

// format is a settings file format.
type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(filename string) (format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	}
	return formatTOML, fmt.Errorf("config: unsupported settings file extension %q (want .toml, .yaml or .yml)", filepath.Ext(filename))
}

// Open opens the settings from the given TOML or YAML file, where
// settings that are not in the file keep their default values. A
// leading ~ in the filename is expanded to the home directory.
func Open(filename string) (Settings, error) {
	s := Defaults()
	fnm, err := homedir.Expand(filename)
	if err != nil {
		return s, err
	}
	b, err := os.ReadFile(fnm)
	if err != nil {
		return s, err
	}
	if err := Decode(&s, b, fnm); err != nil {
		return Defaults(), err
	}
	return s, s.Validate()
}

// Decode decodes the given settings data over s, with the format
// given by the extension of filename.
func Decode(s *Settings, b []byte, filename string) error {
	f, err := formatOf(filename)
	if err != nil {
		return err
	}
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(b, s)
	default:
		err = toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(s)
	}
	if err != nil {
		return fmt.Errorf("config: decoding %s: %w", filename, err)
	}
	return nil
}

// Save saves the settings to the given TOML or YAML file,
// making its directory if needed.
func Save(filename string, s *Settings) error {
	fnm, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	f, err := formatOf(fnm)
	if err != nil {
		return err
	}
	var b []byte
	switch f {
	case formatYAML:
		b, err = yaml.Marshal(s)
	default:
		b, err = toml.Marshal(s)
	}
	if err != nil {
		return fmt.Errorf("config: encoding %s: %w", fnm, err)
	}
	if err := os.MkdirAll(filepath.Dir(fnm), 0750); err != nil {
		return err
	}
	return os.WriteFile(fnm, b, 0640)
}

// DefaultPath returns the default settings file,
// which is in the configuration directory in the home directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("config: finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "osr", "settings.toml"), nil
}
