// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"image"
	"strings"

	"cogentcore.org/osr/system"
)

// platforms are the platforms by their setting names.
var platforms = map[string]system.Platforms{
	"offscreen": system.Offscreen,
	"macos":     system.MacOS,
	"darwin":    system.MacOS,
	"windows":   system.Windows,
	"linux":     system.Linux,
}

// ParsePlatform returns the platform with the given name, ignoring case.
// An empty name is the offscreen platform.
func ParsePlatform(name string) (system.Platforms, error) {
	if name == "" {
		return system.Offscreen, nil
	}
	p, ok := platforms[strings.ToLower(name)]
	if !ok {
		return system.Offscreen, fmt.Errorf("could not find platform %q; please check that you spelled it correctly", name)
	}
	return p, nil
}

// Screen returns the [system.Screen] of the screen settings.
func (ss *ScreenSettings) Screen() *system.Screen {
	sc := &system.Screen{
		Name:             ss.Name,
		Geometry:         image.Rect(ss.X, ss.Y, ss.X+ss.Width, ss.Y+ss.Height),
		DevicePixelRatio: ss.DevicePixelRatio,
		LogicalDPI:       160,
		PhysicalDPI:      160,
		RefreshRate:      60,
	}
	if sc.DevicePixelRatio <= 0 {
		sc.DevicePixelRatio = 1
	}
	sc.UpdatePhysicalSize()
	return sc
}

// ConfigurePlatform applies the platform and screen settings
// to the given offscreen platform.
func (s *Settings) ConfigurePlatform(op *system.OffscreenPlatform) error {
	p, err := ParsePlatform(s.Platform)
	if err != nil {
		return err
	}
	op.SetPlatform(p)
	if len(s.Screens) == 0 {
		return nil
	}
	scs := make([]*system.Screen, len(s.Screens))
	for i := range s.Screens {
		scs[i] = s.Screens[i].Screen()
	}
	op.SetScreens(scs...)
	return nil
}
