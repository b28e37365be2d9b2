// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex provides saving and loading of frame snapshots, and
// image assertions for tests of the frames that the compositor presents.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// encoders are the snapshot encoders by lower case file extension.
// Their decoders register themselves with [image.Decode].
var encoders = map[string]func(w io.Writer, img image.Image) error{
	".png":  png.Encode,
	".bmp":  bmp.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
}

// Save writes the image to the given file, encoded according to its
// extension: .png, .jpg, .jpeg or .bmp.
func Save(img image.Image, filename string) error {
	enc, ok := encoders[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		return fmt.Errorf("imagex.Save: unsupported image file %q", filename)
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	err = enc(bw, img)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Open reads an image from the given file in any format that [Save]
// writes, returning the name of the format it was decoded from.
func Open(filename string) (image.Image, string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	return image.Decode(bufio.NewReader(f))
}
