// Copyright 2018 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package compression implements compression of table artifacts.
package compression

import (
	"fmt"
	"sort"
	"strings"
)

// Compressor defines a single compression scheme (such as XZ).
type Compressor interface {
	// Name is typically the name of a class.
	Name() string

	// Extension is the file name suffix of compressed artifacts.
	Extension() string

	// Decode and Encode obey "x == Decode(Encode(x))".
	Decode(encodedData []byte) ([]byte, error)
	Encode(decodedData []byte) ([]byte, error)
}

var compressors = map[string]Compressor{}

func register(c Compressor) {
	compressors[strings.ToLower(c.Name())] = c
}

func init() {
	register(&XZ{})
	register(&ZSTD{})
	register(&LZ4{})
}

// ByName returns the Compressor with the name "name" (case insensitive).
func ByName(name string) (Compressor, error) {
	c, ok := compressors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown compression %q, supported: %s", name, strings.Join(Names(), ", "))
	}
	return c, nil
}

// Names returns the names of the supported compressions.
func Names() []string {
	names := make([]string, 0, len(compressors))
	for name := range compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
