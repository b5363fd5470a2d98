// Copyright 2023 the LinuxBoot Authors. All rights reserved
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
)

// ErrArgs means the arguments of the verb "Verb" are invalid
type ErrArgs struct {
	Verb string
	Err  error
}

func (err ErrArgs) Error() string {
	if err.Verb == "" {
		return fmt.Sprintf("invalid arguments: %v", err.Err)
	}
	return fmt.Sprintf("invalid arguments of '%s': %v", err.Verb, err.Err)
}

func (err ErrArgs) Unwrap() error {
	return err.Err
}

// ExtraArgs returns ErrArgs if the verb "verb" received positional
// arguments it does not accept.
func ExtraArgs(verb string, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return ErrArgs{Verb: verb, Err: fmt.Errorf("there are extra arguments: %q", args)}
}
