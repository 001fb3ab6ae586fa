// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"
)

// applyConfig sets the flags of fs named by the keys of the yaml file at
// path, unless they were given on the command line.  Keys naming flags of
// other commands are ignored.
func applyConfig(fs *pflag.FlagSet, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	var kv map[string]interface{}
	if err := yaml.Unmarshal(b, &kv); err != nil {
		return errors.Wrapf(err, "config %s", path)
	}
	for k, v := range kv {
		f := fs.Lookup(k)
		if f == nil || f.Changed {
			continue
		}
		if err := fs.Set(k, fmt.Sprint(v)); err != nil {
			return errors.Wrapf(err, "config %s: %s", path, k)
		}
	}
	return nil
}
