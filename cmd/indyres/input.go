/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	yaml "gopkg.in/yaml.v2"
)

// readDocument returns a document given inline, as @file or as "-" for stdin
func readDocument(cmd *cobra.Command, arg string) (string, error) {
	switch {
	case arg == "-":
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "reading stdin failed")
		}
		return strings.TrimSpace(string(raw)), nil
	case strings.HasPrefix(arg, "@"):
		raw, err := os.ReadFile(arg[1:])
		if err != nil {
			return "", errors.Wrapf(err, "reading %s failed", arg[1:])
		}
		return strings.TrimSpace(string(raw)), nil
	default:
		return arg, nil
	}
}

// readYAML decodes a yaml (or json) file into out
func readYAML(path string, out interface{}) error {
	if path == "" {
		return errors.New("--file is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s failed", path)
	}
	if err := yaml.UnmarshalStrict(raw, out); err != nil {
		return errors.Wrapf(err, "decoding %s failed", path)
	}
	return nil
}

// optionalString returns nil unless the flag was set on the command line
func optionalString(flags *pflag.FlagSet, name, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}
