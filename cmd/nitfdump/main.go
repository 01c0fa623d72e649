// Copyright 2025 Terminus LLC. All rights reserved.
// Use of this source code is governed by the LICENSE in the repo root.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	nitf "github.com/Terminus-Geospatial/terminus-nitf-go"
)

// Exit codes, per spec §6: 0 success, 1 invalid arguments, 2 parse error,
// 3 I/O error.
const (
	exitOK = iota
	exitInvalidArgs
	exitParseError
	exitIOError
)

var (
	verbose bool
	viz     bool
	vizType string
)

func dumpOne(path string) int {
	c, err := nitf.LoadNITF(path, nil)
	if err != nil {
		if errors.Is(err, nitf.ErrFileNotFound) {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			return exitIOError
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return exitParseError
	}
	defer c.Close()

	if verbose {
		fmt.Println(c.FileHeader.LogString())
		for i, seg := range c.ImageSegments {
			fmt.Printf("Image Segment %d:\n%s", i, seg.Subheader.LogString())
		}
	}

	kvp := c.AsKVP()
	keys := make([]string, 0, len(kvp))
	for k := range kvp {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sorted := make(map[string]string, len(kvp))
	for _, k := range keys {
		sorted[k] = kvp[k]
	}
	out, _ := json.MarshalIndent(sorted, "", "  ")
	fmt.Println(string(out))

	if viz {
		renderViz(c, vizType)
	}

	return exitOK
}

// renderViz is a stub: rendering a pixel array to a viewable format is out
// of scope. It only reports what it would have done.
func renderViz(c *nitf.Container, vizType string) {
	fmt.Printf("viz: %d image segment(s), type=%q (rendering not implemented)\n", len(c.ImageSegments), vizType)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "nitfdump",
		Short: "A NITF 2.1 file parser",
		Long:  "Parses National Imagery Transmission Format files and dumps their structure",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump [paths...]",
		Short: "Dump one or more NITF files",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			code := exitOK
			for _, path := range args {
				if c := dumpOne(path); c != exitOK {
					code = c
				}
			}
			os.Exit(code)
		},
	}
	dumpCmd.Flags().BoolVarP(&viz, "viz", "", false, "render a visualization of the image segments")
	dumpCmd.Flags().StringVarP(&vizType, "viz-type", "", "", "visualization renderer to use")

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	root.AddCommand(versionCmd, dumpCmd)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitInvalidArgs)
	}
}
