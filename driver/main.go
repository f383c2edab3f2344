// Copyright (c) 2024 The feltforge Authors
//
// Use of this software is governed by the MIT License included
// in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:      "feltforge",
		Usage:     "Contract test sandbox driver",
		Copyright: "(c) 2024 The feltforge Authors",
		Flags:     []cli.Flag{},
		Commands: []*cli.Command{
			&RunCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
