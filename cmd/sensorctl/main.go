package main

import (
	"github.com/robotalks/sense.go/pkg/cli"
	"github.com/robotalks/sense.go/pkg/cli/sh"

	_ "github.com/robotalks/sense.go/pkg/cli/cmds/sensor"
)

//go-build: CGO_ENABLED=0

func init() {
	cli.SetupFlags()
}

func main() {
	sh.Main()
}
