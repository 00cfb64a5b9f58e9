package main

import (
	"github.com/docker/docker/pkg/reexec"

	"github.com/Paintersrp/launcher/internal/cli"
	"github.com/Paintersrp/launcher/internal/metrics"
)

func main() {
	// The child execution context runs through here before replacing itself.
	if reexec.Init() {
		return
	}
	metrics.EmitBuildInfo()
	cli.Execute()
}
