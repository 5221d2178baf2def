package main

import (
	"github.com/samber/lo"

	"github.com/vidkeys/vidkeys/cmd"
	"github.com/vidkeys/vidkeys/config"
	"github.com/vidkeys/vidkeys/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
