package main

import (
	"github.com/kaspanet/chainwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CTL")
