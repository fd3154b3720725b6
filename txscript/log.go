package txscript

import (
	"github.com/kaspanet/chainwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("SCRP")
