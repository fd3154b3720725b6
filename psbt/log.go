package psbt

import (
	"github.com/kaspanet/chainwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("PSBT")
