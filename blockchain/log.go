package blockchain

import (
	"github.com/kaspanet/chainwire/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CHAN")
