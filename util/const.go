// Copyright (c) 2013-2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import "github.com/kaspanet/chainwire/wire"

const (
	// SatoshiPerBitcent is the number of satoshi in one bitcoin cent.
	SatoshiPerBitcent = 1e6

	// SatoshiPerBitcoin is the number of satoshi in one bitcoin (1 BTC).
	SatoshiPerBitcoin = wire.SatoshiPerBitcoin

	// MaxSatoshi is the maximum transaction amount allowed in satoshi.
	MaxSatoshi = wire.MaxSatoshi
)
