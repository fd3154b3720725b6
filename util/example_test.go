package util_test

import (
	"fmt"

	"github.com/kaspanet/chainwire/chaincfg"
	"github.com/kaspanet/chainwire/util"
)

func ExampleAmount_unitConversions() {
	amount := util.Amount(44433322211100)

	fmt.Println("Satoshi to kBTC:", amount.Format(util.AmountKiloBTC))
	fmt.Println("Satoshi to BTC:", amount)
	fmt.Println("Satoshi to MilliBTC:", amount.Format(util.AmountMilliBTC))
	fmt.Println("Satoshi to MicroBTC:", amount.Format(util.AmountMicroBTC))
	fmt.Println("Satoshi to Satoshi:", amount.Format(util.AmountSatoshi))

	// Output:
	// Satoshi to kBTC: 444.333222111 kBTC
	// Satoshi to BTC: 444333.222111 BTC
	// Satoshi to MilliBTC: 444333222.111 mBTC
	// Satoshi to MicroBTC: 444333222111 μBTC
	// Satoshi to Satoshi: 44433322211100 Satoshi
}

// This example demonstrates decoding an address string and inspecting the
// network and payload it carries.
func ExampleDecodeAddress() {
	addr, err := util.DecodeAddress("bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4", nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("Network:", addr.Network.Name)
	fmt.Println("Kind:", addr.Payload.Kind)
	fmt.Printf("Program: %x\n", addr.ScriptAddress())

	_, err = util.DecodeAddress("132F25rTsvBdp9JzLLBHP5mvGY66i1xdiM", &chaincfg.TestNet3Params)
	fmt.Println(err)

	// Output:
	// Network: mainnet
	// Kind: witnessprogram
	// Program: 751e76e8199196d454941c45d1b3a323f1433bd6
	// address 132F25rTsvBdp9JzLLBHP5mvGY66i1xdiM is for mainnet, not testnet3
}
