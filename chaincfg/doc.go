// Package chaincfg defines chain configuration parameters.
//
// In addition to the main Bitcoin network, which is intended for the transfer
// of monetary value, there also exists two currently active standard networks:
// regression test and testnet (version 3). These networks are incompatible
// with each other (each sharing a different genesis block) and software should
// handle errors where input intended for one network is used on an application
// instance running on a different network.
//
// For library packages, chaincfg provides the ability to lookup chain
// parameters and encoding magics when passed a *Params, or by name through
// ParamsForName.
//
// For main packages, a (typically global) var may be assigned the address of
// one of the standard Param vars for use as the application's "active" network.
// When a network parameter is needed, it may then be looked up through this
// variable (either directly, or hidden in a library call).
//
// Address decoding consults the registered networks: Base58 version bytes and
// Bech32 human-readable parts resolve to the network that registered them
// first. The regression test network shares its Base58 version bytes with
// testnet, so such addresses resolve to testnet unless the caller asks for a
// specific network.
//
// Non-standard networks
//
// Non-standard networks may be registered with Register. Every network must
// have a unique Net value.
package chaincfg
