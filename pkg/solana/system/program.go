package system

// ProgramKey is the system program address.
//
// https://explorer.solana.com/address/11111111111111111111111111111111
var ProgramKey [32]byte
