// Package serialization saves and loads parameter state dictionaries.
//
// File layout:
//
//	[4 bytes: Magic "AGRD"]
//	[4 bytes: Version (uint32 LE)]
//	[8 bytes: Header Size (uint64 LE)]
//	[Header: JSON metadata]
//	[Padding to a 64-byte boundary]
//	[Tensor data: raw little-endian bytes, in header order]
//
// The header lists every tensor with its dtype, shape and byte range in the
// data section, plus a SHA-256 checksum of the whole data section. Readers
// validate the ranges and the checksum before building any tensor.
//
// Example usage:
//
//	if err := serialization.SaveFile("model.agrd", nn.StateDict(model), nil); err != nil {
//	    log.Fatal(err)
//	}
//	state, _, err := serialization.LoadFile("model.agrd")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = nn.LoadStateDict(model, state)
package serialization
