// Package formats is the closed table of seed encodings.
//
// Every Key names one format. Its Format entry pairs a Decoder, turning
// input text into a seed, with an Encoder, rendering a seed as text, and
// records whether the encoding is reversible. Lossy formats (bits, cards,
// dice, base6, base10, ints) project entropy onto small alphabets and may
// only be produced from freshly generated random seeds; the workflow
// enforces that rule before any decoding happens.
//
// # Formats
//
//	random     generate Count bytes (input only)
//	hex        lowercase hexadecimal
//	btw/btwu/btwm  Bytewords standard, URI and minimal
//	bits base6 base10 dice  digit strings, hashed into Count bytes
//	cards      rank+suit pairs, expanded into Count bytes
//	ints       space separated integers in [Low, High]
//	bip39      BIP-39 mnemonic
//	slip39     SLIP-39 share mnemonics, one per line
//	sskr       SSKR shares in the SSKRFormat sub-encoding
//	envelope   ur:envelope with seed metadata
//	seed       ur:seed
//	multipart  ur:envelope split into fountain-coded parts
//
// SSKR input is handled by ResolveSSKR, which tries every share encoding
// in a fixed order.
package formats
