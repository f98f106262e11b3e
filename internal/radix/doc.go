// Package radix projects byte streams onto small alphabets and parses
// digit strings back into bytes.
//
// The projection is a rounding map, not a positional base conversion:
// each byte b becomes round(b/255 * (radix-1)). Several bytes map to the
// same symbol, so rendering is one-way for every radix below 256.
//
// # Functions
//
//	ProjectToRadix(data, radix)             // []int in [0, radix-1]
//	RenderInts(data, low, high, separator)  // "3 1 2 ..." shifted by low
//	RenderAlphabet(data, radix, symbolFn)   // cards, letters, custom tables
//	ParseDigitString(text, low, high)       // validate a digit string
//	ParseInts(text)                         // whitespace separated 0..255
package radix
