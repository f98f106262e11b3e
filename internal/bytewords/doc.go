// Package bytewords encodes bytes as four-letter English words.
//
// Every byte maps to one of 256 words. A CRC-32 (IEEE) checksum of the
// payload is appended big-endian as four extra words before encoding.
//
// # Styles
//
//	Standard  "able acid also"   words joined by spaces
//	URI       "able-acid-also"   words joined by hyphens
//	Minimal   "aeadao"           first and last letter of each word
//
// Minimal is the style used inside UR strings.
package bytewords
