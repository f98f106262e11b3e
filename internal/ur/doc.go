// Package ur implements Uniform Resources: typed CBOR payloads rendered
// as "ur:<type>/<minimal bytewords>" strings.
//
// Payloads too large for one string are split with a fountain code into
// "ur:<type>/<seq>-<len>/<bytewords>" parts. The first len parts carry
// the fragments in order. Later parts are XOR mixes of fragments chosen
// by a Xoshiro256** generator seeded from the sequence number and the
// message checksum, so a decoder can recover the message from any
// sufficiently large subset of parts.
//
// # Usage
//
//	u, _ := ur.New("seed", cborBytes)
//	text := u.String()
//
//	enc, _ := ur.NewMultipartEncoder(u, 500)
//	for i := 0; i < enc.PartsCount(); i++ {
//	    fmt.Println(enc.NextPart())
//	}
//
//	dec := ur.NewMultipartDecoder()
//	for _, p := range parts {
//	    if err := dec.Receive(p); err != nil { ... }
//	    if dec.IsComplete() { break }
//	}
//	u, err := dec.Message()
package ur
