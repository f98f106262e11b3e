// Package entropy turns variable length input into fixed size seed bytes.
//
// Three derivations are provided:
//
//   - DirectHash truncates a SHA-256 digest and is capped at 32 bytes.
//   - Expand stretches a SHA-256 digest with HKDF to any length.
//   - Deterministic is an io.Reader seeded from a string. Every Read call
//     advances a 64-bit counter that salts the HKDF expansion, so a fixed
//     seed string and call sequence always yields the same bytes.
//
// A Deterministic reader is owned by exactly one pipeline run. Callers
// wanting isolation construct independent instances.
package entropy
