// Package charset provides the character encodings used when a stub body or an expected
// request body is given as text rather than bytes.
//
// UTF8 and ASCII are strict: ASCII refuses any character outside the 7-bit range instead of
// substituting a replacement byte, which is what makes it useful for checking that a client
// sends plain ASCII payloads. The remaining encodings are backed by golang.org/x/text.
package charset
