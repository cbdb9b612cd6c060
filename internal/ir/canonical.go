package ir

import (
	"bytes"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// CanonicalSignature renders a command as length-prefixed, NFC-normalised
// fields. The encoding is injective: no two distinct signatures share it.
func CanonicalSignature(c Command) []byte {
	var buf bytes.Buffer
	writeField(&buf, c.ReturnType)
	writeField(&buf, c.Name)
	buf.WriteString(strconv.Itoa(len(c.Params)))
	buf.WriteByte(';')
	for _, p := range c.Params {
		writeField(&buf, p.Type)
		writeField(&buf, p.Name)
	}
	return buf.Bytes()
}

// writeField normalises at the serialisation boundary.
func writeField(buf *bytes.Buffer, s string) {
	normalized := norm.NFC.String(s)
	buf.WriteString(strconv.Itoa(len(normalized)))
	buf.WriteByte(':')
	buf.WriteString(normalized)
}
