// Package x86 decodes Intel 8086/8088 machine code into textual assembly.
//
// The package turns a byte stream into a sequence of decoded instructions
// without ever executing them: there is no register file, no memory image,
// and no flags register here, only opcode recognition and operand
// formatting.
//
// Decoding proceeds byte by byte through a Cursor. The first byte of an
// instruction is classified by trying opcode bit-patterns of increasing
// specificity (4-bit group codes first, exact 8-bit opcodes last); the
// matching form then consumes whatever additional bytes it needs (a
// ModR/M byte, a displacement, an immediate) and renders the operands it
// found.
//
// Example usage:
//
//	cur := x86.NewCursor(data)
//	for !cur.Done() {
//		line, err := x86.Decode(cur)
//		if err != nil {
//			break
//		}
//		fmt.Println(line)
//	}
package x86
