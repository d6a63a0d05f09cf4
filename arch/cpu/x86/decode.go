package x86

import "fmt"

// Decode reads one instruction from cur and renders it as a line of NASM
// syntax (without a trailing newline). On failure the returned error is a
// *DecodeError carrying the byte offset the instruction started at.
func Decode(cur *Cursor) (string, error) {
	start := cur.Pos()

	b0, ok := cur.Take()
	if !ok {
		return "", &DecodeError{Offset: start, Err: ErrShortRead}
	}

	entry := dispatchTable[b0]
	if entry.decode == nil {
		return "", &DecodeError{Offset: start, Err: ErrUnknownOpcode}
	}

	line, err := entry.decode(cur, b0)
	if err != nil {
		return "", &DecodeError{Offset: start, Err: err}
	}
	return line, nil
}

// Disassemble decodes an entire byte stream into a NASM-compatible
// listing, stopping at the first decode error. The partially decoded
// lines (including the leading "bits 16" header) are returned alongside
// the error so a caller can still show what was recovered.
func Disassemble(data []byte) ([]string, error) {
	cur := NewCursor(data)
	lines := []string{"bits 16"}

	for !cur.Done() {
		line, err := Decode(cur)
		if err != nil {
			return lines, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// readModRM reads the ModR/M byte every form below needs before it can
// decode its operands.
func readModRM(cur *Cursor) (ModRM, error) {
	b, ok := cur.Take()
	if !ok {
		return ModRM{}, ErrShortRead
	}
	var m ModRM
	m.FromByte(b)
	return m, nil
}

// sizePrefix renders the NASM "word"/"byte" qualifier used when an
// operand's size can't be inferred from a register on the other side of
// the instruction.
func sizePrefix(w bool) string {
	if w {
		return "word"
	}
	return "byte"
}

// regName resolves a 3-bit reg/r-m field to its 8- or 16-bit register name.
func regName(reg uint8, w bool) string {
	if w {
		return reg16[reg]
	}
	return reg8[reg]
}

// memText renders an operand, prefixing it with "word "/"byte " when it is
// a memory reference (a bare register never needs the qualifier).
func memText(op Operand, w bool) string {
	if op.IsMemory() {
		return sizePrefix(w) + " " + op.String()
	}
	return op.String()
}

// aluRegMemRegDecoder handles the reg/mem<->reg form shared by mov and
// every ALU op: opcode bits ......dw select direction and width, and a
// ModR/M byte follows.
func aluRegMemRegDecoder(mnemonic string) decodeFunc {
	return func(cur *Cursor, b0 byte) (string, error) {
		d := (b0>>1)&1 == 1
		w := b0&1 == 1

		modrm, err := readModRM(cur)
		if err != nil {
			return "", err
		}
		rm, err := decodeEffectiveAddress(cur, modrm, w)
		if err != nil {
			return "", err
		}
		reg := Reg(regName(modrm.Reg, w))

		dst, src := rm, reg
		if d {
			dst, src = reg, rm
		}
		return fmt.Sprintf("%s %s, %s", mnemonic, dst.String(), src.String()), nil
	}
}

// aluImmToAccDecoder handles the immediate-to-accumulator form: opcode
// bits 00aaa10w, no ModR/M, a single following immediate.
func aluImmToAccDecoder(mnemonic string) decodeFunc {
	return func(cur *Cursor, b0 byte) (string, error) {
		w := b0&1 == 1
		acc := "al"
		var imm int64
		if w {
			acc = "ax"
			v, ok := cur.TakeI16LE()
			if !ok {
				return "", ErrShortRead
			}
			imm = int64(v)
		} else {
			v, ok := cur.TakeI8()
			if !ok {
				return "", ErrShortRead
			}
			imm = int64(v)
		}
		return fmt.Sprintf("%s %s, %d", mnemonic, acc, imm), nil
	}
}

// decodeGrp1ImmToRegMem handles immediate-to-reg/mem ALU ops (0x80-0x83):
// opcode bits 100000sw, a ModR/M selecting the ALU op and the r/m operand,
// then an immediate that is sign-extended from a single byte when s=1.
func decodeGrp1ImmToRegMem(cur *Cursor, b0 byte) (string, error) {
	s := (b0>>1)&1 == 1
	w := b0&1 == 1

	modrm, err := readModRM(cur)
	if err != nil {
		return "", err
	}
	mnemonic := alu[modrm.Reg]
	rm, err := decodeEffectiveAddress(cur, modrm, w)
	if err != nil {
		return "", err
	}

	var imm int64
	switch {
	case !w, s:
		v, ok := cur.TakeI8()
		if !ok {
			return "", ErrShortRead
		}
		imm = int64(v)
	default:
		v, ok := cur.TakeI16LE()
		if !ok {
			return "", ErrShortRead
		}
		imm = int64(v)
	}

	return fmt.Sprintf("%s %s, %d", mnemonic, memText(rm, w), imm), nil
}

// decodeMovImmToRegMem handles mov r/m, imm (0xC6/0xC7). ModR/M.reg must
// be 0; any other value is a reserved encoding.
func decodeMovImmToRegMem(cur *Cursor, b0 byte) (string, error) {
	w := b0&1 == 1

	modrm, err := readModRM(cur)
	if err != nil {
		return "", err
	}
	if modrm.Reg != 0 {
		return "", ErrReservedEncoding
	}
	rm, err := decodeEffectiveAddress(cur, modrm, w)
	if err != nil {
		return "", err
	}

	var imm int64
	if w {
		v, ok := cur.TakeI16LE()
		if !ok {
			return "", ErrShortRead
		}
		imm = int64(v)
	} else {
		v, ok := cur.TakeI8()
		if !ok {
			return "", ErrShortRead
		}
		imm = int64(v)
	}

	return fmt.Sprintf("mov %s, %d", memText(rm, w), imm), nil
}

// decodeMovImmToReg handles mov reg, imm (0xB0-0xBF): opcode bits
// 1011wrrr, no ModR/M, an immediate sized by w.
func decodeMovImmToReg(cur *Cursor, b0 byte) (string, error) {
	w := (b0>>3)&1 == 1
	reg := b0 & 0x07

	if w {
		v, ok := cur.TakeI16LE()
		if !ok {
			return "", ErrShortRead
		}
		return fmt.Sprintf("mov %s, %d", reg16[reg], v), nil
	}
	v, ok := cur.TakeI8()
	if !ok {
		return "", ErrShortRead
	}
	return fmt.Sprintf("mov %s, %d", reg8[reg], v), nil
}

// decodeMovMemAcc handles mov acc<->moffs (0xA0-0xA3): opcode bits
// 101000dw, a 16-bit direct address, no ModR/M.
func decodeMovMemAcc(cur *Cursor, b0 byte) (string, error) {
	d := (b0>>1)&1 == 1
	w := b0&1 == 1

	addr, ok := cur.TakeU16LE()
	if !ok {
		return "", ErrShortRead
	}
	acc := "al"
	if w {
		acc = "ax"
	}

	if d {
		return fmt.Sprintf("mov [%d], %s", addr, acc), nil
	}
	return fmt.Sprintf("mov %s, [%d]", acc, addr), nil
}

// decodeShortCondJump handles the short conditional jumps (0x70-0x7F):
// opcode bits 0111cccc, a signed rel8 displacement.
func decodeShortCondJump(cur *Cursor, b0 byte) (string, error) {
	mnemonic := cjmp[b0&0x0F]
	disp, ok := cur.TakeI8()
	if !ok {
		return "", ErrShortRead
	}
	return fmt.Sprintf("%s $+2+%d", mnemonic, disp), nil
}

// decodeLoopJcxz handles loop/loopz/loopnz/jcxz (0xE0-0xE3): opcode bits
// 111000tt, a signed rel8 displacement.
func decodeLoopJcxz(cur *Cursor, b0 byte) (string, error) {
	mnemonic := loopn[b0&0x03]
	disp, ok := cur.TakeI8()
	if !ok {
		return "", ErrShortRead
	}
	return fmt.Sprintf("%s $+2+%d", mnemonic, disp), nil
}

// decodePushReg handles push reg16 (0x50-0x57): opcode bits 01010rrr.
func decodePushReg(cur *Cursor, b0 byte) (string, error) {
	return fmt.Sprintf("push %s", reg16[b0&0x07]), nil
}

// decodePopReg handles pop reg16 (0x58-0x5F): opcode bits 01011rrr.
func decodePopReg(cur *Cursor, b0 byte) (string, error) {
	return fmt.Sprintf("pop %s", reg16[b0&0x07]), nil
}

// decodeXchgWithAX handles xchg ax, reg16 (0x90-0x97): opcode bits
// 10010rrr, including the degenerate rrr=000 case (xchg ax, ax).
func decodeXchgWithAX(cur *Cursor, b0 byte) (string, error) {
	return fmt.Sprintf("xchg ax, %s", reg16[b0&0x07]), nil
}

// decodeInOutImm handles in/out with an immediate port (0xE4-0xE7):
// opcode bits 111001dw.
func decodeInOutImm(cur *Cursor, b0 byte) (string, error) {
	d := (b0>>1)&1 == 1
	w := b0&1 == 1

	port, ok := cur.TakeI8()
	if !ok {
		return "", ErrShortRead
	}
	acc := "al"
	if w {
		acc = "ax"
	}

	if d {
		return fmt.Sprintf("out %d, %s", port, acc), nil
	}
	return fmt.Sprintf("in %s, %d", acc, port), nil
}

// decodeInOutDX handles in/out with the port in DX (0xEC-0xEF): opcode
// bits 111011dw.
func decodeInOutDX(cur *Cursor, b0 byte) (string, error) {
	d := (b0>>1)&1 == 1
	w := b0&1 == 1
	acc := "al"
	if w {
		acc = "ax"
	}

	if d {
		return fmt.Sprintf("out dx, %s", acc), nil
	}
	return fmt.Sprintf("in %s, dx", acc), nil
}

// decodeGrp1Unary handles the F6/F7 unary group (test/not/neg/mul/imul/
// div/idiv): opcode bits 1111011w, a ModR/M selecting the operation via
// reg, and (for test only) a following immediate.
func decodeGrp1Unary(cur *Cursor, b0 byte) (string, error) {
	w := b0&1 == 1

	modrm, err := readModRM(cur)
	if err != nil {
		return "", err
	}
	mnemonic := grp1[modrm.Reg]
	rm, err := decodeEffectiveAddress(cur, modrm, w)
	if err != nil {
		return "", err
	}
	dst := memText(rm, w)

	if modrm.Reg == 0 || modrm.Reg == 1 {
		var imm int64
		if w {
			v, ok := cur.TakeI16LE()
			if !ok {
				return "", ErrShortRead
			}
			imm = int64(v)
		} else {
			v, ok := cur.TakeI8()
			if !ok {
				return "", ErrShortRead
			}
			imm = int64(v)
		}
		return fmt.Sprintf("%s %s, %d", mnemonic, dst, imm), nil
	}
	return fmt.Sprintf("%s %s", mnemonic, dst), nil
}

// decodeGrp2 handles the FE/FF unary group (inc/dec/call/jmp/push):
// opcode bits 1111111w, a ModR/M selecting the operation via reg. reg=7
// is reserved.
func decodeGrp2(cur *Cursor, b0 byte) (string, error) {
	w := b0&1 == 1

	modrm, err := readModRM(cur)
	if err != nil {
		return "", err
	}
	if modrm.Reg == 7 {
		return "", ErrReservedEncoding
	}
	mnemonic := grp2[modrm.Reg]
	rm, err := decodeEffectiveAddress(cur, modrm, w)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s", mnemonic, memText(rm, w)), nil
}

// decodeIncDecReg handles the one-byte inc/dec reg16 forms (0x40-0x4F):
// opcode bits 0100drrr, d selecting inc (0) vs dec (1).
func decodeIncDecReg(cur *Cursor, b0 byte) (string, error) {
	mnemonic := "inc"
	if (b0>>3)&1 == 1 {
		mnemonic = "dec"
	}
	return fmt.Sprintf("%s %s", mnemonic, reg16[b0&0x07]), nil
}

// segDecoder renders a fixed push/pop-segment instruction; these occupy
// scattered single bytes (0x06/0x07/0x0E/0x16/0x17/0x1E/0x1F), so each is
// registered as its own exact opcode match against a segment index into
// seg.
func segDecoder(op string, segIndex uint8) decodeFunc {
	name := seg[segIndex]
	return func(cur *Cursor, b0 byte) (string, error) {
		return fmt.Sprintf("%s %s", op, name), nil
	}
}

// loadPointerDecoder handles lea/lds/les: a 16-bit destination register
// (ModR/M.reg) loaded from a memory operand (ModR/M.rm). Register
// addressing for the source is not a valid encoding.
func loadPointerDecoder(mnemonic string) decodeFunc {
	return func(cur *Cursor, b0 byte) (string, error) {
		modrm, err := readModRM(cur)
		if err != nil {
			return "", err
		}
		if modrm.IsRegister() {
			return "", ErrUnsupportedAddressing
		}
		mem, err := decodeEffectiveAddress(cur, modrm, true)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s, %s", mnemonic, reg16[modrm.Reg], mem.String()), nil
	}
}

// decodePopMem handles pop r/m16 (0x8F), Group 1A. ModR/M.reg must be 0.
func decodePopMem(cur *Cursor, b0 byte) (string, error) {
	modrm, err := readModRM(cur)
	if err != nil {
		return "", err
	}
	if modrm.Reg != 0 {
		return "", ErrReservedEncoding
	}
	rm, err := decodeEffectiveAddress(cur, modrm, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("pop %s", memText(rm, true)), nil
}

// niladicDecoder handles the standalone one-byte opcodes that take no
// operands at all (xlat, lahf, sahf, pushf, popf, aaa, daa, aas, das).
func niladicDecoder(mnemonic string) decodeFunc {
	return func(cur *Cursor, b0 byte) (string, error) {
		return mnemonic, nil
	}
}

// decodeAam handles aam (0xD4), a two-byte unit whose second byte is a
// divisor (conventionally 0x0A) that this decoder validates is present
// but never renders.
func decodeAam(cur *Cursor, b0 byte) (string, error) {
	if _, ok := cur.Take(); !ok {
		return "", ErrShortRead
	}
	return "aam", nil
}
