package x86

// ModRM represents the ModR/M byte used in x86 instruction encoding: a
// 2-bit addressing mode, a 3-bit register/opcode-extension field, and a
// 3-bit register/memory field.
type ModRM struct {
	Mod uint8 // Mode field (bits 7-6)
	Reg uint8 // Register field (bits 5-3)
	RM  uint8 // R/M field (bits 2-0)
}

// NewModRM creates a ModR/M byte from its components.
func NewModRM(mod, reg, rm uint8) ModRM {
	return ModRM{
		Mod: mod & 0x03,
		Reg: reg & 0x07,
		RM:  rm & 0x07,
	}
}

// FromByte decodes a ModR/M from a raw byte value.
func (m *ModRM) FromByte(value uint8) {
	m.Mod = (value >> 6) & 0x03
	m.Reg = (value >> 3) & 0x07
	m.RM = value & 0x07
}

// ToByte encodes the ModR/M back into a raw byte value.
func (m ModRM) ToByte() uint8 {
	return (m.Mod << 6) | (m.Reg << 3) | m.RM
}

// IsRegister reports whether this ModR/M selects register addressing
// (mod=3), in which case RM names a register rather than a memory
// reference.
func (m ModRM) IsRegister() bool {
	return m.Mod == 3
}

// decodeEffectiveAddress reads whatever displacement bytes the Mod/RM
// combination requires and returns the memory operand it describes. w
// selects whether RM, under mod=3, names an 8-bit or 16-bit register.
func decodeEffectiveAddress(cur *Cursor, modrm ModRM, w bool) (Operand, error) {
	if modrm.IsRegister() {
		if w {
			return Reg(reg16[modrm.RM]), nil
		}
		return Reg(reg8[modrm.RM]), nil
	}

	if modrm.Mod == 0 && modrm.RM == 6 {
		addr, ok := cur.TakeU16LE()
		if !ok {
			return Operand{}, ErrShortRead
		}
		return Direct(addr), nil
	}

	base := rmBase[modrm.RM]

	switch modrm.Mod {
	case 0:
		return Indirect(base, 0), nil
	case 1:
		disp, ok := cur.TakeI8()
		if !ok {
			return Operand{}, ErrShortRead
		}
		return Indirect(base, int16(disp)), nil
	case 2:
		disp, ok := cur.TakeI16LE()
		if !ok {
			return Operand{}, ErrShortRead
		}
		return Indirect(base, disp), nil
	default:
		return Operand{}, ErrReservedEncoding
	}
}
