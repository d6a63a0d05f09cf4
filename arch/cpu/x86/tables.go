package x86

// Register and mnemonic lookup tables for the 8086 encoding. Each table is
// indexed directly by the bit field it names in a comment; there is no
// parsing logic here, only the flat mappings the decoders in decode.go
// consult.

// reg8 maps a 3-bit reg/r-m field to an 8-bit register name (w=0).
var reg8 = [8]string{"al", "cl", "dl", "bl", "ah", "ch", "dh", "bh"}

// reg16 maps a 3-bit reg/r-m field to a 16-bit register name (w=1).
var reg16 = [8]string{"ax", "cx", "dx", "bx", "sp", "bp", "si", "di"}

// seg maps the 2-bit segment-register field used by push/pop segment
// opcodes (0x06/0x07/0x0E/0x16/0x17/0x1E/0x1F) to its register name.
var seg = [4]string{"es", "cs", "ss", "ds"}

// rmBase maps the r/m field (mod 0-2) to the registers that form the base
// of an effective address. The rm=6 entry (bp) applies only under mod=1
// and mod=2: under mod=0 rm=6 selects a direct 16-bit address instead of
// [bp], so callers special-case it.
var rmBase = [8]string{
	0: "bx + si",
	1: "bx + di",
	2: "bp + si",
	3: "bp + di",
	4: "si",
	5: "di",
	6: "bp",
	7: "bx",
}

// alu maps a 3-bit reg field to an ALU mnemonic. Used both for the direct
// 0x00-0x3D opcode blocks and for the grp1 immediate-to-reg/mem form
// (0x80-0x83), where the same eight operations are selected by ModR/M.reg.
var alu = [8]string{"add", "or", "adc", "sbb", "and", "sub", "xor", "cmp"}

// cjmp maps the low nibble of a short conditional jump opcode (0x70-0x7F)
// to its mnemonic.
var cjmp = [16]string{
	"jo", "jno", "jb", "jnb", "je", "jne", "jbe", "ja",
	"js", "jns", "jp", "jnp", "jl", "jge", "jle", "jg",
}

// loopn maps the low 2 bits of a loop/jcxz opcode (0xE0-0xE3) to its
// mnemonic.
var loopn = [4]string{"loopnz", "loopz", "loop", "jcxz"}

// grp1 maps the ModR/M reg field of a 0xF6/0xF7 unary group opcode to its
// mnemonic. reg=0 and reg=1 are both test (with an immediate); the rest
// take no operand other than the r/m.
var grp1 = [8]string{"test", "test", "not", "neg", "mul", "imul", "div", "idiv"}

// grp2 maps the ModR/M reg field of a 0xFE/0xFF unary group opcode to its
// mnemonic. reg=7 is reserved/illegal.
var grp2 = [8]string{"inc", "dec", "call", "call", "jmp", "jmp", "push", ""}
