package x86

import "github.com/retroenv/x86dasm/set"

// BranchMnemonics contains every mnemonic this decoder emits that can
// redirect control flow: the conditional jumps (cjmp) and the loop/jcxz
// family (loopn). Backs the CLI's --stats summary.
var BranchMnemonics = set.NewFromSlice(append(
	append([]string{}, cjmp[:]...),
	loopn[:]...,
))

// LoopMnemonics contains the loop/jcxz family decoded from 0xE0-0xE3.
var LoopMnemonics = set.NewFromSlice(append([]string{}, loopn[:]...))
