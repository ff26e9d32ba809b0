package invariant

import (
	"fmt"

	"github.com/asuai-cs/secverify/internal/vector"
)

// Built-in property names. These follow the upstream SymbiYosys property
// list so archived verdicts stay diffable against hardware runs.
const (
	NameNoUserWriteSupervisor = "no_user_write_supervisor"
	NameSecureBootPC          = "secure_boot_pc"
	NameNoInvalidPrivilege    = "no_invalid_privilege"
)

// checkNoUserWriteSupervisor verifies that every memory write executes
// at supervisor level or above. The privilege level "at that cycle" is
// the level before the instruction's own effect is applied.
func checkNoUserWriteSupervisor(_ Profile, vectors []vector.TestVector) *Counterexample {
	trk := newTracker()
	for i, v := range vectors {
		if IsStore(v.Instr) && trk.level < PrivSupervisor {
			return privCounterexample(i, v.PC, trk.level)
		}
		trk.step(v.Instr)
	}
	return nil
}

// checkSecureBootPC verifies that execution starts at the reset vector.
// An empty sequence passes vacuously: with no observed cycle there is no
// initial PC to contradict the reset vector.
func checkSecureBootPC(p Profile, vectors []vector.TestVector) *Counterexample {
	if len(vectors) == 0 {
		return nil
	}
	if pc := vectors[0].PC; pc != p.ResetVector {
		return &Counterexample{
			Index:   0,
			PC:      pc,
			Message: fmt.Sprintf("PC=0x%x, reset vector=0x%x", pc, p.ResetVector),
		}
	}
	return nil
}

// checkNoInvalidPrivilege verifies that the privilege level only changes
// via defined transition instructions: trap entry (ECALL/EBREAK) or a
// trap return executing at its required level. A trap return below its
// required level is an invalid transition.
func checkNoInvalidPrivilege(_ Profile, vectors []vector.TestVector) *Counterexample {
	trk := newTracker()
	for i, v := range vectors {
		before, _, ok := trk.step(v.Instr)
		if !ok {
			required, _ := TrapReturn(v.Instr)
			return &Counterexample{
				Index: i,
				PC:    v.PC,
				Message: fmt.Sprintf("PC=0x%x, privilege=%d, trap return requires %d",
					v.PC, before, required),
			}
		}
	}
	return nil
}
