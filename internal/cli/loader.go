package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/asuai-cs/secverify/internal/invariant"
)

// LoadProfile loads an architectural profile from a directory of CUE
// files. The profile is authored as a top-level `profile` struct:
//
//	profile: {
//	    reset_vector:    0x0
//	    supervisor_base: 0x80000000
//	    xlen:            32
//	}
//
// Missing fields fall back to the defaults; a missing directory is an
// error so a typoed --profile path cannot silently verify against the
// wrong parameters.
func LoadProfile(dir string) (invariant.Profile, error) {
	profile := invariant.DefaultProfile()

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return profile, fmt.Errorf("%s: profile directory not found: %s", ErrCodeProfile, dir)
	}
	if err != nil {
		return profile, fmt.Errorf("%s: error accessing profile directory: %v", ErrCodeProfile, err)
	}
	if !info.IsDir() {
		return profile, fmt.Errorf("%s: not a directory: %s", ErrCodeProfile, dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return profile, fmt.Errorf("%s: no CUE instances loaded from %s", ErrCodeProfile, dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return profile, fmt.Errorf("%s: loading CUE files: %v", ErrCodeProfile, inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return profile, fmt.Errorf("%s: building CUE value: %v", ErrCodeProfile, err)
	}

	profileVal := value.LookupPath(cue.ParsePath("profile"))
	if !profileVal.Exists() {
		return profile, fmt.Errorf("%s: no `profile` struct found in %s", ErrCodeProfile, dir)
	}

	if v, err := lookupUint32(profileVal, "reset_vector"); err != nil {
		return profile, err
	} else if v != nil {
		profile.ResetVector = *v
	}
	if v, err := lookupUint32(profileVal, "supervisor_base"); err != nil {
		return profile, err
	} else if v != nil {
		profile.SupervisorBase = *v
	}

	xlenVal := profileVal.LookupPath(cue.ParsePath("xlen"))
	if xlenVal.Exists() {
		xlen, err := xlenVal.Int64()
		if err != nil {
			return profile, fmt.Errorf("%s: profile.xlen: %v", ErrCodeProfile, err)
		}
		if xlen != 32 {
			return profile, fmt.Errorf("%s: profile.xlen must be 32, got %d", ErrCodeProfile, xlen)
		}
		profile.XLEN = int(xlen)
	}

	return profile, nil
}

// lookupUint32 reads an optional fixed-width field from the profile
// struct. Returns nil when the field is absent.
func lookupUint32(v cue.Value, field string) (*uint32, error) {
	fieldVal := v.LookupPath(cue.ParsePath(field))
	if !fieldVal.Exists() {
		return nil, nil
	}
	n, err := fieldVal.Int64()
	if err != nil {
		return nil, fmt.Errorf("%s: profile.%s: %v", ErrCodeProfile, field, err)
	}
	if n < 0 || n > 0xFFFFFFFF {
		return nil, fmt.Errorf("%s: profile.%s: value %d does not fit 32 bits", ErrCodeProfile, field, n)
	}
	out := uint32(n)
	return &out, nil
}
