package chip8

import "fmt"

// Quirks selects between the instruction semantics of the original COSMAC VIP
// interpreter and those of later CHIP-8 interpreters. The zero value is the
// later behaviour.
type Quirks struct {
	// LogicResetsFlag makes 8xy1, 8xy2 and 8xy3 clear VF. Otherwise VF is left untouched.
	LogicResetsFlag bool

	// ShiftUsesVY makes 8xy6 and 8xyE shift VY into VX. Otherwise VX is shifted in place.
	ShiftUsesVY bool

	// IncrementIndex makes Fx55 and Fx65 leave I pointing past the last transferred byte.
	IncrementIndex bool

	// WrapSprites wraps sprite pixels around the display edges instead of clipping them.
	WrapSprites bool
}

const (
	QuirksModern = "modern"
	QuirksVIP    = "vip"
)

// QuirksByName returns a named quirk profile.
func QuirksByName(name string) (Quirks, error) {
	switch name {
	case "", QuirksModern:
		return Quirks{}, nil
	case QuirksVIP:
		return Quirks{
			LogicResetsFlag: true,
			ShiftUsesVY:     true,
			IncrementIndex:  true,
		}, nil
	default:
		return Quirks{}, fmt.Errorf("unsupported quirk profile '%s'", name)
	}
}
