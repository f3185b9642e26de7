package core

// Role identifies one side of the board.
// NoRole marks an unowned cell and a tied result.
type Role int

const (
	NoRole Role = -1
	Red    Role = 0
	Blue   Role = 1
)

// Roles lists the two playing sides in turn order.
var Roles = [2]Role{Red, Blue}

func (r Role) IsValid() bool { return r == Red || r == Blue }

// Opponent returns the other side. NoRole has no opponent.
func (r Role) Opponent() Role {
	switch r {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return NoRole
	}
}

// ColumnDirection is the sign applied to an influence pattern's column
// offsets. Red reads patterns as written; Blue faces the other way.
func (r Role) ColumnDirection() int {
	if r == Blue {
		return -1
	}
	return 1
}

func (r Role) String() string {
	switch r {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "None"
	}
}

// Symbol is the single letter used by the text renderer.
func (r Role) Symbol() string {
	switch r {
	case Red:
		return "R"
	case Blue:
		return "B"
	default:
		return "_"
	}
}

// ParseRole converts a name produced by String, or its lowercase form, back
// to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "Red", "red":
		return Red, nil
	case "Blue", "blue":
		return Blue, nil
	default:
		return NoRole, ErrInvalidRole
	}
}
