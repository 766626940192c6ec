package engine

type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// RoleOrder is the canonical declared order. A roster of n players
// draws its candidate roles from the first n entries.
var RoleOrder = []Role{
	RoleTop,
	RoleJungle,
	RoleMid,
	RoleADC,
	RoleSupport,
}
