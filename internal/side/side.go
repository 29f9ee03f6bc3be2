package side

import "strings"

// Side is the "environment" a Fabric mod declares in fabric.mod.json.
type Side string

const (
	Client Side = "client"
	Server Side = "server"
	Both   Side = "*"
)

// Parse maps a manifest environment value to a Side. Fabric treats a missing
// environment as "*".
func Parse(s string) Side {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Both
	}
	return Side(s)
}

func (s Side) String() string {
	if s == Both {
		return "both"
	}
	return string(s)
}

// IncludedIn returns true if a mod for this side loads on the given install side.
func (s Side) IncludedIn(installSide string) bool {
	installSide = strings.ToLower(strings.TrimSpace(installSide))
	switch s {
	case Both:
		return true
	case Client:
		return installSide == "client"
	case Server:
		return installSide == "server"
	default:
		return false
	}
}
