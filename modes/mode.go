package modes

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return "unknown"
}

// ReadsSystemConfig reports whether user and system wide configuration files apply.
func (m Mode) ReadsSystemConfig() bool {
	return m == ModeProduction
}
