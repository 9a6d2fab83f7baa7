package integrators

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned when a scheme name or value is not recognized.
var ErrUnknownScheme = errors.New("integrators: unknown scheme")

// Scheme selects how a particle's velocity and position are advanced.
type Scheme int

const (
	// Euler updates velocity then position with the updated velocity.
	Euler Scheme = iota
	// Midpoint splits the velocity update into two half steps, the second
	// driven by gravity alone.
	Midpoint
)

var schemeNames = map[Scheme]string{
	Euler:    "euler",
	Midpoint: "midpoint",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Valid reports whether s is one of the known schemes.
func (s Scheme) Valid() bool {
	_, ok := schemeNames[s]
	return ok
}

// ParseScheme maps a case-insensitive name to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler", "":
		return Euler, nil
	case "midpoint":
		return Midpoint, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// Schemes lists every scheme in declaration order.
func Schemes() []Scheme {
	return []Scheme{Euler, Midpoint}
}

// MarshalText implements encoding.TextMarshaler so schemes round-trip
// through YAML and JSON as names.
func (s Scheme) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, int(s))
	}
	return []byte(s.String()), nil
}

func (s *Scheme) UnmarshalText(text []byte) error {
	parsed, err := ParseScheme(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
