package world

// Command is a single player intent sampled once per tick.
type Command uint8

const (
	TurnLeft Command = 1 << iota
	TurnRight
	ThrustForward
	ThrustReverse
	Fire
)

// Commands is the set of intents held during a tick.
type Commands uint8

// With returns the set extended by c.
func (cs Commands) With(c Command) Commands {
	return cs | Commands(c)
}

// Has reports whether c is in the set.
func (cs Commands) Has(c Command) bool {
	return cs&Commands(c) != 0
}

// Empty reports whether no intent is held.
func (cs Commands) Empty() bool {
	return cs == 0
}
