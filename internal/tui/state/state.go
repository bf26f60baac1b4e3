// Package state holds the interactive screen's state machine. It is pure: no rendering,
// no storage, no clock.
package state

// State is one of Projects, Help, CreateProject or DeleteProject.
type State interface {
	isState()
}

// Projects is the main list of tasks. It is the initial state.
type Projects struct{}

// Help shows the shortcut overlay.
type Help struct{}

// CreateProject collects a new project name.
type CreateProject struct {
	Input string
}

// DeleteProject asks to confirm deletion of the selected task.
type DeleteProject struct{}

func (Projects) isState()      {}
func (Help) isState()          {}
func (CreateProject) isState() {}
func (DeleteProject) isState() {}

// Initial returns the state the UI starts in.
func Initial() State { return Projects{} }

// Event is a UI intent derived from a key press.
type Event interface {
	isEvent()
}

type (
	CreateNew      struct{}
	Delete         struct{}
	ShowHelp       struct{}
	Escape         struct{}
	Backspace      struct{}
	InputCharacter struct {
		Char rune
	}
)

func (CreateNew) isEvent()      {}
func (Delete) isEvent()         {}
func (ShowHelp) isEvent()       {}
func (Escape) isEvent()         {}
func (Backspace) isEvent()      {}
func (InputCharacter) isEvent() {}

// Next returns the state after ev. Pairs without a transition leave s unchanged.
func Next(s State, ev Event) State {
	switch cur := s.(type) {
	case Projects:
		switch ev.(type) {
		case CreateNew:
			return CreateProject{}
		case Delete:
			return DeleteProject{}
		case ShowHelp:
			return Help{}
		}
	case Help:
		if _, ok := ev.(Escape); ok {
			return Projects{}
		}
	case CreateProject:
		switch e := ev.(type) {
		case InputCharacter:
			return CreateProject{Input: cur.Input + string(e.Char)}
		case Backspace:
			return CreateProject{Input: dropLastRune(cur.Input)}
		case Escape:
			return Projects{}
		}
	case DeleteProject:
		if _, ok := ev.(Escape); ok {
			return Projects{}
		}
	}
	return s
}

func dropLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}
