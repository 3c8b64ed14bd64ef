package camera

// Command is an input event addressed to a FreeLookController.
// Window callbacks produce commands and the tick goroutine consumes them,
// so movement state is only ever touched by its owner.
type Command interface {
	isCommand()
}

// MoveCommand sets or clears the flag for a single direction.
type MoveCommand struct {
	Direction Direction
	Held      bool
}

// FocusLostCommand reports that the window lost input focus. Key-up events
// for keys held at that moment will never arrive.
type FocusLostCommand struct{}

func (MoveCommand) isCommand()      {}
func (FocusLostCommand) isCommand() {}
