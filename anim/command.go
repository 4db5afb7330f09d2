package anim

import "fmt"

// Op is the kind of host surface mutation a Command requests.
type Op uint8

// Command operations.
const (
	OpSetIcon Op = iota + 1
	OpSetVisible
	OpSetZIndex
)

// Command is one host surface mutation for a pool slot. Only the field
// matching Op is meaningful.
type Command struct {
	Op      Op
	Slot    int
	Frame   int
	Visible bool
	Z       int
}

// SetIcon asks the host to show frame on slot.
func SetIcon(slot, frame int) Command {
	return Command{Op: OpSetIcon, Slot: slot, Frame: frame}
}

// SetVisible asks the host to show or hide slot.
func SetVisible(slot int, visible bool) Command {
	return Command{Op: OpSetVisible, Slot: slot, Visible: visible}
}

// SetZIndex asks the host to move slot to z.
func SetZIndex(slot, z int) Command {
	return Command{Op: OpSetZIndex, Slot: slot, Z: z}
}

func (c Command) String() string {
	switch c.Op {
	case OpSetIcon:
		return fmt.Sprintf("setIcon(%d, frame %d)", c.Slot, c.Frame)
	case OpSetVisible:
		return fmt.Sprintf("setVisible(%d, %t)", c.Slot, c.Visible)
	case OpSetZIndex:
		return fmt.Sprintf("setZIndex(%d, %d)", c.Slot, c.Z)
	}
	return fmt.Sprintf("command(%d)", c.Op)
}
