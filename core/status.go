package core

// Status reports why a machine stopped executing.
type Status int

const (
	// Continuing means the machine can still make progress.
	Continuing Status = iota
	// Blocked means the machine is waiting on an empty inbound channel. It
	// retries the same receive on its next turn.
	Blocked
	// Halted means the machine will never execute again.
	Halted
)

func (s Status) String() string {
	switch s {
	case Continuing:
		return "Continuing"
	case Blocked:
		return "Blocked"
	case Halted:
		return "Halted"
	default:
		panic("invalid status")
	}
}

// Mode selects how snd and rcv behave.
type Mode int

const (
	// SoloMode records sent values in a single frequency slot and treats a
	// receive on a non-zero register as the halting event.
	SoloMode Mode = iota
	// DuetMode sends and receives through channels.
	DuetMode
)

func (m Mode) String() string {
	switch m {
	case SoloMode:
		return "solo"
	case DuetMode:
		return "duet"
	default:
		panic("invalid mode")
	}
}
