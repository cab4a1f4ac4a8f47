package dispatcher

// Target names the subsystem a message is addressed to.
type Target string

const (
	TargetEditor    Target = "editor"
	TargetDocument  Target = "document"
	TargetApp       Target = "app"
	TargetUI        Target = "ui"
	TargetLayout    Target = "layout"
	TargetWorkspace Target = "workspace"
)

// Message is an abstract instruction for the host's update loop. The
// dispatcher never interprets messages; the host applies them in order.
type Message struct {
	Target Target
	Name   string

	// Arg is an optional argument such as a direction or modal id.
	Arg string
}

// Msg creates a message without an argument.
func Msg(target Target, name string) Message {
	return Message{Target: target, Name: name}
}

// MsgArg creates a message with an argument.
func MsgArg(target Target, name, arg string) Message {
	return Message{Target: target, Name: name, Arg: arg}
}

// String returns e.g. "editor.MoveCursor(up)".
func (m Message) String() string {
	s := string(m.Target) + "." + m.Name
	if m.Arg != "" {
		s += "(" + m.Arg + ")"
	}
	return s
}
