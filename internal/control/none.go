package control

// None never presses anything.
type None struct{}

func NewNone() *None { return &None{} }

func (n *None) Command(obs Observation) Command { return Command{} }
