package hook

// ExitBlock is the exit status that tells the host agent to abort the
// action. Anything else means proceed.
const ExitBlock = 2

// Stderr prefixes the host agent surfaces to the user on a block.
const (
	BlockPrefixGate   = "BLOCKED"
	BlockPrefixPrompt = "Prompt blocked"
)

// BlockError carries a policy denial to the process boundary.
type BlockError struct {
	Prefix string
	Reason string
}

func (e *BlockError) Error() string {
	return e.Prefix + ": " + e.Reason
}
