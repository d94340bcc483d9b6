package cli

// SessionRequest carries the operator's wishes for an interactive
// recording session.
type SessionRequest struct {
	WorkDir string
	AskPath bool
	Hidden  bool
}

// EncodeRequest carries the raw argument tail for the encoder sidecar.
// The arguments are opaque here; the sidecar owns their meaning.
type EncodeRequest struct {
	Args []string
}

// Invocation is the typed product of one command-line parse. A single
// handler populates at most one of the fields during dispatch; main
// reads it afterwards and never mutates it again. A parse error leaves
// both fields nil.
type Invocation struct {
	Session *SessionRequest
	Encode  *EncodeRequest
}
