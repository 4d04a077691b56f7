package daemon

// Request represents a JSON-RPC request from a client.
type Request struct {
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
	ID     int    `json:"id,omitempty"`
}

// Response represents a JSON-RPC response to a client.
type Response struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	ID     int    `json:"id,omitempty"`
}

// Methods understood by the server.
const (
	MethodStatus = "status"
	MethodStart  = "start"
	MethodCancel = "cancel"
	MethodStop   = "stop"
)

// StatusResponse contains the timer status.
type StatusResponse struct {
	Status     string `json:"status"`
	Running    bool   `json:"running"`
	SessionID  string `json:"session_id,omitempty"`
	Phase      string `json:"phase"`
	Remaining  string `json:"remaining"`
	RoundsLeft int    `json:"rounds_left"`
	Rest       string `json:"rest"`
	Round      string `json:"round"`
	RoundCount string `json:"round_count"`
	Uptime     string `json:"uptime"`
	StartTime  string `json:"start_time"`
}

// ActionResponse reports whether a start or cancel request changed anything.
type ActionResponse struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}
