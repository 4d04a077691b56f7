package daemon

import (
	"fmt"
	"time"
)

// handleRequest dispatches the request to the appropriate handler.
func (d *Daemon) handleRequest(req *Request) Response {
	if d.timer == nil {
		return Response{Error: "no timer available"}
	}

	d.logger.Debug("control request", "method", req.Method)
	switch req.Method {
	case MethodStatus:
		return d.handleStatus()
	case MethodStart:
		return d.handleAction(d.timer.Start, "session started", "session already running")
	case MethodCancel:
		return d.handleAction(d.timer.Cancel, "session cancelled", "no session running")
	case MethodStop:
		return d.handleStop()
	default:
		return Response{Error: fmt.Sprintf("unknown method: %s", req.Method)}
	}
}

// handleStatus returns the current timer status.
func (d *Daemon) handleStatus() Response {
	st := d.timer.Snapshot()
	startTime := d.StartTime()

	return Response{
		Result: StatusResponse{
			Status:     string(d.timer.State()),
			Running:    st.Running,
			SessionID:  d.timer.SessionID(),
			Phase:      st.Phase.String(),
			Remaining:  st.Remaining.String(),
			RoundsLeft: st.RoundsLeft,
			Rest:       st.Config.Rest.String(),
			Round:      st.Config.Round.String(),
			RoundCount: st.Config.RoundCount,
			Uptime:     time.Since(startTime).Truncate(time.Second).String(),
			StartTime:  startTime.Format(time.RFC3339),
		},
	}
}

func (d *Daemon) handleAction(fn func() (bool, error), applied, ignored string) Response {
	ok, err := fn()
	if err != nil {
		return Response{Error: err.Error()}
	}
	msg := ignored
	if ok {
		msg = applied
	}
	return Response{Result: ActionResponse{Applied: ok, Message: msg}}
}

// handleStop stops the timer and schedules the socket shutdown.
func (d *Daemon) handleStop() Response {
	d.timer.Stop()

	go func() {
		time.Sleep(d.stopDelay)
		_ = d.Stop()
	}()

	return Response{Result: "stopping"}
}
