//go:build windows

package service

import (
	"context"
	"log"

	"golang.org/x/sys/windows/svc"
)

// Name is the SCM service name and the event log source.
const Name = "ColorKeep"

// IsWindowsService reports whether the process was started by the service
// control manager.
func IsWindowsService() (bool, error) {
	return svc.IsWindowsService()
}

// Run registers with the SCM and blocks until the service stops. Failure to
// register is the one fatal startup error of the shell.
func Run(loop *Loop, logger *log.Logger) error {
	return svc.Run(Name, &handler{loop: loop, logger: logger})
}

type handler struct {
	loop   *Loop
	logger *log.Logger
}

func (h *handler) Execute(args []string, requests <-chan svc.ChangeRequest, changes chan<- svc.Status) (svcSpecificEC bool, exitCode uint32) {
	const accepted = svc.AcceptStop | svc.AcceptShutdown | svc.AcceptPauseAndContinue

	changes <- svc.Status{State: svc.StartPending}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- h.loop.Run(ctx)
	}()

	changes <- svc.Status{State: svc.Running, Accepts: accepted}
	h.logger.Printf("service running")

	for {
		select {
		case err := <-done:
			// The loop only exits on its own when something unrecoverable
			// happened inside the event source.
			changes <- svc.Status{State: svc.StopPending}
			if err != nil {
				h.logger.Printf("event loop failed: %v", err)
				return true, 1
			}
			return false, 0

		case c := <-requests:
			switch c.Cmd {
			case svc.Interrogate:
				changes <- c.CurrentStatus

			case svc.Stop, svc.Shutdown:
				changes <- svc.Status{State: svc.StopPending}
				cancel()
				// Join the loop (sources unsubscribed, timer cancelled,
				// goroutines exited) before reporting Stopped.
				if err := <-done; err != nil {
					h.logger.Printf("event loop shutdown: %v", err)
				}
				h.logger.Printf("service stopped")
				return false, 0

			case svc.Pause:
				h.loop.SetPaused(true)
				changes <- svc.Status{State: svc.Paused, Accepts: accepted}
				h.logger.Printf("service paused")

			case svc.Continue:
				h.loop.SetPaused(false)
				changes <- svc.Status{State: svc.Running, Accepts: accepted}
				h.logger.Printf("service resumed")

			default:
				h.logger.Printf("unexpected service control request: %d", c.Cmd)
			}
		}
	}
}
