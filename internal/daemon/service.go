package daemon

import "context"

// Service adapts the coordinator to a suture-supervised service.
type Service struct {
	c *Coordinator
}

// NewService wraps a coordinator for supervision.
func NewService(c *Coordinator) Service {
	return Service{c: c}
}

func (s Service) String() string {
	return "refresh-coordinator"
}

// Serve runs the refresh loop until the supervisor cancels the context.
func (s Service) Serve(ctx context.Context) error {
	s.c.Run(ctx)
	return ctx.Err()
}
