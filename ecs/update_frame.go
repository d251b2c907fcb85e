package ecs

import "time"

// UpdateFrame is handed to every system during one Scheduler tick.
type UpdateFrame struct {
	DeltaTime float64
	Now       time.Duration
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt float64, now time.Duration, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Now:       now,
		Commands:  newCommands(),
		Storage:   storage,
	}
}
