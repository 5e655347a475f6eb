package server

import (
	"time"
)

type Conf struct {
	TimeoutRead  time.Duration
	TimeoutWrite time.Duration
	TimeoutIdle  time.Duration
}

func ServerConfigs() *Conf {
	return &Conf{
		TimeoutRead: time.Second * 30,
		// tool calls can take up to 30s before the fallback model call
		// even starts, so the write window has to cover both.
		TimeoutWrite: time.Second * 90,
		TimeoutIdle:  time.Second * 30,
	}
}
