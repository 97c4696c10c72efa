package constants

import "time"

const (
	ShutdownTimeout   = 5 * time.Second
	ReadHeaderTimeout = 10 * time.Second
	DatabaseTimeout   = 5 * time.Second
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	MaxFilterLimit  = 500
	MaxBulkCreate   = 200
)

const (
	WSWriteDeadline = 5 * time.Second
	WSPongWait      = 30 * time.Second
	WSPingInterval  = 20 * time.Second

	OverlayPollInterval = 3 * time.Second
)

const (
	SessionSweepInterval = 10 * time.Minute
	VerifyTokenTTL       = 24 * time.Hour
)
