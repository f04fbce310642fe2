package model

import "time"

// Shared defaults used by both the service and TUI binaries.
const (
	DefaultUpdateInterval = 2 * time.Second
	DefaultBillLimit      = 200
	DefaultSkin           = "default"
)
