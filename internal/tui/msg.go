package tui

import "github.com/papapumpkin/lazyscales/internal/seed"

// MsgCatalogChanged is sent when the catalog watcher reports a file change.
type MsgCatalogChanged struct {
	Change seed.Change
}
