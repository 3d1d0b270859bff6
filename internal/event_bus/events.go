package event_bus

import "time"

// LedgerEntryAdded is published after an expense or revenue row was stored.
type LedgerEntryAdded struct {
	Kind   string
	Id     int
	Date   time.Time
	Person string
}

const LedgerEntryAddedType EventType = "ledger.entry.added"
