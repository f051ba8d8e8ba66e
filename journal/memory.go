package journal

// Memory keeps everything in slices. Used by the HTTP API and by parameter
// sweeps, where the caller consumes results directly instead of from disk.
type Memory struct {
	Runs      []Run
	Trades    []TradeRecord
	Snapshots []SnapshotRecord
}

func (m *Memory) RecordRun(r Run) error {
	m.Runs = append(m.Runs, r)
	return nil
}

func (m *Memory) RecordTrade(t TradeRecord) error {
	m.Trades = append(m.Trades, t)
	return nil
}

func (m *Memory) RecordSnapshot(s SnapshotRecord) error {
	m.Snapshots = append(m.Snapshots, s)
	return nil
}

func (m *Memory) Close() error { return nil }
