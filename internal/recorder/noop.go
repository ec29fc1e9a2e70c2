package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) BeginRun(_ *RunInfo) error      { return nil }
func (n *NoopRecorder) RecordTick(_ *TickRecord) error { return nil }
func (n *NoopRecorder) Close() error                   { return nil }
