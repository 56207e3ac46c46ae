package framework

type TestLogger interface {
	TestStarted(id TestID)
	TestError(id TestID, err error)
	TestFinished(id TestID, failed bool, debugOutput CapturedOutput)
	TestSkipped(id TestID, reason string)
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)                        {}
func (n nullTestLogger) TestError(TestID, error)                   {}
func (n nullTestLogger) TestFinished(TestID, bool, CapturedOutput) {}
func (n nullTestLogger) TestSkipped(TestID, string)                {}

// TestEvent is one call recorded by a RecordingTestLogger.
type TestEvent struct {
	Kind    string // "started", "error", "finished", "skipped"
	ID      TestID
	Failed  bool
	Message string
}

// RecordingTestLogger keeps every event it receives, for checking the outcome of a run
// programmatically.
type RecordingTestLogger struct {
	Events []TestEvent
}

func (r *RecordingTestLogger) TestStarted(id TestID) {
	r.Events = append(r.Events, TestEvent{Kind: "started", ID: id})
}

func (r *RecordingTestLogger) TestError(id TestID, err error) {
	r.Events = append(r.Events, TestEvent{Kind: "error", ID: id, Message: err.Error()})
}

func (r *RecordingTestLogger) TestFinished(id TestID, failed bool, debugOutput CapturedOutput) {
	r.Events = append(r.Events, TestEvent{Kind: "finished", ID: id, Failed: failed})
}

func (r *RecordingTestLogger) TestSkipped(id TestID, reason string) {
	r.Events = append(r.Events, TestEvent{Kind: "skipped", ID: id, Message: reason})
}

// ErrorsFor returns the error messages logged for a test.
func (r *RecordingTestLogger) ErrorsFor(id string) []string {
	var ret []string
	for _, e := range r.Events {
		if e.Kind == "error" && e.ID.String() == id {
			ret = append(ret, e.Message)
		}
	}
	return ret
}
