package notifier

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLogNotifier_Notify(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewTextHandler(&buf, nil)))

	if err := n.Notify(sampleSummary()); err != nil {
		t.Fatalf("Notify() = %v, want nil", err)
	}

	out := buf.String()
	for _, want := range []string{"run summary", "run_id=run-42", "records=12", "python (9)"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
