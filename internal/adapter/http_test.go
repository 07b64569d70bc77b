package adapter

import (
	"net/http"
	"testing"
	"time"
)

func TestParseRetryAfter(t *testing.T) {
	if got := parseRetryAfter("120"); got != 120*time.Second {
		t.Errorf("seconds: got %v", got)
	}
	for _, v := range []string{"", "soon", "-5", "Mon, 01 Jan 2001 00:00:00 GMT"} {
		if got := parseRetryAfter(v); got != 0 {
			t.Errorf("parseRetryAfter(%q) = %v, want 0", v, got)
		}
	}

	future := time.Now().Add(time.Hour).UTC().Format(http.TimeFormat)
	if got := parseRetryAfter(future); got <= 50*time.Minute || got > time.Hour {
		t.Errorf("http date: got %v, want ~1h", got)
	}
}
