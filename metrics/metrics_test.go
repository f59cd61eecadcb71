package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(MilestoneTransitionCount.WithLabelValues("Completed"))
	IncrementMilestoneTransition("Completed")
	IncrementMilestoneTransition("Completed")
	if got := testutil.ToFloat64(MilestoneTransitionCount.WithLabelValues("Completed")); got != before+2 {
		t.Errorf("milestone transitions = %v, want %v", got, before+2)
	}

	before = testutil.ToFloat64(SubmissionCount.WithLabelValues("project", "coalesced"))
	IncrementSubmission("project", "coalesced")
	if got := testutil.ToFloat64(SubmissionCount.WithLabelValues("project", "coalesced")); got != before+1 {
		t.Errorf("submissions = %v, want %v", got, before+1)
	}
}

func TestHistogramsCollect(t *testing.T) {
	RecordHTTPRequestDuration("GET", "/projects", "200", 12*time.Millisecond)
	RecordUpstreamCall("locations", "GET", "ok", 80*time.Millisecond)
	ObserveServiceOrderInvoice(25000)

	if n := testutil.CollectAndCount(HTTPRequestDuration); n == 0 {
		t.Error("no request duration series collected")
	}
	if n := testutil.CollectAndCount(ServiceOrderInvoice); n != 1 {
		t.Errorf("invoice series = %d, want 1", n)
	}
}
