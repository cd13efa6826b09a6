package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveGeneration(t *testing.T) {
	before := testutil.ToFloat64(GeneratorRequests.WithLabelValues("evaluate_answer", "test", "error"))
	ObserveGeneration("evaluate_answer", "test", time.Now(), errors.New("boom"))
	after := testutil.ToFloat64(GeneratorRequests.WithLabelValues("evaluate_answer", "test", "error"))
	assert.Equal(t, before+1, after)
}
