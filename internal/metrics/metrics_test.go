// Deptclassify - Complaint Routing and Department Classification
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/deptclassify

package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/departments/predict", "200"))

	RecordAPIRequest("POST", "/departments/predict", "200", 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/departments/predict", "200"))
	if after != before+1 {
		t.Errorf("requests_total = %v, want %v", after, before+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestRecordTrain(t *testing.T) {
	errsBefore := testutil.ToFloat64(TrainErrors)

	RecordTrain(20*time.Millisecond, 4, 12, nil)

	if got := testutil.ToFloat64(TrainDocuments); got != 4 {
		t.Errorf("train documents = %v, want 4", got)
	}
	if got := testutil.ToFloat64(ModelDimension); got != 12 {
		t.Errorf("model dimension = %v, want 12", got)
	}
	if got := testutil.ToFloat64(ModelLoaded); got != 1 {
		t.Errorf("model loaded = %v, want 1", got)
	}

	RecordTrain(time.Millisecond, 0, 0, errors.New("empty vocabulary"))
	if got := testutil.ToFloat64(TrainErrors); got != errsBefore+1 {
		t.Errorf("train errors = %v, want %v", got, errsBefore+1)
	}
	if got := testutil.ToFloat64(ModelDimension); got != 12 {
		t.Errorf("failed fit changed dimension to %v", got)
	}
}

func TestRecordPrediction(t *testing.T) {
	reviewBefore := testutil.ToFloat64(PredictionsTotal.WithLabelValues("true"))
	okBefore := testutil.ToFloat64(PredictionsTotal.WithLabelValues("false"))

	RecordPrediction(0, true)
	RecordPrediction(0.577, false)

	if got := testutil.ToFloat64(PredictionsTotal.WithLabelValues("true")); got != reviewBefore+1 {
		t.Errorf("needs_review=true = %v, want %v", got, reviewBefore+1)
	}
	if got := testutil.ToFloat64(PredictionsTotal.WithLabelValues("false")); got != okBefore+1 {
		t.Errorf("needs_review=false = %v, want %v", got, okBefore+1)
	}

	var m dto.Metric
	if err := PredictionConfidence.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if m.GetHistogram().GetSampleCount() < 2 {
		t.Errorf("confidence sample count = %d, want >= 2", m.GetHistogram().GetSampleCount())
	}
}

func TestRecordStoreOperation(t *testing.T) {
	before := testutil.ToFloat64(ModelStoreOperations.WithLabelValues("load", "not_found"))
	RecordStoreOperation("load", "not_found")
	if got := testutil.ToFloat64(ModelStoreOperations.WithLabelValues("load", "not_found")); got != before+1 {
		t.Errorf("store operations = %v, want %v", got, before+1)
	}
}
