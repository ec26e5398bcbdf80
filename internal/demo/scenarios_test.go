package demo

import (
	"context"
	"testing"
)

func TestRunAllowlistedTransferSucceeds(t *testing.T) {
	result := RunAllowlistedTransferSucceeds(context.Background(), NewBank())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunNonAllowlistedTransferBlocked(t *testing.T) {
	result := RunNonAllowlistedTransferBlocked(context.Background(), NewBank())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunAmountLimitTransferBlocked(t *testing.T) {
	result := RunAmountLimitTransferBlocked(context.Background(), NewBank())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunQLLMSchemaMismatchRejected(t *testing.T) {
	result := RunQLLMSchemaMismatchRejected(context.Background())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunInjectionIgnored(t *testing.T) {
	result := RunInjectionIgnored(context.Background(), NewBank())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunFinalResolution(t *testing.T) {
	result := RunFinalResolution(context.Background())
	if result.Err != nil {
		t.Fatalf("scenario errored: %v", result.Err)
	}
	if !result.Passed {
		t.Errorf("expected scenario to pass: %s", result.Detail)
	}
}

func TestRunAll_EverySeedScenarioPasses(t *testing.T) {
	results := RunAll(context.Background())
	if len(results) != 6 {
		t.Fatalf("expected 6 scenario results, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("scenario %q errored: %v", r.Name, r.Err)
		}
		if !r.Passed {
			t.Errorf("scenario %q did not pass: %s", r.Name, r.Detail)
		}
	}
}
