// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package survey

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/models"
)

func TestRun_Status(t *testing.T) {
	tests := []struct {
		name       string
		adapter    *stubAdapter
		wantStatus models.RunStatus
		wantErr    bool
		wantLog    string
	}{
		{
			name:       "success",
			adapter:    &stubAdapter{name: "ok", result: &models.SurveyResult{Stats: models.SurveyStats{Discovered: 4, Updated: 2}}},
			wantStatus: models.RunSuccess,
		},
		{
			name: "partial",
			adapter: &stubAdapter{name: "partial", result: &models.SurveyResult{
				Stats:  models.SurveyStats{Discovered: 1, Errors: 1},
				Errors: []string{"topic x: boom"},
			}},
			wantStatus: models.RunPartial,
			wantLog:    "topic x: boom",
		},
		{
			name:       "failed",
			adapter:    &stubAdapter{name: "failed", err: errors.New("catalog unreachable")},
			wantStatus: models.RunFailed,
			wantErr:    true,
			wantLog:    "catalog unreachable",
		},
		{
			name:       "panic",
			adapter:    &stubAdapter{name: "panicky", panic: true},
			wantStatus: models.RunFailed,
			wantErr:    true,
			wantLog:    "adapter exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			_, err := Run(context.Background(), tt.adapter, store)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}

			runs := store.surveyRuns()
			if len(runs) != 1 {
				t.Fatalf("expected one survey run, got %d", len(runs))
			}
			run := runs[0]
			if run.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", run.Status, tt.wantStatus)
			}
			if run.Source != tt.adapter.name {
				t.Errorf("source = %q", run.Source)
			}
			if tt.wantLog != "" && !strings.Contains(run.ErrorLog, tt.wantLog) {
				t.Errorf("error log %q does not contain %q", run.ErrorLog, tt.wantLog)
			}
			if tt.adapter.result != nil && run.ItemsDiscovered != tt.adapter.result.Stats.Discovered {
				t.Errorf("items discovered = %d", run.ItemsDiscovered)
			}
		})
	}
}

func TestRun_LogsEvenWhenContextCancelled(t *testing.T) {
	store := newMemStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := &stubAdapter{name: "late", err: context.Canceled}
	if _, err := Run(ctx, a, store); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if runs := store.surveyRuns(); len(runs) != 1 || runs[0].Status != models.RunFailed {
		t.Errorf("runs = %+v", runs)
	}
}

func TestOrchestrator_FailingAdapterIsIsolated(t *testing.T) {
	store := newMemStore()
	broken := &stubAdapter{name: "first", err: errors.New("survey exploded")}
	healthy := &stubAdapter{name: "second", result: &models.SurveyResult{Stats: models.SurveyStats{Discovered: 3}}}

	o := NewOrchestratorWithAdapters(store, DefaultStagger, broken, healthy)
	pauses := &sleepRecorder{}
	o.SetSleepForTesting(pauses.sleep)

	cycle, err := o.RunSurvey(context.Background(), TriggerManual)
	if err != nil {
		t.Fatalf("RunSurvey returned error: %v", err)
	}

	runs := store.surveyRuns()
	if len(runs) != 2 {
		t.Fatalf("expected 2 survey runs, got %d", len(runs))
	}
	if runs[0].Source != "first" || runs[0].Status != models.RunFailed {
		t.Errorf("run 1 = %+v, want failed row for the first adapter", runs[0])
	}
	if runs[1].Source != "second" || runs[1].Status == models.RunFailed {
		t.Errorf("run 2 = %+v, want success or partial", runs[1])
	}

	if cycle.Failed() != 1 || cycle.Succeeded() != 1 {
		t.Errorf("cycle = %+v", cycle)
	}
	if cycle.Adapters[0].Error == "" || cycle.Adapters[1].Discovered != 3 {
		t.Errorf("adapter outcomes = %+v", cycle.Adapters)
	}
	if cycle.RunID == "" || cycle.Trigger != TriggerManual {
		t.Errorf("run id/trigger = %q/%q", cycle.RunID, cycle.Trigger)
	}

	if got := pauses.recorded(); len(got) != 1 || got[0] != DefaultStagger {
		t.Errorf("stagger sleeps = %v, want exactly one of %v", got, DefaultStagger)
	}
}

func TestOrchestrator_PanickingAdapterIsIsolated(t *testing.T) {
	store := newMemStore()
	o := NewOrchestratorWithAdapters(store, 0,
		&stubAdapter{name: "boom", panic: true},
		&stubAdapter{name: "fine"},
	)

	cycle, err := o.RunSurvey(context.Background(), TriggerScheduled)
	if err != nil {
		t.Fatalf("RunSurvey: %v", err)
	}
	if len(cycle.Adapters) != 2 || cycle.Adapters[0].Status != models.RunFailed || cycle.Adapters[1].Status != models.RunSuccess {
		t.Errorf("outcomes = %+v", cycle.Adapters)
	}
}

func TestOrchestrator_RunOnDemand(t *testing.T) {
	store := newMemStore()
	a := &stubAdapter{name: "alpha"}
	b := &stubAdapter{name: "beta"}
	o := NewOrchestratorWithAdapters(store, 0, a, b)

	if _, err := o.RunOnDemand(context.Background(), "gamma"); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("unknown source: err = %v", err)
	}

	cycle, err := o.RunOnDemand(context.Background(), "beta")
	if err != nil {
		t.Fatal(err)
	}
	if len(cycle.Adapters) != 1 || cycle.Adapters[0].Source != "beta" {
		t.Errorf("outcomes = %+v", cycle.Adapters)
	}
	if a.callCount() != 0 || b.callCount() != 1 {
		t.Errorf("calls alpha=%d beta=%d", a.callCount(), b.callCount())
	}

	if _, err := o.RunOnDemand(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	if a.callCount() != 1 || b.callCount() != 2 {
		t.Errorf("full survey calls alpha=%d beta=%d", a.callCount(), b.callCount())
	}
}

func TestOrchestrator_RejectsOverlappingCycles(t *testing.T) {
	store := newMemStore()
	block := make(chan struct{})
	slow := &stubAdapter{name: "slow", block: block}
	o := NewOrchestratorWithAdapters(store, 0, slow)

	done := make(chan error, 1)
	go func() {
		_, err := o.RunSurvey(context.Background(), TriggerScheduled)
		done <- err
	}()

	deadline := time.Now().Add(5 * time.Second)
	for !o.Running() {
		if time.Now().After(deadline) {
			t.Fatal("first cycle never started")
		}
		time.Sleep(time.Millisecond)
	}

	if _, err := o.RunSurvey(context.Background(), TriggerManual); !errors.Is(err, ErrSurveyInProgress) {
		t.Errorf("overlapping cycle: err = %v, want ErrSurveyInProgress", err)
	}

	close(block)
	if err := <-done; err != nil {
		t.Fatalf("first cycle: %v", err)
	}
	if o.Running() {
		t.Error("orchestrator still running after the cycle returned")
	}
	if slow.callCount() != 1 {
		t.Errorf("slow adapter ran %d times", slow.callCount())
	}
}

func TestOrchestrator_CancelledDuringStagger(t *testing.T) {
	store := newMemStore()
	second := &stubAdapter{name: "second"}
	o := NewOrchestratorWithAdapters(store, time.Hour, &stubAdapter{name: "first"}, second)

	ctx, cancel := context.WithCancel(context.Background())
	o.SetSleepForTesting(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})

	cycle, err := o.RunSurvey(ctx, TriggerManual)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if len(cycle.Adapters) != 1 || second.callCount() != 0 {
		t.Errorf("second adapter should not run after cancellation: %+v", cycle.Adapters)
	}
}

func TestOrchestrator_OnCycleComplete(t *testing.T) {
	o := NewOrchestratorWithAdapters(newMemStore(), 0, &stubAdapter{name: "a"})

	var got []*CycleResult
	o.OnCycleComplete(func(c *CycleResult) { got = append(got, c) })

	if _, err := o.RunSurvey(context.Background(), TriggerManual); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Adapters[0].Source != "a" {
		t.Errorf("hook results = %+v", got)
	}
}

func TestNewOrchestratorFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Survey.Adapters.YouTube = false

	o, err := NewOrchestrator(cfg, newMemStore())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"huggingface", "github", "arxiv"}
	got := o.Sources()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("sources = %v, want %v", got, want)
	}

	if _, err := NewOrchestrator(nil, newMemStore()); err == nil {
		t.Error("nil config should fail")
	}
	if _, err := NewOrchestrator(cfg, nil); err == nil {
		t.Error("nil store should fail")
	}
	if _, err := NewAdapter("myspace", cfg, newMemStore()); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("NewAdapter unknown: %v", err)
	}
}
