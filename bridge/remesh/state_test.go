package remesh

import "testing"

func TestHappyPathTransitions(t *testing.T) {
	m := &machine{stage: StageIdle}
	order := []Stage{StageValidating, StageExporting, StageInvoking, StageImporting, StageDone}
	for _, next := range order {
		if err := m.to(next); err != nil {
			t.Fatalf("to(%s): %v", next, err)
		}
	}
	if !IsTerminal(m.stage) {
		t.Fatalf("stage %s not terminal after full run", m.stage)
	}
}

func TestFailedReachableFromEveryActiveStage(t *testing.T) {
	active := []Stage{StageValidating, StageExporting, StageInvoking, StageImporting}
	for _, s := range active {
		m := &machine{stage: s}
		if err := m.to(StageFailed); err != nil {
			t.Fatalf("to(failed) from %s: %v", s, err)
		}
	}
}

func TestFailedNotReachableFromIdleOrTerminal(t *testing.T) {
	for _, s := range []Stage{StageIdle, StageDone, StageFailed} {
		m := &machine{stage: s}
		if err := m.to(StageFailed); err == nil {
			t.Fatalf("to(failed) from %s succeeded", s)
		}
	}
}

func TestNoRetryTransitions(t *testing.T) {
	// terminal stages allow nothing; a new operation starts from idle
	for _, s := range []Stage{StageDone, StageFailed} {
		for next := StageIdle; next <= StageFailed; next++ {
			m := &machine{stage: s}
			if err := m.to(next); err == nil {
				t.Fatalf("transition %s -> %s allowed", s, next)
			}
		}
	}
}

func TestNoStageSkipping(t *testing.T) {
	m := &machine{stage: StageValidating}
	if err := m.to(StageInvoking); err == nil {
		t.Fatal("validating -> invoking allowed, exporting was skipped")
	}
	m = &machine{stage: StageIdle}
	if err := m.to(StageDone); err == nil {
		t.Fatal("idle -> done allowed")
	}
}

func TestStageStrings(t *testing.T) {
	if StageInvoking.String() != "invoking" {
		t.Fatalf("String() = %q", StageInvoking.String())
	}
	if Stage(42).String() == "" {
		t.Fatal("unknown stage has empty String()")
	}
}
