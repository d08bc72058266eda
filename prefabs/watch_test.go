package prefabs

import (
	"testing"
	"time"
)

func TestDebouncerReportsLastWriteOfBurst(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	// truncate, then the real write 60ms later
	d.add("prefabs/player.yaml", ChangeSpec, t0)
	d.add("prefabs/player.yaml", ChangeSpec, t0.Add(60*time.Millisecond))

	ready, wait := d.flush(t0.Add(100 * time.Millisecond))
	if len(ready) != 0 {
		t.Fatalf("expected nothing while the burst is still settling, got %+v", ready)
	}
	if wait != 60*time.Millisecond {
		t.Fatalf("expected to wait 60ms for the last write, got %v", wait)
	}

	ready, wait = d.flush(t0.Add(160 * time.Millisecond))
	if len(ready) != 1 || ready[0].Path != "prefabs/player.yaml" || ready[0].Kind != ChangeSpec {
		t.Fatalf("expected one spec change after the last write, got %+v", ready)
	}
	if wait != 0 {
		t.Fatalf("expected nothing left pending, got wait %v", wait)
	}

	if ready, _ := d.flush(t0.Add(time.Second)); len(ready) != 0 {
		t.Fatalf("expected change to be reported once, got %+v", ready)
	}
}

func TestDebouncerKeepsPathsApart(t *testing.T) {
	d := newDebouncer(100 * time.Millisecond)
	t0 := time.Unix(0, 0)

	d.add("prefabs/scripts/player_hooks.tengo", ChangeScript, t0)
	d.add("levels/training.yaml", ChangeLevel, t0.Add(50*time.Millisecond))

	ready, wait := d.flush(t0.Add(100 * time.Millisecond))
	if len(ready) != 1 || ready[0].Kind != ChangeScript {
		t.Fatalf("expected only the script change, got %+v", ready)
	}
	if wait != 50*time.Millisecond {
		t.Fatalf("expected 50ms until the level change, got %v", wait)
	}

	ready, _ = d.flush(t0.Add(150 * time.Millisecond))
	if len(ready) != 1 || ready[0].Kind != ChangeLevel {
		t.Fatalf("expected the level change, got %+v", ready)
	}
}
