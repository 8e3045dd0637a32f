package behaviour

import "testing"

type countingBehaviour struct {
	starts  int
	updates int
	lastDT  float64
}

func (c *countingBehaviour) Start()                  { c.starts++ }
func (c *countingBehaviour) Update(deltaTime float64) { c.updates++; c.lastDT = deltaTime }

func TestManagerStartsOnce(t *testing.T) {
	m := NewManager()
	b := &countingBehaviour{}
	m.Add(b)

	m.UpdateAll(0.016)
	m.UpdateAll(0.016)
	m.UpdateAll(0.016)

	if b.starts != 1 {
		t.Errorf("Start ran %d times, want 1", b.starts)
	}
	if b.updates != 3 {
		t.Errorf("Update ran %d times, want 3", b.updates)
	}
}

func TestManagerPassesDeltaTime(t *testing.T) {
	m := NewManager()
	b := &countingBehaviour{}
	m.Add(b)

	m.UpdateAll(0.25)

	if b.lastDT != 0.25 {
		t.Errorf("deltaTime = %f, want 0.25", b.lastDT)
	}
}

func TestManagerRemove(t *testing.T) {
	m := NewManager()
	a := &countingBehaviour{}
	b := &countingBehaviour{}
	m.Add(a)
	m.Add(b)

	m.Remove(a)
	m.UpdateAll(0.016)

	if a.updates != 0 {
		t.Error("removed behaviour must not run")
	}
	if b.updates != 1 {
		t.Error("remaining behaviour should still run")
	}
}

func TestManagerClear(t *testing.T) {
	m := NewManager()
	b := &countingBehaviour{}
	m.Add(b)

	m.Clear()
	m.UpdateAll(0.016)

	if b.updates != 0 {
		t.Error("cleared manager must not run behaviours")
	}
}
