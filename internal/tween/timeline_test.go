package tween

import "testing"

func TestTimeline_Positions(t *testing.T) {
	tests := []struct {
		name     string
		build    func(e *Engine, tl *Timeline)
		expected float64
	}{
		{
			name: "顺序追加",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 0.3}, "")
				_, _ = tl.To(nil, Vars{Duration: 4.7}, "")
			},
			expected: 5,
		},
		{
			name: "负偏移重叠",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 1}, "")
				_, _ = tl.To(nil, Vars{Duration: 1}, "-=0.5")
			},
			expected: 1.5,
		},
		{
			name: "正偏移留白",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 0.8}, "+=0.5")
			},
			expected: 1.3,
		},
		{
			name: "延迟加重叠",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 0.5, Delay: 2}, "")
				_, _ = tl.To(nil, Vars{Duration: 1.5}, "-=0.5")
			},
			expected: 3.5,
		},
		{
			name: "完全并行",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 2}, "")
				_, _ = tl.To(nil, Vars{Duration: 2}, "-=2")
			},
			expected: 2,
		},
		{
			name: "绝对位置",
			build: func(e *Engine, tl *Timeline) {
				_, _ = tl.To(nil, Vars{Duration: 1}, "3")
			},
			expected: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine()
			tl := e.NewTimeline(TimelineVars{})
			tt.build(e, tl)
			if got := tl.Duration(); !approx(got, tt.expected) {
				t.Errorf("Duration() = %v, 期望 %v", got, tt.expected)
			}
		})
	}
}

func TestTimeline_InvalidPosition(t *testing.T) {
	e := NewEngine()
	tl := e.NewTimeline(TimelineVars{})
	if _, err := tl.To(nil, Vars{Duration: 1}, "-=abc"); err == nil {
		t.Error("expected error for malformed offset")
	}
	if _, err := tl.To(nil, Vars{Duration: 1}, "soon"); err == nil {
		t.Error("expected error for malformed position")
	}
}

func TestTimeline_NestedOrder(t *testing.T) {
	e := NewEngine()
	var order []string

	master := e.NewTimeline(TimelineVars{})
	for _, name := range []string{"a", "b", "c"} {
		name := name
		phase := e.NewTimeline(TimelineVars{
			OnStart:    func() { order = append(order, name+":start") },
			OnComplete: func() { order = append(order, name+":done") },
		})
		_, _ = phase.To(nil, Vars{Duration: 1}, "")
		if err := master.Add(phase, ""); err != nil {
			t.Fatal(err)
		}
	}
	if !approx(master.Duration(), 3) {
		t.Fatalf("master duration = %v, want 3", master.Duration())
	}

	_ = e.Play(master)
	run(e, 3.5, 0.1)

	want := []string{"a:start", "a:done", "b:start", "b:done", "c:start", "c:done"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, want %s", i, order[i], want[i])
		}
	}
	if !master.Completed() {
		t.Error("master timeline should be completed")
	}
}

func TestTimeline_AddTwice(t *testing.T) {
	e := NewEngine()
	a := e.NewTimeline(TimelineVars{})
	b := e.NewTimeline(TimelineVars{})
	tw := e.NewTween(nil, Vars{Duration: 1})
	if err := a.Add(tw, ""); err != nil {
		t.Fatal(err)
	}
	if err := b.Add(tw, ""); err == nil {
		t.Error("a tween can only belong to one timeline")
	}
}
