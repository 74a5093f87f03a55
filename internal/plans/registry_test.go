package plans

import "testing"

func TestRegistryGet(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tests := []struct {
		name   string
		planID string
		wantID string
	}{
		{name: "known plan", planID: "team", wantID: "team"},
		{name: "unknown plan falls back to free", planID: "enterprise-legacy", wantID: "free"},
		{name: "empty plan falls back to free", planID: "", wantID: "free"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Get(tt.planID); got.ID != tt.wantID {
				t.Errorf("Get(%q).ID = %q, want %q", tt.planID, got.ID, tt.wantID)
			}
		})
	}
}

func TestPlanLimits(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	free := r.Get("free")
	if !free.AllowsProject(2) {
		t.Error("free plan should allow a third project")
	}
	if free.AllowsProject(3) {
		t.Error("free plan should block a fourth project")
	}
	if !free.AllowsMember(4) {
		t.Error("free plan should allow a fifth member")
	}
	if free.AllowsMember(5) {
		t.Error("free plan should block a sixth member")
	}

	// Business limits are -1, which means unlimited.
	business := r.Get("business")
	if !business.AllowsProject(1_000_000) {
		t.Error("business plan projects must be unlimited")
	}
	if !business.AllowsDocument(1_000_000) {
		t.Error("business plan documents must be unlimited")
	}
}

func TestRegistryListOrder(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d plans, want 3", len(list))
	}
	want := []string{"free", "team", "business"}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, id)
		}
	}
}
