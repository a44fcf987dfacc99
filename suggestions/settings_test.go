package suggestions

import (
	"sync"
	"testing"
)

func TestUnconfiguredGuildDefaults(t *testing.T) {
	store := NewStore()

	st := store.Get("g1")
	if st.Enabled {
		t.Error("new guild should start disabled")
	}
	if st.ChannelID != "" || len(st.StaffRoles) != 0 {
		t.Errorf("unexpected defaults %+v", st)
	}
}

func TestChannelSettings(t *testing.T) {
	store := NewStore()
	store.SetEnabled("g1", true)
	store.SetChannel("g1", "c-main")
	store.SetApprovedChannel("g1", "c-approved")
	store.SetRejectedChannel("g1", "c-rejected")

	st := store.Get("g1")
	if !st.Enabled || st.ChannelID != "c-main" ||
		st.ApprovedChannel != "c-approved" || st.RejectedChannel != "c-rejected" {
		t.Errorf("unexpected settings %+v", st)
	}

	// other guilds are untouched
	if store.Get("g2").Enabled {
		t.Error("settings leaked across guilds")
	}
}

func TestStaffRoles(t *testing.T) {
	store := NewStore()

	if !store.AddStaffRole("g1", "mod") {
		t.Error("first add should report true")
	}
	if store.AddStaffRole("g1", "mod") {
		t.Error("duplicate add should report false")
	}
	store.AddStaffRole("g1", "admin")

	if !store.HasStaffRole("g1", []string{"member", "mod"}) {
		t.Error("member holding a staff role should pass")
	}
	if store.HasStaffRole("g1", []string{"member"}) {
		t.Error("member without staff roles should fail")
	}

	if !store.RemoveStaffRole("g1", "mod") {
		t.Error("removing a present role should report true")
	}
	if store.RemoveStaffRole("g1", "mod") {
		t.Error("removing an absent role should report false")
	}
	if store.HasStaffRole("g1", []string{"mod"}) {
		t.Error("removed role should no longer count as staff")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AddStaffRole("g1", "mod")

	st := store.Get("g1")
	st.StaffRoles[0] = "hacked"

	if store.HasStaffRole("g1", []string{"hacked"}) {
		t.Error("mutating the returned copy must not affect the store")
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.SetEnabled("g1", true)
			store.AddStaffRole("g1", "mod")
			store.Get("g1")
		}()
	}
	wg.Wait()

	if got := len(store.Get("g1").StaffRoles); got != 1 {
		t.Errorf("expected 1 staff role, got %d", got)
	}
}
