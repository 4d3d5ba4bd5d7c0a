package memory

import (
	"context"
	"testing"
	"time"

	"pet-care-reminders/internal/domain/events"
	"pet-care-reminders/internal/domain/pets"
)

func seedEvent(t *testing.T, repo events.Repository, id, petID string, typeID int64, createdAt time.Time, alarmAt *time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), events.Event{
		ID:          id,
		EventTypeID: typeID,
		PetID:       petID,
		Status:      "scheduled",
		CreatedAt:   createdAt,
		AlarmAt:     alarmAt,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func ts(t time.Time) *time.Time { return &t }

func TestEventRepo_NextAfter_PicksEarliestFuture(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "ev-3h", "pet-1", events.TypeVaccination, now, ts(now.Add(3*time.Hour)))
	seedEvent(t, repo, "ev-1h", "pet-1", events.TypeVaccination, now, ts(now.Add(1*time.Hour)))
	seedEvent(t, repo, "ev-2h", "pet-1", events.TypeVaccination, now, ts(now.Add(2*time.Hour)))
	// otro tipo y otra mascota no cuentan
	seedEvent(t, repo, "ev-other-type", "pet-1", events.TypeDeworming, now, ts(now.Add(30*time.Minute)))
	seedEvent(t, repo, "ev-other-pet", "pet-2", events.TypeVaccination, now, ts(now.Add(15*time.Minute)))

	e, err := repo.NextAfter(context.Background(), "pet-1", events.TypeVaccination, now)
	if err != nil {
		t.Fatalf("NextAfter error: %v", err)
	}
	if e == nil || e.ID != "ev-1h" {
		t.Fatalf("expected ev-1h, got %+v", e)
	}
}

func TestEventRepo_NextAfter_AllPastIsEmpty(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "ev-past-1", "pet-1", events.TypeVaccination, now, ts(now.Add(-1*time.Hour)))
	seedEvent(t, repo, "ev-past-2", "pet-1", events.TypeVaccination, now, ts(now.Add(-3*time.Hour)))
	seedEvent(t, repo, "ev-no-alarm", "pet-1", events.TypeVaccination, now, nil)

	e, err := repo.NextAfter(context.Background(), "pet-1", events.TypeVaccination, now)
	if err != nil {
		t.Fatalf("NextAfter error: %v", err)
	}
	if e != nil {
		t.Fatalf("expected empty result, got %+v", e)
	}
}

func TestEventRepo_NextAfter_IgnoresAlarmMade(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	alarm := now.Add(time.Hour)
	err := repo.Create(context.Background(), events.Event{
		ID:          "ev-fired",
		EventTypeID: events.TypeVaccination,
		PetID:       "pet-1",
		CreatedAt:   now,
		AlarmAt:     &alarm,
		AlarmMade:   true,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	// la vigencia es puramente temporal: alarm_made no filtra
	e, err := repo.NextAfter(context.Background(), "pet-1", events.TypeVaccination, now)
	if err != nil {
		t.Fatalf("NextAfter error: %v", err)
	}
	if e == nil || e.ID != "ev-fired" {
		t.Fatalf("expected ev-fired despite alarm_made=true, got %+v", e)
	}
}

func TestEventRepo_UpcomingGlobal_WindowBoundaries(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	horizon := now.Add(events.UpcomingWindow)

	seedEvent(t, repo, "ev-at-now", "pet-1", events.TypeVaccination, now, ts(now))
	seedEvent(t, repo, "ev-in-window", "pet-1", events.TypeVaccination, now, ts(now.Add(10*24*time.Hour)))
	seedEvent(t, repo, "ev-at-horizon", "pet-1", events.TypeVaccination, now, ts(horizon))
	seedEvent(t, repo, "ev-past-horizon", "pet-1", events.TypeVaccination, now, ts(horizon.Add(time.Second)))

	out, err := repo.ListUpcomingGlobal(context.Background(), events.UpcomingFilter{
		After:  now,
		Before: horizon,
	})
	if err != nil {
		t.Fatalf("ListUpcomingGlobal error: %v", err)
	}

	if len(out) != 2 {
		t.Fatalf("expected 2 events in window, got %d: %+v", len(out), out)
	}
	// ascendente por alarm_at: in-window primero, horizonte (inclusivo) después
	if out[0].ID != "ev-in-window" || out[1].ID != "ev-at-horizon" {
		t.Fatalf("wrong window contents/order: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestEventRepo_UpcomingGlobal_PetFilterAndLimit(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "ev-a", "pet-1", events.TypeVaccination, now, ts(now.Add(1*time.Hour)))
	seedEvent(t, repo, "ev-b", "pet-1", events.TypeDeworming, now, ts(now.Add(2*time.Hour)))
	seedEvent(t, repo, "ev-c", "pet-1", events.TypeMedicalVisit, now, ts(now.Add(3*time.Hour)))
	seedEvent(t, repo, "ev-other", "pet-2", events.TypeVaccination, now, ts(now.Add(90*time.Minute)))

	out, err := repo.ListUpcomingGlobal(context.Background(), events.UpcomingFilter{
		After:  now,
		Before: now.Add(events.UpcomingWindow),
		PetID:  "pet-1",
		Limit:  2,
	})
	if err != nil {
		t.Fatalf("ListUpcomingGlobal error: %v", err)
	}

	if len(out) != 2 || out[0].ID != "ev-a" || out[1].ID != "ev-b" {
		t.Fatalf("expected first two pet-1 events after ordering, got %+v", out)
	}
}

func TestEventRepo_UpcomingGlobal_Enrichment(t *testing.T) {
	petRepo := NewPetRepo()
	repo := NewEventRepo(petRepo)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	bd := now.AddDate(-3, 0, 0)
	if err := petRepo.Create(context.Background(), pets.Pet{
		ID: "pet-1", Name: "Milo", BirthDate: &bd, MainOwnerID: "o1", CreatedAt: now,
	}); err != nil {
		t.Fatalf("create pet: %v", err)
	}

	seedEvent(t, repo, "ev-1", "pet-1", events.TypeFoodPurchase, now, ts(now.Add(time.Hour)))

	out, err := repo.ListUpcomingGlobal(context.Background(), events.UpcomingFilter{
		After:  now,
		Before: now.Add(events.UpcomingWindow),
	})
	if err != nil {
		t.Fatalf("ListUpcomingGlobal error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	if out[0].PetName != "Milo" {
		t.Fatalf("expected pet name enrichment, got %q", out[0].PetName)
	}
	if out[0].EventTypeTitle != events.TypeTitle(events.TypeFoodPurchase) {
		t.Fatalf("expected type title enrichment, got %q", out[0].EventTypeTitle)
	}
}

func TestEventRepo_ListByPet_MostRecentFirst(t *testing.T) {
	repo := NewEventRepo(nil)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "ev-old", "pet-1", events.TypeVaccination, base.Add(-48*time.Hour), nil)
	seedEvent(t, repo, "ev-new", "pet-1", events.TypeLabResult, base, nil)
	seedEvent(t, repo, "ev-mid", "pet-1", events.TypeDeworming, base.Add(-24*time.Hour), nil)

	out, err := repo.ListByPet(context.Background(), "pet-1")
	if err != nil {
		t.Fatalf("ListByPet error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out))
	}
	if out[0].ID != "ev-new" || out[1].ID != "ev-mid" || out[2].ID != "ev-old" {
		t.Fatalf("wrong history order: %s, %s, %s", out[0].ID, out[1].ID, out[2].ID)
	}
}

func TestEventRepo_ListPage_SliceAndTotal(t *testing.T) {
	repo := NewEventRepo(nil)
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedEvent(t, repo, string(rune('a'+i)), "pet-1", events.TypeVaccination,
			base.Add(time.Duration(i)*time.Hour), nil)
	}

	items, total, err := repo.ListPage(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	// created_at desc: e,d,c,b,a => offset 1, limit 2 => d,c
	if len(items) != 2 || items[0].ID != "d" || items[1].ID != "c" {
		t.Fatalf("wrong page: %+v", items)
	}

	// offset más allá del final: página vacía, total intacto
	items, total, err = repo.ListPage(context.Background(), 2, 10)
	if err != nil {
		t.Fatalf("ListPage error: %v", err)
	}
	if len(items) != 0 || total != 5 {
		t.Fatalf("expected empty page with total 5, got %d items total %d", len(items), total)
	}
}

func TestEventRepo_UpdateAlarm_OnlyAlarm(t *testing.T) {
	repo := NewEventRepo(nil)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	seedEvent(t, repo, "ev-1", "pet-1", events.TypeFoodPurchase, now, ts(now.Add(time.Hour)))

	newAlarm := now.Add(72 * time.Hour)
	e, err := repo.UpdateAlarm(context.Background(), "ev-1", &newAlarm)
	if err != nil {
		t.Fatalf("UpdateAlarm error: %v", err)
	}
	if !e.AlarmAt.Equal(newAlarm) {
		t.Fatalf("expected alarm updated, got %v", e.AlarmAt)
	}
	if !e.CreatedAt.Equal(now) || e.PetID != "pet-1" || e.EventTypeID != events.TypeFoodPurchase {
		t.Fatalf("other fields must stay intact: %+v", e)
	}

	if _, err := repo.UpdateAlarm(context.Background(), "ghost", &newAlarm); err != events.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
