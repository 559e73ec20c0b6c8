package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	apperrors "pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func frozenSlot(name string) *models.PositionSlot {
	return &models.PositionSlot{
		Name:         name,
		Kind:         models.SlotFrozen,
		Symbol:       "TEST",
		SpotPrice:    100,
		LongExpiry:   time.Date(2028, 1, 21, 0, 0, 0, 0, time.UTC),
		ShortExpiry:  time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		LongStrike:   80,
		ShortStrike:  130,
		LongPremium:  25,
		ShortPremium: 5,
		LongIV:       0.32,
		ShortIV:      0.40,
	}
}

func TestSaveAndGetSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	want := frozenSlot("my-pmcc")
	if err := s.SaveSlot(ctx, want); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	got, err := s.GetSlot(ctx, "my-pmcc")
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if got.Kind != models.SlotFrozen || got.Symbol != "TEST" {
		t.Errorf("got kind=%v symbol=%v", got.Kind, got.Symbol)
	}
	if got.SpotPrice != 100 || got.LongStrike != 80 || got.ShortStrike != 130 {
		t.Errorf("prices = %v/%v/%v", got.SpotPrice, got.LongStrike, got.ShortStrike)
	}
	if got.LongPremium != 25 || got.ShortPremium != 5 {
		t.Errorf("premiums = %v/%v", got.LongPremium, got.ShortPremium)
	}
	if !got.LongExpiry.Equal(want.LongExpiry) || !got.ShortExpiry.Equal(want.ShortExpiry) {
		t.Errorf("expiries = %v/%v", got.LongExpiry, got.ShortExpiry)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped")
	}

	pos := got.Position()
	if pos.UnderlyingPrice != 100 || pos.LongLeg.Premium != 25 || pos.ShortLeg.ImpliedVol != 0.40 {
		t.Errorf("reconstructed position = %+v", pos)
	}
}

func TestSaveSlotUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	slot := frozenSlot("dup")
	if err := s.SaveSlot(ctx, slot); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	slot.LongStrike = 85
	slot.Kind = models.SlotResolved
	if err := s.SaveSlot(ctx, slot); err != nil {
		t.Fatalf("SaveSlot upsert: %v", err)
	}

	got, err := s.GetSlot(ctx, "dup")
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if got.LongStrike != 85 || got.Kind != models.SlotResolved {
		t.Errorf("upsert did not replace: strike=%v kind=%v", got.LongStrike, got.Kind)
	}

	slots, err := s.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	if len(slots) != 1 {
		t.Errorf("got %d slots, want 1", len(slots))
	}
}

func TestSaveSlotEmptyName(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveSlot(context.Background(), &models.PositionSlot{Kind: models.SlotFrozen})
	if !apperrors.Is(err, apperrors.ErrInputValidation) {
		t.Errorf("error %v should unwrap to ErrInputValidation", err)
	}
}

func TestGetSlotNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSlot(context.Background(), "missing")
	if !apperrors.Is(err, apperrors.ErrSlotNotFound) {
		t.Errorf("error %v should unwrap to ErrSlotNotFound", err)
	}
}

func TestListSlotsOrdered(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.SaveSlot(ctx, frozenSlot(name)); err != nil {
			t.Fatalf("SaveSlot(%s): %v", name, err)
		}
	}

	slots, err := s.ListSlots(ctx)
	if err != nil {
		t.Fatalf("ListSlots: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	if slots[0].Name != "alpha" || slots[1].Name != "mid" || slots[2].Name != "zeta" {
		t.Errorf("order = %s/%s/%s, want alpha/mid/zeta",
			slots[0].Name, slots[1].Name, slots[2].Name)
	}
}

func TestDeleteSlot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.SaveSlot(ctx, frozenSlot("gone")); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}
	if err := s.DeleteSlot(ctx, "gone"); err != nil {
		t.Fatalf("DeleteSlot: %v", err)
	}
	if _, err := s.GetSlot(ctx, "gone"); !apperrors.Is(err, apperrors.ErrSlotNotFound) {
		t.Errorf("deleted slot still readable: %v", err)
	}
	if err := s.DeleteSlot(ctx, "gone"); !apperrors.Is(err, apperrors.ErrSlotNotFound) {
		t.Errorf("double delete error = %v, want ErrSlotNotFound", err)
	}
}

func TestResolvedSlotRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	slot := &models.PositionSlot{
		Name:        "live",
		Kind:        models.SlotResolved,
		Symbol:      "TEST",
		LongExpiry:  time.Date(2028, 1, 21, 0, 0, 0, 0, time.UTC),
		ShortExpiry: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		LongStrike:  80,
		ShortStrike: 130,
	}
	if err := s.SaveSlot(ctx, slot); err != nil {
		t.Fatalf("SaveSlot: %v", err)
	}

	got, err := s.GetSlot(ctx, "live")
	if err != nil {
		t.Fatalf("GetSlot: %v", err)
	}
	if got.Kind != models.SlotResolved {
		t.Errorf("Kind = %v, want resolved", got.Kind)
	}
	if got.SpotPrice != 0 || got.LongPremium != 0 {
		t.Errorf("resolved slot should have zero price fields: %+v", got)
	}
}
