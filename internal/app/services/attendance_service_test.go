package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kim0040/codingmaker-web-sub000/internal/app/models"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/apperrors"
	"github.com/kim0040/codingmaker-web-sub000/internal/pkg/fieldcrypto"
)

type fakeAttendanceStore struct {
	rows            map[int64]*models.Attendance // keyed by row id
	nextID          int64
	failFirstInsert bool
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{rows: map[int64]*models.Attendance{}, nextID: 1}
}

func (f *fakeAttendanceStore) GetForDay(_ context.Context, userID int64, day time.Time) (*models.Attendance, error) {
	for _, a := range f.rows {
		if a.UserID == userID && a.Day.Equal(day) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperrors.ErrResourceNotFound
}

func (f *fakeAttendanceStore) InsertArrival(_ context.Context, a *models.Attendance) error {
	if f.failFirstInsert {
		// Simulates losing the unique-key race: another writer's row appears
		// before this insert lands.
		f.failFirstInsert = false
		winner := *a
		winner.ID = f.nextID
		f.nextID++
		f.rows[winner.ID] = &winner
		return apperrors.ErrDuplicateArrival
	}
	for _, existing := range f.rows {
		if existing.UserID == a.UserID && existing.Day.Equal(a.Day) {
			return apperrors.ErrDuplicateArrival
		}
	}
	a.ID = f.nextID
	f.nextID++
	copied := *a
	f.rows[a.ID] = &copied
	return nil
}

func (f *fakeAttendanceStore) UpdateNote(_ context.Context, id int64, note string) error {
	a, ok := f.rows[id]
	if !ok {
		return apperrors.ErrResourceNotFound
	}
	a.Note = note
	return nil
}

func (f *fakeAttendanceStore) ListByUserAndRange(_ context.Context, userID int64, start, end time.Time) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range f.rows {
		if a.UserID == userID && !a.Date.Before(start) && a.Date.Before(end) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeUserFinder struct {
	byTag map[string]*models.User
	byID  map[int64]*models.User
}

func (f *fakeUserFinder) FindByTag(_ context.Context, tag string) (*models.User, error) {
	u, ok := f.byTag[tag]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserFinder) FindByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func newAttendanceFixture(t *testing.T, store *fakeAttendanceStore) (*attendanceServiceImpl, *fieldcrypto.Cipher) {
	t.Helper()
	cipher, err := fieldcrypto.NewCipher([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("failed to build cipher: %v", err)
	}
	encName, err := cipher.Encrypt("김학생")
	if err != nil {
		t.Fatalf("failed to encrypt name: %v", err)
	}

	user := &models.User{ID: 7, Username: "student1", Name: encName, Tag: "CARD-7", Tier: 4, Role: models.RoleStudent}
	users := &fakeUserFinder{
		byTag: map[string]*models.User{"CARD-7": user},
		byID:  map[int64]*models.User{7: user},
	}

	svc := &attendanceServiceImpl{
		store:       store,
		users:       users,
		cipher:      cipher,
		broadcaster: NopBroadcaster{},
		now:         func() time.Time { return time.Date(2025, 3, 10, 14, 30, 0, 0, time.Local) },
		logger:      zerolog.Nop(),
	}
	return svc, cipher
}

func TestCheckInArrivalThenDeparture(t *testing.T) {
	store := newFakeAttendanceStore()
	svc, _ := newAttendanceFixture(t, store)
	ctx := context.Background()

	first, err := svc.CheckIn(ctx, "CARD-7")
	if err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}
	if first.Type != models.CheckInArrival {
		t.Fatalf("expected ARRIVAL, got %s", first.Type)
	}
	if first.UserName != "김학생" {
		t.Errorf("expected decrypted name, got %q", first.UserName)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected 1 row after arrival, got %d", len(store.rows))
	}
	for _, row := range store.rows {
		if row.Status != models.AttendancePresent {
			t.Errorf("expected PRESENT status, got %s", row.Status)
		}
	}

	second, err := svc.CheckIn(ctx, "CARD-7")
	if err != nil {
		t.Fatalf("second check-in failed: %v", err)
	}
	if second.Type != models.CheckInDeparture {
		t.Fatalf("expected DEPARTURE, got %s", second.Type)
	}
	if !strings.HasPrefix(second.Note, "하원 ") {
		t.Errorf("expected departure note stamp, got %q", second.Note)
	}
	if len(store.rows) != 1 {
		t.Fatalf("departure must not create a row, got %d rows", len(store.rows))
	}

	// A third tap stays a departure and just rewrites the stamp.
	third, err := svc.CheckIn(ctx, "CARD-7")
	if err != nil {
		t.Fatalf("third check-in failed: %v", err)
	}
	if third.Type != models.CheckInDeparture {
		t.Fatalf("expected DEPARTURE on repeat, got %s", third.Type)
	}
	if len(store.rows) != 1 {
		t.Fatalf("repeat departure must not create a row, got %d rows", len(store.rows))
	}
}

func TestCheckInUnknownTag(t *testing.T) {
	svc, _ := newAttendanceFixture(t, newFakeAttendanceStore())

	_, err := svc.CheckIn(context.Background(), "NO-SUCH-TAG")
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCheckInArrivalRaceBecomesDeparture(t *testing.T) {
	store := newFakeAttendanceStore()
	store.failFirstInsert = true
	svc, _ := newAttendanceFixture(t, store)

	resp, err := svc.CheckIn(context.Background(), "CARD-7")
	if err != nil {
		t.Fatalf("check-in after lost race failed: %v", err)
	}
	if resp.Type != models.CheckInDeparture {
		t.Fatalf("race loser should become DEPARTURE, got %s", resp.Type)
	}
	if len(store.rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(store.rows))
	}
}

func TestListForMonthRejectsBadMonth(t *testing.T) {
	svc, _ := newAttendanceFixture(t, newFakeAttendanceStore())

	_, err := svc.ListForMonth(context.Background(), 7, "2025-13")
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListForMonthReturnsRecords(t *testing.T) {
	store := newFakeAttendanceStore()
	svc, _ := newAttendanceFixture(t, store)
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, "CARD-7"); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	resp, err := svc.ListForMonth(ctx, 7, "2025-03")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if resp.UserName != "김학생" {
		t.Errorf("expected decrypted name, got %q", resp.UserName)
	}
	if len(resp.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(resp.Records))
	}
}
