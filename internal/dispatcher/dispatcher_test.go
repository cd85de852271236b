package dispatcher_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/wishify/wishify/internal/dispatcher"
	"github.com/wishify/wishify/internal/domain"
)

type fakeWishRepo struct {
	claimDue  func(ctx context.Context, now time.Time, limit int) ([]*domain.Wish, error)
	resetSent func(ctx context.Context, id string) error
}

func (r *fakeWishRepo) Create(_ context.Context, _ *domain.Wish) (*domain.Wish, error) {
	panic("not used")
}
func (r *fakeWishRepo) ListByOwner(_ context.Context, _ string) ([]*domain.Wish, error) {
	panic("not used")
}
func (r *fakeWishRepo) FindByID(_ context.Context, _ string) (*domain.Wish, error) {
	panic("not used")
}
func (r *fakeWishRepo) Delete(_ context.Context, _ string) error { panic("not used") }

func (r *fakeWishRepo) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*domain.Wish, error) {
	return r.claimDue(ctx, now, limit)
}

func (r *fakeWishRepo) ResetSent(ctx context.Context, id string) error {
	return r.resetSent(ctx, id)
}

type sentEmail struct {
	to      string
	subject string
}

type fakeSender struct {
	failTo string // Send fails for this recipient
	sent   []sentEmail
}

func (s *fakeSender) Send(_ context.Context, to, subject, _ string) error {
	if to == s.failTo {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentEmail{to: to, subject: subject})
	return nil
}

func newDispatcher(t *testing.T, repo *fakeWishRepo, sender *fakeSender) *dispatcher.Dispatcher {
	t.Helper()
	d, err := dispatcher.New(repo, sender, slog.Default(), "0 8 * * *", 50)
	if err != nil {
		t.Fatalf("new dispatcher: %v", err)
	}
	return d
}

func TestNew_InvalidCron_Fails(t *testing.T) {
	_, err := dispatcher.New(&fakeWishRepo{}, &fakeSender{}, slog.Default(), "not a cron", 50)
	if err == nil {
		t.Fatal("expected error for invalid cron expression")
	}
}

func TestDispatch_SendsGreetingPerClaimedWish(t *testing.T) {
	claimed := []*domain.Wish{
		{ID: "wish-1", Name: "Alice", Email: "alice@example.com", Type: domain.WishTypeBirthday},
		{ID: "wish-2", Name: "Bob", Email: "bob@example.com", Type: domain.WishTypeAnniversary},
	}
	repo := &fakeWishRepo{
		claimDue: func(_ context.Context, _ time.Time, limit int) ([]*domain.Wish, error) {
			if limit != 50 {
				t.Errorf("limit = %d, want 50", limit)
			}
			return claimed, nil
		},
		resetSent: func(_ context.Context, id string) error {
			t.Errorf("unexpected reset of %s", id)
			return nil
		},
	}
	sender := &fakeSender{}

	newDispatcher(t, repo, sender).Dispatch(context.Background())

	if len(sender.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(sender.sent))
	}
	if sender.sent[0].to != "alice@example.com" {
		t.Errorf("to = %q, want alice's address", sender.sent[0].to)
	}
	if !strings.Contains(sender.sent[0].subject, "Birthday") {
		t.Errorf("subject %q does not mention the occasion", sender.sent[0].subject)
	}
}

func TestDispatch_FailedSend_ResetsWishForNextCycle(t *testing.T) {
	claimed := []*domain.Wish{
		{ID: "wish-1", Name: "Alice", Email: "alice@example.com", Type: domain.WishTypeBirthday},
		{ID: "wish-2", Name: "Bob", Email: "bob@example.com", Type: domain.WishTypeOther},
	}
	var resets []string
	repo := &fakeWishRepo{
		claimDue: func(_ context.Context, _ time.Time, _ int) ([]*domain.Wish, error) {
			return claimed, nil
		},
		resetSent: func(_ context.Context, id string) error {
			resets = append(resets, id)
			return nil
		},
	}
	sender := &fakeSender{failTo: "alice@example.com"}

	newDispatcher(t, repo, sender).Dispatch(context.Background())

	if len(resets) != 1 || resets[0] != "wish-1" {
		t.Errorf("resets = %v, want [wish-1]", resets)
	}
	// The other wish still goes out.
	if len(sender.sent) != 1 || sender.sent[0].to != "bob@example.com" {
		t.Errorf("sent = %v, want bob's greeting only", sender.sent)
	}
}

func TestDispatch_ClaimError_SendsNothing(t *testing.T) {
	repo := &fakeWishRepo{
		claimDue: func(_ context.Context, _ time.Time, _ int) ([]*domain.Wish, error) {
			return nil, errors.New("db down")
		},
	}
	sender := &fakeSender{}

	newDispatcher(t, repo, sender).Dispatch(context.Background())

	if len(sender.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(sender.sent))
	}
}

func TestGreeting_SubjectMatchesOccasion(t *testing.T) {
	cases := []struct {
		wishType domain.WishType
		want     string
	}{
		{domain.WishTypeBirthday, "Happy Birthday, Sam!"},
		{domain.WishTypeAnniversary, "Happy Anniversary, Sam!"},
		{domain.WishTypeHoliday, "Happy Holidays, Sam!"},
		{domain.WishTypeOther, "Thinking of you, Sam!"},
	}

	for _, tc := range cases {
		subject, body := dispatcher.Greeting(&domain.Wish{Name: "Sam", Type: tc.wishType})
		if subject != tc.want {
			t.Errorf("subject for %s = %q, want %q", tc.wishType, subject, tc.want)
		}
		if !strings.Contains(body, "Sam") {
			t.Errorf("body for %s does not address the recipient", tc.wishType)
		}
	}
}
