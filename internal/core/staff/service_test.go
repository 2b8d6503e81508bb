package staff

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type fakeStaffRepo struct {
	members  map[int64]*Staff
	sequence int64
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{members: make(map[int64]*Staff)}
}

func (r *fakeStaffRepo) Create(_ context.Context, s *Staff) (*Staff, error) {
	clone := *s
	r.sequence++
	clone.ID = r.sequence
	r.members[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeStaffRepo) Update(_ context.Context, s *Staff) (*Staff, error) {
	if _, ok := r.members[s.ID]; !ok {
		return nil, ErrStaffNotFound
	}
	clone := *s
	r.members[s.ID] = &clone
	out := clone
	return &out, nil
}

func (r *fakeStaffRepo) Deactivate(_ context.Context, id int64, at time.Time) error {
	m, ok := r.members[id]
	if !ok {
		return ErrStaffNotFound
	}
	m.IsActive = false
	m.UpdatedAt = at
	return nil
}

func (r *fakeStaffRepo) FindByID(_ context.Context, id int64) (*Staff, error) {
	m, ok := r.members[id]
	if !ok {
		return nil, ErrStaffNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeStaffRepo) ListActive(ctx context.Context) ([]*Staff, error) {
	all, _ := r.ListAll(ctx)
	active := make([]*Staff, 0, len(all))
	for _, m := range all {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active, nil
}

func (r *fakeStaffRepo) ListAll(_ context.Context) ([]*Staff, error) {
	ids := make([]int64, 0, len(r.members))
	for id := range r.members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*Staff, 0, len(ids))
	for _, id := range ids {
		clone := *r.members[id]
		out = append(out, &clone)
	}
	return out, nil
}

func TestService_CreateStaff_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeStaffRepo()
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubClock{now: now}, nil)

	created, err := svc.CreateStaff(context.Background(), CreateStaffInput{
		Name:     "  Alice ",
		Age:      30,
		Position: " Nurse ",
	})
	if err != nil {
		t.Fatalf("CreateStaff returned error: %v", err)
	}

	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if created.Name != "Alice" || created.Position != "Nurse" {
		t.Fatalf("expected trimmed fields, got %q %q", created.Name, created.Position)
	}
	if !created.IsActive {
		t.Fatal("expected new staff to be active")
	}
	if !created.CreatedAt.Equal(now) || !created.UpdatedAt.Equal(now) {
		t.Fatal("expected timestamps to use clock now")
	}
}

func TestService_CreateStaff_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   CreateStaffInput
		want error
	}{
		{name: "empty name", in: CreateStaffInput{Name: " ", Age: 30, Position: "Nurse"}, want: ErrInvalidName},
		{name: "underage", in: CreateStaffInput{Name: "Bob", Age: 17, Position: "Nurse"}, want: ErrInvalidAge},
		{name: "empty position", in: CreateStaffInput{Name: "Bob", Age: 18, Position: ""}, want: ErrInvalidPosition},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc := NewService(newFakeStaffRepo(), nil, nil)
			if _, err := svc.CreateStaff(context.Background(), tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestService_UpdateStaff_Overwrites(t *testing.T) {
	t.Parallel()

	repo := newFakeStaffRepo()
	clk := &stubClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	svc := NewService(repo, clk, nil)

	created, err := svc.CreateStaff(context.Background(), CreateStaffInput{Name: "Alice", Age: 30, Position: "Nurse"})
	if err != nil {
		t.Fatalf("CreateStaff returned error: %v", err)
	}

	clk.now = clk.now.Add(time.Hour)
	inactive := false
	updated, err := svc.UpdateStaff(context.Background(), UpdateStaffInput{
		ID:       created.ID,
		Name:     "Alice Smith",
		Age:      31,
		Position: "Head Nurse",
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("UpdateStaff returned error: %v", err)
	}

	if updated.ID != created.ID {
		t.Fatalf("id must not change, got %d", updated.ID)
	}
	if updated.Name != "Alice Smith" || updated.Age != 31 || updated.Position != "Head Nurse" {
		t.Fatalf("update not applied: %+v", updated)
	}
	if updated.IsActive {
		t.Fatal("expected is_active to be overwritten")
	}
	if !updated.UpdatedAt.Equal(clk.now) {
		t.Fatalf("expected updated_at %v, got %v", clk.now, updated.UpdatedAt)
	}
}

func TestService_UpdateStaff_KeepsActiveWhenOmitted(t *testing.T) {
	t.Parallel()

	repo := newFakeStaffRepo()
	svc := NewService(repo, nil, nil)

	created, _ := svc.CreateStaff(context.Background(), CreateStaffInput{Name: "Alice", Age: 30, Position: "Nurse"})

	updated, err := svc.UpdateStaff(context.Background(), UpdateStaffInput{ID: created.ID, Name: "Alice", Age: 30, Position: "Doctor"})
	if err != nil {
		t.Fatalf("UpdateStaff returned error: %v", err)
	}
	if !updated.IsActive {
		t.Fatal("expected is_active to stay true")
	}
}

func TestService_UpdateStaff_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStaffRepo(), nil, nil)

	_, err := svc.UpdateStaff(context.Background(), UpdateStaffInput{ID: 42, Name: "Ghost", Age: 40, Position: "None"})
	if !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestService_DeleteStaff_SoftDeletes(t *testing.T) {
	t.Parallel()

	repo := newFakeStaffRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	alice, _ := svc.CreateStaff(ctx, CreateStaffInput{Name: "Alice", Age: 30, Position: "Nurse"})
	bob, _ := svc.CreateStaff(ctx, CreateStaffInput{Name: "Bob", Age: 40, Position: "Doctor"})

	if err := svc.DeleteStaff(ctx, DeleteStaffInput{ID: alice.ID}); err != nil {
		t.Fatalf("DeleteStaff returned error: %v", err)
	}

	active, err := svc.ListStaff(ctx)
	if err != nil {
		t.Fatalf("ListStaff returned error: %v", err)
	}
	if len(active) != 1 || active[0].ID != bob.ID {
		t.Fatalf("expected only bob to be active, got %+v", active)
	}

	found, err := svc.GetStaff(ctx, GetStaffInput{ID: alice.ID})
	if err != nil {
		t.Fatalf("GetStaff returned error: %v", err)
	}
	if found.IsActive || found.Name != "Alice" {
		t.Fatalf("expected deactivated record to remain readable, got %+v", found)
	}
}

func TestService_DeleteStaff_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStaffRepo(), nil, nil)
	if err := svc.DeleteStaff(context.Background(), DeleteStaffInput{ID: 7}); !errors.Is(err, ErrStaffNotFound) {
		t.Fatalf("expected ErrStaffNotFound, got %v", err)
	}
}

func TestService_InvalidID(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStaffRepo(), nil, nil)
	ctx := context.Background()

	if _, err := svc.GetStaff(ctx, GetStaffInput{ID: 0}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID from GetStaff, got %v", err)
	}
	if err := svc.DeleteStaff(ctx, DeleteStaffInput{ID: -1}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID from DeleteStaff, got %v", err)
	}
}

func TestService_ListStaff_EmptyIsNotNil(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeStaffRepo(), nil, nil)
	members, err := svc.ListStaff(context.Background())
	if err != nil {
		t.Fatalf("ListStaff returned error: %v", err)
	}
	if members == nil || len(members) != 0 {
		t.Fatalf("expected empty slice, got %#v", members)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	names := NameIndex([]*Staff{{ID: 1, Name: "Alice"}, nil, {ID: 3, Name: "Carol"}})

	if got := DisplayName(names, 1); got != "Alice" {
		t.Fatalf("expected Alice, got %s", got)
	}
	if got := DisplayName(names, 2); got != UnknownName {
		t.Fatalf("expected %s, got %s", UnknownName, got)
	}
}
