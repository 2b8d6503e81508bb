package schedule

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

type slot struct {
	StaffID int64
	Date    string
	Type    string
}

func slots(t *testing.T, staffIDs []int64, dates []time.Time, shiftTypes []string) []slot {
	t.Helper()

	planned := Plan(staffIDs, dates, shiftTypes)
	out := make([]slot, 0, len(planned))
	for _, p := range planned {
		out = append(out, slot{StaffID: p.StaffID, Date: p.Date.Format("2006-01-02"), Type: p.Type})
	}
	return out
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRotation_WrapsAround(t *testing.T) {
	t.Parallel()

	r := newRotation([]int64{1, 2, 3})
	got := make([]int64, 0, 7)
	for i := 0; i < 7; i++ {
		got = append(got, r.next())
	}

	want := []int64{1, 2, 3, 1, 2, 3, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("rotation order mismatch (-want +got):\n%s", diff)
	}
}

func TestRotation_DoesNotAliasInput(t *testing.T) {
	t.Parallel()

	ids := []int64{1, 2}
	r := newRotation(ids)
	ids[0] = 99

	if got := r.next(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestEnumerateDates(t *testing.T) {
	t.Parallel()

	got := EnumerateDates(day(2024, 2, 27), time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC))
	want := []time.Time{day(2024, 2, 27), day(2024, 2, 28), day(2024, 2, 29), day(2024, 3, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateDates_SingleDay(t *testing.T) {
	t.Parallel()

	got := EnumerateDates(day(2024, 1, 5), day(2024, 1, 5))
	if len(got) != 1 || !got[0].Equal(day(2024, 1, 5)) {
		t.Fatalf("expected exactly one date, got %v", got)
	}
}

func TestEnumerateDates_StartAfterEnd(t *testing.T) {
	t.Parallel()

	if got := EnumerateDates(day(2024, 1, 6), day(2024, 1, 5)); len(got) != 0 {
		t.Fatalf("expected empty range, got %v", got)
	}
}

func TestCountDays(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		start, end time.Time
		want       int64
	}{
		{name: "single day", start: day(2024, 1, 5), end: day(2024, 1, 5), want: 1},
		{name: "leap february", start: day(2024, 2, 1), end: day(2024, 3, 1), want: 30},
		{name: "leap year", start: day(2024, 1, 1), end: day(2024, 12, 31), want: 366},
		{name: "start after end", start: day(2024, 1, 6), end: day(2024, 1, 5), want: 0},
		{name: "full calendar", start: day(1, 1, 2), end: day(9999, 12, 31), want: 3652058},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := CountDays(tt.start, tt.end); got != tt.want {
				t.Fatalf("CountDays(%s, %s) = %d, want %d", tt.start.Format("2006-01-02"), tt.end.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestPlan_ThreeStaffTwoTypesOneDay(t *testing.T) {
	t.Parallel()

	got := slots(t, []int64{1, 2, 3}, []time.Time{day(2024, 1, 1)}, []string{"Day", "Night"})
	want := []slot{
		{StaffID: 1, Date: "2024-01-01", Type: "Day"},
		{StaffID: 2, Date: "2024-01-01", Type: "Night"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_TwoStaffThreeTypesWrapsAround(t *testing.T) {
	t.Parallel()

	got := slots(t, []int64{1, 2}, []time.Time{day(2024, 1, 1)}, []string{"Day", "Night", "Swing"})
	want := []slot{
		{StaffID: 1, Date: "2024-01-01", Type: "Day"},
		{StaffID: 2, Date: "2024-01-01", Type: "Night"},
		{StaffID: 1, Date: "2024-01-01", Type: "Swing"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_RotationContinuesAcrossDays(t *testing.T) {
	t.Parallel()

	got := slots(t, []int64{1, 2, 3}, EnumerateDates(day(2024, 1, 1), day(2024, 1, 2)), []string{"Day", "Night"})
	want := []slot{
		{StaffID: 1, Date: "2024-01-01", Type: "Day"},
		{StaffID: 2, Date: "2024-01-01", Type: "Night"},
		{StaffID: 3, Date: "2024-01-02", Type: "Day"},
		{StaffID: 1, Date: "2024-01-02", Type: "Night"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_KeepsDuplicateTypesInCallerOrder(t *testing.T) {
	t.Parallel()

	got := slots(t, []int64{1, 2, 3}, []time.Time{day(2024, 1, 1)}, []string{"Night", "Day", "Night"})
	want := []slot{
		{StaffID: 1, Date: "2024-01-01", Type: "Night"},
		{StaffID: 2, Date: "2024-01-01", Type: "Day"},
		{StaffID: 3, Date: "2024-01-01", Type: "Night"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_EmptyInputs(t *testing.T) {
	t.Parallel()

	if got := Plan([]int64{1}, []time.Time{day(2024, 1, 1)}, nil); len(got) != 0 {
		t.Fatalf("expected no shifts for empty types, got %d", len(got))
	}
	if got := Plan([]int64{1}, nil, []string{"Day"}); len(got) != 0 {
		t.Fatalf("expected no shifts for empty dates, got %d", len(got))
	}
	if got := Plan(nil, []time.Time{day(2024, 1, 1)}, []string{"Day"}); len(got) != 0 {
		t.Fatalf("expected no shifts without staff, got %d", len(got))
	}
}

func TestPlan_Deterministic(t *testing.T) {
	t.Parallel()

	ids := []int64{4, 7, 9, 12}
	dates := EnumerateDates(day(2024, 3, 1), day(2024, 3, 31))
	types := []string{"Day", "Night", "Swing"}

	first := slots(t, ids, dates, types)
	second := slots(t, ids, dates, types)

	if len(first) != len(dates)*len(types) {
		t.Fatalf("expected %d shifts, got %d", len(dates)*len(types), len(first))
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("plan is not reproducible (-first +second):\n%s", diff)
	}
}
