package watermark

import (
	"testing"
	"time"

	"github.com/fanac/conlog/pkg/parser"
)

func TestFilter(t *testing.T) {
	mark := time.Date(2021, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []parser.Event{
		{Item: "undated"},
		{Item: "before", Timestamp: mark.Add(-time.Second)},
		{Item: "at", Timestamp: mark},
		{Item: "after", Timestamp: mark.Add(time.Second)},
		{Item: "later", Timestamp: mark.Add(time.Hour)},
	}

	got := Filter(events, mark)
	if len(got) != 2 {
		t.Fatalf("Filter() kept %d events, want 2", len(got))
	}
	if got[0].Item != "after" || got[1].Item != "later" {
		t.Errorf("Filter() = %q, %q; want after, later", got[0].Item, got[1].Item)
	}
	if len(events) != 5 || events[0].Item != "undated" {
		t.Error("Filter() modified its input")
	}
}

func TestFilter_DropsUndatedEvenWithZeroWatermark(t *testing.T) {
	got := Filter([]parser.Event{{Item: "undated"}}, time.Time{})
	if len(got) != 0 {
		t.Errorf("Filter() kept undated event")
	}
}

func TestSince(t *testing.T) {
	stored := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := Since(stored, true, DefaultEpoch); !got.Equal(stored) {
		t.Errorf("Since(stored) = %v, want %v", got, stored)
	}
	if got := Since(time.Time{}, false, DefaultEpoch); !got.Equal(DefaultEpoch) {
		t.Errorf("Since(none) = %v, want %v", got, DefaultEpoch)
	}
}

func TestFilter_EpochExcludesOldFormat(t *testing.T) {
	events := []parser.Event{
		{Item: "old", Timestamp: time.Date(2020, 12, 1, 0, 0, 0, 0, time.UTC)},
		{Item: "new", Timestamp: time.Date(2021, 2, 3, 10, 0, 0, 0, time.UTC)},
	}
	got := Filter(events, DefaultEpoch)
	if len(got) != 1 || got[0].Item != "new" {
		t.Errorf("Filter(epoch) = %+v", got)
	}
}
