package service

import (
	"reflect"
	"testing"

	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
)

var (
	storeA = models.StoreLocation{ID: "A", Name: "A", Latitude: 51.70, Longitude: -0.20}
	storeB = models.StoreLocation{ID: "B", Name: "B", Latitude: 51.75, Longitude: -0.25}
	storeC = models.StoreLocation{ID: "C", Name: "C", Latitude: 51.80, Longitude: -0.30}
)

func TestOnNewResultsEmptyResetsView(t *testing.T) {
	opts := mapview.DefaultViewport()
	c := NewController(opts)
	c.OnNewResults([]models.StoreLocation{storeA, storeB})

	cmd := c.OnNewResults(nil)
	if cmd.Kind != CommandSetView || *cmd.Center != opts.DefaultCenter || *cmd.Zoom != opts.DefaultZoom {
		t.Fatalf("expected reset to default view, got %+v", cmd)
	}
	if _, ok := c.SelectedID(); ok {
		t.Fatalf("expected selection cleared")
	}
	if _, ok := c.OnMarkerSelected(storeA.ID, 13); ok {
		t.Fatalf("expected previous results to be gone")
	}
}

func TestOnNewResultsFitsBoundsAndSelectsFirst(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	cmd := c.OnNewResults([]models.StoreLocation{storeA, storeB, storeC})
	if cmd.Kind != CommandFitBounds || cmd.PaddingPx != 50 {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	want := []models.Coordinates{storeA.Coordinates(), storeB.Coordinates(), storeC.Coordinates()}
	if !reflect.DeepEqual(cmd.Bounds, want) {
		t.Fatalf("expected bounds %v, got %v", want, cmd.Bounds)
	}
	if id, ok := c.SelectedID(); !ok || id != "A" {
		t.Fatalf("expected A selected, got %v %v", id, ok)
	}
}

func TestOnMarkerSelectedSingleResultAlwaysRecenters(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	c.OnNewResults([]models.StoreLocation{storeA})
	cmd, ok := c.OnMarkerSelected("A", 16)
	if !ok {
		t.Fatalf("expected selection applied")
	}
	if cmd.Kind != CommandSetView || *cmd.Zoom != 14 || *cmd.Center != storeA.Coordinates() {
		t.Fatalf("expected set_view zoom 14 on A, got %+v", cmd)
	}
}

func TestOnMarkerSelectedZoomedOutRecenters(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	c.OnNewResults([]models.StoreLocation{storeA, storeB, storeC})
	cmd, ok := c.OnMarkerSelected("B", 11)
	if !ok || cmd.Kind != CommandSetView || *cmd.Zoom != 14 {
		t.Fatalf("expected set_view zoom 14, got %+v", cmd)
	}
	if id, _ := c.SelectedID(); id != "B" {
		t.Fatalf("expected B selected, got %s", id)
	}
}

func TestOnMarkerSelectedZoomedInPans(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	c.OnNewResults([]models.StoreLocation{storeA, storeB, storeC})
	cmd, ok := c.OnMarkerSelected("C", 12)
	if !ok || cmd.Kind != CommandPanTo || *cmd.Center != storeC.Coordinates() || cmd.Zoom != nil {
		t.Fatalf("expected pan_to C, got %+v", cmd)
	}
}

func TestOnMarkerSelectedStaleIDIsIgnored(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	c.OnNewResults([]models.StoreLocation{storeA, storeB})
	if _, ok := c.OnMarkerSelected("C", 13); ok {
		t.Fatalf("expected stale id to be ignored")
	}
	if id, _ := c.SelectedID(); id != "A" {
		t.Fatalf("selection changed by stale id: %s", id)
	}
}

func TestOnMarkerSelectedWithoutResults(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	if _, ok := c.OnMarkerSelected("A", 10); ok {
		t.Fatalf("expected no-op without results")
	}
	if _, ok := c.Selected(); ok {
		t.Fatalf("expected no selection")
	}
}

func TestSelectionDoesNotSurviveNewSearch(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	c.OnNewResults([]models.StoreLocation{storeA, storeB})
	c.OnMarkerSelected("B", 13)
	c.OnNewResults([]models.StoreLocation{storeC})
	if _, ok := c.OnMarkerSelected("B", 13); ok {
		t.Fatalf("expected B to be stale after new results")
	}
	if id, _ := c.SelectedID(); id != "C" {
		t.Fatalf("expected C selected, got %s", id)
	}
}

func TestControllerCopiesResults(t *testing.T) {
	c := NewController(mapview.DefaultViewport())
	in := []models.StoreLocation{storeA, storeB}
	c.OnNewResults(in)
	in[0] = storeC
	if s, _ := c.Selected(); s.ID != "A" {
		t.Fatalf("controller state aliased caller slice")
	}
}
