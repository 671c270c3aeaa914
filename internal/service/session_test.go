package service

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/storelocator/backend/internal/catalog"
	"github.com/storelocator/backend/internal/geocode"
	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
)

func testSession(t *testing.T) *Session {
	t.Helper()
	c, err := catalog.New(threeStores())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewSession(NewResolver(c, geocode.DefaultReferenceTable(), 0), mapview.DefaultConfig(), zerolog.Nop())
}

func TestSessionSearchSelectsTopResult(t *testing.T) {
	s := testSession(t)
	res := s.Search("AL10 9AB")
	if !res.Outcome.Found() || res.Command.Kind != CommandFitBounds {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Selected == nil || res.Selected.ID != "near" {
		t.Fatalf("expected near selected, got %+v", res.Selected)
	}
	snap := s.Snapshot()
	if snap.BannerPostcode != "AL10 9AB" || len(snap.Markers) != 3 || snap.ErrorMessage != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.Zoom != nil {
		t.Fatalf("expected unknown zoom after fit bounds")
	}
}

func TestSessionNotFoundClearsSelection(t *testing.T) {
	s := testSession(t)
	s.Search("AL10 9AB")
	res := s.Search("ZZ1")
	if res.Outcome.Kind != OutcomeNotFoundNoMatch || res.Command.Kind != CommandSetView || res.Selected != nil {
		t.Fatalf("unexpected result: %+v", res)
	}
	snap := s.Snapshot()
	if snap.SelectedID != nil || len(snap.Markers) != 0 || snap.BannerPostcode != "" {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.ErrorCode != OutcomeNotFoundNoMatch || snap.LastPostcode != "ZZ1" {
		t.Fatalf("expected error state, got %+v", snap)
	}
	if snap.Zoom == nil || *snap.Zoom != 10 {
		t.Fatalf("expected default zoom tracked, got %v", snap.Zoom)
	}
}

func TestSessionSelectUsesReportedZoom(t *testing.T) {
	s := testSession(t)
	s.Search("AL10 9AB")

	zoom := 13
	res := s.Select("north", &zoom)
	if !res.Applied || res.Command.Kind != CommandPanTo {
		t.Fatalf("expected pan, got %+v", res)
	}

	// Unknown zoom after fitting bounds counts as zoomed out.
	s.Search("AL10 9AB")
	res = s.Select("far", nil)
	if !res.Applied || res.Command.Kind != CommandSetView || *res.Command.Zoom != 14 {
		t.Fatalf("expected set_view, got %+v", res)
	}

	// The set_view above leaves the map at zoom 14.
	res = s.Select("north", nil)
	if !res.Applied || res.Command.Kind != CommandPanTo {
		t.Fatalf("expected pan at tracked zoom, got %+v", res)
	}
}

func TestSessionSelectStaleID(t *testing.T) {
	s := testSession(t)
	s.Search("AL10 9AB")
	before := s.Snapshot()
	res := s.Select("ghost", nil)
	if res.Applied || res.Command != nil {
		t.Fatalf("expected ignored selection, got %+v", res)
	}
	after := s.Snapshot()
	if *after.SelectedID != *before.SelectedID || after.Zoom != nil {
		t.Fatalf("stale selection changed state")
	}
}

func TestSessionReportViewportAndTileLayer(t *testing.T) {
	s := testSession(t)
	s.ReportViewport(models.Coordinates{Lat: 51.7, Lng: -0.2}, 15)
	if _, err := s.SetTileLayer("Nope"); err == nil {
		t.Fatalf("expected unknown layer error")
	}
	if _, err := s.SetTileLayer(mapview.LayerStadiaTonerLite); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap := s.Snapshot()
	if snap.Zoom == nil || *snap.Zoom != 15 || snap.TileLayer.Name != mapview.LayerStadiaTonerLite {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestSessionConcurrentEvents(t *testing.T) {
	s := testSession(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Search("EN5 3AW")
		}()
		go func() {
			defer wg.Done()
			zoom := 13
			s.Select("near", &zoom)
		}()
	}
	wg.Wait()
	snap := s.Snapshot()
	if snap.SelectedID == nil || len(snap.Markers) != 3 {
		t.Fatalf("unexpected final state: %+v", snap)
	}
}

func TestSessionSelectReportsSearchedPostcode(t *testing.T) {
	s := testSession(t)
	s.Search("AL10 9AB")
	zoom := 13
	if res := s.Select("north", &zoom); res.LastPostcode != "AL10 9AB" {
		t.Fatalf("expected AL10 9AB, got %q", res.LastPostcode)
	}
	s.Search("EN5 3AW")
	if res := s.Select("ghost", &zoom); res.Applied || res.LastPostcode != "EN5 3AW" {
		t.Fatalf("expected EN5 3AW on ignored selection, got %+v", res)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				s.Search("AL10 9AB")
			} else {
				s.Search("EN5 3AW")
			}
		}(i)
		go func() {
			defer wg.Done()
			res := s.Select("near", &zoom)
			if res.LastPostcode != "AL10 9AB" && res.LastPostcode != "EN5 3AW" {
				t.Errorf("unexpected postcode %q", res.LastPostcode)
			}
		}()
	}
	wg.Wait()
}
