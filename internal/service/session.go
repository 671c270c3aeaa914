package service

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
)

// Session is the single map session served by the process. Every event runs
// under one lock, so the controller sees events one at a time in arrival
// order even though the HTTP server is concurrent.
type Session struct {
	Resolver *Resolver
	Logger   zerolog.Logger

	mu           sync.Mutex
	mapCfg       mapview.Config
	controller   *Controller
	searched     bool
	lastPostcode string
	lastOutcome  SearchOutcome
	center       *models.Coordinates
	zoom         *int
	tileLayer    string
}

type SearchResult struct {
	Outcome  SearchOutcome
	Command  ViewportCommand
	Selected *models.StoreLocation
}

// SelectResult carries the postcode searched when the selection was applied,
// read under the same lock, so directions match the selection.
type SelectResult struct {
	Applied      bool
	Command      *ViewportCommand
	Selected     *models.StoreLocation
	LastPostcode string
}

// Snapshot is what the map and the detail display render.
type Snapshot struct {
	Markers        []models.RankedResult
	SelectedID     *models.StoreID
	Selected       *models.StoreLocation
	LastPostcode   string
	BannerPostcode string
	ErrorCode      OutcomeKind
	ErrorMessage   string
	Center         *models.Coordinates
	Zoom           *int
	TileLayer      mapview.TileLayer
	Map            mapview.Config
}

func NewSession(resolver *Resolver, cfg mapview.Config, logger zerolog.Logger) *Session {
	return &Session{
		Resolver:   resolver,
		Logger:     logger,
		mapCfg:     cfg,
		controller: NewController(cfg.Viewport),
		tileLayer:  cfg.TileLayer,
	}
}

// Search resolves query and feeds the outcome into the controller. A
// not-found outcome is applied as an empty result set.
func (s *Session) Search(query string) SearchResult {
	outcome := s.Resolver.Resolve(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.searched = true
	s.lastPostcode = query
	s.lastOutcome = outcome

	cmd := s.controller.OnNewResults(outcome.Stores())
	s.track(cmd)

	res := SearchResult{Outcome: outcome, Command: cmd}
	if sel, ok := s.controller.Selected(); ok {
		res.Selected = &sel
	}
	s.Logger.Debug().
		Str("postcode", query).
		Str("mode", string(outcome.Mode)).
		Str("outcome", string(outcome.Kind)).
		Int("results", len(outcome.Results)).
		Msg("search applied")
	return res
}

// Select handles a marker click. zoom is the level the widget reports; when
// nil the last level known to the session is used, and an unknown level
// counts as zoomed out.
func (s *Session) Select(id models.StoreID, zoom *int) SelectResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := -1
	if zoom != nil {
		current = *zoom
		s.zoom = intPtr(*zoom)
	} else if s.zoom != nil {
		current = *s.zoom
	}

	cmd, ok := s.controller.OnMarkerSelected(id, current)
	if !ok {
		s.Logger.Debug().Str("store_id", string(id)).Msg("stale marker selection ignored")
		return SelectResult{Applied: false, Selected: s.selectedLocked(), LastPostcode: s.lastPostcode}
	}
	s.track(cmd)
	s.Logger.Debug().Str("store_id", string(id)).Str("command", string(cmd.Kind)).Msg("marker selected")
	return SelectResult{Applied: true, Command: &cmd, Selected: s.selectedLocked(), LastPostcode: s.lastPostcode}
}

// ReportViewport records the widget's view after the user pans or zooms.
func (s *Session) ReportViewport(center models.Coordinates, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = &center
	s.zoom = intPtr(zoom)
}

func (s *Session) SetTileLayer(name string) (mapview.TileLayer, error) {
	layer, ok := s.mapCfg.Layer(name)
	if !ok {
		return mapview.TileLayer{}, fmt.Errorf("unknown tile layer %q", name)
	}
	s.mu.Lock()
	s.tileLayer = layer.Name
	s.mu.Unlock()
	return layer, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	layer, _ := s.mapCfg.Layer(s.tileLayer)
	snap := Snapshot{
		Selected:     s.selectedLocked(),
		LastPostcode: s.lastPostcode,
		TileLayer:    layer,
		Map:          s.mapCfg,
		Markers:      []models.RankedResult{},
	}
	if id, ok := s.controller.SelectedID(); ok {
		snap.SelectedID = &id
	}
	if s.center != nil {
		c := *s.center
		snap.Center = &c
	}
	if s.zoom != nil {
		snap.Zoom = intPtr(*s.zoom)
	}
	if s.searched {
		if s.lastOutcome.Found() {
			snap.Markers = append(snap.Markers, s.lastOutcome.Results...)
			snap.BannerPostcode = s.lastPostcode
		} else {
			snap.ErrorCode = s.lastOutcome.Kind
			snap.ErrorMessage = s.lastOutcome.Message
		}
	}
	return snap
}

// track keeps the session's idea of the widget view in step with the
// commands it hands out. Fitting bounds leaves the zoom unknown.
func (s *Session) track(cmd ViewportCommand) {
	switch cmd.Kind {
	case CommandSetView:
		c := *cmd.Center
		s.center = &c
		s.zoom = intPtr(*cmd.Zoom)
	case CommandPanTo:
		c := *cmd.Center
		s.center = &c
	case CommandFitBounds:
		s.center = nil
		s.zoom = nil
	}
}

func (s *Session) selectedLocked() *models.StoreLocation {
	sel, ok := s.controller.Selected()
	if !ok {
		return nil
	}
	return &sel
}

func intPtr(v int) *int {
	return &v
}
