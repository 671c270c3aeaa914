package service

import (
	"github.com/storelocator/backend/internal/mapview"
	"github.com/storelocator/backend/internal/models"
)

type CommandKind string

const (
	CommandFitBounds CommandKind = "fit_bounds"
	CommandSetView   CommandKind = "set_view"
	CommandPanTo     CommandKind = "pan_to"
)

// ViewportCommand is an instruction for the map widget. Bounds and PaddingPx
// are set for fit_bounds, Center for set_view and pan_to, Zoom for set_view.
type ViewportCommand struct {
	Kind      CommandKind          `json:"kind"`
	Bounds    []models.Coordinates `json:"bounds,omitempty"`
	PaddingPx int                  `json:"padding_px,omitempty"`
	Center    *models.Coordinates  `json:"center,omitempty"`
	Zoom      *int                 `json:"zoom,omitempty"`
}

func FitBounds(coords []models.Coordinates, paddingPx int) ViewportCommand {
	return ViewportCommand{Kind: CommandFitBounds, Bounds: coords, PaddingPx: paddingPx}
}

func SetView(center models.Coordinates, zoom int) ViewportCommand {
	return ViewportCommand{Kind: CommandSetView, Center: &center, Zoom: &zoom}
}

func PanTo(center models.Coordinates) ViewportCommand {
	return ViewportCommand{Kind: CommandPanTo, Center: &center}
}

// Controller keeps the viewport and the highlighted store consistent with
// the latest results and marker clicks. It is not safe for concurrent use;
// Session serializes access.
type Controller struct {
	opts     mapview.Viewport
	results  []models.StoreLocation
	selected models.StoreID
	hasSel   bool
}

func NewController(opts mapview.Viewport) *Controller {
	return &Controller{opts: opts}
}

// OnNewResults replaces the current result set. An empty set resets the view
// and clears the selection; otherwise the view fits every result and the top
// result becomes selected.
func (c *Controller) OnNewResults(results []models.StoreLocation) ViewportCommand {
	c.results = make([]models.StoreLocation, len(results))
	copy(c.results, results)

	if len(c.results) == 0 {
		c.selected, c.hasSel = "", false
		return SetView(c.opts.DefaultCenter, c.opts.DefaultZoom)
	}

	coords := make([]models.Coordinates, len(c.results))
	for i, s := range c.results {
		coords[i] = s.Coordinates()
	}
	c.selected, c.hasSel = c.results[0].ID, true
	return FitBounds(coords, c.opts.FitPaddingPx)
}

// OnMarkerSelected selects id when it is part of the current results. The
// returned bool is false when id is stale, in which case nothing changed.
func (c *Controller) OnMarkerSelected(id models.StoreID, currentZoom int) (ViewportCommand, bool) {
	store, ok := c.find(id)
	if !ok {
		return ViewportCommand{}, false
	}
	c.selected, c.hasSel = id, true

	if len(c.results) == 1 || currentZoom < c.opts.ZoomThreshold {
		return SetView(store.Coordinates(), c.opts.FocusZoom), true
	}
	return PanTo(store.Coordinates()), true
}

func (c *Controller) SelectedID() (models.StoreID, bool) {
	return c.selected, c.hasSel
}

func (c *Controller) Selected() (models.StoreLocation, bool) {
	if !c.hasSel {
		return models.StoreLocation{}, false
	}
	return c.find(c.selected)
}

func (c *Controller) find(id models.StoreID) (models.StoreLocation, bool) {
	for _, s := range c.results {
		if s.ID == id {
			return s, true
		}
	}
	return models.StoreLocation{}, false
}
