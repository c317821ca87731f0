// Package catalog turns the configured list views into the control names,
// sortable columns and page sizes the controller and its adapters check
// against.
package catalog

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/wesm/browsestate/internal/browse"
	"github.com/wesm/browsestate/internal/config"
)

var (
	// ErrUnknownView is returned when no view has the requested name.
	ErrUnknownView = errors.New("unknown view")

	// ErrUnknownColumn is returned for a sort on a column that is not
	// sortable in the view.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrUnknownPageSize is returned for a page size the view does not offer.
	ErrUnknownPageSize = errors.New("unsupported page size")

	// ErrInvalidView is returned for a malformed view definition.
	ErrInvalidView = errors.New("invalid view")
)

// Filter kinds.
const (
	KindSelect = "select"
	KindRange  = "range"
)

// Range value types.
const (
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeTime     = "time"
	TypeDatetime = "datetime"
	TypeAge      = "age"
)

// DefaultBounds includes both ends of a range.
const DefaultBounds = "[]"

// Column is a list column.
type Column struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Sortable bool   `json:"sortable"`
}

// Filter is a rendered filter control group. Controls holds the names the
// group contributes to the URL: the filter name itself for a select, or the
// derived bound names for a range.
type Filter struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Type     string   `json:"type,omitempty"`
	Bounds   string   `json:"bounds,omitempty"`
	Controls []string `json:"controls"`
}

// View is one validated list view.
type View struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	PageSize  int      `json:"page_size"`
	PageSizes []int    `json:"page_sizes"`
	Columns   []Column `json:"columns"`
	Filters   []Filter `json:"filters"`
}

// Catalog holds the configured views in declaration order.
type Catalog struct {
	views  []*View
	byName map[string]*View
}

// New validates the views in cfg.
func New(cfg *config.Config) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*View, len(cfg.Views))}
	for i, vc := range cfg.Views {
		v, err := newView(vc, cfg.Defaults)
		if err != nil {
			return nil, fmt.Errorf("views[%d]: %w", i, err)
		}
		if _, dup := c.byName[v.Name]; dup {
			return nil, fmt.Errorf("views[%d]: %w: duplicate name %q", i, ErrInvalidView, v.Name)
		}
		c.views = append(c.views, v)
		c.byName[v.Name] = v
	}
	return c, nil
}

// View returns the view called name.
func (c *Catalog) View(name string) (*View, error) {
	v, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	return v, nil
}

// Views returns every view in declaration order.
func (c *Catalog) Views() []*View { return c.views }

// Len returns the number of views.
func (c *Catalog) Len() int { return len(c.views) }

func newView(vc config.ViewConfig, defaults config.DefaultsConfig) (*View, error) {
	if vc.Name == "" {
		return nil, fmt.Errorf("%w: missing name", ErrInvalidView)
	}
	v := &View{
		Name:      vc.Name,
		Path:      vc.Path,
		PageSize:  vc.PageSize,
		PageSizes: vc.PageSizes,
	}
	if v.Path == "" {
		v.Path = "/" + vc.Name
	}
	if v.PageSize <= 0 {
		v.PageSize = cmp.Or(max(defaults.PageSize, 0), config.DefaultPageSize)
	}
	if len(v.PageSizes) == 0 {
		v.PageSizes = defaults.PageSizes
	}
	if len(v.PageSizes) == 0 {
		v.PageSizes = config.DefaultPageSizes
	}
	if !slices.Contains(v.PageSizes, v.PageSize) {
		v.PageSizes = append(slices.Clone(v.PageSizes), v.PageSize)
		slices.Sort(v.PageSizes)
	}

	for _, cc := range vc.Columns {
		if cc.Name == "" {
			return nil, fmt.Errorf("%w %q: column without name", ErrInvalidView, vc.Name)
		}
		v.Columns = append(v.Columns, Column{Name: cc.Name, Label: labelOr(cc.Label, cc.Name), Sortable: cc.Sortable})
	}

	for _, fc := range vc.Filters {
		f, err := newFilter(fc)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidView, vc.Name, err)
		}
		v.Filters = append(v.Filters, f)
	}
	return v, nil
}

func newFilter(fc config.FilterConfig) (Filter, error) {
	if fc.Name == "" {
		return Filter{}, errors.New("filter without name")
	}
	f := Filter{Name: fc.Name, Label: labelOr(fc.Label, fc.Name), Kind: fc.Kind}
	switch fc.Kind {
	case KindSelect, "":
		f.Kind = KindSelect
		f.Options = fc.Options
		f.Controls = []string{fc.Name}
	case KindRange:
		f.Type, f.Bounds = fc.Type, fc.Bounds
		if f.Bounds == "" {
			f.Bounds = DefaultBounds
		}
		controls, err := RangeControls(fc.Name, f.Type, f.Bounds)
		if err != nil {
			return Filter{}, fmt.Errorf("filter %q: %w", fc.Name, err)
		}
		f.Controls = controls
	default:
		return Filter{}, fmt.Errorf("filter %q: unknown kind %q", fc.Name, fc.Kind)
	}
	return f, nil
}

// RangeControls derives the control names a range filter puts in the URL.
// The lower bound is name__gte_<type> when inclusive and name__gt_<type>
// otherwise; the upper bound uses __lte_ and __lt_. A datetime range splits
// each bound into _date and _time controls.
func RangeControls(name, typ, bounds string) ([]string, error) {
	switch typ {
	case TypeNumber, TypeDate, TypeTime, TypeDatetime, TypeAge:
	default:
		return nil, fmt.Errorf("unknown range type %q", typ)
	}
	if len(bounds) != 2 {
		return nil, fmt.Errorf("bounds %q must be two characters", bounds)
	}

	var lower, upper string
	switch bounds[0] {
	case '[':
		lower = "__gte_"
	case '(':
		lower = "__gt_"
	default:
		return nil, fmt.Errorf("invalid lower bound %q", bounds[0])
	}
	switch bounds[1] {
	case ']':
		upper = "__lte_"
	case ')':
		upper = "__lt_"
	default:
		return nil, fmt.Errorf("invalid upper bound %q", bounds[1])
	}

	lo, hi := name+lower+typ, name+upper+typ
	if typ == TypeDatetime {
		return []string{lo + "_" + TypeDate, lo + "_" + TypeTime, hi + "_" + TypeDate, hi + "_" + TypeTime}, nil
	}
	return []string{lo, hi}, nil
}

// Page returns what the controller needs to know about the rendered page.
func (v *View) Page() browse.Page {
	p := browse.Page{DefaultPageSize: v.PageSize}
	for _, f := range v.Filters {
		p.FilterNames = append(p.FilterNames, f.Controls...)
		if f.Kind == KindRange {
			p.RangeFilterNames = append(p.RangeFilterNames, f.Controls...)
		}
	}
	return p
}

// Filter returns the filter group called name.
func (v *View) Filter(name string) (Filter, bool) {
	for _, f := range v.Filters {
		if f.Name == name {
			return f, true
		}
	}
	return Filter{}, false
}

// SortableColumns returns the names of the columns that accept sorting.
func (v *View) SortableColumns() []string {
	var cols []string
	for _, c := range v.Columns {
		if c.Sortable {
			cols = append(cols, c.Name)
		}
	}
	return cols
}

// ValidateColumn checks that column is sortable in v.
func (v *View) ValidateColumn(column string) error {
	if !slices.Contains(v.SortableColumns(), column) {
		return fmt.Errorf("%w: %q in view %q", ErrUnknownColumn, column, v.Name)
	}
	return nil
}

// ValidatePageSize checks that size is one of the offered page sizes.
func (v *View) ValidatePageSize(size string) error {
	n, err := strconv.Atoi(size)
	if err != nil || !slices.Contains(v.PageSizes, n) {
		return fmt.Errorf("%w: %q in view %q", ErrUnknownPageSize, size, v.Name)
	}
	return nil
}

// ValidateAction checks the parts of a that depend on the view: sort
// columns and page sizes.
func (v *View) ValidateAction(a browse.Action) error {
	switch a.Type {
	case browse.ActionToggleSort:
		return v.ValidateColumn(a.Column)
	case browse.ActionSetPageSize:
		return v.ValidatePageSize(a.Value)
	}
	return nil
}

// Controller builds a controller for rawURL on this view.
func (v *View) Controller(rawURL string, nav browse.Navigator, opts ...browse.Option) *browse.Controller {
	if rawURL == "" {
		rawURL = v.Path
	}
	return browse.New(rawURL, v.Page(), nav, opts...)
}

// Replay validates actions against the view, then runs them on a fresh
// controller for rawURL. Nothing runs if any action is invalid.
func (v *View) Replay(rawURL string, actions []browse.Action, opts ...browse.Option) (*browse.Controller, error) {
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		if err := v.ValidateAction(a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}
	c := v.Controller(rawURL, nil, opts...)
	if err := c.ApplyAll(actions); err != nil {
		return nil, err
	}
	return c, nil
}

func labelOr(label, name string) string {
	if label != "" {
		return label
	}
	return name
}
