package catalog

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dealerfin/dealerfin/internal/domain/model"
	"github.com/dealerfin/dealerfin/internal/domain/port"
)

//go:embed data/*.json
var seed embed.FS

type vehicleRecord struct {
	ID        string          `json:"id"`
	Make      string          `json:"make"`
	Model     string          `json:"model"`
	Year      int             `json:"year"`
	Trim      string          `json:"trim"`
	BasePrice decimal.Decimal `json:"base_price"`
	ImageURL  string          `json:"image_url"`
}

type dealershipRecord struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

func load[T any](name string) ([]T, error) {
	raw, err := seed.ReadFile("data/" + name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Vehicle catalog
// ---------------------------------------------------------------------------

// StaticCatalog implements port.VehicleCatalog over a fixed vehicle list.
type StaticCatalog struct {
	vehicles []model.Vehicle
	byID     map[string]model.Vehicle
}

// NewStaticCatalog indexes vehicles by ID, keeping the given order for listing.
func NewStaticCatalog(vehicles []model.Vehicle) *StaticCatalog {
	c := &StaticCatalog{
		vehicles: vehicles,
		byID:     make(map[string]model.Vehicle, len(vehicles)),
	}
	for _, v := range vehicles {
		c.byID[v.ID] = v
	}
	return c
}

// LoadStaticCatalog builds the catalog from the embedded model line-up.
func LoadStaticCatalog() (*StaticCatalog, error) {
	records, err := load[vehicleRecord]("vehicles.json")
	if err != nil {
		return nil, err
	}
	vehicles := make([]model.Vehicle, 0, len(records))
	for _, r := range records {
		vehicles = append(vehicles, model.Vehicle(r))
	}
	return NewStaticCatalog(vehicles), nil
}

func (c *StaticCatalog) FindVehicle(_ context.Context, id string) (model.Vehicle, error) {
	v, ok := c.byID[id]
	if !ok {
		return model.Vehicle{}, fmt.Errorf("vehicle %q: %w", id, port.ErrNotFound)
	}
	return v, nil
}

func (c *StaticCatalog) ListVehicles(context.Context) ([]model.Vehicle, error) {
	out := make([]model.Vehicle, len(c.vehicles))
	copy(out, c.vehicles)
	return out, nil
}

// ---------------------------------------------------------------------------
// Dealership directory
// ---------------------------------------------------------------------------

// StaticDirectory implements port.DealershipDirectory over a fixed list.
type StaticDirectory struct {
	dealerships []model.Dealership
}

func NewStaticDirectory(dealerships []model.Dealership) *StaticDirectory {
	return &StaticDirectory{dealerships: dealerships}
}

// LoadStaticDirectory builds the directory from the embedded dealer list.
func LoadStaticDirectory() (*StaticDirectory, error) {
	records, err := load[dealershipRecord]("dealerships.json")
	if err != nil {
		return nil, err
	}
	out := make([]model.Dealership, 0, len(records))
	for _, r := range records {
		out = append(out, model.Dealership(r))
	}
	return NewStaticDirectory(out), nil
}

func (d *StaticDirectory) FindByID(_ context.Context, id string) (model.Dealership, error) {
	for _, dl := range d.dealerships {
		if dl.ID == id {
			return dl, nil
		}
	}
	return model.Dealership{}, fmt.Errorf("dealership %q: %w", id, port.ErrNotFound)
}

// FindByZip returns exact zip matches, or every dealership when none match so
// the customer always has somewhere to apply.
func (d *StaticDirectory) FindByZip(_ context.Context, zip string) ([]model.Dealership, error) {
	zip = strings.TrimSpace(zip)
	matched := d.filter(func(dl model.Dealership) bool { return dl.ZipCode == zip })
	if len(matched) == 0 {
		return d.all(), nil
	}
	return matched, nil
}

// FindByCityState matches case-insensitively; an empty argument matches any.
func (d *StaticDirectory) FindByCityState(_ context.Context, city, state string) ([]model.Dealership, error) {
	return d.filter(func(dl model.Dealership) bool {
		return (city == "" || strings.EqualFold(dl.City, city)) &&
			(state == "" || strings.EqualFold(dl.State, state))
	}), nil
}

// Search matches the term against name, city and address. An empty term
// returns every dealership.
func (d *StaticDirectory) Search(_ context.Context, query string) ([]model.Dealership, error) {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return d.all(), nil
	}
	return d.filter(func(dl model.Dealership) bool {
		return strings.Contains(strings.ToLower(dl.Name), term) ||
			strings.Contains(strings.ToLower(dl.City), term) ||
			strings.Contains(strings.ToLower(dl.Address), term)
	}), nil
}

func (d *StaticDirectory) filter(keep func(model.Dealership) bool) []model.Dealership {
	out := []model.Dealership{}
	for _, dl := range d.dealerships {
		if keep(dl) {
			out = append(out, dl)
		}
	}
	return out
}

func (d *StaticDirectory) all() []model.Dealership {
	out := make([]model.Dealership, len(d.dealerships))
	copy(out, d.dealerships)
	return out
}
