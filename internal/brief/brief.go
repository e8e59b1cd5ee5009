// Package brief loads the trip brief: the destination, dates and wishes
// the autonomous planner fills action parameters from.
package brief

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Experience is one activity the traveller wants booked.
type Experience struct {
	Name string `yaml:"name"`
	Date string `yaml:"date"`
}

// PaymentPlan says how much to pay on-chain for each service type.
type PaymentPlan struct {
	Token      string  `yaml:"token"`
	Flight     float64 `yaml:"flight"`
	Hotel      float64 `yaml:"hotel"`
	Experience float64 `yaml:"experience"`
}

// Brief describes the trip being planned.
type Brief struct {
	Traveller     string       `yaml:"traveller"`
	Destination   string       `yaml:"destination"`
	DepartureDate string       `yaml:"departure_date"`
	ReturnDate    string       `yaml:"return_date"`
	Hotel         string       `yaml:"hotel"`
	Preferences   []string     `yaml:"preferences"`
	Locations     []string     `yaml:"locations"`
	Experiences   []Experience `yaml:"experiences"`
	Payments      PaymentPlan  `yaml:"payments"`
}

// Default is the brief used when none is configured.
func Default() Brief {
	return Brief{
		Traveller:     "guest",
		Destination:   "Tokyo",
		DepartureDate: "2025-04-10",
		ReturnDate:    "2025-04-17",
		Hotel:         "Park Hyatt Tokyo",
		Preferences:   []string{"accommodation", "activities", "budget"},
		Locations:     []string{"Tokyo"},
		Experiences: []Experience{
			{Name: "Tsukiji Outer Market food tour", Date: "2025-04-12"},
			{Name: "Day trip to Nikko", Date: "2025-04-14"},
		},
		Payments: PaymentPlan{Token: "USDC", Flight: 30, Hotel: 20, Experience: 5},
	}
}

// Load reads a YAML brief from path. Fields absent from the file keep
// their default values.
func Load(path string) (Brief, error) {
	b := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("read brief: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parse brief %s: %w", path, err)
	}
	if err := b.Validate(); err != nil {
		return b, fmt.Errorf("brief %s: %w", path, err)
	}
	return b, nil
}

// Validate checks the fields the planner cannot do without.
func (b Brief) Validate() error {
	var errs []error
	if b.Destination == "" {
		errs = append(errs, errors.New("destination is required"))
	}
	if b.DepartureDate == "" || b.ReturnDate == "" {
		errs = append(errs, errors.New("departure_date and return_date are required"))
	}
	for i, e := range b.Experiences {
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("experiences[%d]: name is required", i))
		}
	}
	if b.Payments.Flight < 0 || b.Payments.Hotel < 0 || b.Payments.Experience < 0 {
		errs = append(errs, errors.New("payment amounts cannot be negative"))
	}
	return errors.Join(errs...)
}

// ResearchTargets returns the locations to research, falling back to the
// destination.
func (b Brief) ResearchTargets() []string {
	if len(b.Locations) > 0 {
		return b.Locations
	}
	return []string{b.Destination}
}

// ExperienceDate returns the date of an experience, or the departure date
// when none was given.
func (b Brief) ExperienceDate(e Experience) string {
	if e.Date != "" {
		return e.Date
	}
	return b.DepartureDate
}
