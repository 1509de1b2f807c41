package holiday

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// StaticProvider serves holidays from an in-process table, no network involved.
// The zero value knows the Brazilian national holidays for any year.
type StaticProvider struct {
	// extra dates per year, merged over the built-in national table.
	extra map[int][]time.Time
}

// NewStaticProvider returns a provider backed by the built-in national table.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

// LoadYAMLFile builds a StaticProvider whose extra dates come from a YAML file
// of the form:
//
//	holidays:
//	  - 2025-06-09
//	  - 2025-11-20
//
// Dates outside the built-in national table (state and city holidays, bridge
// days) go here.
func LoadYAMLFile(path string) (*StaticProvider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holiday file: %w", err)
	}
	var doc struct {
		Holidays []string `yaml:"holidays"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parsing holiday file: %w", err)
	}
	extra := make(map[int][]time.Time)
	for _, s := range doc.Holidays {
		d, err := time.Parse(dateKey, s)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", s, err)
		}
		extra[d.Year()] = append(extra[d.Year()], d)
	}
	return &StaticProvider{extra: extra}, nil
}

// HolidaysFor returns the national holidays of the year plus any configured
// extra dates. It never fails.
func (p *StaticProvider) HolidaysFor(_ context.Context, year int) ([]time.Time, error) {
	dates := nationalHolidays(year)
	if p != nil {
		dates = append(dates, p.extra[year]...)
	}
	return dates, nil
}

// nationalHolidays lists the Brazilian national holidays of a year: the fixed
// dates plus the Easter-derived ones (Carnival, Good Friday, Corpus Christi).
func nationalHolidays(year int) []time.Time {
	day := func(month time.Month, d int) time.Time {
		return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	}
	easter := easterSunday(year)
	return []time.Time{
		day(time.January, 1),    // Confraternização Universal
		easter.AddDate(0, 0, -48), // Carnaval (segunda)
		easter.AddDate(0, 0, -47), // Carnaval (terça)
		easter.AddDate(0, 0, -2),  // Sexta-feira Santa
		day(time.April, 21),     // Tiradentes
		day(time.May, 1),        // Dia do Trabalho
		easter.AddDate(0, 0, 60), // Corpus Christi
		day(time.September, 7),  // Independência
		day(time.October, 12),   // Nossa Senhora Aparecida
		day(time.November, 2),   // Finados
		day(time.November, 15),  // Proclamação da República
		day(time.December, 25),  // Natal
	}
}

// easterSunday computes Easter for a year in the Gregorian calendar
// (anonymous Gauss algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
