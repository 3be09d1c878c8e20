package config

import "github.com/sadopc/trainclock/internal/aclock"

// ClockConfig is the on-disk form of the analog clock style. Zero values fall
// back to the defaults of aclock.DefaultStyle.
type ClockConfig struct {
	// Refresh is the redraw interval, e.g. "80ms".
	Refresh  string         `yaml:"refresh"`
	Features FeaturesConfig `yaml:"features"`
	Colors   ColorsConfig   `yaml:"colors"`
	Widths   ComponentFloat `yaml:"widths"`
	Lengths  LengthsConfig  `yaml:"lengths"`
}

// FeaturesConfig uses pointers so an absent key keeps the default.
type FeaturesConfig struct {
	SubSeconds  *bool `yaml:"sub_seconds,omitempty"`
	Ring        *bool `yaml:"ring,omitempty"`
	Center      *bool `yaml:"center,omitempty"`
	SecondHand  *bool `yaml:"second_hand,omitempty"`
	MinuteHand  *bool `yaml:"minute_hand,omitempty"`
	HourHand    *bool `yaml:"hour_hand,omitempty"`
	MinuteTicks *bool `yaml:"minute_ticks,omitempty"`
	MinorTicks  *bool `yaml:"minor_ticks,omitempty"`
	MajorTicks  *bool `yaml:"major_ticks,omitempty"`
}

type ColorsConfig struct {
	Second     string `yaml:"second"`
	Minute     string `yaml:"minute"`
	Hour       string `yaml:"hour"`
	Ring       string `yaml:"ring"`
	Center     string `yaml:"center"`
	MinuteTick string `yaml:"minute_tick"`
	MinorTick  string `yaml:"minor_tick"`
	MajorTick  string `yaml:"major_tick"`
}

// ComponentFloat holds one number per clock component.
type ComponentFloat struct {
	Second     float64 `yaml:"second"`
	Minute     float64 `yaml:"minute"`
	Hour       float64 `yaml:"hour"`
	Ring       float64 `yaml:"ring"`
	Center     float64 `yaml:"center"`
	MinuteTick float64 `yaml:"minute_tick"`
	MinorTick  float64 `yaml:"minor_tick"`
	MajorTick  float64 `yaml:"major_tick"`
}

type LengthsConfig struct {
	Second       float64 `yaml:"second"`
	Minute       float64 `yaml:"minute"`
	Hour         float64 `yaml:"hour"`
	Radius       float64 `yaml:"radius"`
	CenterRadius float64 `yaml:"center_radius"`
	MinuteTick   float64 `yaml:"minute_tick"`
	MinorTick    float64 `yaml:"minor_tick"`
	MajorTick    float64 `yaml:"major_tick"`
}

// DefaultClockConfig mirrors aclock.DefaultStyle with every value spelled out.
func DefaultClockConfig() ClockConfig {
	s := aclock.DefaultStyle()
	f := s.Features
	return ClockConfig{
		Refresh: DefaultClockRefresh.String(),
		Features: FeaturesConfig{
			SubSeconds:  boolPtr(f.SubSeconds),
			Ring:        boolPtr(f.Ring),
			Center:      boolPtr(f.Center),
			SecondHand:  boolPtr(f.SecondHand),
			MinuteHand:  boolPtr(f.MinuteHand),
			HourHand:    boolPtr(f.HourHand),
			MinuteTicks: boolPtr(f.MinuteTicks),
			MinorTicks:  boolPtr(f.MinorTicks),
			MajorTicks:  boolPtr(f.MajorTicks),
		},
		Colors:  ColorsConfig(s.Colors),
		Widths:  ComponentFloat(s.Widths),
		Lengths: LengthsConfig(s.Lengths),
	}
}

func (c *ClockConfig) Normalize() {
	if c.Refresh == "" {
		c.Refresh = DefaultClockRefresh.String()
	}
}

// Style resolves the configured clock style over the defaults.
func (c ClockConfig) Style() aclock.Style {
	s := aclock.DefaultStyle()

	f := &s.Features
	pick(&f.SubSeconds, c.Features.SubSeconds)
	pick(&f.Ring, c.Features.Ring)
	pick(&f.Center, c.Features.Center)
	pick(&f.SecondHand, c.Features.SecondHand)
	pick(&f.MinuteHand, c.Features.MinuteHand)
	pick(&f.HourHand, c.Features.HourHand)
	pick(&f.MinuteTicks, c.Features.MinuteTicks)
	pick(&f.MinorTicks, c.Features.MinorTicks)
	pick(&f.MajorTicks, c.Features.MajorTicks)

	col := &s.Colors
	pickStr(&col.Second, c.Colors.Second)
	pickStr(&col.Minute, c.Colors.Minute)
	pickStr(&col.Hour, c.Colors.Hour)
	pickStr(&col.Ring, c.Colors.Ring)
	pickStr(&col.Center, c.Colors.Center)
	pickStr(&col.MinuteTick, c.Colors.MinuteTick)
	pickStr(&col.MinorTick, c.Colors.MinorTick)
	pickStr(&col.MajorTick, c.Colors.MajorTick)

	w := &s.Widths
	pickNum(&w.Second, c.Widths.Second)
	pickNum(&w.Minute, c.Widths.Minute)
	pickNum(&w.Hour, c.Widths.Hour)
	pickNum(&w.Ring, c.Widths.Ring)
	pickNum(&w.Center, c.Widths.Center)
	pickNum(&w.MinuteTick, c.Widths.MinuteTick)
	pickNum(&w.MinorTick, c.Widths.MinorTick)
	pickNum(&w.MajorTick, c.Widths.MajorTick)

	l := &s.Lengths
	pickNum(&l.Second, c.Lengths.Second)
	pickNum(&l.Minute, c.Lengths.Minute)
	pickNum(&l.Hour, c.Lengths.Hour)
	pickNum(&l.Radius, c.Lengths.Radius)
	pickNum(&l.CenterRadius, c.Lengths.CenterRadius)
	pickNum(&l.MinuteTick, c.Lengths.MinuteTick)
	pickNum(&l.MinorTick, c.Lengths.MinorTick)
	pickNum(&l.MajorTick, c.Lengths.MajorTick)

	return s
}

func boolPtr(b bool) *bool { return &b }

func pick(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func pickStr(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func pickNum(dst *float64, v float64) {
	if v > 0 {
		*dst = v
	}
}
