package aclock

// Features toggles the individual clock components.
type Features struct {
	// SubSeconds sweeps the second hand in 1/6 second steps instead of
	// jumping once per second.
	SubSeconds  bool
	Ring        bool
	Center      bool
	SecondHand  bool
	MinuteHand  bool
	HourHand    bool
	MinuteTicks bool
	MinorTicks  bool
	MajorTicks  bool
}

// Colors holds one stroke color per component.
type Colors struct {
	Second     string
	Minute     string
	Hour       string
	Ring       string
	Center     string
	MinuteTick string
	MinorTick  string
	MajorTick  string
}

// Widths holds stroke widths in surface units.
type Widths struct {
	Second     float64
	Minute     float64
	Hour       float64
	Ring       float64
	Center     float64
	MinuteTick float64
	MinorTick  float64
	MajorTick  float64
}

// Lengths holds relative lengths.
//
// Hand lengths are fractions of the clock radius. Radius is the fraction of
// the shorter surface axis used by the clock. Tick values are the inner
// radius fraction of each tick: a MinuteTick of 0.90 draws ticks covering the
// outer 10% of the radius. CenterRadius is absolute, in surface units.
type Lengths struct {
	Second       float64
	Minute       float64
	Hour         float64
	Radius       float64
	CenterRadius float64
	MinuteTick   float64
	MinorTick    float64
	MajorTick    float64
}

// Style is the full renderer configuration. Treat it as immutable once handed
// to New.
type Style struct {
	Features Features
	Colors   Colors
	Widths   Widths
	Lengths  Lengths
}

// DefaultStyle returns every component enabled with sub-second sweep, red
// second hand, black hands and ring, and grey ticks.
func DefaultStyle() Style {
	return Style{
		Features: Features{
			SubSeconds:  true,
			Ring:        true,
			Center:      true,
			SecondHand:  true,
			MinuteHand:  true,
			HourHand:    true,
			MinuteTicks: true,
			MinorTicks:  true,
			MajorTicks:  true,
		},
		Colors: Colors{
			Second:     "#ff0000",
			Minute:     "#000000",
			Hour:       "#000000",
			Ring:       "#000000",
			Center:     "#000000",
			MinuteTick: "#8f8f8f",
			MinorTick:  "#8f8f8f",
			MajorTick:  "#8f8f8f",
		},
		Widths: Widths{
			Second:     2,
			Minute:     4,
			Hour:       6,
			Ring:       3,
			Center:     5,
			MinuteTick: 1,
			MinorTick:  2,
			MajorTick:  3,
		},
		Lengths: Lengths{
			Second:       0.90,
			Minute:       0.75,
			Hour:         0.60,
			Radius:       0.95,
			CenterRadius: 2,
			MinuteTick:   0.90,
			MinorTick:    0.85,
			MajorTick:    0.80,
		},
	}
}
