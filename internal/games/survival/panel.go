package survival

// MultiSink fans every update out to several sinks in order.
type MultiSink []UISink

func (m MultiSink) Inventory(inv Inventory) {
	for _, s := range m {
		s.Inventory(inv)
	}
}

func (m MultiSink) Health(fraction float64, rounded int) {
	for _, s := range m {
		s.Health(fraction, rounded)
	}
}

func (m MultiSink) FPS(fps int) {
	for _, s := range m {
		s.FPS(fps)
	}
}

func (m MultiSink) Biome(name, description string) {
	for _, s := range m {
		s.Biome(name, description)
	}
}

func (m MultiSink) SurvivalOdds(percent int) {
	for _, s := range m {
		s.SurvivalOdds(percent)
	}
}

func (m MultiSink) GameOver(summary Summary) {
	for _, s := range m {
		s.GameOver(summary)
	}
}

// panel keeps the latest values published by the session for the
// in-game status rows.
type panel struct {
	showOdds bool

	inventory   Inventory
	fraction    float64
	health      int
	fps         int
	biome       string
	description string
	odds        int
	gameOvers   int
}

func newPanel(showOdds bool) *panel {
	return &panel{showOdds: showOdds, inventory: make(Inventory)}
}

func (p *panel) Inventory(inv Inventory) { p.inventory = inv }

func (p *panel) Health(fraction float64, rounded int) {
	p.fraction = fraction
	p.health = rounded
}

func (p *panel) FPS(fps int) { p.fps = fps }

func (p *panel) Biome(name, description string) {
	p.biome = name
	p.description = description
}

func (p *panel) SurvivalOdds(percent int) { p.odds = percent }

func (p *panel) GameOver(Summary) { p.gameOvers++ }
