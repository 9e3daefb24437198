package frost

// Seed is one circular frost agent. Position is in field cells.
type Seed struct {
	X, Y       float32
	Radius     float32
	Strength   float32
	GrowthBias float32
}

// Per-seed growth multipliers are drawn from [seedBiasMin, seedBiasMin+seedBiasSpan).
const (
	seedBiasMin  = 0.8
	seedBiasSpan = 0.4

	// radiusAcceleration makes larger seeds grow faster in absolute radius.
	radiusAcceleration = 0.15
)

// spawnSeeds draws count seeds in the fixed order x, y, radius, strength, bias.
func spawnSeeds(rng Random, count, w, h int, p Params) []Seed {
	seeds := make([]Seed, count)
	sizeMin, sizeSpan := float32(p.InitialSizeMin), float32(p.InitialSizeMax-p.InitialSizeMin)
	strMin, strSpan := float32(p.InitialStrengthMin), float32(p.InitialStrengthMax-p.InitialStrengthMin)
	for i := range seeds {
		sd := &seeds[i]
		sd.X = rng.Float32() * float32(w)
		sd.Y = rng.Float32() * float32(h)
		sd.Radius = rng.Float32()*sizeSpan + sizeMin
		sd.Strength = rng.Float32()*strSpan + strMin
		sd.GrowthBias = rng.Float32()*seedBiasSpan + seedBiasMin
	}
	return seeds
}

// age grows the seed's radius up to maxRadius and its strength up to 1.
func (sd *Seed) age(growSpeed, increaseSpeed, maxRadius, dt float32) {
	r := sd.Radius + growSpeed*dt*(1+sd.Radius*radiusAcceleration)
	if r > maxRadius {
		r = maxRadius
	}
	if r > sd.Radius {
		sd.Radius = r
	}
	s := sd.Strength + increaseSpeed*dt
	if s > 1 {
		s = 1
	}
	if s > sd.Strength {
		sd.Strength = s
	}
}
