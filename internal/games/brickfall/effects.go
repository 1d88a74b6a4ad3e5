package brickfall

import (
	"math"

	"github.com/vovakirdan/brickfall/internal/core"
)

// Particle is a small decorative square thrown off a destroyed brick.
type Particle struct {
	X, Y    float64
	DX, DY  float64
	Life    int // Ticks remaining
	MaxLife int // Life at spawn, for fading
	Size    float64
	Color   core.Color
}

// Alpha returns the render opacity, proportional to remaining life.
func (p Particle) Alpha() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(float64(p.Life)/float64(p.MaxLife), 0, 1)
}

// Shard is a spinning triangular fragment of a destroyed brick.
type Shard struct {
	X, Y     float64
	DX, DY   float64
	Angle    float64 // Radians
	Spin     float64 // Radians per tick
	Gravity  float64
	Vertices [3]core.Vec2 // Local coordinates around (X, Y)
	Color    core.Color
}

// WorldVertices returns the triangle rotated by Angle and placed at (X, Y).
func (s Shard) WorldVertices() [3]core.Vec2 {
	sin, cos := math.Sincos(s.Angle)
	var out [3]core.Vec2
	for i, v := range s.Vertices {
		out[i] = core.Vec2{
			X: s.X + v.X*cos - v.Y*sin,
			Y: s.Y + v.X*sin + v.Y*cos,
		}
	}
	return out
}

// ParticleSwarm holds live particles. When full, new particles overwrite
// the slot after the last one written.
type ParticleSwarm struct {
	items   []Particle
	max     int
	ovrIdx  int
	gravity float64
}

// NewParticleSwarm creates a swarm holding at most maxParticles.
func NewParticleSwarm(maxParticles int, gravity float64) *ParticleSwarm {
	return &ParticleSwarm{
		items:   make([]Particle, 0, maxParticles),
		max:     max(maxParticles, 1),
		gravity: gravity,
	}
}

// Add inserts a particle, evicting the oldest slot when the swarm is full.
func (s *ParticleSwarm) Add(p Particle) {
	if len(s.items) < s.max {
		s.items = append(s.items, p)
		return
	}
	if s.ovrIdx >= len(s.items) {
		s.ovrIdx = 0
	}
	s.items[s.ovrIdx] = p
	s.ovrIdx++
}

// Spawn emits a batch of particles at a point with random velocities.
// Lifetimes are drawn from [life/2, life].
func (s *ParticleSwarm) Spawn(rng core.Rand, at core.Vec2, color core.Color, count, life int, speed float64) {
	for range count {
		l := max(life/2+rng.IntN(life-life/2+1), 1)
		s.Add(Particle{
			X:       at.X,
			Y:       at.Y,
			DX:      core.RandRange(rng, -speed, speed),
			DY:      core.RandRange(rng, -speed, speed/2),
			Life:    l,
			MaxLife: l,
			Size:    core.RandRange(rng, 2, 4),
			Color:   color,
		})
	}
}

// Update ages every particle by one tick and drops the expired ones.
func (s *ParticleSwarm) Update() {
	live := s.items[:0]
	for _, p := range s.items {
		p.Life--
		if p.Life <= 0 {
			continue
		}
		p.DY += s.gravity
		p.X += p.DX
		p.Y += p.DY
		live = append(live, p)
	}
	clear(s.items[len(live):])
	s.items = live
	if s.ovrIdx > len(s.items) {
		s.ovrIdx = 0
	}
}

// Len returns the number of live particles.
func (s *ParticleSwarm) Len() int {
	return len(s.items)
}

// Items returns a copy of the live particles.
func (s *ParticleSwarm) Items() []Particle {
	return append([]Particle(nil), s.items...)
}

// Clear removes every particle.
func (s *ParticleSwarm) Clear() {
	s.items = s.items[:0]
	s.ovrIdx = 0
}

// ShardSwarm holds live shards, capped the same way as ParticleSwarm.
type ShardSwarm struct {
	items  []Shard
	max    int
	ovrIdx int
	margin float64 // Distance below the surface at which shards are dropped
}

// NewShardSwarm creates a swarm holding at most maxShards.
func NewShardSwarm(maxShards int, margin float64) *ShardSwarm {
	return &ShardSwarm{
		items:  make([]Shard, 0, maxShards),
		max:    max(maxShards, 1),
		margin: margin,
	}
}

// Add inserts a shard, evicting the oldest slot when the swarm is full.
func (s *ShardSwarm) Add(sh Shard) {
	if len(s.items) < s.max {
		s.items = append(s.items, sh)
		return
	}
	if s.ovrIdx >= len(s.items) {
		s.ovrIdx = 0
	}
	s.items[s.ovrIdx] = sh
	s.ovrIdx++
}

// Spawn shatters a brick of the given size into count triangles.
// Vertex spread is scaled by the brick dimensions times scale.
func (s *ShardSwarm) Spawn(rng core.Rand, at, size core.Vec2, color core.Color, count int, speed, scale float64) {
	for range count {
		sh := Shard{
			X:       at.X,
			Y:       at.Y,
			DX:      core.RandRange(rng, -speed, speed),
			DY:      core.RandRange(rng, -speed*1.5, 0),
			Angle:   core.RandRange(rng, 0, 2*math.Pi),
			Spin:    core.RandRange(rng, -0.2, 0.2),
			Gravity: core.RandRange(rng, 0.15, 0.35),
			Color:   color,
		}
		for i := range sh.Vertices {
			theta := float64(i)*2*math.Pi/3 + core.RandRange(rng, -0.4, 0.4)
			reach := core.RandRange(rng, 0.3, 0.5) * scale
			sh.Vertices[i] = core.Vec2{
				X: math.Cos(theta) * size.X * reach,
				Y: math.Sin(theta) * size.Y * reach,
			}
		}
		s.Add(sh)
	}
}

// Update moves every shard by one tick and drops those that fell more than
// the margin below bottom.
func (s *ShardSwarm) Update(bottom float64) {
	live := s.items[:0]
	for _, sh := range s.items {
		sh.DY += sh.Gravity
		sh.X += sh.DX
		sh.Y += sh.DY
		sh.Angle += sh.Spin
		if sh.Y > bottom+s.margin {
			continue
		}
		live = append(live, sh)
	}
	clear(s.items[len(live):])
	s.items = live
	if s.ovrIdx > len(s.items) {
		s.ovrIdx = 0
	}
}

// Len returns the number of live shards.
func (s *ShardSwarm) Len() int {
	return len(s.items)
}

// Items returns a copy of the live shards.
func (s *ShardSwarm) Items() []Shard {
	return append([]Shard(nil), s.items...)
}

// Clear removes every shard.
func (s *ShardSwarm) Clear() {
	s.items = s.items[:0]
	s.ovrIdx = 0
}
