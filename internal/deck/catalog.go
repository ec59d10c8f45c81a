package deck

import rand "math/rand/v2"

// CatalogConfig fixes the per-game multiplicity of each playable kind.
// Exploding Kitten and Defuse counts are derived from the player count:
// kittens = players − 1 (the deck must run out of safe draws), defuse =
// players + surplus (everyone is guaranteed one at the deal).
type CatalogConfig struct {
	AttackCards       int
	SkipCards         int
	FavorCards        int
	ShuffleCards      int
	SeeTheFutureCards int
	DefuseSurplus     int
}

// DefaultCatalogConfig returns the standard card multiplicities
func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		AttackCards:       3,
		SkipCards:         3,
		FavorCards:        3,
		ShuffleCards:      3,
		SeeTheFutureCards: 3,
		DefuseSurplus:     2,
	}
}

// Build returns the full card multiset for a game with playerCount players.
// The result is unshuffled; image identifiers are drawn without replacement
// from the pool.
func Build(playerCount int, cfg CatalogConfig, rng *rand.Rand) []Card {
	pool := NewImagePool(rng)

	counts := []struct {
		kind Kind
		n    int
	}{
		{Attack, cfg.AttackCards},
		{Skip, cfg.SkipCards},
		{Favor, cfg.FavorCards},
		{Shuffle, cfg.ShuffleCards},
		{SeeTheFuture, cfg.SeeTheFutureCards},
		{ExplodingKitten, playerCount - 1},
		{Defuse, playerCount + cfg.DefuseSurplus},
	}

	var cards []Card
	for _, c := range counts {
		for i := 0; i < c.n; i++ {
			cards = append(cards, Card{Kind: c.kind, Image: pool.Next()})
		}
	}
	return cards
}
