package sim

import "github.com/vovakirdan/tui-flappy/internal/core"

// Collides reports whether the player rectangle hits the solid parts of an
// obstacle. The obstacle is open only inside its gap band, so any horizontal
// overlap with the player sticking out above or below the band is a hit.
func Collides(player core.Rect, o Obstacle) bool {
	if !player.OverlapsX(o.TopRect()) {
		return false
	}
	return player.Top() < o.GapTop() || player.Bottom() > o.GapBottom()
}

// FirstCollision returns the index of the first obstacle the player hits.
func FirstCollision(player core.Rect, obstacles []Obstacle) (int, bool) {
	for i, o := range obstacles {
		if Collides(player, o) {
			return i, true
		}
	}
	return -1, false
}
