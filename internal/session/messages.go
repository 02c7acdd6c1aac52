package session

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

func scoreMessage(score int) string {
	return fmt.Sprintf("Scored! Score %d", score)
}

func gameOverMessage(score int, p storage.Placement) string {
	if p.Qualified {
		return fmt.Sprintf("Game over! Final score %d. You made the leaderboard at #%d!", score, p.Rank)
	}
	return fmt.Sprintf("Game over! Final score %d", score)
}
