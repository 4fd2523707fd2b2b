package scenes

import (
	"github.com/decker502/invites/pkg/game"
)

// Scene is a type alias for game.Scene to maintain backward compatibility.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene


var (
	_ Scene          = (*DetonationScene)(nil)
	_ Scene          = (*WelcomeScene)(nil)
	_ game.Unmounter = (*DetonationScene)(nil)
	_ game.Unmounter = (*WelcomeScene)(nil)
)
