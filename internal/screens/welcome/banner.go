package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/coursebuddy/internal/ui/theme"
)

const bannerArt = `
  ___                        ___          _     _
 / __|___ _  _ _ _ ___ ___  | _ )_  _  __| |__| |_  _
| (__/ _ \ || | '_(_-</ -_) | _ \ || |/ _' / _' | || |
 \___\___/\_,_|_| /__/\___| |___/\_,_|\__,_\__,_|\_, |
                                                 |__/`

const bannerCompact = "C O U R S E B U D D Y"

// RenderBanner returns the banner styled in the primary color, with a
// compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
