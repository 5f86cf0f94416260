package playerbar

import (
	"fmt"

	"github.com/llehouerou/jockey/internal/icons"
)

// RenderVolumeCompact renders the volume indicator.
// Format: "<icon> 100%", with the mute icon at zero.
func RenderVolumeCompact(volume float64) string {
	pct := int(volume*100 + 0.5)
	icon := icons.Volume()
	if pct == 0 {
		icon = icons.VolumeMute()
	}
	return progressTimeStyle().Render(fmt.Sprintf("%s %3d%%", icon, pct))
}
