package gui

const (
	windowTitle = "Graphics Tablet Calibration"

	howToUse = `1. Set the screen size (pixels).
2. Select your tablet or enter custom dimensions in mm.
3. Click 'Start Calibration' to begin.
4. Switch to the game window. You will hear a sound when the countdown ends.
5. Play a map with the Auto mod on.
6. Keep the pen on the tablet until the second sound marks the end of sampling.`

	tabletPlaceholder = "Select an option"
	samplingText      = "Calibrating :D"
)
