package scenes

// All contains all scenes, grouped by category.
// The category name is used as a prefix in output file names.
var All = map[string][]Scene{
	"basic":      basicScenes,
	"negative":   negativeScenes,
	"degenerate": degenerateScenes,
	"offscreen":  offscreenScenes,
	"outline":    outlineScenes,
}
