package domain

// Category keys offered by the order form. Any other text is still accepted.
const (
	CategoryWindows  = "windows"
	CategoryDoors    = "doors"
	CategoryKitchens = "kitchens"
	CategoryWindows2 = "windows2"
	CategoryOther    = "other"
)

func Categories() []string {
	return []string{CategoryWindows, CategoryDoors, CategoryKitchens, CategoryWindows2, CategoryOther}
}
