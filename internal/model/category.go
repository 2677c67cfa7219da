package model

// CategoryID identifies one of the fixed planner categories.
type CategoryID string

const (
	CategoryHome  CategoryID = "home"
	CategoryWork  CategoryID = "work"
	CategoryShop  CategoryID = "shop"
	CategoryOther CategoryID = "other"
)

// Category groups tasks by area of family life.
type Category struct {
	ID    CategoryID
	Name  string
	Icon  string
	Color string
}

var categories = []Category{
	{ID: CategoryHome, Name: "Дом", Icon: "🏠", Color: "#4caf50"},
	{ID: CategoryWork, Name: "Работа", Icon: "💼", Color: "#2196f3"},
	{ID: CategoryShop, Name: "Покупки", Icon: "🛒", Color: "#ff9800"},
	{ID: CategoryOther, Name: "Другое", Icon: "⭐", Color: "#9c27b0"},
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a category by its identifier.
func CategoryByID(id CategoryID) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// ValidCategoryID reports whether id names an existing category.
func ValidCategoryID(id CategoryID) bool {
	_, ok := CategoryByID(id)
	return ok
}

// Label returns the icon-prefixed display name, e.g. "🏠 Дом".
func (c Category) Label() string {
	return c.Icon + " " + c.Name
}
