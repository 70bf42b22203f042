package models

// CategoryAll selects every category in the discovery feed.
const CategoryAll = "all"

type Category struct {
	ID    string `json:"id" bson:"_id,omitempty"`
	Name  string `json:"name" bson:"name"`
	Slug  string `json:"slug" bson:"slug"`
	Icon  string `json:"icon,omitempty" bson:"icon,omitempty"`
	Color string `json:"color,omitempty" bson:"color,omitempty"`
}

// Categories served to clients. The slug is the value promotions and
// businesses reference.
var Categories = []Category{
	{ID: "1", Name: "Hortifruti", Slug: "hortifruti", Icon: "🥬", Color: "#4CAF50"},
	{ID: "2", Name: "Açougue", Slug: "acougue", Icon: "🥩", Color: "#F44336"},
	{ID: "3", Name: "Padaria", Slug: "padaria", Icon: "🥖", Color: "#FF9800"},
	{ID: "4", Name: "Bebidas", Slug: "bebidas", Icon: "🍺", Color: "#FF5722"},
	{ID: "5", Name: "Farmácia", Slug: "farmacia", Icon: "💊", Color: "#9C27B0"},
	{ID: "6", Name: "Limpeza", Slug: "limpeza", Icon: "🧹", Color: "#00BCD4"},
}
