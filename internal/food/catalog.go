package food

// Nutrients per serving.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type catalogItem struct {
	Name string
	Nutrients
}

var catalog = []catalogItem{
	{"Apple", Nutrients{Calories: 95, Protein: 0.5, Carbs: 25, Fat: 0.3}},
	{"Banana", Nutrients{Calories: 105, Protein: 1.3, Carbs: 27, Fat: 0.4}},
	{"Grilled Chicken Breast", Nutrients{Calories: 165, Protein: 31, Carbs: 0, Fat: 3.6}},
	{"Rice Bowl", Nutrients{Calories: 350, Protein: 8, Carbs: 70, Fat: 2}},
	{"Caesar Salad", Nutrients{Calories: 280, Protein: 12, Carbs: 15, Fat: 22}},
	{"Avocado Toast", Nutrients{Calories: 320, Protein: 8, Carbs: 30, Fat: 20}},
	{"Greek Yogurt", Nutrients{Calories: 100, Protein: 15, Carbs: 6, Fat: 0}},
	{"Quinoa Bowl", Nutrients{Calories: 420, Protein: 18, Carbs: 65, Fat: 12}},
	{"Salmon Fillet", Nutrients{Calories: 350, Protein: 40, Carbs: 0, Fat: 18}},
	{"Mixed Vegetables", Nutrients{Calories: 80, Protein: 4, Carbs: 16, Fat: 0.5}},
}
