package cards

import "strings"

// Foods is the full food catalog: six cards per type, stars 1 through 6.
var Foods = []Food{
	{Title: "Cheese Pizza Slice", FoodType: Starch, BaseStarValue: 1, Color: "#fb923c"},
	{Title: "Tater Tots", FoodType: Starch, BaseStarValue: 2, Color: "#f59e0b"},
	{Title: "Buttered Noodles", FoodType: Starch, BaseStarValue: 3, Color: "#fef08a"},
	{Title: "Garlic Breadstick", FoodType: Starch, BaseStarValue: 4, Color: "#fbbf24"},
	{Title: "Mac & Cheese Cup", FoodType: Starch, BaseStarValue: 5, Color: "#facc15"},
	{Title: "Buttermilk Biscuit", FoodType: Starch, BaseStarValue: 6, Color: "#fcd34d"},

	{Title: "Chicken Nuggets", FoodType: Meat, BaseStarValue: 1, Color: "#f97316"},
	{Title: "Turkey Meatballs", FoodType: Meat, BaseStarValue: 2, Color: "#ea580c"},
	{Title: "Grilled Chicken Sandwich", FoodType: Meat, BaseStarValue: 3, Color: "#fb7185"},
	{Title: "Pepperoni Calzone", FoodType: Meat, BaseStarValue: 4, Color: "#b91c1c"},
	{Title: "BBQ Riblet", FoodType: Meat, BaseStarValue: 5, Color: "#b45309"},
	{Title: "Hot Dog Roller", FoodType: Meat, BaseStarValue: 6, Color: "#ef4444"},

	{Title: "Chocolate Pudding Cup", FoodType: Sweet, BaseStarValue: 1, Color: "#92400e"},
	{Title: "Strawberry Yogurt Cup", FoodType: Sweet, BaseStarValue: 2, Color: "#ec4899"},
	{Title: "Birthday Cupcake", FoodType: Sweet, BaseStarValue: 3, Color: "#a855f7"},
	{Title: "Cinnamon Swirl Roll", FoodType: Sweet, BaseStarValue: 4, Color: "#c084fc"},
	{Title: "Fruit Gel Cup", FoodType: Sweet, BaseStarValue: 5, Color: "#22d3ee"},
	{Title: "Rice Krispie Treat", FoodType: Sweet, BaseStarValue: 6, Color: "#fde047"},

	{Title: "Carrot Sticks", FoodType: Veggie, BaseStarValue: 1, Color: "#f97316"},
	{Title: "Steamed Broccoli", FoodType: Veggie, BaseStarValue: 2, Color: "#22c55e"},
	{Title: "Cucumber Slices", FoodType: Veggie, BaseStarValue: 3, Color: "#10b981"},
	{Title: "Roasted Corn Cup", FoodType: Veggie, BaseStarValue: 4, Color: "#84cc16"},
	{Title: "Garden Side Salad", FoodType: Veggie, BaseStarValue: 5, Color: "#65a30d"},
	{Title: "Green Bean Medley", FoodType: Veggie, BaseStarValue: 6, Color: "#4ade80"},

	{Title: "Mystery Meatloaf", FoodType: Gross, BaseStarValue: 1, Color: "#6b7280"},
	{Title: "Soggy Fish Sticks", FoodType: Gross, BaseStarValue: 2, Color: "#0ea5e9"},
	{Title: "Lukewarm Peas", FoodType: Gross, BaseStarValue: 3, Color: "#16a34a"},
	{Title: "Cafeteria Gravy Spill", FoodType: Gross, BaseStarValue: 4, Color: "#a3a3a3"},
	{Title: "Cold Brussels Mash", FoodType: Gross, BaseStarValue: 5, Color: "#334155"},
	{Title: "Unidentified Lunch Slurry", FoodType: Gross, BaseStarValue: 6, Color: "#6366f1"},
}

// Kids is the full kid catalog.
var Kids = []Kid{
	{Title: "Sunny Skye", FoodType: Sweet},
	{Title: "Art Show Ava", FoodType: Veggie},
	{Title: "Stacker Seth", FoodType: Starch},
	{Title: "Scooter Sage", FoodType: Meat},
	{Title: "Beachy Beau", FoodType: Gross},
	{Title: "Rainbow Remy", FoodType: Sweet},
	{Title: "Garden Gia", FoodType: Veggie},
	{Title: "Bookworm Bree", FoodType: Veggie},
	{Title: "Sidekick Samir", FoodType: Gross},
	{Title: "Flower Fin", FoodType: Veggie},
	{Title: "Twirl Talia", FoodType: Sweet},
	{Title: "Maple May", FoodType: Sweet},
	{Title: "Kite Kiki", FoodType: Veggie},
	{Title: "Heroic Hugo", FoodType: Veggie},
	{Title: "Hula Holly", FoodType: Meat},
	{Title: "Backpack Bee", FoodType: Starch},
	{Title: "Beatbox Bella", FoodType: Starch},
	{Title: "Parka Pax", FoodType: Gross},
	{Title: "Mic Drop Miri", FoodType: Gross},
	{Title: "Cookie Coco", FoodType: Sweet},
	{Title: "Star Scout Sol", FoodType: Starch},
	{Title: "Blossom Bea", FoodType: Sweet},
	{Title: "Crown Casey", FoodType: Meat},
	{Title: "Winged Wren", FoodType: Meat},
	{Title: "Mic Check Milo", FoodType: Gross},
	{Title: "Builder Bay", FoodType: Starch},
	{Title: "Trail Scout Tex", FoodType: Starch},
	{Title: "Camera Cami", FoodType: Meat},
	{Title: "Ranch Rider Rio", FoodType: Meat},
	{Title: "Photo Finn", FoodType: Gross},
}

// FoodByTitle looks up a catalog food by title, ignoring case.
// Returns nil if no food matches.
func FoodByTitle(title string) *Food {
	key := strings.ToLower(strings.TrimSpace(title))
	for i := range Foods {
		if strings.ToLower(Foods[i].Title) == key {
			f := Foods[i]
			return &f
		}
	}
	return nil
}

// KidByTitle looks up a catalog kid by title, ignoring case.
func KidByTitle(title string) (Kid, bool) {
	key := strings.ToLower(strings.TrimSpace(title))
	for _, k := range Kids {
		if strings.ToLower(k.Title) == key {
			return k, true
		}
	}
	return Kid{}, false
}

// FoodsOfType returns the catalog foods of one type, lowest stars first.
func FoodsOfType(ft FoodType) []Food {
	var out []Food
	for _, f := range Foods {
		if f.FoodType == ft {
			out = append(out, f)
		}
	}
	return out
}
