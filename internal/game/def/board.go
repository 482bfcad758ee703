package def

// Default returns the standard board: 48 cities across four strains, the
// classic route network, five roles and five special cards.
func Default() Definition {
	return Definition{
		Diseases: []Disease{
			{Name: "Blue", Cubes: 24},
			{Name: "Yellow", Cubes: 24},
			{Name: "Black", Cubes: 24},
			{Name: "Red", Cubes: 24},
		},
		Roles: []string{
			"Dispatcher",
			"Operations Expert",
			"Scientist",
			"Medic",
			"Researcher",
		},
		Specials: []string{
			"special_resilient_population",
			"special_government_grant",
			"special_one_quiet_night",
			"special_airlift",
			"special_forecast",
		},
		InfectionRates:           []int{2, 2, 2, 3, 3, 4, 4},
		InitialInfections:        []int{3, 3, 3, 2, 2, 2, 1, 1, 1},
		InitialPlayerCards:       map[int]int{2: 4, 3: 3, 4: 2},
		MaxPlayerCards:           7,
		MaxOutbreaks:             7,
		ResearchCentersAvailable: 6,
		StartingLocation:         "Atlanta",
		Locations: []Location{
			{"San Francisco", "Blue"},
			{"Chicago", "Blue"},
			{"Toronto", "Blue"},
			{"Atlanta", "Blue"},
			{"New York", "Blue"},
			{"Washington DC", "Blue"},
			{"London", "Blue"},
			{"Madrid", "Blue"},
			{"Essen", "Blue"},
			{"Paris", "Blue"},
			{"Milan", "Blue"},
			{"St. Petersburg", "Blue"},
			{"Algiers", "Black"},
			{"Cairo", "Black"},
			{"Riyadh", "Black"},
			{"Baghdad", "Black"},
			{"Istanbul", "Black"},
			{"Moscow", "Black"},
			{"Tehran", "Black"},
			{"Karachi", "Black"},
			{"Delhi", "Black"},
			{"Mumbai", "Black"},
			{"Chennai", "Black"},
			{"Kolkata", "Black"},
			{"Bangkok", "Red"},
			{"Jakarta", "Red"},
			{"Sydney", "Red"},
			{"Manila", "Red"},
			{"Ho Chi Minh", "Red"},
			{"Hong Kong", "Red"},
			{"Shanghai", "Red"},
			{"Beijing", "Red"},
			{"Seoul", "Red"},
			{"Tokyo", "Red"},
			{"Osaka", "Red"},
			{"Taipei", "Red"},
			{"Los Angeles", "Yellow"},
			{"Mexico City", "Yellow"},
			{"Miami", "Yellow"},
			{"Bogota", "Yellow"},
			{"Lima", "Yellow"},
			{"Santiago", "Yellow"},
			{"Buenos Aires", "Yellow"},
			{"São Paulo", "Yellow"},
			{"Lagos", "Yellow"},
			{"Khartoum", "Yellow"},
			{"Johannesburg", "Yellow"},
			{"Kinshasa", "Yellow"},
		},
		Routes: []Route{
			{"San Francisco", "Chicago"},
			{"San Francisco", "Tokyo"},
			{"San Francisco", "Manila"},
			{"San Francisco", "Los Angeles"},
			{"Chicago", "Atlanta"},
			{"Chicago", "Toronto"},
			{"Chicago", "Los Angeles"},
			{"Chicago", "Mexico City"},
			{"Toronto", "New York"},
			{"Toronto", "Washington DC"},
			{"New York", "London"},
			{"New York", "Madrid"},
			{"New York", "Washington DC"},
			{"Atlanta", "Washington DC"},
			{"Atlanta", "Miami"},
			{"Washington DC", "Miami"},
			{"London", "Essen"},
			{"London", "Madrid"},
			{"London", "Paris"},
			{"Madrid", "Paris"},
			{"Madrid", "Algiers"},
			{"Madrid", "São Paulo"},
			{"Paris", "Essen"},
			{"Paris", "Milan"},
			{"Paris", "Algiers"},
			{"Essen", "Milan"},
			{"Essen", "St. Petersburg"},
			{"St. Petersburg", "Moscow"},
			{"St. Petersburg", "Istanbul"},
			{"Milan", "Istanbul"},
			{"Los Angeles", "Sydney"},
			{"Los Angeles", "Mexico City"},
			{"Mexico City", "Miami"},
			{"Mexico City", "Bogota"},
			{"Mexico City", "Lima"},
			{"Lima", "Santiago"},
			{"Lima", "Bogota"},
			{"Bogota", "Miami"},
			{"Bogota", "Buenos Aires"},
			{"Bogota", "São Paulo"},
			{"São Paulo", "Buenos Aires"},
			{"São Paulo", "Lagos"},
			{"Lagos", "Khartoum"},
			{"Lagos", "Kinshasa"},
			{"Kinshasa", "Johannesburg"},
			{"Kinshasa", "Khartoum"},
			{"Khartoum", "Johannesburg"},
			{"Khartoum", "Cairo"},
			{"Algiers", "Istanbul"},
			{"Cairo", "Algiers"},
			{"Cairo", "Istanbul"},
			{"Cairo", "Baghdad"},
			{"Cairo", "Riyadh"},
			{"Istanbul", "Moscow"},
			{"Istanbul", "Baghdad"},
			{"Moscow", "Tehran"},
			{"Tehran", "Baghdad"},
			{"Tehran", "Karachi"},
			{"Tehran", "Delhi"},
			{"Baghdad", "Riyadh"},
			{"Baghdad", "Karachi"},
			{"Riyadh", "Karachi"},
			{"Karachi", "Delhi"},
			{"Karachi", "Mumbai"},
			{"Delhi", "Mumbai"},
			{"Delhi", "Chennai"},
			{"Delhi", "Kolkata"},
			{"Mumbai", "Chennai"},
			{"Chennai", "Bangkok"},
			{"Chennai", "Jakarta"},
			{"Chennai", "Kolkata"},
			{"Kolkata", "Hong Kong"},
			{"Kolkata", "Bangkok"},
			{"Jakarta", "Sydney"},
			{"Jakarta", "Ho Chi Minh"},
			{"Jakarta", "Bangkok"},
			{"Bangkok", "Ho Chi Minh"},
			{"Bangkok", "Hong Kong"},
			{"Ho Chi Minh", "Manila"},
			{"Ho Chi Minh", "Hong Kong"},
			{"Manila", "Sydney"},
			{"Manila", "Taipei"},
			{"Manila", "Hong Kong"},
			{"Hong Kong", "Shanghai"},
			{"Hong Kong", "Taipei"},
			{"Shanghai", "Taipei"},
			{"Shanghai", "Tokyo"},
			{"Shanghai", "Seoul"},
			{"Shanghai", "Beijing"},
			{"Beijing", "Seoul"},
			{"Seoul", "Tokyo"},
			{"Tokyo", "Osaka"},
			{"Osaka", "Taipei"},
		},
	}
}
