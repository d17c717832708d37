package preference

// defaultFields is the built-in travel schema
var defaultFields = []Field{
	{
		ID:          FieldPace,
		Description: "travel pace",
		Values: []Value{
			{Name: "relaxed", Examples: []string{
				"take it slow", "we want an easy trip, no rushing", "fewer activities per day is better",
				"we just want to enjoy things slowly",
			}},
			{Name: "tight", Examples: []string{
				"pack the schedule", "keep the itinerary tight", "plan lots of activities",
				"don't waste any time", "we want to see every sight here in one go",
			}},
			{Name: "free", Examples: []string{
				"we'd like to be free and not follow a fixed plan", "decide the activities depending on the mood of the day",
				"we can decide where to go on the spot", "whatever works",
			}},
		},
	},
	{
		ID:          FieldAgeGroup,
		Description: "age group of the travelers",
		Values: []Value{
			{Name: "kids", Examples: []string{"we are traveling with children", "places good for kids"}},
			{Name: "aged", Examples: []string{"elderly people who can't move around much", "traveling with our parents"}},
			{Name: "students", Examples: []string{"we are students on a small budget", "a group of students traveling together"}},
			{Name: "couples", Examples: []string{"a trip for a couple", "somewhere for just the two of us"}},
		},
	},
	{
		ID:          FieldMobility,
		Description: "mobility of the travelers",
		Values: []Value{
			{Name: "weak", Examples: []string{"grandpa has trouble walking", "we need wheelchair access", "we are pushing a stroller"}},
			{Name: "not_weak", Examples: []string{"walking a lot is no problem", "we are in good shape"}},
		},
	},
	{
		ID:          FieldLanguage,
		Description: "language and communication",
		Values: []Value{
			{Name: "barrier", Examples: []string{"we don't speak any foreign language", "we'd like a guide who speaks our language", "we can't understand the local language"}},
			{Name: "average", Examples: []string{"we speak a little english", "we can manage simple conversations"}},
			{Name: "english_speaker", Examples: []string{"speaking english is no problem at all", "we speak fluent english"}},
		},
	},
	{
		ID:          FieldAvoid,
		Description: "things to avoid",
		Values: []Value{
			{Name: "museum", Examples: []string{"we don't like visiting museums", "art galleries are too boring"}},
			{Name: "heat", Examples: []string{"we can't stand the heat", "we don't want to go anywhere too hot"}},
		},
	},
	{
		ID:          FieldMood,
		Description: "mood or kind of experience",
		Values: []Value{
			{Name: "adventure", Examples: []string{"we want something thrilling", "are there any extreme sports"}},
			{Name: "relax", Examples: []string{"we want to unwind", "mostly we just want to rest"}},
			{Name: "romantic", Examples: []string{"something romantic", "a place for lovers"}},
			{Name: "cultural", Examples: []string{"experience the local culture", "see exhibitions and performances"}},
			{Name: "spiritual", Examples: []string{"looking for inner peace", "a quiet natural setting"}},
		},
	},
	{
		ID:          FieldAttraction,
		Description: "kind of attractions",
		Values: []Value{
			{Name: "nature", Examples: []string{"we love natural scenery", "mountains and lakes"}},
			{Name: "history", Examples: []string{"we like historical sites", "ancient ruins are fascinating"}},
			{Name: "culture", Examples: []string{"places with a strong urban culture", "we like art exhibitions and museums"}},
			{Name: "entertainment", Examples: []string{"anything fun to do", "theme parks or shows"}},
		},
	},
	{
		ID:          FieldFood,
		Description: "food and dining",
		Values: []Value{
			{Name: "feature", Examples: []string{"we want to try the local specialties", "experience the local food culture"}},
			{Name: "no_interest", Examples: []string{"we don't care what we eat", "no special requirements for food", "whatever is convenient to eat"}},
			{Name: "hybrid", Examples: []string{"any cuisine is fine", "we'd like a variety of food options"}},
		},
	},
	{
		ID:          FieldAccommodation,
		Description: "accommodation",
		Values: []Value{
			{Name: "fixed", Examples: []string{"we don't want to change hotels every day", "one fixed place to stay", "stay in the same hotel the whole trip"}},
			{Name: "flexible", Examples: []string{"the hotel can change along the route", "happy to stay in different places"}},
			{Name: "quiet", Examples: []string{"a quiet place to stay", "nowhere too noisy"}},
			{Name: "convenient", Examples: []string{"shops close to the hotel", "a bus stop right outside would be best"}},
			{Name: "luxury", Examples: []string{"an upscale hotel", "a hotel with a pool or spa"}},
			{Name: "cheap", Examples: []string{"our budget is limited, somewhere cheap", "a budget hotel is fine"}},
			{Name: "service", Examples: []string{"the hotel service must be good", "airport pickup would be great"}},
		},
	},
	{
		ID:          FieldTransportation,
		Description: "transportation",
		Values: []Value{
			{Name: "public", Examples: []string{"we'd take the subway and buses", "good public transport is best"}},
			{Name: "taxi", Examples: []string{"taxis should be easy to get", "we want to be able to call a cab anytime"}},
			{Name: "cheap", Examples: []string{"transport should be cheap", "save money wherever possible"}},
			{Name: "fast", Examples: []string{"we want to get around quickly", "high-speed trains and flights first"}},
		},
	},
}

// DefaultSchema returns the built-in travel preference schema
func DefaultSchema() *Schema {
	s, err := NewSchema(defaultFields)
	if err != nil {
		panic(err) // built-in definitions are static
	}
	return s
}
