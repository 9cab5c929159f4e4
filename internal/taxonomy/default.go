package taxonomy

import "alcyxob/exercise-discovery/internal/domain"

// Default returns the built-in exercise catalog.
func Default() *Taxonomy {
	t, err := New(defaultFamilies(), defaultSportTerms())
	if err != nil {
		// The built-in data is static; a failure here is a programming error.
		panic(err)
	}
	return t
}

func defaultFamilies() []Family {
	return []Family{
		{
			ID:                    "squat",
			Name:                  "Squat",
			BaseExercise:          "Barbell Back Squat",
			Description:           "Bilateral knee-dominant lower body movement loading the hips and thighs through a full range of motion.",
			PrimaryMuscleGroup:    "Legs",
			SecondaryMuscleGroups: []string{"Glutes", "Core"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Front Squat", "Goblet Squat", "Box Squat", "Pause Squat"},
			SearchTerms:           []string{"squat", "squat variations", "leg strength"},
			SportRelevance:        map[string]int{"football": 9, "basketball": 7, "soccer": 7, "hockey": 8, "volleyball": 7, "tennis": 6, "baseball": 6, "running": 5, "swimming": 4, "golf": 4},
		},
		{
			ID:                    "deadlift",
			Name:                  "Deadlift",
			BaseExercise:          "Conventional Deadlift",
			Description:           "Hip hinge pulling a loaded bar from the floor to lockout, training the entire posterior chain.",
			PrimaryMuscleGroup:    "Posterior Chain",
			SecondaryMuscleGroups: []string{"Hamstrings", "Glutes", "Back"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Romanian Deadlift", "Trap Bar Deadlift", "Sumo Deadlift"},
			SearchTerms:           []string{"deadlift", "hip hinge", "posterior chain"},
			SportRelevance:        map[string]int{"football": 9, "hockey": 8, "baseball": 7, "soccer": 6, "basketball": 6, "running": 5, "golf": 5, "tennis": 5},
		},
		{
			ID:                    "bench",
			Name:                  "Bench Press",
			BaseExercise:          "Barbell Bench Press",
			Description:           "Horizontal press from a flat bench developing pressing strength of the chest, shoulders and triceps.",
			PrimaryMuscleGroup:    "Chest",
			SecondaryMuscleGroups: []string{"Triceps", "Shoulders"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Incline Bench Press", "Dumbbell Bench Press", "Close Grip Bench Press"},
			SearchTerms:           []string{"bench press", "chest press", "horizontal press"},
			SportRelevance:        map[string]int{"football": 8, "hockey": 5, "baseball": 4, "basketball": 4},
		},
		{
			ID:                    "overhead-press",
			Name:                  "Overhead Press",
			BaseExercise:          "Standing Overhead Press",
			Description:           "Vertical press from the shoulders to overhead lockout while bracing the trunk.",
			PrimaryMuscleGroup:    "Shoulders",
			SecondaryMuscleGroups: []string{"Triceps", "Core"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Push Press", "Seated Dumbbell Press", "Landmine Press"},
			SearchTerms:           []string{"overhead press", "shoulder press", "vertical press"},
			SportRelevance:        map[string]int{"volleyball": 7, "swimming": 6, "baseball": 5, "tennis": 6, "basketball": 5, "football": 6},
		},
		{
			ID:                    "row",
			Name:                  "Row",
			BaseExercise:          "Barbell Bent Over Row",
			Description:           "Horizontal pull from a hinged position building upper back thickness and scapular control.",
			PrimaryMuscleGroup:    "Back",
			SecondaryMuscleGroups: []string{"Biceps", "Rear Delts"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Dumbbell Row", "Seal Row", "Inverted Row"},
			SearchTerms:           []string{"barbell row", "dumbbell row", "row variations", "horizontal pull"},
			SportRelevance:        map[string]int{"swimming": 8, "tennis": 6, "golf": 6, "baseball": 6, "hockey": 6, "football": 6},
		},
		{
			ID:                    "pull-up",
			Name:                  "Pull-Up",
			BaseExercise:          "Pull-Up",
			Description:           "Vertical bodyweight pull from a dead hang until the chin clears the bar.",
			PrimaryMuscleGroup:    "Back",
			SecondaryMuscleGroups: []string{"Biceps", "Forearms"},
			Category:              domain.CategoryStrength,
			Equipment:             "Pull-Up Bar",
			Variations:            []string{"Chin-Up", "Weighted Pull-Up", "Neutral Grip Pull-Up"},
			SearchTerms:           []string{"pull-up", "chin-up", "vertical pull"},
			SportRelevance:        map[string]int{"swimming": 8, "volleyball": 5, "baseball": 5, "tennis": 5},
		},
		{
			ID:                    "lunge",
			Name:                  "Lunge",
			BaseExercise:          "Walking Lunge",
			Description:           "Split-stance single-leg pattern that builds unilateral strength and hip stability.",
			PrimaryMuscleGroup:    "Legs",
			SecondaryMuscleGroups: []string{"Glutes", "Adductors"},
			Category:              domain.CategoryStrength,
			Equipment:             "Dumbbells",
			Variations:            []string{"Reverse Lunge", "Bulgarian Split Squat", "Lateral Lunge"},
			SearchTerms:           []string{"lunge", "split squat", "single leg strength"},
			SportRelevance:        map[string]int{"soccer": 8, "tennis": 8, "basketball": 7, "running": 7, "hockey": 7, "football": 6},
		},
		{
			ID:                    "hip-thrust",
			Name:                  "Hip Thrust",
			BaseExercise:          "Barbell Hip Thrust",
			Description:           "Shoulder-elevated hip extension isolating the glutes at end range.",
			PrimaryMuscleGroup:    "Glutes",
			SecondaryMuscleGroups: []string{"Hamstrings"},
			Category:              domain.CategoryStrength,
			Equipment:             "Barbell",
			Variations:            []string{"Single Leg Hip Thrust", "Glute Bridge"},
			SearchTerms:           []string{"hip thrust", "glute bridge", "glute strength"},
			SportRelevance:        map[string]int{"running": 7, "soccer": 7, "football": 7, "basketball": 6, "hockey": 6},
		},
		{
			ID:                    "plyometric-jump",
			Name:                  "Plyometric Jump",
			BaseExercise:          "Box Jump",
			Description:           "Explosive vertical jump onto a box emphasising rapid force production and soft landings.",
			PrimaryMuscleGroup:    "Legs",
			SecondaryMuscleGroups: []string{"Glutes", "Calves"},
			Category:              domain.CategoryPower,
			Equipment:             "Plyo Box",
			Variations:            []string{"Depth Jump", "Broad Jump", "Single Leg Box Jump"},
			SearchTerms:           []string{"box jump", "plyometric jump", "vertical jump training"},
			SportRelevance:        map[string]int{"basketball": 10, "volleyball": 10, "football": 8, "soccer": 7, "tennis": 6, "running": 5},
		},
		{
			ID:                    "med-ball-throw",
			Name:                  "Medicine Ball Throw",
			BaseExercise:          "Rotational Medicine Ball Throw",
			Description:           "Ballistic rotational throw into a wall transferring force from the hips through the trunk.",
			PrimaryMuscleGroup:    "Core",
			SecondaryMuscleGroups: []string{"Obliques", "Shoulders", "Hips"},
			Category:              domain.CategoryPower,
			Equipment:             "Medicine Ball",
			Variations:            []string{"Overhead Slam", "Chest Pass Throw", "Scoop Toss"},
			SearchTerms:           []string{"medicine ball throw", "med ball slam", "rotational power"},
			SportRelevance:        map[string]int{"baseball": 10, "tennis": 9, "golf": 9, "hockey": 8, "football": 6, "volleyball": 6},
		},
		{
			ID:                    "sprint",
			Name:                  "Sprint",
			BaseExercise:          "Acceleration Sprint",
			Description:           "Short maximal-effort sprint from a staggered start developing acceleration mechanics.",
			PrimaryMuscleGroup:    "Legs",
			SecondaryMuscleGroups: []string{"Hamstrings", "Calves", "Glutes"},
			Category:              domain.CategoryPower,
			Equipment:             "None",
			Variations:            []string{"Flying Sprint", "Resisted Sled Sprint", "Hill Sprint"},
			SearchTerms:           []string{"sprint training", "acceleration drill", "speed development"},
			SportRelevance:        map[string]int{"soccer": 10, "football": 10, "running": 9, "basketball": 7, "baseball": 7, "hockey": 6, "tennis": 7},
		},
		{
			ID:                    "agility",
			Name:                  "Agility Drill",
			BaseExercise:          "Pro Agility Shuttle",
			Description:           "Change-of-direction shuttle demanding quick deceleration and re-acceleration.",
			PrimaryMuscleGroup:    "Legs",
			SecondaryMuscleGroups: []string{"Core", "Adductors"},
			Category:              domain.CategorySportSpecific,
			Equipment:             "Cones",
			Variations:            []string{"Agility Ladder Drill", "T-Drill", "Lateral Shuffle"},
			SearchTerms:           []string{"agility ladder", "change of direction", "shuttle run"},
			SportRelevance:        map[string]int{"tennis": 10, "basketball": 9, "soccer": 9, "football": 8, "hockey": 7, "volleyball": 6},
		},
		{
			ID:                    "carry",
			Name:                  "Loaded Carry",
			BaseExercise:          "Farmer Carry",
			Description:           "Walking with heavy implements at the sides to build grip, trunk stiffness and work capacity.",
			PrimaryMuscleGroup:    "Full Body",
			SecondaryMuscleGroups: []string{"Forearms", "Traps", "Core"},
			Category:              domain.CategoryEndurance,
			Equipment:             "Kettlebells",
			Variations:            []string{"Suitcase Carry", "Overhead Carry", "Front Rack Carry"},
			SearchTerms:           []string{"farmer carry", "loaded carry", "grip endurance"},
			SportRelevance:        map[string]int{"football": 6, "hockey": 6, "golf": 4},
		},
		{
			ID:                    "plank",
			Name:                  "Plank",
			BaseExercise:          "Front Plank",
			Description:           "Isometric anti-extension hold keeping a straight line from head to heels.",
			PrimaryMuscleGroup:    "Core",
			SecondaryMuscleGroups: []string{"Shoulders", "Glutes"},
			Category:              domain.CategoryEndurance,
			Equipment:             "None",
			Variations:            []string{"Side Plank", "Plank With Reach", "Long Lever Plank"},
			SearchTerms:           []string{"plank", "core stability", "anti-extension"},
			SportRelevance:        map[string]int{"golf": 6, "swimming": 6, "running": 5, "tennis": 5, "hockey": 5},
		},
		{
			ID:                    "rotational-core",
			Name:                  "Rotational Core",
			BaseExercise:          "Cable Woodchop",
			Description:           "Diagonal cable chop training controlled trunk rotation from high to low.",
			PrimaryMuscleGroup:    "Core",
			SecondaryMuscleGroups: []string{"Obliques", "Shoulders"},
			Category:              domain.CategoryPower,
			Equipment:             "Cable Machine",
			Variations:            []string{"Pallof Press", "Landmine Rotation", "Low To High Chop"},
			SearchTerms:           []string{"woodchop", "anti-rotation", "rotational core"},
			SportRelevance:        map[string]int{"golf": 10, "tennis": 9, "baseball": 9, "hockey": 7},
		},
		{
			ID:                    "single-leg-balance",
			Name:                  "Single-Leg Balance",
			BaseExercise:          "Single Leg Romanian Deadlift",
			Description:           "Unilateral hinge that challenges balance, ankle stability and hip control.",
			PrimaryMuscleGroup:    "Hamstrings",
			SecondaryMuscleGroups: []string{"Glutes", "Core", "Ankles"},
			Category:              domain.CategoryBalance,
			Equipment:             "Dumbbell",
			Variations:            []string{"Single Leg Balance Reach", "Bosu Single Leg Stand"},
			SearchTerms:           []string{"single leg balance", "balance training", "proprioception"},
			SportRelevance:        map[string]int{"soccer": 8, "running": 8, "tennis": 7, "basketball": 7, "volleyball": 7, "golf": 6},
		},
		{
			ID:                    "mobility-flow",
			Name:                  "Mobility Flow",
			BaseExercise:          "World's Greatest Stretch",
			Description:           "Dynamic lunge-based stretch moving the hips, thoracic spine and hamstrings through range.",
			PrimaryMuscleGroup:    "Hips",
			SecondaryMuscleGroups: []string{"Thoracic Spine", "Hamstrings"},
			Category:              domain.CategoryMobility,
			Equipment:             "None",
			Variations:            []string{"90/90 Hip Switch", "Thoracic Rotation", "Deep Squat Hold"},
			SearchTerms:           []string{"mobility drill", "dynamic stretch", "hip mobility"},
			SportRelevance:        map[string]int{"golf": 8, "swimming": 7, "hockey": 7, "baseball": 6, "running": 6, "tennis": 6},
		},
		{
			ID:                    "conditioning",
			Name:                  "Conditioning",
			BaseExercise:          "Assault Bike Intervals",
			Description:           "Repeated high-output intervals on an air bike building anaerobic capacity.",
			PrimaryMuscleGroup:    "Full Body",
			SecondaryMuscleGroups: []string{"Legs", "Shoulders"},
			Category:              domain.CategoryEndurance,
			Equipment:             "Air Bike",
			Variations:            []string{"Rowing Intervals", "Shuttle Run Conditioning", "Sled Push Intervals"},
			SearchTerms:           []string{"conditioning intervals", "interval training", "work capacity"},
			SportRelevance:        map[string]int{"soccer": 8, "hockey": 9, "basketball": 8, "running": 7, "swimming": 6},
		},
	}
}

func defaultSportTerms() map[string][]string {
	return map[string][]string{
		"tennis":     {"tennis agility training", "tennis serve power", "tennis footwork drills"},
		"basketball": {"basketball vertical jump", "basketball conditioning", "basketball defensive slides"},
		"soccer":     {"soccer speed training", "soccer injury prevention", "soccer kicking power"},
		"football":   {"football combine training", "football linemen strength"},
		"baseball":   {"baseball rotational power", "baseball shoulder care"},
		"volleyball": {"volleyball jump training", "volleyball shoulder stability"},
		"running":    {"running economy drills", "runner strength training"},
		"swimming":   {"swimming dryland training", "swimmer shoulder strength"},
		"golf":       {"golf swing power", "golf mobility routine"},
		"hockey":     {"hockey skating power", "hockey stride strength"},
	}
}
