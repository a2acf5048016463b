package seed

var tagPool = []string{"good_with_kids", "calm", "energetic", "hypoallergenic", "low_shedding", "independent", "playful"}

var petTypes = []string{"dog", "cat", "rabbit", "parrot", "hamster", "fish", "turtle"}

var breedsByType = map[string][]string{
	"dog":     {"Golden Retriever", "Poodle", "Bulldog", "Beagle", "Shih Tzu"},
	"cat":     {"Siamese", "Maine Coon", "Persian", "Ragdoll", "Bengal"},
	"rabbit":  {"Lionhead", "Dutch", "Mini Lop", "Flemish Giant", "Holland Lop"},
	"parrot":  {"Macaw", "Cockatiel", "Budgie", "African Grey", "Amazon"},
	"hamster": {"Syrian", "Dwarf", "Chinese", "Campbell's", "Roborovski"},
	"fish":    {"Betta", "Goldfish", "Angelfish", "Guppy", "Molly"},
	"turtle":  {"Red-Eared Slider", "Box Turtle", "Snapping Turtle", "Painted Turtle", "Musk Turtle"},
}

var petNamePool = []string{
	"FluffyPaws", "TinyWhiskers", "HappyTail", "SleepyNose", "BouncyBean", "LazyBark", "SassyMeow", "ChubbyFang", "WigglyClaw", "PlayfulStripe",
	"CleverSpot", "LoyalToes", "SpeedyEars", "ZippyFur", "BraveBounce", "ShySnout", "CurlyShadow", "GoofySniff", "FurryMittens", "CuddlySpark",
	"FuzzyWhiskers", "HappyPaws", "SnugglyFur", "SpeedyTail", "TinyToes", "ShadowPaws", "FluffyEars", "ZippyBark", "ChillBean", "SpunkyNose",
	"GoofyClaw", "LoyalFur", "BouncySnout", "FierceWhiskers", "GentleEars", "BoldTail", "SoftPaws", "ShinyNose", "TinyMittens", "SnappySpot",
	"CurlyBounce", "TidyFur", "DizzyShadow", "NimbleWhiskers", "QuietPaws", "GiddyTail", "SleepyBean", "FurryClaw", "WildMeow", "ZanyBark",
	"FriendlyToes", "CuriousEars", "PeppySnout", "CozyStripe", "DashingFur", "PlayfulPaws", "SillyShadow", "JoyfulNose", "MellowMeow", "PerkyFang",
	"MuddyClaw", "DustyBean", "PatchyTail", "SniffyEars", "BravePaws", "CloudyFur", "GentleToes", "PeppyMittens", "ProudStripe", "TwitchyClaw",
	"QuirkySnout", "TidyTail", "PerkyNose", "CleverWhiskers", "CrispyBounce", "SleepyFur", "DrowsyToes", "SlinkyEars", "SoftSniff", "LushWhiskers",
	"BreezyTail", "FloppyFur", "TiredPaws", "QuietBounce", "NoisyMittens", "SassySnout", "PlayfulToes", "CozyBark", "WhiskeryShadow", "FeistyFang",
	"ZippyNose", "BouncyMittens", "CleverClaw", "LoyalStripe", "ChillEars", "FurryWhiskers", "JumpyPaws", "PurringBean", "JoyfulTail", "GiddyFur",
}

var firstNames = []string{
	"Ana", "Bruno", "Camila", "Diego", "Elena", "Felipe", "Gabriela", "Hugo", "Isabel", "Javier",
	"Karina", "Lucas", "Mariana", "Nicolás", "Olivia", "Pablo", "Renata", "Santiago", "Tomás", "Valentina",
}

var lastNames = []string{
	"García", "Rodríguez", "López", "Martínez", "Hernández", "Pérez", "Sánchez", "Ramírez", "Torres", "Flores",
	"Rivera", "Gómez", "Díaz", "Vargas", "Castro", "Morales", "Ortiz", "Silva", "Rojas", "Navarro",
}

var shelterNames = []string{"Happy Tails", "Second Chance", "Paws & Claws", "Safe Haven", "Furever Home", "Little Friends", "Open Arms"}

var streets = []string{"Main St", "Oak Ave", "Maple Rd", "Cedar Ln", "Pine St", "Elm Dr", "Lakeview Blvd"}

var behaviorNotes = []string{
	"Gets along with other animals.",
	"Needs a quiet home.",
	"Loves long walks.",
	"A bit shy at first, warms up quickly.",
	"Very food motivated.",
	"Enjoys being brushed.",
}
