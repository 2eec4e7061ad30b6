package scene

// System messages shown by the stages.
var (
	KeyFound = Line{
		Speaker: System,
		Title:   "Item found",
		Text:    "You found a key of condensed moonlight. Locked doors will yield to it.",
	}
	LockedDoor = Line{
		Speaker: System,
		Title:   "Locked",
		Text:    "The door is sealed. Perhaps a key lies hidden somewhere in this hall.",
	}
	TimedPuzzleFailed = Line{
		Speaker: System,
		Title:   "Locked",
		Text:    "The door slammed shut. You were not swift enough. Step on the plate again.",
	}
)

// Lines for the guardian encounter.
var (
	RuneGranted = Line{
		Speaker: System,
		Title:   "Fragment of Courage",
		Text:    "The library bestows gifts not of power, but of potential. The leap of faith is often the one that carries you highest. (Jump again in mid-air.)",
	}
	WeaponGranted = Line{
		Speaker: System,
		Title:   "Fragment of Wisdom",
		Text:    "True strength is not in repelling the storm, but in knowing when to shield yourself from its fury. (C fires, X overcharges.)",
	}

	GuardianDefeated = []Line{
		{Speaker: Guardian, Title: "Guardian", Text: "So... the story is complete. You have read what I could not let the careless read."},
		{Speaker: Lumin, Title: "Lumin", Text: "I never wanted to break your library. I only wanted to understand it."},
		{Speaker: System, Title: "System", Text: "The final spellbook shimmers into view. Its pages hold the way out."},
	}
)

// BookFound returns the dialogue for a collected story fragment.
func BookFound(fragment string) Line {
	return Line{Speaker: Lumin, Title: "Story fragment", Text: fragment}
}
