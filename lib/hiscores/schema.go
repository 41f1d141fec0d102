package hiscores

// The lite endpoints return bare positional CSV with no header, so the
// meaning of each line is fixed by these tables. Order follows the
// upstream leaderboard: skill lines first, then one line per activity.
// New entries are always appended upstream; surplus lines past the end
// of the activity table are skipped with a warning until the table
// catches up.

// SkillNames lists every skill line of a lite response in order. The
// first entry is the overall total.
var SkillNames = []string{
	"Overall",
	"Attack",
	"Defence",
	"Strength",
	"Hitpoints",
	"Ranged",
	"Prayer",
	"Magic",
	"Cooking",
	"Woodcutting",
	"Fletching",
	"Fishing",
	"Firemaking",
	"Crafting",
	"Smithing",
	"Mining",
	"Herblore",
	"Agility",
	"Thieving",
	"Slayer",
	"Farming",
	"Runecraft",
	"Hunter",
	"Construction",
	"Sailing",
}

// ActivityNames lists every activity line of a lite response in order,
// following the skill lines.
var ActivityNames = []string{
	"League Points",
	"Deadman Points",
	"Bounty Hunter - Hunter",
	"Bounty Hunter - Rogue",
	"Bounty Hunter (Legacy) - Hunter",
	"Bounty Hunter (Legacy) - Rogue",
	"Clue Scrolls (all)",
	"Clue Scrolls (beginner)",
	"Clue Scrolls (easy)",
	"Clue Scrolls (medium)",
	"Clue Scrolls (hard)",
	"Clue Scrolls (elite)",
	"Clue Scrolls (master)",
	"LMS - Rank",
	"PvP Arena - Rank",
	"Soul Wars Zeal",
	"Rifts closed",
	"Colosseum Glory",
	"Collections Logged",
	"Abyssal Sire",
	"Alchemical Hydra",
	"Amoxliatl",
	"Araxxor",
	"Artio",
	"Barrows Chests",
	"Bryophyta",
	"Callisto",
	"Calvar'ion",
	"Cerberus",
	"Chambers of Xeric",
	"Chambers of Xeric: Challenge Mode",
	"Chaos Elemental",
	"Chaos Fanatic",
	"Commander Zilyana",
	"Corporeal Beast",
	"Crazy Archaeologist",
	"Dagannoth Prime",
	"Dagannoth Rex",
	"Dagannoth Supreme",
	"Deranged Archaeologist",
	"Doom of Mokhaiotl",
	"Duke Sucellus",
	"General Graardor",
	"Giant Mole",
	"Grotesque Guardians",
	"Hespori",
	"Kalphite Queen",
	"King Black Dragon",
	"Kraken",
	"Kree'Arra",
	"K'ril Tsutsaroth",
	"Lunar Chests",
	"Mimic",
	"Nex",
	"Nightmare",
	"Phosani's Nightmare",
	"Obor",
	"Phantom Muspah",
	"Sarachnis",
	"Scorpia",
	"Scurrius",
	"Skotizo",
	"Sol Heredit",
	"Spindel",
	"Tempoross",
	"The Gauntlet",
	"The Corrupted Gauntlet",
	"The Hueycoatl",
	"The Leviathan",
	"The Royal Titans",
	"The Whisperer",
	"Theatre of Blood",
	"Theatre of Blood: Hard Mode",
	"Thermonuclear Smoke Devil",
	"Tombs of Amascut",
	"Tombs of Amascut: Expert Mode",
	"TzKal-Zuk",
	"TzTok-Jad",
	"Vardorvis",
	"Venenatis",
	"Vet'ion",
	"Vorkath",
	"Wintertodt",
	"Yama",
	"Zalcano",
	"Zulrah",
}
