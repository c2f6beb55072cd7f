package cmi

import "charm-money/internal/domain"

// Copy en ingles. Las traducciones viven en la capa de presentacion; aqui
// solo se guarda el texto base que usa el email y la API.

var traitLabels = map[domain.Trait]string{
	domain.TraitCloseness: "Closeness",
	domain.TraitControl:   "Control",
	domain.TraitSelfWorth: "Self-Worth",
	domain.TraitBoundary:  "Boundary",
	domain.TraitGrowth:    "Growth",
}

// poleLabels: [low, high].
var poleLabels = map[domain.Trait][2]string{
	domain.TraitCloseness: {"Avoidant", "Anxious"},
	domain.TraitControl:   {"Helpless", "Vigilant"},
	domain.TraitSelfWorth: {"Insecure", "Prideful"},
	domain.TraitBoundary:  {"Compliant", "Guarded"},
	domain.TraitGrowth:    {"Settled", "Driven"},
}

var nextSteps = map[domain.Trait][2]string{
	domain.TraitCloseness: {
		"Share one money decision this week with someone you trust before you make it.",
		"Before reacting to a money worry, write it down and wait a day before acting on it.",
	},
	domain.TraitControl: {
		"Pick one account you avoid and look at its balance every Monday for a month.",
		"Set a weekly review time and leave your accounts alone outside of it.",
	},
	domain.TraitSelfWorth: {
		"List three financial decisions you handled well this year.",
		"Ask for honest feedback on a recent purchase or investment and listen without defending it.",
	},
	domain.TraitBoundary: {
		"Practice saying \"let me think about it\" before agreeing to any money request.",
		"Choose one person you can be fully open with about your finances.",
	},
	domain.TraitGrowth: {
		"Name one small financial goal for the next 90 days and automate a first step.",
		"Schedule a month where the only goal is to keep what you already have working.",
	},
}

type identityText struct {
	name        string
	description string
	coaching    string
}

// identityCopy esta indexado por id-1; el bit pattern es el binario de la posicion.
var identityCopy = [32]identityText{
	{
		name:        "The Quiet Drifter",
		description: "You keep money at arm's length and let others steer, trusting that things will work out if you stay out of the way.",
		coaching:    "Small, visible wins will rebuild the sense that your choices matter.",
	},
	{
		name:        "The Hidden Striver",
		description: "You want more from money but pursue it privately, doubting you deserve the seat at the table you are working toward.",
		coaching:    "Let one person see your ambition; saying it out loud makes it real.",
	},
	{
		name:        "The Still Hermit",
		description: "You protect your finances by keeping them closed off, preferring calm and quiet over growth or outside advice.",
		coaching:    "Opening a single window, such as one shared budget conversation, can lower the cost of staying closed.",
	},
	{
		name:        "The Lone Climber",
		description: "You push upward on your own, guarding your plans closely and carrying more doubt than you let show.",
		coaching:    "Progress compounds faster when someone else knows the route you are taking.",
	},
	{
		name:        "The Gentle Dreamer",
		description: "You hold a confident picture of the life money should buy but prefer not to manage the details yourself.",
		coaching:    "Translate one part of the dream into a number and a date.",
	},
	{
		name:        "The Visionary Wanderer",
		description: "You chase big ideas with confidence and independence, though follow-through depends on the mood of the moment.",
		coaching:    "Pair every new idea with one boring system that keeps it alive.",
	},
	{
		name:        "The Private Idealist",
		description: "You believe in your own taste and values, keep others out of your decisions, and rarely feel the need to change course.",
		coaching:    "Invite a second opinion before your next large commitment.",
	},
	{
		name:        "The Solitary Visionary",
		description: "You trust your judgment, keep your cards close and aim high, sometimes without a safety net.",
		coaching:    "Build a buffer that lets your vision survive a bad quarter.",
	},
	{
		name:        "The Careful Keeper",
		description: "You track every dollar and keep people at a distance, finding safety in control more than in connection.",
		coaching:    "Allow one category of spending that exists only for enjoyment.",
	},
	{
		name:        "The Anxious Planner",
		description: "You plan, track and optimize, driven by a quiet fear that it will never be quite enough.",
		coaching:    "Define what \"enough\" looks like in writing and check it each quarter.",
	},
	{
		name:        "The Fortress Saver",
		description: "You build walls of savings and rules, rarely letting anyone inside or spending beyond what feels safe.",
		coaching:    "Decide in advance how much security is sufficient so saving can stop being a reflex.",
	},
	{
		name:        "The Relentless Optimizer",
		description: "You combine tight control with constant striving, squeezing efficiency out of every decision on your own.",
		coaching:    "Measure rest and relationships with the same seriousness as returns.",
	},
	{
		name:        "The Composed Analyst",
		description: "You evaluate money calmly and confidently, keeping emotional distance and preferring stability to risk.",
		coaching:    "Numbers tell most of the story; ask what they leave out.",
	},
	{
		name:        "The Strategic Investor",
		description: "You plan with confidence and aim for growth, keeping decisions analytical and mostly to yourself.",
		coaching:    "Share your strategy with someone who will challenge it.",
	},
	{
		name:        "The Independent Auditor",
		description: "You scrutinize, verify and decide alone, confident in your standards and wary of outside influence.",
		coaching:    "Trust can be tested in small amounts; start with one delegated task.",
	},
	{
		name:        "The Sovereign Architect",
		description: "You design your financial life with precision and ambition, answering to no one but yourself.",
		coaching:    "Leave room in the blueprint for people you care about.",
	},
	{
		name:        "The Devoted Giver",
		description: "You use money to stay close to others, often giving more than is comfortable and asking little in return.",
		coaching:    "Your generosity lasts longer when it has a budget.",
	},
	{
		name:        "The Hopeful Seeker",
		description: "You want growth and connection at once, leaning on others for reassurance about where money should go.",
		coaching:    "Write your own definition of progress before asking for anyone else's.",
	},
	{
		name:        "The Wary Nurturer",
		description: "You care deeply about the people around you but hold back when money requests start to feel unsafe.",
		coaching:    "Clear agreements let you keep caring without keeping score.",
	},
	{
		name:        "The Restless Rescuer",
		description: "You work hard to support others and protect yourself at the same time, often feeling stretched between both.",
		coaching:    "Choose who you rescue on purpose rather than by default.",
	},
	{
		name:        "The Generous Host",
		description: "You enjoy sharing and treating others, confident in your worth and happy to let money flow.",
		coaching:    "Hosting well includes hosting your own future.",
	},
	{
		name:        "The Bright Spender",
		description: "You spend with flair to connect and impress, chasing new experiences and the next upgrade.",
		coaching:    "Pause 48 hours before any purchase meant to be seen.",
	},
	{
		name:        "The Proud Protector",
		description: "You take pride in providing for those close to you while guarding how much they know about the details.",
		coaching:    "Openness about limits is a form of strength, not a loss of face.",
	},
	{
		name:        "The Spotlight Chaser",
		description: "You pursue status and growth with energy, keeping the real numbers behind a confident front.",
		coaching:    "Let your net worth, not your visible spending, be the scoreboard.",
	},
	{
		name:        "The Watchful Caretaker",
		description: "You keep a close eye on money to protect the people you love, worrying that any slip could hurt them.",
		coaching:    "Give yourself the same patience you give the people you protect.",
	},
	{
		name:        "The Tireless Provider",
		description: "You work and plan without pause to secure others, measuring your worth by how much you can give.",
		coaching:    "Set a finish line for this season of effort.",
	},
	{
		name:        "The Vigilant Sentinel",
		description: "You stand guard over finances and relationships alike, alert to risks others never notice.",
		coaching:    "Not every risk needs a response; rank them and let the lower half go.",
	},
	{
		name:        "The Safety Builder",
		description: "You build layer after layer of protection while still reaching for more, rarely feeling finished.",
		coaching:    "Name the point at which you would feel safe, then plan for life after it.",
	},
	{
		name:        "The Steady Patron",
		description: "You support others with confidence and structure, preferring a stable, well-managed life.",
		coaching:    "Check that your support still matches what people actually need.",
	},
	{
		name:        "The Ambitious Champion",
		description: "You lead with confidence, plan carefully and bring others along on your climb.",
		coaching:    "Delegate one financial responsibility to build trust both ways.",
	},
	{
		name:        "The Guarded Commander",
		description: "You take charge of money with conviction and care for others from behind firm boundaries.",
		coaching:    "Explain the why behind your rules so others can follow them willingly.",
	},
	{
		name:        "The Empire Builder",
		description: "You pursue connection, control, confidence and growth all at once, building something large and carefully defended.",
		coaching:    "Decide what the empire is for, and let that answer guide the next expansion.",
	},
}

// familyCopy indexado por prefijo de 3 bits (closeness, control, selfWorth).
var familyCopy = map[string]domain.PatternFamily{
	"000": {
		Name:            "The Reflectors",
		Essence:         "Quiet observers who step back from money to keep the peace.",
		Tension:         "Distance feels safe, yet it leaves decisions to chance or to others.",
		GrowthDirection: "Move from watching to choosing, one decision at a time.",
		Strategy:        "Small, regular check-ins that build confidence through evidence.",
	},
	"001": {
		Name:            "The Idealists",
		Essence:         "Independent dreamers guided by values more than spreadsheets.",
		Tension:         "Belief in the vision runs ahead of the systems that fund it.",
		GrowthDirection: "Ground ideals in concrete plans without shrinking them.",
		Strategy:        "Turn each ideal into one automated habit.",
	},
	"010": {
		Name:            "The Organizers",
		Essence:         "Careful trackers who find calm in structure and order.",
		Tension:         "Control soothes worry but rarely feels like enough.",
		GrowthDirection: "Let structure serve life instead of replacing it.",
		Strategy:        "Define sufficiency targets and review them on a schedule.",
	},
	"011": {
		Name:            "The Evaluators",
		Essence:         "Confident analysts who decide on their own terms.",
		Tension:         "Self-reliance keeps out both bad advice and good support.",
		GrowthDirection: "Add trusted input without giving up judgment.",
		Strategy:        "Invite one structured second opinion on big moves.",
	},
	"100": {
		Name:            "The Empaths",
		Essence:         "Warm connectors who use money to care for others.",
		Tension:         "Giving easily can quietly drain their own foundation.",
		GrowthDirection: "Care for others from a place of stability.",
		Strategy:        "Budget generosity explicitly so it can be sustained.",
	},
	"101": {
		Name:            "The Performers",
		Essence:         "Expressive spenders who share their confidence through money.",
		Tension:         "Visible success can outrun real security.",
		GrowthDirection: "Build wealth that does not need an audience.",
		Strategy:        "Separate spending for connection from spending for status.",
	},
	"110": {
		Name:            "The Guardians",
		Essence:         "Protective providers who keep watch for everyone.",
		Tension:         "Constant vigilance guards others but wears down the guard.",
		GrowthDirection: "Share the watch and allow rest.",
		Strategy:        "Pre-commit to a safety threshold and relax once it is met.",
	},
	"111": {
		Name:            "The Builders",
		Essence:         "Driven leaders who build big and bring people with them.",
		Tension:         "Ambition and control can crowd out trust.",
		GrowthDirection: "Build with others, not only for them.",
		Strategy:        "Delegate deliberately and measure shared progress.",
	},
}
