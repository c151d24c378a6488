package patterns

// Fillers are low-information words whose overuse reads as reduced confidence.
var Fillers = NewDictionary("filler_words", map[string]int{
	"um":        1,
	"uh":        1,
	"like":      1,
	"you know":  2,
	"kind of":   1,
	"sort of":   1,
	"basically": 1,
	"literally": 1,
	"actually":  1,
	"really":    1,
})

// Hedging phrases weaken the claim they qualify.
var Hedging = NewDictionary("hedging", map[string]int{
	"i think":       2,
	"maybe":         1,
	"possibly":      1,
	"probably":      1,
	"i feel":        2,
	"in my opinion": 2,
	"it seems":      2,
	"kind of":       1,
	"sort of":       1,
	"i guess":       2,
})

var CallToAction = NewList("call_to_action",
	"now", "today", "immediately", "act", "join",
	"discover", "learn", "start", "try", "buy",
)

var PowerWords = NewList("power_words",
	"proven", "exclusive", "essential", "breakthrough",
	"revolutionary", "powerful", "ultimate", "guarantee",
)

var EvidenceIndicators = NewList("evidence_indicators",
	"studies show", "research indicates", "data demonstrates",
	"statistics reveal", "experts agree", "evidence suggests",
)

// Jargon is business and technical filler vocabulary that obscures meaning
// when it piles up.
var Jargon = NewList("jargon",
	"synergy", "synergies", "leverage", "paradigm", "bandwidth",
	"circle back", "deep dive", "low-hanging fruit", "move the needle",
	"best practice", "value-add", "ecosystem", "scalable", "disrupt",
	"holistic", "actionable", "touch base", "core competency",
	"thought leadership", "streamline", "operationalize", "ideate",
	"game changer", "game-changer", "win-win", "drill down",
	"mission-critical", "bleeding edge", "cutting edge", "granular",
	"incentivize", "deliverables", "stakeholder alignment", "net-net",
)

// FallacyCues are stock phrasings of common argument fallacies: appeals to
// popularity, false dichotomies, slippery slopes and sweeping generalisations.
var FallacyCues = NewDictionary("fallacy_cues", map[string]int{
	"everyone knows":            1,
	"everybody knows":           1,
	"everyone agrees":           1,
	"everybody is doing":        1,
	"it's common sense":         1,
	"either we":                 1,
	"there is no other way":     1,
	"the only option":           1,
	"if we allow":               1,
	"next thing you know":       1,
	"will inevitably lead to":   1,
	"always been done this way": 1,
	"they always":               1,
	"they never":                1,
})

// Openers, Transitions and Closers mark the three parts of a talk.
var Openers = NewList("openers",
	"today", "i want to", "i'd like to", "let me", "imagine",
	"first,", "let's start", "we're here", "the problem", "once",
	"have you ever", "good morning", "good afternoon", "welcome",
)

var Transitions = NewList("transitions",
	"because", "however", "for example", "for instance", "then",
	"next", "second", "therefore", "as a result", "that's why",
	"on the other hand", "in addition", "which means", "consider",
)

var Closers = NewList("closers",
	"in conclusion", "finally", "to summarize", "in summary",
	"to wrap up", "the bottom line", "thank you", "remember",
	"so let's", "my ask", "the takeaway", "in short",
)

// All lists every dictionary, in the order they are printed.
func All() []*Dictionary {
	return []*Dictionary{
		Fillers, Hedging, CallToAction, PowerWords, EvidenceIndicators,
		Jargon, FallacyCues, Openers, Transitions, Closers,
	}
}
