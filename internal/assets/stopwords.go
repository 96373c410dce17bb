package assets

// stopwords are tokens the permissive ticker pattern matches that are almost
// never tickers: pronouns, helper verbs, short filler words, and generic
// finance nouns. A $-prefixed token bypasses this set.
var stopwords = map[string]bool{
	// pronouns and short filler
	"it": true, "its": true, "is": true, "the": true, "and": true,
	"for": true, "you": true, "me": true, "my": true, "we": true,
	"us": true, "to": true, "of": true, "in": true, "on": true,
	"at": true, "do": true, "did": true, "does": true, "an": true,
	"as": true, "be": true, "by": true, "if": true, "or": true,
	"up": true, "so": true, "no": true, "he": true,
	"she": true, "him": true, "her": true, "his": true, "they": true,
	"them": true, "this": true, "that": true, "these": true, "those": true,
	"vs": true, "versus": true,

	// question words and helper verbs
	"how": true, "what": true, "whats": true, "when": true, "where": true,
	"why": true, "who": true, "can": true, "could": true, "will": true,
	"would": true, "should": true, "are": true, "was": true, "were": true,
	"been": true, "being": true, "have": true, "has": true, "had": true,
	"not": true, "about": true, "with": true, "from": true, "doing": true,
	"going": true, "get": true, "got": true, "tell": true, "show": true,
	"give": true, "think": true, "know": true, "like": true, "want": true,
	"compare": true, "compared": true, "against": true, "check": true,
	"analyze": true, "analyse": true, "analysis": true, "outlook": true,
	"forecast": true, "looks": true, "looking": true,
	"now": true, "today": true, "right": true, "some": true, "any": true,
	"all": true, "more": true, "much": true, "very": true, "just": true,
	"also": true, "than": true, "then": true, "there": true, "here": true,

	// courtesy
	"yes": true, "ok": true, "okay": true, "thanks": true, "thank": true,
	"please": true, "hey": true, "hi": true, "hello": true, "good": true,
	"bad": true, "great": true, "nice": true, "cool": true, "sure": true,

	// generic finance nouns
	"price": true, "prices": true, "coin": true, "coins": true,
	"token": true, "tokens": true, "crypto": true, "stock": true,
	"stocks": true, "market": true, "markets": true, "chart": true,
	"charts": true, "news": true, "buy": true, "sell": true,
	"pump": true, "dump": true, "moon": true, "gain": true,
	"loss": true, "safe": true, "scam": true, "rug": true,
	"trade": true, "trading": true, "hold": true, "worth": true,
	"value": true, "bull": true, "bear": true, "bullish": true,
	"bearish": true, "cap": true, "volume": true, "top": true,
	"best": true, "worst": true, "biggest": true, "new": true,
	"money": true, "dollar": true, "usd": true,
}
