package query

import "strings"

// looseEntities maps the nouns the loose form recognizes, in priority
// order: the first matched entity wins, but every entity noun is
// consumed so none bleeds into the text search.
var looseEntities = []struct {
	entity  string
	phrases []string
}{
	{"work_session", []string{"work sessions", "work session", "time entries", "sessions", "session", "hours", "worked"}},
	{"meeting", []string{"meetings", "meeting", "calls", "call"}},
	{"person", []string{"people", "persons", "person", "contacts", "contact"}},
	{"client", []string{"clients", "client"}},
	{"project", []string{"projects", "project"}},
	{"employer", []string{"employers", "employer"}},
	{"note", []string{"notes", "note"}},
	{"reminder", []string{"reminders", "reminder", "todos", "todo"}},
}

// looseTimePhrases translates relative-time words to shortcut tokens
// the compiler resolves against the user's calendar.
var looseTimePhrases = []struct {
	phrase string
	token  string
}{
	{"this week", "this_week"},
	{"this month", "this_month"},
	{"this year", "this_year"},
	{"today", "today"},
}

// looseTimeFields names the field a relative-time word constrains for
// each entity.
var looseTimeFields = map[string]string{
	"work_session": "date",
	"meeting":      "start_time",
	"reminder":     "reminder_time",
	"person":       "created_at",
	"client":       "created_at",
	"project":      "created_at",
	"employer":     "created_at",
	"note":         "created_at",
}

var looseStatusWords = map[string][]struct{ word, value string }{
	"project": {{"active", "active"}, {"paused", "paused"}, {"completed", "completed"}},
	"client":  {{"active", "active"}, {"past", "past"}},
}

// looseFillerWords are dropped before the leftover text becomes a
// contains filter.
var looseFillerWords = map[string]bool{
	"a": true, "an": true, "and": true, "or": true, "the": true,
	"i": true, "my": true, "me": true, "we": true, "our": true,
	"show": true, "find": true, "search": true, "get": true, "list": true,
	"what": true, "which": true, "how": true, "many": true, "much": true,
	"did": true, "do": true, "does": true, "is": true, "are": true,
	"was": true, "were": true, "have": true, "has": true, "had": true,
	"in": true, "on": true, "at": true, "for": true, "from": true,
	"to": true, "of": true, "with": true, "about": true, "all": true,
	"work": true, "worked": true, "meet": true, "met": true,
	"noted": true, "remind": true, "reminded": true, "track": true,
	"tracked": true, "log": true, "logged": true, "record": true,
	"recorded": true, "yesterday": true, "last": true, "recent": true,
}

// ParseLoose translates a small phrase vocabulary into a structured
// Query: an entity noun picks the base entity (work_session when none
// matches), relative-time words become time filters, privacy and
// status words become equality filters, and whatever remains becomes a
// case-insensitive contains on the entity's text field. It never
// fails; unrecognized input just widens the search.
func ParseLoose(text string) *Query {
	tokens := looseTokens(text)
	used := make([]bool, len(tokens))

	entity := ""
	for _, candidate := range looseEntities {
		matched := false
		for _, phrase := range candidate.phrases {
			if consumePhrase(tokens, used, phrase) {
				matched = true
			}
		}
		if matched && entity == "" {
			entity = candidate.entity
		}
	}
	if entity == "" {
		entity = "work_session"
	}
	q := &Query{EntityType: entity}

	timeToken := ""
	for _, tp := range looseTimePhrases {
		if consumePhrase(tokens, used, tp.phrase) && timeToken == "" {
			timeToken = tp.token
		}
	}
	if timeToken != "" {
		field := looseTimeFields[entity]
		op := OpGte
		if timeToken == "today" && entities[entity].fields[field].kind == kindDate {
			op = OpEq
		}
		q.Filters = append(q.Filters, FilterClause{Field: field, Operator: op, Value: timeToken})
	}

	var levels []any
	for _, level := range []string{"public", "internal", "private"} {
		if consumePhrase(tokens, used, level) {
			levels = append(levels, level)
		}
	}
	if _, ok := entities[entity].fields["privacy_level"]; ok && len(levels) > 0 {
		if len(levels) == 1 {
			q.Filters = append(q.Filters, FilterClause{Field: "privacy_level", Operator: OpEq, Value: levels[0]})
		} else {
			q.Filters = append(q.Filters, FilterClause{Field: "privacy_level", Operator: OpIn, Value: levels})
		}
	}

	status := ""
	for _, sw := range looseStatusWords[entity] {
		if consumePhrase(tokens, used, sw.word) && status == "" {
			status = sw.value
		}
	}
	if status != "" {
		q.Filters = append(q.Filters, FilterClause{Field: "status", Operator: OpEq, Value: status})
	}

	if entity == "reminder" {
		completed := consumePhrase(tokens, used, "completed")
		if consumePhrase(tokens, used, "done") {
			completed = true
		}
		q.Filters = append(q.Filters, FilterClause{Field: "is_completed", Operator: OpEq, Value: completed})
	}

	var leftover []string
	for i, tok := range tokens {
		if !used[i] && !looseFillerWords[tok] {
			leftover = append(leftover, tok)
		}
	}
	if len(leftover) > 0 {
		q.Filters = append(q.Filters, FilterClause{
			Field:    entities[entity].textField,
			Operator: OpContains,
			Value:    strings.Join(leftover, " "),
		})
	}
	return q
}

func looseTokens(text string) []string {
	lower := strings.Map(func(r rune) rune {
		switch r {
		case '?', '!', ',', '.', ';', ':', '"', '\'':
			return ' '
		}
		return r
	}, strings.ToLower(text))
	return strings.Fields(lower)
}

// consumePhrase marks every unconsumed occurrence of the
// space-separated phrase and reports whether at least one occurred.
func consumePhrase(tokens []string, used []bool, phrase string) bool {
	words := strings.Fields(phrase)
	found := false
	for i := 0; i+len(words) <= len(tokens); i++ {
		match := true
		for j, w := range words {
			if used[i+j] || tokens[i+j] != w {
				match = false
				break
			}
		}
		if match {
			for j := range words {
				used[i+j] = true
			}
			found = true
		}
	}
	return found
}
