package corpus

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/okian/marquee/internal/domain/model"
)

// Embedded-JSON parsing for the provider's nested columns. Failures
// degrade to documented defaults (empty genres, Unknown talent,
// non-franchise) and surface as an error so the cleaning stage can
// count them; revenue-affecting fields are never silently invented.

// creditEntry covers both cast and crew members; only the fields we
// read are declared.
type creditEntry struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type namedObject struct {
	Name string `json:"name"`
}

// Genres parses the genres column into a list of names. An empty or
// null column is a legitimate empty set; anything unparseable returns
// an empty set plus the parse error.
func Genres(raw string) ([]string, error) {
	if isEmptyJSON(raw) {
		return nil, nil
	}
	var entries []namedObject
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if name := strings.TrimSpace(e.Name); name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// Director parses the crew column and returns the first member whose
// job is "Director", or UnknownTalent when absent or unparseable.
func Director(raw string) (string, error) {
	if isEmptyJSON(raw) {
		return model.UnknownTalent, nil
	}
	var crew []creditEntry
	if err := json.Unmarshal([]byte(raw), &crew); err != nil {
		return model.UnknownTalent, err
	}
	for _, member := range crew {
		if member.Job == "Director" && member.Name != "" {
			return member.Name, nil
		}
	}
	return model.UnknownTalent, nil
}

// TopActor parses the cast column and returns the #1 billed name, or
// UnknownTalent when the cast is empty or unparseable.
func TopActor(raw string) (string, error) {
	if isEmptyJSON(raw) {
		return model.UnknownTalent, nil
	}
	var cast []creditEntry
	if err := json.Unmarshal([]byte(raw), &cast); err != nil {
		return model.UnknownTalent, err
	}
	if len(cast) == 0 || cast[0].Name == "" {
		return model.UnknownTalent, nil
	}
	return cast[0].Name, nil
}

// IsFranchise reports whether the collection column holds an object,
// i.e. the movie belongs to a collection. Null and unparseable values
// both read as false.
func IsFranchise(raw string) (bool, error) {
	if isEmptyJSON(raw) {
		return false, nil
	}
	var coll map[string]any
	if err := json.Unmarshal([]byte(raw), &coll); err != nil {
		return false, err
	}
	return len(coll) > 0, nil
}

func isEmptyJSON(raw string) bool {
	raw = strings.TrimSpace(raw)
	return raw == "" || raw == "null"
}
