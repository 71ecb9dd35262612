package frenchlang

import "strings"

type langEntry struct {
	code  string   // normalized 3-letter code
	forms []string // codes, region variants, and word forms that map to it
}

var langTable = []langEntry{
	{"FRA", []string{"fr", "fre", "fra", "french", "français", "francais", "fr-fr", "fr-ca", "fr-be", "fr-ch", "fr-qc"}},
	{"ENG", []string{"en", "eng", "english", "anglais", "en-us", "en-gb"}},
	{"SPA", []string{"es", "spa", "spanish", "español", "castellano", "es-es"}},
	{"DEU", []string{"de", "deu", "ger", "german", "deutsch"}},
	{"ITA", []string{"it", "ita", "italian", "italiano"}},
	{"POR", []string{"pt", "por", "portuguese", "português", "pt-br", "pt-pt"}},
	{"JPN", []string{"ja", "jpn", "japanese"}},
	{"KOR", []string{"ko", "kor", "korean"}},
	{"ZHO", []string{"zh", "zho", "chi", "chinese", "mandarin", "zh-cn"}},
	{"RUS", []string{"ru", "rus", "russian"}},
	{"ARA", []string{"ar", "ara", "arabic"}},
	{"HIN", []string{"hi", "hin", "hindi"}},
	{"NLD", []string{"nl", "nld", "dut", "dutch"}},
	{"POL", []string{"pl", "pol", "polish"}},
	{"TUR", []string{"tr", "tur", "turkish"}},
	{"THA", []string{"th", "tha", "thai"}},
}

var byForm map[string]string

func init() {
	byForm = make(map[string]string, len(langTable)*6)
	for _, e := range langTable {
		for _, f := range e.forms {
			byForm[f] = e.code
		}
	}
}

// normalizeLang maps a language name, code, or region variant to a
// 3-letter code. Unrecognized values fall back to their uppercased first
// three letters.
func normalizeLang(lang string) string {
	raw := strings.ToLower(strings.TrimSpace(lang))
	if raw == "" {
		return ""
	}
	if code, ok := byForm[raw]; ok {
		return code
	}
	upper := strings.ToUpper(raw)
	if len(upper) >= 3 {
		return upper[:3]
	}
	return upper
}

// isFrenchLang reports whether a raw language value denotes French.
func isFrenchLang(lang string) bool {
	raw := strings.ToLower(strings.TrimSpace(lang))
	return byForm[raw] == "FRA" || strings.HasPrefix(raw, "fr")
}
