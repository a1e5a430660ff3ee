package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"skill-radar/internal/model"
)

var roleAliases = map[string]string{
	"developer":                 "Software Developer",
	"dev":                       "Software Developer",
	"programmer":                "Software Developer",
	"engineer":                  "Software Engineer",
	"swe":                       "Software Engineer",
	"data scientist":            "Data Scientist",
	"data engineer":             "Data Engineer",
	"ml engineer":               "ML Engineer",
	"machine learning engineer": "ML Engineer",
	"backend developer":         "Backend Developer",
	"backend engineer":          "Backend Developer",
	"frontend developer":        "Frontend Developer",
	"frontend engineer":         "Frontend Developer",
	"full stack":                "Full Stack Developer",
	"fullstack":                 "Full Stack Developer",
	"devops":                    "DevOps Engineer",
	"devops engineer":           "DevOps Engineer",
	"sre":                       "Site Reliability Engineer",
	"site reliability engineer": "Site Reliability Engineer",
}

var rolePatterns = []string{
	`(?i)\b(?:Senior|Junior|Lead|Principal)\s+(?:Software\s+)?(?:Developer|Engineer|Programmer)\b`,
	`(?i)\b(?:Data\s+)?(?:Scientist|Engineer|Analyst)\b`,
	`(?i)\b(?:ML|Machine Learning|AI)\s+Engineer\b`,
	`(?i)\b(?:Backend|Frontend|Full Stack|Full-Stack)\s+(?:Developer|Engineer)\b`,
	`(?i)\bDevOps\s+Engineer\b`,
	`(?i)\bSRE\b`,
}

// RoleExtractor pulls job roles out of posting titles.
type RoleExtractor struct {
	patterns []*regexp.Regexp
	log      *zap.SugaredLogger
}

func NewRoleExtractor(log *zap.SugaredLogger) *RoleExtractor {
	patterns := make([]*regexp.Regexp, 0, len(rolePatterns))
	for _, p := range rolePatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return &RoleExtractor{patterns: patterns, log: log}
}

func (e *RoleExtractor) FromRecords(records []model.RawRecord) []string {
	if e == nil {
		return nil
	}
	all := make([]string, 0)
	for _, rec := range records {
		if strings.TrimSpace(rec.Title) == "" {
			continue
		}
		all = append(all, e.FromText(rec.Title)...)
	}
	return all
}

func (e *RoleExtractor) FromText(text string) []string {
	if e == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	found := make(map[string]struct{})
	for _, re := range e.patterns {
		for _, m := range re.FindAllString(text, -1) {
			found[strings.ToLower(m)] = struct{}{}
		}
	}

	textLower := strings.ToLower(text)
	for alias, name := range roleAliases {
		if strings.Contains(textLower, alias) {
			found[strings.ToLower(name)] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for r := range found {
		out = append(out, r)
	}
	return out
}

func (e *RoleExtractor) Normalize(roles []string) map[string]int {
	normalized := make(map[string]int, len(roles))
	for _, role := range roles {
		lower := strings.ToLower(strings.TrimSpace(role))
		if lower == "" {
			continue
		}
		name, ok := roleAliases[lower]
		if !ok {
			name = titleCase(role)
		}
		normalized[name]++
	}
	return normalized
}
