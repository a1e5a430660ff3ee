package extract

import (
	"regexp"
	"strings"

	prose "github.com/jdkato/prose/v2"
	"go.uber.org/zap"

	"skill-radar/internal/model"
)

// skillAliases maps every recognized spelling (lowercase) to the canonical
// display name.
var skillAliases = map[string]string{
	"js":           "JavaScript",
	"javascript":   "JavaScript",
	"ts":           "TypeScript",
	"typescript":   "TypeScript",
	"py":           "Python",
	"python":       "Python",
	"java":         "Java",
	"cpp":          "C++",
	"c++":          "C++",
	"c#":           "C#",
	"csharp":       "C#",
	"go":           "Go",
	"golang":       "Go",
	"rust":         "Rust",
	"php":          "PHP",
	"ruby":         "Ruby",
	"swift":        "Swift",
	"kotlin":       "Kotlin",
	"scala":        "Scala",
	"react":        "React",
	"reactjs":      "React",
	"angular":      "Angular",
	"angularjs":    "Angular",
	"vue":          "Vue.js",
	"vuejs":        "Vue.js",
	"node":         "Node.js",
	"nodejs":       "Node.js",
	"node.js":      "Node.js",
	"spring":       "Spring Boot",
	"springboot":   "Spring Boot",
	"spring boot":  "Spring Boot",
	"django":       "Django",
	"flask":        "Flask",
	"express":      "Express.js",
	"expressjs":    "Express.js",
	"tensorflow":   "TensorFlow",
	"pytorch":      "PyTorch",
	"keras":        "Keras",
	"scikit-learn": "scikit-learn",
	"sklearn":      "scikit-learn",
	"kubernetes":   "Kubernetes",
	"k8s":          "Kubernetes",
	"docker":       "Docker",
	"aws":          "AWS",
	"azure":        "Azure",
	"gcp":          "Google Cloud",
	"google cloud": "Google Cloud",
}

var skillPatterns = []string{
	`(?i)\b(?:Java|Python|JavaScript|TypeScript|C\+\+|C#|Go|Rust|PHP|Ruby|Swift|Kotlin|Scala)\b`,
	`(?i)\b(?:React|Angular|Vue\.?js?|Node\.?js?|Express\.?js?)\b`,
	`(?i)\b(?:Spring Boot|Django|Flask|FastAPI|Rails)\b`,
	`(?i)\b(?:TensorFlow|PyTorch|Keras|scikit-learn|Pandas|NumPy)\b`,
	`(?i)\b(?:Kubernetes|Docker|AWS|Azure|Google Cloud|GCP)\b`,
	`(?i)\b(?:PostgreSQL|MySQL|MongoDB|Redis|Elasticsearch)\b`,
	`(?i)\b(?:Git|GitHub|GitLab|CI/CD|Jenkins|GitLab CI)\b`,
}

// SkillExtractor pulls technology skills out of free text with three
// independent techniques whose hits are unioned: vocabulary regexes, NER
// entities fuzzy-matched against the alias table, and direct alias
// substring matching.
type SkillExtractor struct {
	patterns []*regexp.Regexp
	useNER   bool
	log      *zap.SugaredLogger
}

func NewSkillExtractor(log *zap.SugaredLogger) *SkillExtractor {
	patterns := make([]*regexp.Regexp, 0, len(skillPatterns))
	for _, p := range skillPatterns {
		patterns = append(patterns, regexp.MustCompile(p))
	}
	return &SkillExtractor{patterns: patterns, useNER: true, log: log}
}

// FromRecords extracts raw skill strings from every text and structured
// field a record may carry. Absent fields contribute nothing.
func (e *SkillExtractor) FromRecords(records []model.RawRecord) []string {
	if e == nil {
		return nil
	}
	all := make([]string, 0)
	for _, rec := range records {
		for _, text := range []string{rec.Description, rec.Title, rec.Topic} {
			if strings.TrimSpace(text) == "" {
				continue
			}
			all = append(all, e.FromText(text)...)
		}
		all = append(all, rec.Skills...)
		for lang := range rec.Languages {
			all = append(all, lang)
		}
		all = append(all, rec.Technologies...)
	}
	return all
}

// FromText extracts the set of skill mentions in one text.
func (e *SkillExtractor) FromText(text string) []string {
	if e == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	found := make(map[string]struct{})

	for _, re := range e.patterns {
		for _, m := range re.FindAllString(text, -1) {
			found[strings.ToLower(m)] = struct{}{}
		}
	}

	if e.useNER {
		for _, ent := range namedEntities(text) {
			entLower := strings.ToLower(ent)
			for alias := range skillAliases {
				if strings.Contains(entLower, alias) {
					found[entLower] = struct{}{}
					break
				}
			}
		}
	}

	textLower := strings.ToLower(text)
	for alias := range skillAliases {
		if strings.Contains(textLower, alias) {
			found[alias] = struct{}{}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	return out
}

// Normalize maps raw skill strings to canonical names and counts
// occurrences case-insensitively. Exact alias hits win; unknown tokens pass
// through title-cased.
func (e *SkillExtractor) Normalize(skills []string) map[string]int {
	normalized := make(map[string]int, len(skills))
	for _, skill := range skills {
		lower := strings.ToLower(strings.TrimSpace(skill))
		if lower == "" {
			continue
		}
		name, ok := skillAliases[lower]
		if !ok {
			name = titleCase(skill)
		}
		normalized[name]++
	}
	return normalized
}

func namedEntities(text string) []string {
	doc, err := prose.NewDocument(text, prose.WithExtraction(true), prose.WithSegmentation(false))
	if err != nil {
		return nil
	}
	ents := doc.Entities()
	out := make([]string, 0, len(ents))
	for _, ent := range ents {
		out = append(out, ent.Text)
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(strings.TrimSpace(s))
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		if len(r) == 0 {
			continue
		}
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
