package classify

import (
	"regexp"
	"strings"

	"github.com/r-yashaswini/job-recommender-system/core"
)

// skillAlias maps a spelling variant to its canonical skill name. Aliases are
// evaluated before the flat vocabulary so a variant is claimed exactly once
// (e.g. "javascript" is never re-classified under "js").
type skillAlias struct {
	pattern   *regexp.Regexp
	canonical string
}

var skillAliases = []skillAlias{
	{regexp.MustCompile(`(?i)\bjava\s*script\b|\bjs\b`), "javascript"},
	{regexp.MustCompile(`(?i)\btype\s*script\b|\bts\b`), "typescript"},
	{regexp.MustCompile(`(?i)\bgolang\b`), "go"},
	{regexp.MustCompile(`(?i)\bpy\s*spark\b`), "spark"},
	{regexp.MustCompile(`(?i)\breact\.?js\b`), "react"},
	{regexp.MustCompile(`(?i)\bnode\.?js\b|\bnodejs\b`), "node"},
	{regexp.MustCompile(`(?i)\bvue\.?js\b`), "vue"},
	{regexp.MustCompile(`(?i)\bnext\.?js\b`), "nextjs"},
	{regexp.MustCompile(`(?i)\bexpress\.?js\b`), "express"},
	{regexp.MustCompile(`(?i)\bpostgres(ql)?\b`), "postgresql"},
	{regexp.MustCompile(`(?i)\bms\s*sql\b|\bsql\s*server\b`), "sql server"},
	{regexp.MustCompile(`(?i)\bk8s\b`), "kubernetes"},
	{regexp.MustCompile(`(?i)\bc\+\+`), "c++"},
	{regexp.MustCompile(`(?i)\bc#`), "c#"},
	{regexp.MustCompile(`(?i)\.net\b|\bdotnet\b`), ".net"},
	{regexp.MustCompile(`(?i)\bobjective[\s-]c\b`), "objective-c"},
	{regexp.MustCompile(`(?i)\bscikit[\s-]?learn\b|\bsklearn\b`), "scikit-learn"},
	{regexp.MustCompile(`(?i)\bamazon\s+web\s+services\b`), "aws"},
	{regexp.MustCompile(`(?i)\bgoogle\s+cloud(\s+platform)?\b`), "gcp"},
	{regexp.MustCompile(`(?i)\bmicrosoft\s+azure\b`), "azure"},
	{regexp.MustCompile(`(?i)\bml\b|\bmachine\s+learning\b`), "machine learning"},
	{regexp.MustCompile(`(?i)\bdl\b|\bdeep\s+learning\b`), "deep learning"},
	{regexp.MustCompile(`(?i)\bnlp\b|\bnatural\s+language\s+processing\b`), "nlp"},
	{regexp.MustCompile(`(?i)\bci/?cd\b`), "ci/cd"},
	{regexp.MustCompile(`(?i)\brest(ful)?\s+apis?\b`), "rest"},
	{regexp.MustCompile(`(?i)\bpower\s*bi\b`), "power bi"},
}

// skillVocabulary is the flat list of literal skills, matched on word
// boundaries after alias patterns have had their chance.
var skillVocabulary = []string{
	"python", "java", "go", "ruby", "php", "swift", "kotlin", "scala", "rust",
	"perl", "matlab", "r", "sql", "html", "css", "sass", "bash", "shell",
	"react", "angular", "vue", "svelte", "jquery", "bootstrap", "tailwind",
	"django", "flask", "fastapi", "spring", "hibernate", "laravel", "rails",
	"node", "express", "graphql", "grpc", "rest", "soap",
	"mysql", "postgresql", "mongodb", "redis", "cassandra", "elasticsearch",
	"sqlite", "oracle", "dynamodb", "snowflake", "neo4j",
	"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "ansible",
	"jenkins", "git", "github", "gitlab", "linux", "nginx", "apache",
	"kafka", "rabbitmq", "spark", "hadoop", "hive", "airflow", "flink",
	"pandas", "numpy", "scipy", "tensorflow", "pytorch", "keras",
	"scikit-learn", "opencv", "tableau", "excel", "selenium", "cypress",
	"junit", "pytest", "jira", "figma", "android", "ios", "flutter",
	"react native", "unity", "firebase", "salesforce", "sap", "etl",
	"data analysis", "data engineering", "data science", "statistics",
	"computer vision", "microservices", "agile", "scrum", "devops",
	"cybersecurity", "networking", "blockchain",
}

// literalPatterns holds the compiled word-boundary matcher per vocabulary
// token. Tokens containing non-word characters already live in the alias
// table, so \b anchoring is safe here.
var literalPatterns = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(skillVocabulary))
	for _, token := range skillVocabulary {
		m[token] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
	}
	return m
}()

// ExtractSkills classifies free text into the set of known skills it
// mentions. Empty or blank input yields an empty set. The function is pure:
// the same input always produces the same set.
func ExtractSkills(text string) core.SkillSet {
	skills := make(core.SkillSet)
	if strings.TrimSpace(text) == "" {
		return skills
	}

	claimed := make(map[string]bool)
	for _, alias := range skillAliases {
		if alias.pattern.MatchString(text) {
			skills.Add(alias.canonical)
			claimed[alias.canonical] = true
		}
	}

	for _, token := range skillVocabulary {
		if claimed[token] {
			continue
		}
		if literalPatterns[token].MatchString(text) {
			skills.Add(token)
		}
	}

	return skills
}
