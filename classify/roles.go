package classify

import "regexp"

// DefaultRole is assigned when no rule matches the title or description.
const DefaultRole = "Software Engineer"

type roleRule struct {
	pattern *regexp.Regexp
	label   string
}

// roleRules is an ordered first-match-wins table. Compound roles sit above
// their generic catch-alls, so "AI/ML Engineer" wins before the bare
// "engineer" rule gets a look.
var roleRules = []roleRule{
	{regexp.MustCompile(`(?i)\b(ai|artificial\s+intelligence)[/\s]+(ml|machine\s+learning)\s+(engineer|scientist|specialist|developer)\b`), "AI/ML Engineer"},
	{regexp.MustCompile(`(?i)\b(machine\s+learning|ml)\s+(engineer|scientist|specialist|developer)\b`), "ML Engineer"},
	{regexp.MustCompile(`(?i)\b(ai|artificial\s+intelligence)\s+(engineer|scientist|specialist|developer)\b`), "AI Engineer"},
	{regexp.MustCompile(`(?i)\bdata\s+(scientist|science)\b`), "Data Scientist"},
	{regexp.MustCompile(`(?i)\bdata\s+(analyst|analytics)\b`), "Data Analyst"},
	{regexp.MustCompile(`(?i)\bdata\s+(engineer|engineering)\b`), "Data Engineer"},
	{regexp.MustCompile(`(?i)\b(backend|back[\s-]?end)\s+(developer|engineer)\b`), "Backend Developer"},
	{regexp.MustCompile(`(?i)\b(frontend|front[\s-]?end)\s+(developer|engineer)\b`), "Frontend Developer"},
	{regexp.MustCompile(`(?i)\bfull[\s-]?stack\s+(developer|engineer)\b`), "Full Stack Developer"},
	{regexp.MustCompile(`(?i)\bmobile\s+(developer|engineer|app)\b`), "Mobile Developer"},
	{regexp.MustCompile(`(?i)\bandroid\s+(developer|engineer)\b`), "Android Developer"},
	{regexp.MustCompile(`(?i)\bios\s+(developer|engineer)\b`), "iOS Developer"},
	{regexp.MustCompile(`(?i)\bweb\s+(developer|engineer)\b`), "Web Developer"},
	{regexp.MustCompile(`(?i)\bdevops\s+(engineer|specialist)\b`), "DevOps Engineer"},
	{regexp.MustCompile(`(?i)\bcloud\s+(engineer|architect|specialist)\b`), "Cloud Engineer"},
	{regexp.MustCompile(`(?i)\bsystem\s+(administrator|admin|engineer)\b`), "System Administrator"},
	{regexp.MustCompile(`(?i)\bnetwork\s+(engineer|administrator)\b`), "Network Engineer"},
	{regexp.MustCompile(`(?i)\b(qa|quality\s+assurance)\s+(engineer|analyst|tester)\b`), "QA Engineer"},
	{regexp.MustCompile(`(?i)\btest\s+(engineer|analyst|automation)\b`), "Test Engineer"},
	{regexp.MustCompile(`(?i)\bautomation\s+(engineer|tester)\b`), "Automation Engineer"},
	{regexp.MustCompile(`(?i)\b(security|cyber\s*security)\s+(engineer|analyst|specialist)\b`), "Security Engineer"},
	{regexp.MustCompile(`(?i)\b(tech|technical)\s+(lead|leader)\b`), "Tech Lead"},
	{regexp.MustCompile(`(?i)\b(engineering|development)\s+manager\b`), "Engineering Manager"},
	{regexp.MustCompile(`(?i)\bproject\s+manager\b`), "Project Manager"},
	{regexp.MustCompile(`(?i)\bproduct\s+manager\b`), "Product Manager"},
	{regexp.MustCompile(`(?i)\bbusiness\s+(analyst|intelligence)\b`), "Business Analyst"},
	{regexp.MustCompile(`(?i)\bsales\s+(engineer|executive|representative)\b`), "Sales"},
	{regexp.MustCompile(`(?i)\bcustomer\s+(support|success|service)\b`), "Customer Support"},
	{regexp.MustCompile(`(?i)\bmarketing\s+(specialist|manager|executive)\b`), "Marketing"},
	{regexp.MustCompile(`(?i)\bsoftware\s+(developer|programmer)\b`), "Software Developer"},
	{regexp.MustCompile(`(?i)\bsoftware\s+engineer\b`), "Software Engineer"},
	{regexp.MustCompile(`(?i)\bdata\s+analyst\b`), "Data Analyst"},
	{regexp.MustCompile(`(?i)\bsystem\s+analyst\b`), "System Analyst"},
	{regexp.MustCompile(`(?i)\bbusiness\s+analyst\b`), "Business Analyst"},
	{regexp.MustCompile(`(?i)\bfinancial\s+analyst\b`), "Financial Analyst"},
	{regexp.MustCompile(`(?i)\b(developer|programmer)\b`), "Software Developer"},
	{regexp.MustCompile(`(?i)\bengineer\b`), "Software Engineer"},
	{regexp.MustCompile(`(?i)\banalyst\b`), "Data Analyst"},
	{regexp.MustCompile(`(?i)\bspecialist\b`), "Specialist"},
}

// ExtractRole labels a job with a canonical role name. The title and
// description are matched together, title first, so title wording dominates
// only through rule order, not position.
func ExtractRole(title, description string) string {
	text := title + " " + description
	for _, rule := range roleRules {
		if rule.pattern.MatchString(text) {
			return rule.label
		}
	}
	return DefaultRole
}
