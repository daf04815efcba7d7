package entities

import (
	"regexp"
	"strings"
)

var (
	separatorRun = regexp.MustCompile(`[-_.]+`)
	commentRE    = regexp.MustCompile(`(^|\s)#.*$`)
	// requirementNameRE captures the distribution name at the start of a requirement line.
	requirementNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)
	// directReferenceRE matches PEP 508 "name[extras] @ url" lines.
	directReferenceRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)\s*(\[[^\]]*\])?\s*@`)
	eggFragmentRE     = regexp.MustCompile(`#egg=([a-zA-Z0-9][-a-zA-Z0-9._]*)`)
)

// PackageRequirement is one package the project needs, as written into a dependency file.
type PackageRequirement struct {
	Name       string // distribution name as the operator spells it
	Constraint string // version specifier such as "==2.1" or "^2.1"; empty means any version
	Group      string // optional dependency group; only honoured by Poetry projects
}

// CanonicalName returns the comparison form of the requirement's name.
func (r PackageRequirement) CanonicalName() string {
	return CanonicalName(r.Name)
}

// Line renders the requirement the way a requirements.txt line spells it.
func (r PackageRequirement) Line() string {
	return r.Name + r.Constraint
}

// TOMLValue renders the constraint as the value side of a `name = "..."` table entry.
func (r PackageRequirement) TOMLValue() string {
	if strings.TrimSpace(r.Constraint) == "" {
		return "*"
	}
	return strings.TrimSpace(r.Constraint)
}

// CanonicalName lower-cases a package name and folds runs of "-", "_" and "." into "-",
// so that "Django_Bootstrap5" and "django-bootstrap5" compare equal.
func CanonicalName(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// ParseRequirementLine extracts the distribution name from a single requirements.txt line.
// Direct references ("name @ url") and URLs carrying "#egg=name" report that name.
// Blank lines, comments, other pip options and anonymous URL/VCS references report false.
func ParseRequirementLine(line string) (string, bool) {
	line = strings.TrimSpace(commentRE.ReplaceAllString(line, ""))
	for _, flag := range []string{"--editable", "-e"} {
		if rest, ok := strings.CutPrefix(line, flag); ok && (rest == "" || rest[0] == ' ' || rest[0] == '=') {
			line = strings.TrimSpace(strings.TrimPrefix(rest, "="))
			break
		}
	}
	if line == "" || line[0] == '-' {
		return "", false
	}
	if match := directReferenceRE.FindStringSubmatch(line); match != nil {
		return match[1], true
	}
	if strings.Contains(line, "://") || strings.HasPrefix(line, "git+") {
		if match := eggFragmentRE.FindStringSubmatch(line); match != nil {
			return match[1], true
		}
		return "", false
	}
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = strings.TrimSpace(line[:idx])
	}
	match := requirementNameRE.FindStringSubmatch(line)
	if len(match) < 2 {
		return "", false
	}
	return match[1], true
}

// PackageSet is an order-irrelevant set of canonical package names.
type PackageSet map[string]struct{}

// NewPackageSet canonicalizes names into a set; differently-cased duplicates collapse.
func NewPackageSet(names ...string) PackageSet {
	set := make(PackageSet, len(names))
	for _, name := range names {
		set[CanonicalName(name)] = struct{}{}
	}
	return set
}

// Has reports whether name (in any casing or separator style) is in the set.
func (s PackageSet) Has(name string) bool {
	_, ok := s[CanonicalName(name)]
	return ok
}
