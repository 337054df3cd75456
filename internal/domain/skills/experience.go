package skills

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/oksasatya/careerboost/internal/domain/entity"
)

const maxExperienceYears = 40

var (
	// "3 a 5 ans d'experience", "experience : 2-4 years": the lower bound is the requirement
	rangeYearsRe = regexp.MustCompile(`\b(\d{1,2})\s*(?:a|-|to)\s*\d{1,2}\s*(?:ans?|annees?|years?)\b`)
	yearsRe      = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*(?:ans?|annees?)\s+(?:minimum\s+)?(?:d'|de\s+)?(?:experience|exp\b)`),
		regexp.MustCompile(`(?:experience|\bexp\b)[^.\d\n]{0,30}?\b(\d{1,2})\s*\+?\s*(?:ans?|annees?|years?)\b`),
		regexp.MustCompile(`\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\s+(?:of\s+)?(?:\w+\s+)?(?:experience|exp\b)`),
		regexp.MustCompile(`minimum\s+(\d{1,2})\s*(?:ans?|annees?|years?)\b`),
		// "5+ years", "3+ ans"
		regexp.MustCompile(`\b(\d{1,2})\s*\+\s*(?:years?|yrs?|ans?|annees?)\b`),
	}
	experienceWordRe = regexp.MustCompile(`experience|\bexp\b`)
)

const experienceWindow = 40

// ExtractExperienceYears returns the minimum years of experience a text asks
// for, or 0 when none is stated. With several mentions the largest wins.
func ExtractExperienceYears(text string) int {
	folded := Fold(text)
	best := 0
	consider := func(s string) {
		n, err := strconv.Atoi(s)
		if err == nil && n > best && n <= maxExperienceYears {
			best = n
		}
	}
	for _, loc := range rangeYearsRe.FindAllStringSubmatchIndex(folded, -1) {
		if experienceWordRe.MatchString(rangeContext(folded, loc[0], loc[1])) {
			consider(folded[loc[2]:loc[3]])
		}
	}
	if best > 0 {
		return best
	}
	for _, re := range yearsRe {
		for _, m := range re.FindAllStringSubmatch(folded, -1) {
			consider(m[1])
		}
	}
	return best
}

// rangeContext returns the words around a range match, bounded by the
// enclosing sentence.
func rangeContext(text string, start, end int) string {
	head := text[max(0, start-experienceWindow):start]
	if i := strings.LastIndexAny(head, ".;!?\n"); i >= 0 {
		head = head[i+1:]
	}
	tail := text[end:min(len(text), end+experienceWindow)]
	if i := strings.IndexAny(tail, ".;!?\n"); i >= 0 {
		tail = tail[:i]
	}
	return head + " " + tail
}

var contractPatterns = []struct {
	contract entity.ContractType
	re       *regexp.Regexp
}{
	{entity.ContractAlternance, regexp.MustCompile(`\b(?:alternance|alternant|apprentissage|apprenti|contrat pro(?:fessionnalisation)?)\b`)},
	{entity.ContractStage, regexp.MustCompile(`\b(?:stage|stagiaire|internship|intern)\b`)},
	{entity.ContractInterim, regexp.MustCompile(`\b(?:interim|interimaire|travail temporaire)\b`)},
	{entity.ContractFreelance, regexp.MustCompile(`\b(?:freelance|free-lance|independant|portage salarial)\b`)},
	{entity.ContractCDD, regexp.MustCompile(`\b(?:cdd|duree determinee)\b`)},
	{entity.ContractCDI, regexp.MustCompile(`\b(?:cdi|duree indeterminee)\b`)},
}

// DetectContractType returns the contract type mentioned first in text, or "".
func DetectContractType(text string) entity.ContractType {
	folded := Fold(text)
	var found entity.ContractType
	pos := -1
	for _, cp := range contractPatterns {
		loc := cp.re.FindStringIndex(folded)
		if loc == nil {
			continue
		}
		if pos < 0 || loc[0] < pos {
			pos = loc[0]
			found = cp.contract
		}
	}
	return found
}
